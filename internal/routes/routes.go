package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"atelie_back_end/internal/handlers"
)

func RegisterRoutes(r *gin.Engine) {
	// O storefront roda em outra origem (Next.js em dev).
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Idempotency-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// Catálogo
	api.GET("/products", handlers.GetProducts)
	api.GET("/products/:id", handlers.GetProduct)

	// Pagamento
	paymentHandler := handlers.NewPaymentHandler()
	api.POST("/mercadopago/criarPagamento", paymentHandler.CriarPagamento)
}
