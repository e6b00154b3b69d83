package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"atelie_back_end/internal/config"
	"atelie_back_end/internal/routes"
)

func main() {
	config.Load()

	if config.AccessToken() == "" {
		// A rota de pagamento falha fechada; o resto da API sobe normalmente.
		log.Println("⚠️  MP_ACCESS_TOKEN ausente — pagamentos responderão 500 até configurar")
	} else {
		log.Println("✅ Credencial do Mercado Pago carregada")
	}

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := config.Port()
	log.Println("🚀 Servidor Ateliê do Chico na porta", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Servidor encerrou com erro:", err)
	}
}
