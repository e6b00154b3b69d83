package models

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartSummary é derivado do carrinho, nunca persistido.
type CartSummary struct {
	Items      []CartItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Discount   float64    `json:"discount"`
	Total      float64    `json:"total"`
	TotalItems int        `json:"total_items"`
}
