package models

// ProductCategory é um conjunto fechado: resina, madeira ou mesa.
type ProductCategory string

const (
	CategoryResina  ProductCategory = "resina"
	CategoryMadeira ProductCategory = "madeira"
	CategoryMesa    ProductCategory = "mesa"
)

// Valid indica se a categoria pertence ao conjunto conhecido.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryResina, CategoryMadeira, CategoryMesa:
		return true
	}
	return false
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Price       float64         `json:"price"`
	Category    ProductCategory `json:"category"`
	Description string          `json:"description"`
}
