package domain

// ProductDTO is the wire projection of a product. The category name is
// denormalized and there is no back-reference to Category, so the value
// serializes without cycles. DTOs are built per read and never persisted.
type ProductDTO struct {
	ID           uint    `json:"id" xml:"id"`
	Name         string  `json:"name" xml:"name"`
	Description  string  `json:"description" xml:"description"`
	Price        float64 `json:"price" xml:"price"`
	CategoryID   uint    `json:"category_id" xml:"category_id"`
	CategoryName string  `json:"category_name" xml:"category_name"`
}

func NewProductDTO(p Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		CategoryName: p.Category.Name,
	}
}
