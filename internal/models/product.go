package models

// Product represents a product in the catalog.
type Product struct {
	ID          int     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        string  `json:"name" validate:"required,max=200"`
	Brand       string  `json:"brand" validate:"required,max=100"`
	Model       string  `json:"model" validate:"required,max=100"`
	Color       string  `json:"color" validate:"required,max=50"`
	Category    string  `json:"category" validate:"required,max=100"`
	Price       float64 `json:"price" validate:"gt=0,lte=9999999"`
	Stock       int     `json:"stock" validate:"gte=0,lte=999999"`
	Description string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	Image       string  `json:"image,omitempty" validate:"omitempty,max=500"`
}

// ProductPatch carries the fields of a partial update. Nil fields are left untouched.
// An ID in the payload is accepted but never applied.
type ProductPatch struct {
	ID          *int     `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty" validate:"omitnil,min=1,max=200"`
	Brand       *string  `json:"brand,omitempty" validate:"omitnil,min=1,max=100"`
	Model       *string  `json:"model,omitempty" validate:"omitnil,min=1,max=100"`
	Color       *string  `json:"color,omitempty" validate:"omitnil,min=1,max=50"`
	Category    *string  `json:"category,omitempty" validate:"omitnil,min=1,max=100"`
	Price       *float64 `json:"price,omitempty" validate:"omitnil,gt=0,lte=9999999"`
	Stock       *int     `json:"stock,omitempty" validate:"omitnil,gte=0,lte=999999"`
	Description *string  `json:"description,omitempty" validate:"omitnil,max=1000"`
	Image       *string  `json:"image,omitempty" validate:"omitnil,max=500"`
}

// Apply overlays the non-nil fields of the patch onto p. The ID is preserved.
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Model != nil {
		p.Model = *patch.Model
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	return p
}

// ProductPage is one page of a filtered and sorted product listing.
type ProductPage struct {
	Products      []Product `json:"products"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
	TotalProducts int       `json:"totalProducts"`
	HasNextPage   bool      `json:"hasNextPage"`
	HasPrevPage   bool      `json:"hasPrevPage"`
}
