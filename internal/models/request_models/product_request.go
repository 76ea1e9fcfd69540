package request_models

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	Category      string   `json:"category" binding:"required"`
	StockQuantity int      `json:"stockQuantity" binding:"min=0"`
	Images        []string `json:"images"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Category      *string  `json:"category"`
	StockQuantity *int     `json:"stockQuantity"`
	Images        []string `json:"images"`
}

type ListProductsQuery struct {
	Category string  `form:"category"`
	MinPrice float64 `form:"minPrice"`
	MaxPrice float64 `form:"maxPrice"`
	Search   string  `form:"search"`
	Limit    int     `form:"limit,default=20"`
	Offset   int     `form:"offset,default=0"`
}
