package product

import "github.com/ArpitBagaria/dist-backend/internal/app/services/svproduct"

// ProductHandler 商品管理 HTTP 处理器
type ProductHandler struct {
	productService *svproduct.ProductService
}

// NewProductHandler 创建商品处理器实例
func NewProductHandler(productService *svproduct.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}
