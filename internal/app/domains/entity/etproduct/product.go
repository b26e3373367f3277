package etproduct

import (
	"errors"
	"strings"
	"time"
)

// 错误定义
var (
	ErrInvalidGoodsID = errors.New("goods id cannot be empty")
)

// 商品品类
const (
	CategoryTV     = "TV"
	CategoryPad    = "Pad"
	CategoryPhones = "Phones"
	CategoryEco    = "eco"
)

// Product 商品实体
// CurrentPrice 为 nil 表示尚未录入价格
type Product struct {
	ID              int64
	GoodsID         string
	Name            string
	Category        string
	CurrentPrice    *float64
	LastPriceUpdate time.Time
}

// NewProduct 创建商品（工厂方法），品类由名称推断
func NewProduct(id int64, goodsID, name string) (*Product, error) {
	if goodsID == "" {
		return nil, ErrInvalidGoodsID
	}

	return &Product{
		ID:       id,
		GoodsID:  goodsID,
		Name:     name,
		Category: Categorize(name),
	}, nil
}

// phoneKeywords 手机品类关键词（与 PRM 导入口径一致）
var phoneKeywords = []string{"redmi", "xiaomi", " mi ", "poco", "note", " 5g", " 4g", "phone", "mobile"}

// Categorize 根据商品名称推断品类
func Categorize(name string) string {
	if name == "" {
		return CategoryEco
	}

	lower := strings.ToLower(name)

	if strings.Contains(lower, "tv") {
		return CategoryTV
	}

	if strings.Contains(lower, "pad") || strings.Contains(lower, "tablet") || strings.Contains(lower, " tab ") {
		return CategoryPad
	}

	for _, kw := range phoneKeywords {
		if strings.Contains(lower, kw) {
			return CategoryPhones
		}
	}

	return CategoryEco
}
