package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CategoryOptical    = "optical"
	CategorySunglasses = "sunglasses"
)

type Product struct {
	gorm.Model
	Name          string          `json:"name" binding:"required"`
	Brand         string          `json:"brand" binding:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2)" binding:"required"`
	Discount      int             `json:"discount" binding:"omitempty,min=0,max=100"`
	Category      string          `json:"category" gorm:"size:50" binding:"required,oneof=optical sunglasses"`
	Gender        string          `json:"gender" gorm:"size:20" binding:"required,oneof=men women unisex"`
	FrameShape    string          `json:"frameShape" gorm:"size:50"`
	Material      string          `json:"material" gorm:"size:100"`
	Color         string          `json:"color" gorm:"size:50"`
	StockQuantity int             `json:"stockQuantity"`
	InStock       bool            `json:"inStock"`
	Images        datatypes.JSON  `json:"images"`
	Features      datatypes.JSON  `json:"features"`
}
