package entity

import (
	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryChocolate ProductCategory = "chocolate"
	CategoryGummy     ProductCategory = "gummy"
	CategoryHardCandy ProductCategory = "hard-candy"
	CategoryLollipops ProductCategory = "lollipops"
	CategorySeasonal  ProductCategory = "seasonal"
)

type Product struct {
	BaseSimple
	Name        string          `db:"name"`
	Category    ProductCategory `db:"category"`
	Price       decimal.Decimal `db:"price"`
	Image       string          `db:"image"`
	Rating      float64         `db:"rating"`
	InStock     int             `db:"in_stock"`
	Description string          `db:"description"`
}
