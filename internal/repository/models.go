package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Category    string
	Description *string
	CreatedAt   time.Time
}

type Cart struct {
	ID        int64
	UserID    int64
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartLine struct {
	CartID    int64
	ProductID int64
	Quantity  int32
}
