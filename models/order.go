package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is append-only purchase history. Rows are created once at checkout
// and never updated afterwards.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"size:36;uniqueIndex;not null" json:"order_number"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TotalSum sums the frozen item prices. Items must be preloaded.
func (o *Order) TotalSum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `json:"product"`
	// CategoryID duplicates the product's category at purchase time so the
	// history survives later recategorization.
	CategoryID uint `json:"category_id"`
	Quantity   int  `gorm:"not null" json:"quantity"`
	// Price is a frozen copy of the product price at checkout, never the
	// live value.
	Price decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`
}
