package models

import (
	"time"
)

type Product struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"         json:"id"`
	Name      string  `gorm:"not null"                         json:"name"`
	UnitPrice float64 `gorm:"not null;check:unit_price >= 0"   json:"unitPrice"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string      `gorm:"not null"                 json:"orderNumber"`
	Date        time.Time   `gorm:"not null;autoCreateTime"  json:"date"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"                  json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"orderId"`
	ProductID uint    `gorm:"not null"                    json:"productId"`
	Quantity  uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID"        json:"product,omitempty"`
}
