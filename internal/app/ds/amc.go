package ds

import "time"

// Статусы платежа АМС
const (
	AMCPaymentPaid    = "paid"
	AMCPaymentPending = "pending"
)

// Таблица АМС (ежегодное сопровождение по заказу, одна запись на заказ)
type AMC struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"not null;uniqueIndex"`
	// Сумма АМС за цикл: процент от базовой стоимости заказа и сумма
	AmountPercentage float64    `gorm:"type:decimal(6,2);default:0"`
	Amount           float64    `gorm:"type:decimal(12,2);default:0"`
	StartDate        *time.Time `gorm:"default:null"`

	Order    Order        `gorm:"foreignKey:OrderID"`
	Payments []AMCPayment `gorm:"foreignKey:AMCID"`
}

// Таблица платежей АМС (по одному на цикл сопровождения)
type AMCPayment struct {
	ID           uint       `gorm:"primaryKey"`
	AMCID        uint       `gorm:"not null;index"`
	FromDate     time.Time  `gorm:"not null"`
	ToDate       time.Time  `gorm:"not null"`
	Amount       float64    `gorm:"type:decimal(12,2);not null"`
	Status       string     `gorm:"type:varchar(20);default:'pending';not null"` // paid, pending
	ReceivedDate *time.Time `gorm:"default:null"`

	AMC AMC `gorm:"foreignKey:AMCID"`
}
