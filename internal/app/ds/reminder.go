package ds

import "time"

// Виды напоминаний
const (
	ReminderKindAMCPayment = "amc_payment" // приближающийся/просроченный платеж АМС
	ReminderKindAgreement  = "agreement"   // истекающий договор
)

// Статусы напоминаний
const (
	ReminderStatusScheduled = "scheduled"
	ReminderStatusSent      = "sent"
)

// Таблица напоминаний
type Reminder struct {
	ID           uint      `gorm:"primaryKey"`
	ClientID     uint      `gorm:"not null;index"`
	AMCPaymentID *uint     `gorm:"default:null"` // для напоминаний о платеже
	Kind         string    `gorm:"type:varchar(30);not null"`
	DueDate      time.Time `gorm:"not null"`
	Status       string    `gorm:"type:varchar(20);default:'scheduled';not null"`
	CreatedAt    time.Time `gorm:"not null"`

	Client Client `gorm:"foreignKey:ClientID"`
}

// Таблица истории внешних коммуникаций (отправленные письма)
type EmailRecord struct {
	ID         uint      `gorm:"primaryKey"`
	ClientID   uint      `gorm:"not null;index"`
	ReminderID *uint     `gorm:"default:null"`
	Email      string    `gorm:"type:varchar(100);not null"`
	Subject    string    `gorm:"type:varchar(255);not null"`
	Body       string    `gorm:"type:text"`
	SentAt     time.Time `gorm:"not null"`
	Status     string    `gorm:"type:varchar(20);not null"` // sent, failed

	Client Client `gorm:"foreignKey:ClientID"`
}
