package ds

import "time"

// Статусы заказа
const (
	OrderStatusDraft   = "черновик"
	OrderStatusActive  = "оформлен"
	OrderStatusDeleted = "удалён"
)

// Таблица заказов (закупок)
type Order struct {
	ID        uint    `gorm:"primaryKey"`
	ClientID  uint    `gorm:"not null;index"`
	ProductID uint    `gorm:"not null;index"`
	Status    string  `gorm:"type:varchar(20);not null;default:'оформлен'"`
	BaseCost  float64 `gorm:"type:decimal(12,2);not null"`
	// Ставка АМС: процент от базовой стоимости и согласованная с ним сумма
	AMCRatePercentage float64 `gorm:"type:decimal(6,2);default:0"`
	AMCRateAmount     float64 `gorm:"type:decimal(12,2);default:0"`
	// Срок действия договора
	AgreementStart *time.Time `gorm:"default:null"`
	AgreementEnd   *time.Time `gorm:"default:null"`
	DeploymentDate *time.Time `gorm:"default:null"`
	// Ключ документа заказа (скан договора) в файловом хранилище
	PurchaseOrderDocument string    `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"not null"`
	CreatedByID           uint      `gorm:"not null"`

	Client    Client  `gorm:"foreignKey:ClientID"`
	Product   Product `gorm:"foreignKey:ProductID"`
	CreatedBy User    `gorm:"foreignKey:CreatedByID"`

	PaymentTerms []PaymentTerm `gorm:"foreignKey:OrderID"`
}

// Таблица платежных этапов заказа (упорядочены по Position)
type PaymentTerm struct {
	ID                     uint       `gorm:"primaryKey"`
	OrderID                uint       `gorm:"not null;index"`
	Position               int        `gorm:"type:int;not null"`
	Name                   string     `gorm:"type:varchar(100)"`
	PercentageFromBaseCost float64    `gorm:"type:decimal(6,2);default:0"`
	CalculatedAmount       float64    `gorm:"type:decimal(12,2);default:0"`
	Date                   *time.Time `gorm:"default:null"`
	Status                 string     `gorm:"type:varchar(20);default:'pending'"` // paid, pending
}

// Таблица лицензий по заказу
type License struct {
	ID             uint       `gorm:"primaryKey"`
	OrderID        uint       `gorm:"not null;index"`
	CostPerLicense float64    `gorm:"type:decimal(12,2);not null"`
	TotalLicense   int        `gorm:"type:int;not null"`
	Start          *time.Time `gorm:"default:null"`
	End            *time.Time `gorm:"default:null"`
}

// Таблица кастомизаций (доработки продукта по заказу)
type Customization struct {
	ID      uint    `gorm:"primaryKey"`
	OrderID uint    `gorm:"not null;index"`
	Cost    float64 `gorm:"type:decimal(12,2);not null"`
	// Собственная ставка АМС кастомизации (процент + сумма от Cost)
	AMCRatePercentage float64 `gorm:"type:decimal(6,2);default:0"`
	AMCRateAmount     float64 `gorm:"type:decimal(12,2);default:0"`
	// Список дорабатываемых модулей, JSON-массив строк
	Modules string `gorm:"type:text"`
}

// Таблица дополнительных услуг по заказу
type AdditionalService struct {
	ID      uint       `gorm:"primaryKey"`
	OrderID uint       `gorm:"not null;index"`
	Name    string     `gorm:"type:varchar(100);not null"`
	Cost    float64    `gorm:"type:decimal(12,2);not null"`
	Start   *time.Time `gorm:"default:null"`
	End     *time.Time `gorm:"default:null"`
}
