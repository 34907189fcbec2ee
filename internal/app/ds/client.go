package ds

import "time"

// Таблица клиентов
type Client struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"type:varchar(100);not null"`
	Industry        string `gorm:"type:varchar(100)"` // отрасль, используется в отчетах
	ContactPerson   string `gorm:"type:varchar(100)"`
	ContactEmail    string `gorm:"type:varchar(100)"`
	ContactPhone    string `gorm:"type:varchar(30)"`
	Address         string `gorm:"type:text"`
	// Ссылка на головную компанию (самоссылка, nullable)
	ParentCompanyID *uint `gorm:"default:null;index"`
	// Периодичность выставления АМС в месяцах (обычно 12)
	AMCFrequency int       `gorm:"type:int;default:12;not null"`
	IsDeleted    bool      `gorm:"type:boolean;default:false;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	CreatedByID  uint      `gorm:"not null"`

	ParentCompany *Client `gorm:"foreignKey:ParentCompanyID"`
	CreatedBy     User    `gorm:"foreignKey:CreatedByID"`
}
