package ds

// Таблица продуктов (каталог)
type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(100);not null"`
	Description string  `gorm:"type:text"`
	// Ориентировочная базовая цена, подставляется в форму заказа
	DefaultPrice float64 `gorm:"type:decimal(12,2);default:0"`
	IsDeleted    bool    `gorm:"type:boolean;default:false;not null"`
}
