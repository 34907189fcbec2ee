package ds

// Таблица пользователей (сотрудники компании)
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Login    string `gorm:"type:varchar(50);unique;not null"`
	Email    string `gorm:"type:varchar(100)"`
	Password string `gorm:"type:varchar(255);not null"` // bcrypt-хеш
	FullName string `gorm:"type:varchar(100)"`
	Role     int    `gorm:"type:int;default:0;not null"` // 0 employee, 1 manager, 2 admin
}
