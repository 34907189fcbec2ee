package role

// Role — роль пользователя в системе
type Role int

const (
	Employee Role = iota // сотрудник: просмотр и ведение своих записей
	Manager              // менеджер: все клиенты, заказы и отчеты
	Admin                // администратор: плюс управление каталогом и пользователями
)

func (r Role) String() string {
	switch r {
	case Admin:
		return "admin"
	case Manager:
		return "manager"
	default:
		return "employee"
	}
}
