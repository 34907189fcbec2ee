package repository

import (
	"amc-crm/internal/app/ds"
)

// Методы для пользователей

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(login string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(login, email, password, fullName string, userRole int) (*ds.User, error) {
	user := ds.User{
		Login:    login,
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     userRole,
	}

	err := r.db.Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUser обновляет только переданные поля профиля
func (r *Repository) UpdateUser(id uint, fullName, email, password *string) error {
	updates := map[string]interface{}{}
	if fullName != nil {
		updates["full_name"] = *fullName
	}
	if email != nil {
		updates["email"] = *email
	}
	if password != nil {
		updates["password"] = *password
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.User{}).Where("id = ?", id).Updates(updates).Error
}
