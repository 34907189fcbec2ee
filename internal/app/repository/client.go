package repository

import (
	"amc-crm/internal/app/ds"
)

// Методы для работы с клиентами

// Получить всех клиентов (с поиском по названию)
func (r *Repository) GetClients(search string) ([]ds.Client, error) {
	var clients []ds.Client
	q := r.db.Preload("ParentCompany").Where("is_deleted = ?", false)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("name").Find(&clients).Error
	return clients, err
}

// Получить клиента по ID
func (r *Repository) GetClientByID(id uint) (*ds.Client, error) {
	var client ds.Client
	err := r.db.Preload("ParentCompany").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *Repository) ClientExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Client{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateClient(client *ds.Client) error {
	return r.db.Create(client).Error
}

// UpdateClient обновляет только переданные поля
func (r *Repository) UpdateClient(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Client{}).Where("id = ?", id).Updates(updates).Error
}

// GetParentCompanies возвращает клиентов-кандидатов в головные компании
// (тех, кто сам не является дочерней компанией)
func (r *Repository) GetParentCompanies() ([]ds.Client, error) {
	var clients []ds.Client
	err := r.db.Where("is_deleted = ? AND parent_company_id IS NULL", false).
		Order("name").Find(&clients).Error
	return clients, err
}

// GetClientProducts возвращает продукты, закупленные клиентом
func (r *Repository) GetClientProducts(clientID uint) ([]ds.Product, error) {
	var products []ds.Product
	err := r.db.Raw(`SELECT DISTINCT p.id, p.name, p.description, p.default_price, p.is_deleted
	                 FROM products p
	                 JOIN orders o ON o.product_id = p.id
	                 WHERE o.client_id = ? AND o.status != ?`,
		clientID, ds.OrderStatusDeleted).Scan(&products).Error
	return products, err
}
