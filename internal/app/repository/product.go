package repository

import (
	"database/sql"
	"errors"

	"amc-crm/internal/app/ds"
)

// Методы для работы с продуктами

// Получить все продукты (с поиском по названию)
func (r *Repository) GetProducts(search string) ([]ds.Product, error) {
	var products []ds.Product
	q := r.db.Where("is_deleted = ?", false)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	err := q.Order("name").Find(&products).Error
	return products, err
}

// Получить продукт по ID
func (r *Repository) GetProductByID(id uint) (*ds.Product, error) {
	query := `SELECT id, name, description, default_price
	          FROM products
	          WHERE id = $1 AND is_deleted = false`

	row := r.db.Raw(query, id).Row()

	var product ds.Product
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.DefaultPrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Записи нет
		}
		return nil, err
	}

	return &product, nil
}

func (r *Repository) ProductExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateProduct(name, description string, defaultPrice float64) (*ds.Product, error) {
	product := ds.Product{
		Name:         name,
		Description:  description,
		DefaultPrice: defaultPrice,
	}
	err := r.db.Create(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct обновляет только переданные поля
func (r *Repository) UpdateProduct(id uint, name, description *string, defaultPrice *float64) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if defaultPrice != nil {
		updates["default_price"] = *defaultPrice
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Product{}).Where("id = ?", id).Updates(updates).Error
}

// Логическое удаление продукта. Продукт с заказами удалить нельзя
func (r *Repository) DeleteProduct(id uint) error {
	var orders int64
	err := r.db.Model(&ds.Order{}).
		Where("product_id = ? AND status != ?", id, ds.OrderStatusDeleted).
		Count(&orders).Error
	if err != nil {
		return err
	}
	if orders > 0 {
		return errors.New("продукт используется в заказах и не может быть удалён")
	}

	result := r.db.Exec("UPDATE products SET is_deleted = true WHERE id = ? AND is_deleted = false", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("продукт не найден")
	}
	return nil
}
