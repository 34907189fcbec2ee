package repository

import (
	"errors"
	"time"

	"amc-crm/internal/app/billing"
	"amc-crm/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с заказами

// CreateOrderWithDetails создает заказ со всеми вложенными блоками одной
// транзакцией: платежные этапы, лицензия, кастомизация и запись АМС
// с графиком платежей по сроку договора
func (r *Repository) CreateOrderWithDetails(
	order *ds.Order,
	terms []ds.PaymentTerm,
	license *ds.License,
	customization *ds.Customization,
	amcFrequency int,
) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range terms {
			terms[i].OrderID = order.ID
			terms[i].Position = i
		}
		if len(terms) > 0 {
			if err := tx.Create(&terms).Error; err != nil {
				return err
			}
		}

		if license != nil {
			license.OrderID = order.ID
			if err := tx.Create(license).Error; err != nil {
				return err
			}
		}

		if customization != nil {
			customization.OrderID = order.ID
			if err := tx.Create(customization).Error; err != nil {
				return err
			}
		}

		// Запись АМС заводится сразу, график платежей — по сроку договора
		amc := ds.AMC{
			OrderID:          order.ID,
			AmountPercentage: order.AMCRatePercentage,
			Amount:           order.AMCRateAmount,
			StartDate:        order.AgreementStart,
		}
		if err := tx.Create(&amc).Error; err != nil {
			return err
		}

		if order.AgreementStart != nil && order.AgreementEnd != nil {
			schedule := billing.AMCSchedule(*order.AgreementStart, *order.AgreementEnd, amcFrequency)
			for _, p := range schedule {
				payment := ds.AMCPayment{
					AMCID:    amc.ID,
					FromDate: p.From,
					ToDate:   p.To,
					Amount:   amc.Amount,
					Status:   ds.AMCPaymentPending,
				}
				if err := tx.Create(&payment).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// GetFirstOrder возвращает первый (самый ранний) заказ клиента
func (r *Repository) GetFirstOrder(clientID uint) (*ds.Order, error) {
	var order ds.Order
	err := r.db.Preload("Client").Preload("Product").
		Preload("PaymentTerms", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("client_id = ? AND status != ?", clientID, ds.OrderStatusDeleted).
		Order("created_at").
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByID возвращает заказ (только если он не удален)
func (r *Repository) GetOrderByID(orderID uint) (*ds.Order, error) {
	var order ds.Order
	err := r.db.Preload("Client").Preload("Product").
		Preload("PaymentTerms", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("id = ? AND status != ?", orderID, ds.OrderStatusDeleted).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders возвращает заказы с фильтрацией по клиенту и датам
func (r *Repository) GetOrders(clientID *uint, dateFrom, dateTo *time.Time) ([]ds.Order, error) {
	var orders []ds.Order
	q := r.db.Preload("Client").Preload("Product").
		Where("status != ?", ds.OrderStatusDeleted)
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	if dateFrom != nil {
		q = q.Where("created_at >= ?", *dateFrom)
	}
	if dateTo != nil {
		q = q.Where("created_at <= ?", *dateTo)
	}
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// UpdateOrderFields обновляет поля заказа и заменяет платежные этапы
// (если они переданы) одной транзакцией
func (r *Repository) UpdateOrderFields(orderID uint, updates map[string]interface{}, terms []ds.PaymentTerm) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			result := tx.Model(&ds.Order{}).
				Where("id = ? AND status != ?", orderID, ds.OrderStatusDeleted).
				Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errors.New("заказ не найден или удалён")
			}
		}

		if terms != nil {
			if err := tx.Where("order_id = ?", orderID).Delete(&ds.PaymentTerm{}).Error; err != nil {
				return err
			}
			for i := range terms {
				terms[i].ID = 0
				terms[i].OrderID = orderID
				terms[i].Position = i
			}
			if len(terms) > 0 {
				if err := tx.Create(&terms).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Логическое удаление заказа
func (r *Repository) DeleteOrder(orderID uint) error {
	result := r.db.Exec("UPDATE orders SET status = ? WHERE id = ? AND status != ?",
		ds.OrderStatusDeleted, orderID, ds.OrderStatusDeleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("заказ не найден или уже удалён")
	}
	return nil
}

// ============ Вложенные блоки заказа ============

func (r *Repository) GetLicenseByOrder(orderID uint) (*ds.License, error) {
	var license ds.License
	err := r.db.Where("order_id = ?", orderID).First(&license).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &license, nil
}

// UpsertLicense создает или обновляет лицензионный блок заказа
func (r *Repository) UpsertLicense(license *ds.License) error {
	var existing ds.License
	err := r.db.Where("order_id = ?", license.OrderID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(license).Error
		}
		return err
	}

	license.ID = existing.ID
	return r.db.Save(license).Error
}

func (r *Repository) GetCustomizationByOrder(orderID uint) (*ds.Customization, error) {
	var customization ds.Customization
	err := r.db.Where("order_id = ?", orderID).First(&customization).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customization, nil
}

// UpsertCustomization создает или обновляет блок кастомизации заказа
func (r *Repository) UpsertCustomization(customization *ds.Customization) error {
	var existing ds.Customization
	err := r.db.Where("order_id = ?", customization.OrderID).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(customization).Error
		}
		return err
	}

	customization.ID = existing.ID
	return r.db.Save(customization).Error
}

func (r *Repository) GetAdditionalServices(orderID uint) ([]ds.AdditionalService, error) {
	var services []ds.AdditionalService
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&services).Error
	return services, err
}

func (r *Repository) CreateAdditionalService(service *ds.AdditionalService) error {
	return r.db.Create(service).Error
}

func (r *Repository) DeleteAdditionalService(orderID, serviceID uint) error {
	result := r.db.Where("id = ? AND order_id = ?", serviceID, orderID).Delete(&ds.AdditionalService{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("услуга не найдена")
	}
	return nil
}
