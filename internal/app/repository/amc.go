package repository

import (
	"errors"
	"time"

	"amc-crm/internal/app/billing"
	"amc-crm/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с АМС и платежами по нему

func (r *Repository) GetAMCByOrderID(orderID uint) (*ds.AMC, error) {
	var amc ds.AMC
	err := r.db.Preload("Order").Preload("Order.Client").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("from_date")
		}).
		Where("order_id = ?", orderID).
		First(&amc).Error
	if err != nil {
		return nil, err
	}
	return &amc, nil
}

func (r *Repository) GetAMCByID(amcID uint) (*ds.AMC, error) {
	var amc ds.AMC
	err := r.db.Preload("Order").Preload("Order.Client").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("from_date")
		}).
		First(&amc, amcID).Error
	if err != nil {
		return nil, err
	}
	return &amc, nil
}

// GetAMCs возвращает все записи АМС (для списочной страницы)
func (r *Repository) GetAMCs() ([]ds.AMC, error) {
	var amcs []ds.AMC
	err := r.db.Preload("Order").Preload("Order.Client").Preload("Order.Product").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("from_date")
		}).
		Joins("JOIN orders ON orders.id = amcs.order_id AND orders.status != ?", ds.OrderStatusDeleted).
		Find(&amcs).Error
	return amcs, err
}

// UpdateAMC обновляет ставку АМС и перегенерирует ожидающие платежи:
// оплаченные периоды не трогаем, ожидающие пересчитываем по новой сумме
func (r *Repository) UpdateAMC(amcID uint, amountPercentage, amount *float64, startDate *time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var amc ds.AMC
		if err := tx.First(&amc, amcID).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if amountPercentage != nil {
			updates["amount_percentage"] = *amountPercentage
		}
		if amount != nil {
			updates["amount"] = *amount
		}
		if startDate != nil {
			updates["start_date"] = *startDate
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&amc).Updates(updates).Error; err != nil {
			return err
		}

		if amount != nil {
			err := tx.Model(&ds.AMCPayment{}).
				Where("amc_id = ? AND status = ?", amcID, ds.AMCPaymentPending).
				Update("amount", *amount).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// RegeneratePendingPayments заново строит график ожидающих платежей по
// новому сроку договора. Оплаченные периоды сохраняются как есть
func (r *Repository) RegeneratePendingPayments(orderID uint, start, end time.Time, frequencyMonths int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var amc ds.AMC
		if err := tx.Where("order_id = ?", orderID).First(&amc).Error; err != nil {
			return err
		}

		if err := tx.Where("amc_id = ? AND status = ?", amc.ID, ds.AMCPaymentPending).
			Delete(&ds.AMCPayment{}).Error; err != nil {
			return err
		}

		var paid []ds.AMCPayment
		if err := tx.Where("amc_id = ? AND status = ?", amc.ID, ds.AMCPaymentPaid).
			Find(&paid).Error; err != nil {
			return err
		}

		for _, p := range billing.AMCSchedule(start, end, frequencyMonths) {
			covered := false
			for _, pp := range paid {
				if !p.From.Before(pp.FromDate) && p.From.Before(pp.ToDate) {
					covered = true
					break
				}
			}
			if covered {
				continue
			}
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

		return nil
	})
}

// GetAMCPayments возвращает платежи по АМС с фильтрацией по статусу.
// При upcomingWithin > 0 отбираются ожидающие платежи, период которых
// начинается в ближайшие N дней
func (r *Repository) GetAMCPayments(status string, upcomingWithin int) ([]ds.AMCPayment, error) {
	var payments []ds.AMCPayment
	q := r.db.Preload("AMC").Preload("AMC.Order").Preload("AMC.Order.Client").
		Joins("JOIN amcs ON amcs.id = amc_payments.amc_id").
		Joins("JOIN orders ON orders.id = amcs.order_id AND orders.status != ?", ds.OrderStatusDeleted)
	if status != "" {
		q = q.Where("amc_payments.status = ?", status)
	}
	if upcomingWithin > 0 {
		now := time.Now()
		q = q.Where("amc_payments.status = ?", ds.AMCPaymentPending).
			Where("amc_payments.from_date BETWEEN ? AND ?", now, now.AddDate(0, 0, upcomingWithin))
	}
	err := q.Order("amc_payments.from_date").Find(&payments).Error
	return payments, err
}

func (r *Repository) GetAMCPaymentByID(paymentID uint) (*ds.AMCPayment, error) {
	var payment ds.AMCPayment
	err := r.db.Preload("AMC").Preload("AMC.Order").Preload("AMC.Order.Client").
		First(&payment, paymentID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateAMCPayment меняет статус платежа. Для оплаченного платежа
// фиксируется дата получения
func (r *Repository) UpdateAMCPayment(paymentID uint, status string, receivedDate *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == ds.AMCPaymentPaid {
		if receivedDate != nil {
			updates["received_date"] = *receivedDate
		} else {
			updates["received_date"] = time.Now()
		}
	} else {
		updates["received_date"] = nil
	}

	result := r.db.Model(&ds.AMCPayment{}).Where("id = ?", paymentID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("платёж не найден")
	}
	return nil
}
