package repository

import (
	"errors"
	"time"

	"amc-crm/internal/app/ds"
)

// Методы для напоминаний и журнала писем

// GetReminders возвращает напоминания с фильтрацией по статусу и клиенту
func (r *Repository) GetReminders(status string, clientID *uint) ([]ds.Reminder, error) {
	var reminders []ds.Reminder
	q := r.db.Preload("Client")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	err := q.Order("due_date").Find(&reminders).Error
	return reminders, err
}

func (r *Repository) GetReminderByID(id uint) (*ds.Reminder, error) {
	var reminder ds.Reminder
	err := r.db.Preload("Client").First(&reminder, id).Error
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *Repository) CreateReminder(reminder *ds.Reminder) error {
	return r.db.Create(reminder).Error
}

// ReminderExistsForPayment проверяет, заведено ли уже напоминание по платежу
func (r *Repository) ReminderExistsForPayment(paymentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Reminder{}).
		Where("amc_payment_id = ?", paymentID).
		Count(&count).Error
	return count > 0, err
}

// ReminderExistsForAgreement проверяет, заведено ли напоминание об
// истечении договора клиента на эту дату
func (r *Repository) ReminderExistsForAgreement(clientID uint, dueDate time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Reminder{}).
		Where("client_id = ? AND kind = ? AND due_date = ?", clientID, ds.ReminderKindAgreement, dueDate).
		Count(&count).Error
	return count > 0, err
}

// ExpiringAgreements возвращает заказы, срок договора которых истекает
// в ближайшие N дней
func (r *Repository) ExpiringAgreements(withinDays int) ([]ds.Order, error) {
	now := time.Now()
	var orders []ds.Order
	err := r.db.Preload("Client").
		Where("status != ?", ds.OrderStatusDeleted).
		Where("agreement_end IS NOT NULL AND agreement_end BETWEEN ? AND ?",
			now, now.AddDate(0, 0, withinDays)).
		Find(&orders).Error
	return orders, err
}

func (r *Repository) MarkReminderSent(id uint) error {
	result := r.db.Model(&ds.Reminder{}).
		Where("id = ? AND status = ?", id, ds.ReminderStatusScheduled).
		Update("status", ds.ReminderStatusSent)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("напоминание не найдено или уже отправлено")
	}
	return nil
}

// ============ Журнал внешних коммуникаций ============

func (r *Repository) CreateEmailRecord(record *ds.EmailRecord) error {
	record.SentAt = time.Now()
	return r.db.Create(record).Error
}

// GetEmailRecords возвращает журнал писем (по клиенту, если он указан)
func (r *Repository) GetEmailRecords(clientID *uint) ([]ds.EmailRecord, error) {
	var records []ds.EmailRecord
	q := r.db.Preload("Client")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	err := q.Order("sent_at DESC").Find(&records).Error
	return records, err
}
