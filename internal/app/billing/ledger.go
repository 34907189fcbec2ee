package billing

import (
	"errors"
	"time"
)

// TermField — редактируемое числовое поле платежного этапа
type TermField string

const (
	TermFieldPercentage TermField = "percentage"
	TermFieldAmount     TermField = "amount"
)

// PaymentTerm — именованный платежный этап (доля базовой стоимости заказа)
type PaymentTerm struct {
	Name                   string     `json:"name"`
	PercentageFromBaseCost float64    `json:"percentage_from_base_cost"`
	CalculatedAmount       float64    `json:"calculated_amount"`
	Date                   *time.Time `json:"date,omitempty"`
}

// Ledger — упорядоченный список платежных этапов заказа.
// Суммы этапов пересчитываются от общей базовой стоимости
type Ledger struct {
	BaseCost float64
	Terms    []PaymentTerm
}

// Этапы по умолчанию для нового заказа
var defaultTermNames = []string{"UAT", "Deployment", "Signoff"}

var ErrTermIndex = errors.New("неверный индекс платежного этапа")

// NewLedger создает список этапов с тремя предзаполненными записями
// (нулевые значения, дата не задана)
func NewLedger(baseCost float64) *Ledger {
	l := &Ledger{BaseCost: baseCost}
	for _, name := range defaultTermNames {
		l.Terms = append(l.Terms, PaymentTerm{Name: name})
	}
	return l
}

// Add добавляет пустой этап в конец списка
func (l *Ledger) Add() {
	l.Terms = append(l.Terms, PaymentTerm{})
}

// Remove удаляет этап по позиции. Список может опустеть —
// ограничение "хотя бы один этап" остается на стороне интерфейса
func (l *Ledger) Remove(i int) error {
	if i < 0 || i >= len(l.Terms) {
		return ErrTermIndex
	}
	l.Terms = append(l.Terms[:i], l.Terms[i+1:]...)
	return nil
}

// Edit изменяет процент или сумму этапа и пересчитывает второе поле.
// Округление симметричное — 2 знака в обе стороны
func (l *Ledger) Edit(i int, field TermField, value float64) error {
	if i < 0 || i >= len(l.Terms) {
		return ErrTermIndex
	}

	term := &l.Terms[i]
	switch field {
	case TermFieldAmount:
		term.CalculatedAmount = value
		if l.BaseCost > 0 {
			term.PercentageFromBaseCost = round2(value / l.BaseCost * 100)
		} else {
			term.PercentageFromBaseCost = 0
		}
	default:
		term.PercentageFromBaseCost = value
		term.CalculatedAmount = round2(l.BaseCost * value / 100)
	}
	return nil
}

// SetName задает название этапа
func (l *Ledger) SetName(i int, name string) error {
	if i < 0 || i >= len(l.Terms) {
		return ErrTermIndex
	}
	l.Terms[i].Name = name
	return nil
}

// SetDate задает дату этапа
func (l *Ledger) SetDate(i int, date *time.Time) error {
	if i < 0 || i >= len(l.Terms) {
		return ErrTermIndex
	}
	l.Terms[i].Date = date
	return nil
}

// SetBaseCost меняет базовую стоимость и пересчитывает суммы этапов
// с ненулевым процентом. Этапы с нулевым процентом не трогаем:
// введенная вручную фиксированная сумма — это осознанное значение пользователя
func (l *Ledger) SetBaseCost(newBase float64) {
	l.BaseCost = newBase
	for i := range l.Terms {
		if l.Terms[i].PercentageFromBaseCost != 0 {
			l.Terms[i].CalculatedAmount = round2(newBase * l.Terms[i].PercentageFromBaseCost / 100)
		}
	}
}

// Total возвращает сумму всех этапов
func (l *Ledger) Total() float64 {
	var total float64
	for _, t := range l.Terms {
		total += t.CalculatedAmount
	}
	return round2(total)
}

// PercentageTotal возвращает суммарный процент всех этапов
func (l *Ledger) PercentageTotal() float64 {
	var total float64
	for _, t := range l.Terms {
		total += t.PercentageFromBaseCost
	}
	return round2(total)
}

// Warnings возвращает неблокирующие предупреждения по списку этапов
func (l *Ledger) Warnings() []string {
	var warnings []string
	if total := l.PercentageTotal(); total > 100 {
		warnings = append(warnings, "сумма процентов по этапам превышает 100")
	}
	for _, t := range l.Terms {
		if t.PercentageFromBaseCost > 100 {
			warnings = append(warnings, "процент этапа "+t.Name+" превышает 100")
		}
	}
	return warnings
}
