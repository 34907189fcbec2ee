package billing

import "math"

// Пакет billing содержит финансовую арифметику заказов и АМС:
// пересчет пары процент/сумма относительно базовой стоимости
// и ведение списка платежных этапов (payment terms).

// RateMode определяет, какое из двух полей ставки является ведущим при вводе
type RateMode string

const (
	RateModePercentage RateMode = "percentage"
	RateModeAmount     RateMode = "amount"
)

// Rate — пара процент/сумма относительно базовой стоимости.
// Инвариант после пересчета: Amount == base * Percentage / 100 (с точностью до копеек)
type Rate struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

// Допустимое расхождение при проверке согласованности пары (копейки)
const rateTolerance = 0.01

// round2 округляет до 2 знаков после запятой
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyRate пересчитывает пару процент/сумма после ввода значения value
// в поле mode относительно базы base. Оба поля обновляются разом.
// value == nil означает, что пользователь очистил поле и еще не ввел новое —
// пересчет не выполняется, чтобы не затирать второе поле посреди редактирования.
func ApplyRate(r Rate, mode RateMode, value *float64, base float64) Rate {
	if value == nil {
		return r
	}

	switch mode {
	case RateModeAmount:
		r.Amount = *value
		if base > 0 {
			r.Percentage = round2(*value / base * 100)
		} else {
			// деление на ноль не допускается, процент считается нулевым
			r.Percentage = 0
		}
	default:
		r.Percentage = *value
		r.Amount = round2(base * *value / 100)
	}

	return r
}

// RateFromBase строит согласованную пару по проценту и базе
func RateFromBase(percentage, base float64) Rate {
	return Rate{
		Percentage: percentage,
		Amount:     round2(base * percentage / 100),
	}
}

// Consistent проверяет, что сумма соответствует проценту от базы
func (r Rate) Consistent(base float64) bool {
	return math.Abs(r.Amount-round2(base*r.Percentage/100)) <= rateTolerance
}

// Warnings возвращает неблокирующие предупреждения по ставке.
// Ввод не отклоняется — решение о блокировке принимает валидация формы
func (r Rate) Warnings() []string {
	var warnings []string
	if r.Percentage > 100 {
		warnings = append(warnings, "процент превышает 100")
	}
	if r.Percentage < 0 || r.Amount < 0 {
		warnings = append(warnings, "ставка не может быть отрицательной")
	}
	return warnings
}
