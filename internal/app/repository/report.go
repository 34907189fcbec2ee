package repository

import (
	"time"

	"amc-crm/internal/app/ds"
)

// Отчетные запросы. Агрегация выполняется на стороне БД сырыми SQL,
// чтобы не гонять по сети все строки заказов и платежей

// RevenuePoint — точка временного ряда (месяц + сумма)
type RevenuePoint struct {
	Period string  `json:"period"` // YYYY-MM
	Total  float64 `json:"total"`
}

// RevenueSlice — доля в распределении выручки
type RevenueSlice struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// ClientProfitTotals — суммы всех поступлений по клиенту
type ClientProfitTotals struct {
	OrdersTotal        float64 `json:"orders_total"`
	CustomizationTotal float64 `json:"customization_total"`
	ServicesTotal      float64 `json:"services_total"`
	AMCCollected       float64 `json:"amc_collected"`
}

// OverallSales возвращает продажи по месяцам (сумма базовых стоимостей
// заказов). Диапазон необязателен: при hasRange == false берется все время
func (r *Repository) OverallSales(start, end time.Time, hasRange bool, productID uint) ([]RevenuePoint, error) {
	query := `SELECT to_char(o.created_at, 'YYYY-MM') AS period, SUM(o.base_cost) AS total
	          FROM orders o
	          WHERE o.status != ?`
	args := []interface{}{ds.OrderStatusDeleted}

	if hasRange {
		query += " AND o.created_at >= ? AND o.created_at < ?"
		args = append(args, start, end)
	}
	if productID != 0 {
		query += " AND o.product_id = ?"
		args = append(args, productID)
	}
	query += " GROUP BY period ORDER BY period"

	var points []RevenuePoint
	err := r.db.Raw(query, args...).Scan(&points).Error
	return points, err
}

// AMCRevenue возвращает собранную выручку АМС по месяцам
// (по дате фактического получения платежа)
func (r *Repository) AMCRevenue(start, end time.Time, hasRange bool, productID uint) ([]RevenuePoint, error) {
	query := `SELECT to_char(p.received_date, 'YYYY-MM') AS period, SUM(p.amount) AS total
	          FROM amc_payments p
	          JOIN amcs a ON a.id = p.amc_id
	          JOIN orders o ON o.id = a.order_id AND o.status != ?
	          WHERE p.status = ? AND p.received_date IS NOT NULL`
	args := []interface{}{ds.OrderStatusDeleted, ds.AMCPaymentPaid}

	if hasRange {
		query += " AND p.received_date >= ? AND p.received_date < ?"
		args = append(args, start, end)
	}
	if productID != 0 {
		query += " AND o.product_id = ?"
		args = append(args, productID)
	}
	query += " GROUP BY period ORDER BY period"

	var points []RevenuePoint
	err := r.db.Raw(query, args...).Scan(&points).Error
	return points, err
}

// ProductWiseRevenue возвращает распределение выручки по продуктам
func (r *Repository) ProductWiseRevenue(start, end time.Time, hasRange bool) ([]RevenueSlice, error) {
	query := `SELECT p.name AS label, SUM(o.base_cost) AS total
	          FROM orders o
	          JOIN products p ON p.id = o.product_id
	          WHERE o.status != ?`
	args := []interface{}{ds.OrderStatusDeleted}

	if hasRange {
		query += " AND o.created_at >= ? AND o.created_at < ?"
		args = append(args, start, end)
	}
	query += " GROUP BY p.name ORDER BY total DESC"

	var slices []RevenueSlice
	err := r.db.Raw(query, args...).Scan(&slices).Error
	return slices, err
}

// IndustryWiseRevenue возвращает распределение выручки по отраслям клиентов
func (r *Repository) IndustryWiseRevenue(start, end time.Time, hasRange bool) ([]RevenueSlice, error) {
	query := `SELECT COALESCE(NULLIF(c.industry, ''), 'не указана') AS label, SUM(o.base_cost) AS total
	          FROM orders o
	          JOIN clients c ON c.id = o.client_id
	          WHERE o.status != ?`
	args := []interface{}{ds.OrderStatusDeleted}

	if hasRange {
		query += " AND o.created_at >= ? AND o.created_at < ?"
		args = append(args, start, end)
	}
	query += " GROUP BY label ORDER BY total DESC"

	var slices []RevenueSlice
	err := r.db.Raw(query, args...).Scan(&slices).Error
	return slices, err
}

// AMCAnnualBreakdown возвращает собранную выручку АМС по 12 месяцам года.
// Месяцы без платежей присутствуют с нулем
func (r *Repository) AMCAnnualBreakdown(year int, productID uint) ([]float64, error) {
	query := `SELECT EXTRACT(MONTH FROM p.received_date)::int AS month, SUM(p.amount) AS total
	          FROM amc_payments p
	          JOIN amcs a ON a.id = p.amc_id
	          JOIN orders o ON o.id = a.order_id AND o.status != ?
	          WHERE p.status = ? AND p.received_date IS NOT NULL
	            AND EXTRACT(YEAR FROM p.received_date) = ?`
	args := []interface{}{ds.OrderStatusDeleted, ds.AMCPaymentPaid, year}

	if productID != 0 {
		query += " AND o.product_id = ?"
		args = append(args, productID)
	}
	query += " GROUP BY month"

	var rows []struct {
		Month int
		Total float64
	}
	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	months := make([]float64, 12)
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			months[row.Month-1] = row.Total
		}
	}
	return months, nil
}

// ClientProfit считает поступления по клиенту: заказы, кастомизации,
// дополнительные услуги и фактически собранный АМС
func (r *Repository) ClientProfit(clientID uint) (*ClientProfitTotals, error) {
	var totals ClientProfitTotals

	query := `SELECT
	            COALESCE(SUM(o.base_cost), 0) AS orders_total,
	            COALESCE((SELECT SUM(c.cost) FROM customizations c
	                      JOIN orders oc ON oc.id = c.order_id
	                      WHERE oc.client_id = ? AND oc.status != ?), 0) AS customization_total,
	            COALESCE((SELECT SUM(s.cost) FROM additional_services s
	                      JOIN orders os ON os.id = s.order_id
	                      WHERE os.client_id = ? AND os.status != ?), 0) AS services_total,
	            COALESCE((SELECT SUM(p.amount) FROM amc_payments p
	                      JOIN amcs a ON a.id = p.amc_id
	                      JOIN orders oa ON oa.id = a.order_id
	                      WHERE oa.client_id = ? AND oa.status != ? AND p.status = ?), 0) AS amc_collected
	          FROM orders o
	          WHERE o.client_id = ? AND o.status != ?`

	err := r.db.Raw(query,
		clientID, ds.OrderStatusDeleted,
		clientID, ds.OrderStatusDeleted,
		clientID, ds.OrderStatusDeleted, ds.AMCPaymentPaid,
		clientID, ds.OrderStatusDeleted,
	).Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
