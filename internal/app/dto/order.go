package dto

import "time"

// ============ Заказы (Orders) ============

// RateRequest — пара процент/сумма. Процент больше 100 отклоняется
// на отправке; во время редактирования это только предупреждение
type RateRequest struct {
	Percentage float64 `json:"percentage" binding:"gte=0,lte=100"`
	Amount     float64 `json:"amount" binding:"gte=0"`
}

type RateResponse struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

type PaymentTermRequest struct {
	Name                   string     `json:"name"`
	PercentageFromBaseCost float64    `json:"percentage_from_base_cost" binding:"gte=0,lte=100"`
	CalculatedAmount       float64    `json:"calculated_amount" binding:"gte=0"`
	Date                   *time.Time `json:"date"`
}

type PaymentTermResponse struct {
	ID                     uint       `json:"id"`
	Name                   string     `json:"name"`
	PercentageFromBaseCost float64    `json:"percentage_from_base_cost"`
	CalculatedAmount       float64    `json:"calculated_amount"`
	Date                   *time.Time `json:"date,omitempty"`
	Status                 string     `json:"status"`
}

type LicenseRequest struct {
	CostPerLicense float64    `json:"cost_per_license" binding:"required,gt=0"`
	TotalLicense   int        `json:"total_license" binding:"required,gte=1"`
	Start          *time.Time `json:"start"`
	End            *time.Time `json:"end"`
}

type LicenseResponse struct {
	ID             uint       `json:"id"`
	CostPerLicense float64    `json:"cost_per_license"`
	TotalLicense   int        `json:"total_license"`
	Start          *time.Time `json:"start,omitempty"`
	End            *time.Time `json:"end,omitempty"`
}

type CustomizationRequest struct {
	Cost    float64     `json:"cost" binding:"required,gt=0"`
	AMCRate RateRequest `json:"amc_rate"`
	Modules []string    `json:"modules"`
}

type CustomizationResponse struct {
	ID      uint         `json:"id"`
	Cost    float64      `json:"cost"`
	AMCRate RateResponse `json:"amc_rate"`
	Modules []string     `json:"modules"`
}

type AdditionalServiceRequest struct {
	Name  string     `json:"name" binding:"required,max=100"`
	Cost  float64    `json:"cost" binding:"required,gt=0"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

type AdditionalServiceResponse struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Cost  float64    `json:"cost"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// CreateOrderRequest — первый заказ клиента со всеми вложенными блоками
type CreateOrderRequest struct {
	ProductID             uint                  `json:"product_id" binding:"required"`
	BaseCost              float64               `json:"base_cost" binding:"required,gt=0"`
	AMCRate               RateRequest           `json:"amc_rate"`
	PaymentTerms          []PaymentTermRequest  `json:"payment_terms"`
	AgreementStart        *time.Time            `json:"agreement_start"`
	AgreementEnd          *time.Time            `json:"agreement_end"`
	DeploymentDate        *time.Time            `json:"deployment_date"`
	PurchaseOrderDocument string                `json:"purchase_order_document"`
	License               *LicenseRequest       `json:"license"`
	Customization         *CustomizationRequest `json:"customization"`
}

// UpdateOrderRequest — частичное обновление: незаполненные поля не трогаются
type UpdateOrderRequest struct {
	BaseCost              *float64              `json:"base_cost" binding:"omitempty,gt=0"`
	AMCRate               *RateRequest          `json:"amc_rate"`
	PaymentTerms          *[]PaymentTermRequest `json:"payment_terms"`
	AgreementStart        *time.Time            `json:"agreement_start"`
	AgreementEnd          *time.Time            `json:"agreement_end"`
	DeploymentDate        *time.Time            `json:"deployment_date"`
	PurchaseOrderDocument *string               `json:"purchase_order_document"`
}

type OrderResponse struct {
	ID                    uint                        `json:"id"`
	ClientID              uint                        `json:"client_id"`
	ClientName            string                      `json:"client_name"`
	ProductID             uint                        `json:"product_id"`
	ProductName           string                      `json:"product_name"`
	Status                string                      `json:"status"`
	BaseCost              float64                     `json:"base_cost"`
	AMCRate               RateResponse                `json:"amc_rate"`
	AgreementStart        *time.Time                  `json:"agreement_start,omitempty"`
	AgreementEnd          *time.Time                  `json:"agreement_end,omitempty"`
	DeploymentDate        *time.Time                  `json:"deployment_date,omitempty"`
	PurchaseOrderDocument string                      `json:"purchase_order_document,omitempty"`
	CreatedAt             time.Time                   `json:"created_at"`
	PaymentTerms          []PaymentTermResponse       `json:"payment_terms,omitempty"`
	License               *LicenseResponse            `json:"license,omitempty"`
	Customization         *CustomizationResponse      `json:"customization,omitempty"`
	AdditionalServices    []AdditionalServiceResponse `json:"additional_services,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// ============ АМС ============

type AMCResponse struct {
	ID        uint                 `json:"id"`
	OrderID   uint                 `json:"order_id"`
	Amount    RateResponse         `json:"amount"`
	StartDate *time.Time           `json:"start_date,omitempty"`
	Payments  []AMCPaymentResponse `json:"payments,omitempty"`
}

type UpdateAMCRequest struct {
	Amount    *RateRequest `json:"amount"`
	StartDate *time.Time   `json:"start_date"`
}

type AMCPaymentResponse struct {
	ID           uint       `json:"id"`
	AMCID        uint       `json:"amc_id"`
	OrderID      uint       `json:"order_id"`
	ClientID     uint       `json:"client_id"`
	ClientName   string     `json:"client_name"`
	FromDate     time.Time  `json:"from_date"`
	ToDate       time.Time  `json:"to_date"`
	Amount       float64    `json:"amount"`
	Status       string     `json:"status"`
	ReceivedDate *time.Time `json:"received_date,omitempty"`
}

type AMCPaymentListResponse struct {
	Payments []AMCPaymentResponse `json:"payments"`
	Total    int                  `json:"total"`
}

type UpdateAMCPaymentRequest struct {
	Status       string     `json:"status" binding:"required,oneof=paid pending"`
	ReceivedDate *time.Time `json:"received_date"`
}

// ============ Напоминания (Reminders) ============

type ReminderResponse struct {
	ID           uint      `json:"id"`
	ClientID     uint      `json:"client_id"`
	ClientName   string    `json:"client_name"`
	AMCPaymentID *uint     `json:"amc_payment_id,omitempty"`
	Kind         string    `json:"kind"`
	DueDate      time.Time `json:"due_date"`
	Status       string    `json:"status"`
}

type ReminderListResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
	Total     int                `json:"total"`
}

type SendReminderEmailRequest struct {
	ReminderID *uint  `json:"reminder_id"`
	ClientID   uint   `json:"client_id" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Subject    string `json:"subject" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

type EmailRecordResponse struct {
	ID         uint      `json:"id"`
	ClientID   uint      `json:"client_id"`
	ClientName string    `json:"client_name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	SentAt     time.Time `json:"sent_at"`
	Status     string    `json:"status"`
}

type EmailRecordListResponse struct {
	Records []EmailRecordResponse `json:"records"`
	Total   int                   `json:"total"`
}

// ============ Отчеты (Reports) ============

// SeriesPoint — точка временного ряда отчета
type SeriesPoint struct {
	Period string  `json:"period"` // "2026-08" либо "2026"
	Total  float64 `json:"total"`
}

// DistributionSlice — доля в распределении выручки
type DistributionSlice struct {
	Label string  `json:"label"` // продукт либо отрасль
	Total float64 `json:"total"`
}

type SeriesReportResponse struct {
	Filter string        `json:"filter"`
	Points []SeriesPoint `json:"points"`
}

type DistributionReportResponse struct {
	Filter string              `json:"filter"`
	Slices []DistributionSlice `json:"slices"`
}

// AnnualBreakdownResponse — разбивка АМС по месяцам года
type AnnualBreakdownResponse struct {
	Year   int           `json:"year"`
	Months []SeriesPoint `json:"months"`
}
