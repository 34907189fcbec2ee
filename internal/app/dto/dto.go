package dto

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     int    `json:"role" binding:"gte=0,lte=2"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// ============ Клиенты (Clients) ============

type ClientResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Industry          string `json:"industry"`
	ContactPerson     string `json:"contact_person"`
	ContactEmail      string `json:"contact_email"`
	ContactPhone      string `json:"contact_phone"`
	Address           string `json:"address"`
	ParentCompanyID   *uint  `json:"parent_company_id,omitempty"`
	ParentCompanyName string `json:"parent_company_name,omitempty"`
	AMCFrequency      int    `json:"amc_frequency"`
}

type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
	Total   int              `json:"total"`
}

type CreateClientRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Industry        string `json:"industry"`
	ContactPerson   string `json:"contact_person"`
	ContactEmail    string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone    string `json:"contact_phone"`
	Address         string `json:"address"`
	ParentCompanyID *uint  `json:"parent_company_id"`
	AMCFrequency    int    `json:"amc_frequency" binding:"omitempty,gte=1,lte=60"`
}

type UpdateClientRequest struct {
	Name            string `json:"name" binding:"omitempty,max=100"`
	Industry        string `json:"industry"`
	ContactPerson   string `json:"contact_person"`
	ContactEmail    string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone    string `json:"contact_phone"`
	Address         string `json:"address"`
	ParentCompanyID *uint  `json:"parent_company_id"`
	AMCFrequency    *int   `json:"amc_frequency" binding:"omitempty,gte=1,lte=60"`
}

// ClientProfitResponse — прибыль по клиенту: базовая стоимость заказов,
// кастомизации, дополнительные услуги и оплаченные платежи АМС
type ClientProfitResponse struct {
	ClientID           uint    `json:"client_id"`
	OrdersTotal        float64 `json:"orders_total"`
	CustomizationTotal float64 `json:"customization_total"`
	ServicesTotal      float64 `json:"services_total"`
	AMCCollected       float64 `json:"amc_collected"`
	Total              float64 `json:"total"`
}

// ============ Продукты (Products) ============

type ProductResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DefaultPrice float64 `json:"default_price"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
}

type CreateProductRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Description  string  `json:"description"`
	DefaultPrice float64 `json:"default_price" binding:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	Name         string   `json:"name" binding:"omitempty,max=100"`
	Description  string   `json:"description"`
	DefaultPrice *float64 `json:"default_price" binding:"omitempty,gte=0"`
}

// ============ Загрузка документов ============

type UploadURLRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// UploadURLResponse — подписанный URL: клиент выполняет PUT файла напрямую
// в хранилище с указанным Content-Type
type UploadURLResponse struct {
	ObjectKey   string `json:"object_key"`
	UploadURL   string `json:"upload_url"`
	ContentType string `json:"content_type"`
}
