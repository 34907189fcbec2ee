package handler

import (
	"amc-crm/internal/app/middleware"
	"amc-crm/internal/app/role"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	anyStaff := authMiddleware.WithAuthCheck(role.Employee, role.Manager, role.Admin)
	managers := authMiddleware.WithAuthCheck(role.Manager, role.Admin)
	admins := authMiddleware.WithAuthCheck(role.Admin)

	// ============ Аутентификация ============
	users := api.Group("/users")
	{
		users.POST("/register", h.AuthHandler.RegisterUser)
		users.POST("/login", h.AuthHandler.LoginUser)
		users.POST("/logout", anyStaff, h.AuthHandler.LogoutUser)
		users.GET("/profile", anyStaff, h.AuthHandler.GetUserProfile)
		users.PUT("/profile", anyStaff, h.AuthHandler.UpdateProfile)
	}

	// ============ Клиенты ============
	clients := api.Group("/clients")
	clients.Use(anyStaff)
	{
		clients.GET("", h.GetClients)
		clients.GET("/parent-companies", h.GetParentCompanies)
		clients.GET("/:id", h.GetClient)
		clients.GET("/:id/products", h.GetClientProducts)
		clients.GET("/:id/profit", h.GetClientProfit)
		clients.POST("", managers, h.CreateClient)
		clients.PATCH("/:id", managers, h.UpdateClient)
		clients.DELETE("/:id", admins, h.DeleteClient)
	}

	// ============ Продукты ============
	products := api.Group("/products")
	products.Use(anyStaff)
	{
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", managers, h.CreateProduct)
		products.PATCH("/:id", managers, h.UpdateProduct)
		products.DELETE("/:id", admins, h.DeleteProduct)
	}

	// ============ Заказы ============
	orders := api.Group("/orders")
	orders.Use(anyStaff)
	{
		orders.GET("", h.GetOrders)
		orders.GET("/first/:clientId", h.GetFirstOrder)
		orders.GET("/:id", h.GetOrder)
		// первый заказ клиента: id в пути — это ID клиента
		orders.POST("/:id", managers, h.CreateOrder)
		orders.PATCH("/:id", managers, h.UpdateOrder)
		orders.DELETE("/:id", admins, h.DeleteOrder)

		orders.GET("/:id/document", h.GetOrderDocument)
		orders.DELETE("/:id/document", managers, h.DeleteOrderDocument)
		orders.POST("/:id/license", managers, h.UpsertLicense)
		orders.POST("/:id/customization", managers, h.UpsertCustomization)
		orders.GET("/:id/additional-services", h.GetOrderAdditionalServices)
		orders.POST("/:id/additional-services", managers, h.AddAdditionalService)
		orders.DELETE("/:id/additional-services/:serviceId", managers, h.RemoveAdditionalService)
	}

	// ============ АМС ============
	amc := api.Group("/amc")
	amc.Use(anyStaff)
	{
		amc.GET("", h.GetAMCs)
		amc.GET("/payments", h.GetAMCPayments)
		amc.GET("/:id", h.GetAMC)
		amc.PATCH("/:id", managers, h.UpdateAMC)
		amc.PATCH("/:id/payments/:paymentId", managers, h.UpdateAMCPayment)
	}

	// ============ Напоминания ============
	reminders := api.Group("/reminders")
	reminders.Use(anyStaff)
	{
		reminders.GET("", h.GetReminders)
		reminders.GET("/external-communications", h.GetExternalCommunications)
		reminders.GET("/:id", h.GetReminder)
		reminders.POST("/send-email-to-client", managers, h.SendReminderEmail)
	}

	// ============ Отчеты ============
	reportsGroup := api.Group("/reports")
	reportsGroup.Use(anyStaff)
	{
		reportsGroup.GET("/overall-sales-report", h.GetOverallSalesReport)
		reportsGroup.GET("/amc-revenue-report", h.GetAMCRevenueReport)
		reportsGroup.GET("/product-wise-revenue-distribution", h.GetProductWiseRevenue)
		reportsGroup.GET("/industry-wise-revenue-distribution", h.GetIndustryWiseRevenue)
		reportsGroup.GET("/amc-annual-breakdown", h.GetAMCAnnualBreakdown)
		reportsGroup.GET("/export", h.ExportRevenueReport)
	}

	// ============ Загрузка документов ============
	api.POST("/url-for-upload", managers, h.GetUploadURL)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
