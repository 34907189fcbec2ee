package handler

import (
	"net/http"

	"amc-crm/internal/app/ds"
	"amc-crm/internal/app/dto"
	"amc-crm/internal/app/forms"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func clientToResponse(c *ds.Client) dto.ClientResponse {
	resp := dto.ClientResponse{
		ID:              c.ID,
		Name:            c.Name,
		Industry:        c.Industry,
		ContactPerson:   c.ContactPerson,
		ContactEmail:    c.ContactEmail,
		ContactPhone:    c.ContactPhone,
		Address:         c.Address,
		ParentCompanyID: c.ParentCompanyID,
		AMCFrequency:    c.AMCFrequency,
	}
	if c.ParentCompany != nil {
		resp.ParentCompanyName = c.ParentCompany.Name
	}
	return resp
}

// GetClients получает список клиентов
// @Summary Список клиентов
// @Description Возвращает всех клиентов с возможностью поиска по названию
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param query query string false "Поиск по названию"
// @Success 200 {object} dto.ClientListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/clients [get]
func (h *APIHandler) GetClients(c *gin.Context) {
	clients, err := h.Repository.GetClients(c.Query("query"))
	if err != nil {
		logrus.Error("Error getting clients: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения списка клиентов")
		return
	}

	response := dto.ClientListResponse{Total: len(clients)}
	for i := range clients {
		response.Clients = append(response.Clients, clientToResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetParentCompanies получает кандидатов в головные компании
// @Summary Список головных компаний
// @Description Возвращает клиентов, которые могут быть головной компанией
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ClientListResponse
// @Router /api/clients/parent-companies [get]
func (h *APIHandler) GetParentCompanies(c *gin.Context) {
	clients, err := h.Repository.GetParentCompanies()
	if err != nil {
		logrus.Error("Error getting parent companies: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения головных компаний")
		return
	}

	response := dto.ClientListResponse{Total: len(clients)}
	for i := range clients {
		response.Clients = append(response.Clients, clientToResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetClient получает клиента по ID
// @Summary Карточка клиента
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/clients/{id} [get]
func (h *APIHandler) GetClient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	client, err := h.Repository.GetClientByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "клиент не найден")
		return
	}

	c.JSON(http.StatusOK, clientToResponse(client))
}

// CreateClient создает нового клиента
// @Summary Создание клиента
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClientRequest true "Данные клиента"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/clients [post]
func (h *APIHandler) CreateClient(c *gin.Context) {
	var request dto.CreateClientRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	// Головная компания должна существовать и не может ссылаться сама на себя
	if request.ParentCompanyID != nil {
		exists, err := h.Repository.ClientExists(*request.ParentCompanyID)
		if err != nil || !exists {
			h.errorResponse(c, http.StatusBadRequest, "головная компания не найдена")
			return
		}
	}

	frequency := request.AMCFrequency
	if frequency == 0 {
		frequency = 12
	}

	client := ds.Client{
		Name:            request.Name,
		Industry:        request.Industry,
		ContactPerson:   request.ContactPerson,
		ContactEmail:    request.ContactEmail,
		ContactPhone:    request.ContactPhone,
		Address:         request.Address,
		ParentCompanyID: request.ParentCompanyID,
		AMCFrequency:    frequency,
		CreatedByID:     userID,
	}
	if err := h.Repository.CreateClient(&client); err != nil {
		logrus.Error("Error creating client: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка создания клиента")
		return
	}

	h.invalidateReports(c, reportTagSales)
	h.successResponse(c, http.StatusCreated, "клиент успешно создан", clientToResponse(&client))
}

// UpdateClient обновляет клиента. Карточка существующей записи ведет себя
// как форма: сначала снимается блокировка, и если после ввода значения
// не отличаются от сохраненных, запись в БД не выполняется
// @Summary Обновление клиента
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Param request body dto.UpdateClientRequest true "Новые данные"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/clients/{id} [put]
func (h *APIHandler) UpdateClient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	client, err := h.Repository.GetClientByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "клиент не найден")
		return
	}

	if request.ParentCompanyID != nil {
		if *request.ParentCompanyID == id {
			h.errorResponse(c, http.StatusBadRequest, "клиент не может быть головной компанией для самого себя")
			return
		}
		exists, err := h.Repository.ClientExists(*request.ParentCompanyID)
		if err != nil || !exists {
			h.errorResponse(c, http.StatusBadRequest, "головная компания не найдена")
			return
		}
	}

	form := forms.New(map[string]interface{}{
		"name":              client.Name,
		"industry":          client.Industry,
		"contact_person":    client.ContactPerson,
		"contact_email":     client.ContactEmail,
		"contact_phone":     client.ContactPhone,
		"address":           client.Address,
		"parent_company_id": client.ParentCompanyID,
		"amc_frequency":     client.AMCFrequency,
	}, true)
	if err := form.StartEditing(); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	if request.Name != "" {
		_ = form.Set("name", request.Name)
	}
	if request.Industry != "" {
		_ = form.Set("industry", request.Industry)
	}
	if request.ContactPerson != "" {
		_ = form.Set("contact_person", request.ContactPerson)
	}
	if request.ContactEmail != "" {
		_ = form.Set("contact_email", request.ContactEmail)
	}
	if request.ContactPhone != "" {
		_ = form.Set("contact_phone", request.ContactPhone)
	}
	if request.Address != "" {
		_ = form.Set("address", request.Address)
	}
	if request.ParentCompanyID != nil {
		_ = form.Set("parent_company_id", request.ParentCompanyID)
	}
	if request.AMCFrequency != nil {
		_ = form.Set("amc_frequency", *request.AMCFrequency)
	}

	// Значения не изменились: запись в БД не выполняется
	if !form.IsDirty() {
		h.successResponse(c, http.StatusOK, "изменений нет", clientToResponse(client))
		return
	}

	if err := form.BeginSubmit(); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	for _, field := range form.Changed() {
		updates[field] = form.Get(field)
	}

	if err := h.Repository.UpdateClient(id, updates); err != nil {
		_ = form.SubmitFailed()
		logrus.Error("Error updating client: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка обновления клиента")
		return
	}
	_ = form.SubmitSucceeded()

	h.invalidateReports(c, reportTagSales)

	updated, err := h.Repository.GetClientByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения клиента")
		return
	}
	h.successResponse(c, http.StatusOK, "клиент успешно обновлён", clientToResponse(updated))
}

// DeleteClient выполняет логическое удаление клиента
// @Summary Удаление клиента
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/clients/{id} [delete]
func (h *APIHandler) DeleteClient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.Repository.ClientExists(id)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "клиент не найден")
		return
	}

	if err := h.Repository.UpdateClient(id, map[string]interface{}{"is_deleted": true}); err != nil {
		logrus.Error("Error deleting client: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка удаления клиента")
		return
	}

	h.invalidateReports(c, reportTagSales, reportTagAMC)
	h.successResponse(c, http.StatusOK, "клиент успешно удалён", nil)
}

// GetClientProducts получает продукты, закупленные клиентом
// @Summary Продукты клиента
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.ProductListResponse
// @Router /api/clients/{id}/products [get]
func (h *APIHandler) GetClientProducts(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.Repository.GetClientProducts(id)
	if err != nil {
		logrus.Error("Error getting client products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения продуктов клиента")
		return
	}

	response := dto.ProductListResponse{Total: len(products)}
	for _, p := range products {
		response.Products = append(response.Products, dto.ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			DefaultPrice: p.DefaultPrice,
		})
	}
	c.JSON(http.StatusOK, response)
}

// GetClientProfit считает прибыль по клиенту
// @Summary Прибыль по клиенту
// @Description Сумма заказов, кастомизаций, услуг и собранного АМС
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Success 200 {object} dto.ClientProfitResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/clients/{id}/profit [get]
func (h *APIHandler) GetClientProfit(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.Repository.ClientExists(id)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "клиент не найден")
		return
	}

	totals, err := h.Repository.ClientProfit(id)
	if err != nil {
		logrus.Error("Error calculating client profit: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка расчёта прибыли")
		return
	}

	c.JSON(http.StatusOK, dto.ClientProfitResponse{
		ClientID:           id,
		OrdersTotal:        totals.OrdersTotal,
		CustomizationTotal: totals.CustomizationTotal,
		ServicesTotal:      totals.ServicesTotal,
		AMCCollected:       totals.AMCCollected,
		Total:              totals.OrdersTotal + totals.CustomizationTotal + totals.ServicesTotal + totals.AMCCollected,
	})
}
