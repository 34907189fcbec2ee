package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"amc-crm/internal/app/billing"
	"amc-crm/internal/app/ds"
	"amc-crm/internal/app/dto"
	"amc-crm/internal/app/forms"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// resolveRate строит согласованную пару процент/сумма от базы.
// Если заданы оба поля, они обязаны сходиться с точностью до копеек
func resolveRate(req dto.RateRequest, base float64) (billing.Rate, error) {
	if req.Percentage != 0 && req.Amount != 0 {
		r := billing.Rate{Percentage: req.Percentage, Amount: req.Amount}
		if !r.Consistent(base) {
			return billing.Rate{}, errors.New("процент и сумма ставки не согласованы с базовой стоимостью")
		}
		return r, nil
	}
	if req.Percentage != 0 {
		return billing.RateFromBase(req.Percentage, base), nil
	}
	if req.Amount != 0 {
		return billing.ApplyRate(billing.Rate{}, billing.RateModeAmount, &req.Amount, base), nil
	}
	return billing.Rate{}, nil
}

// buildPaymentTerms пересчитывает платежные этапы от базовой стоимости.
// Пустой список заменяется этапами по умолчанию
func buildPaymentTerms(reqs []dto.PaymentTermRequest, base float64) []ds.PaymentTerm {
	ledger := &billing.Ledger{BaseCost: base}
	if len(reqs) == 0 {
		ledger = billing.NewLedger(base)
	} else {
		for i, req := range reqs {
			ledger.Add()
			_ = ledger.SetName(i, req.Name)
			_ = ledger.SetDate(i, req.Date)
			if req.PercentageFromBaseCost != 0 {
				_ = ledger.Edit(i, billing.TermFieldPercentage, req.PercentageFromBaseCost)
			} else if req.CalculatedAmount != 0 {
				_ = ledger.Edit(i, billing.TermFieldAmount, req.CalculatedAmount)
			}
		}
	}

	terms := make([]ds.PaymentTerm, 0, len(ledger.Terms))
	for i, t := range ledger.Terms {
		terms = append(terms, ds.PaymentTerm{
			Position:               i,
			Name:                   t.Name,
			PercentageFromBaseCost: t.PercentageFromBaseCost,
			CalculatedAmount:       t.CalculatedAmount,
			Date:                   t.Date,
			Status:                 "pending",
		})
	}
	return terms
}

func decodeModules(raw string) []string {
	if raw == "" {
		return nil
	}
	var modules []string
	if err := json.Unmarshal([]byte(raw), &modules); err != nil {
		return nil
	}
	return modules
}

func encodeModules(modules []string) string {
	if len(modules) == 0 {
		return ""
	}
	data, err := json.Marshal(modules)
	if err != nil {
		return ""
	}
	return string(data)
}

func (h *APIHandler) orderToResponse(order *ds.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:                    order.ID,
		ClientID:              order.ClientID,
		ClientName:            order.Client.Name,
		ProductID:             order.ProductID,
		ProductName:           order.Product.Name,
		Status:                order.Status,
		BaseCost:              order.BaseCost,
		AMCRate:               dto.RateResponse{Percentage: order.AMCRatePercentage, Amount: order.AMCRateAmount},
		AgreementStart:        order.AgreementStart,
		AgreementEnd:          order.AgreementEnd,
		DeploymentDate:        order.DeploymentDate,
		PurchaseOrderDocument: order.PurchaseOrderDocument,
		CreatedAt:             order.CreatedAt,
	}
	for _, t := range order.PaymentTerms {
		resp.PaymentTerms = append(resp.PaymentTerms, dto.PaymentTermResponse{
			ID:                     t.ID,
			Name:                   t.Name,
			PercentageFromBaseCost: t.PercentageFromBaseCost,
			CalculatedAmount:       t.CalculatedAmount,
			Date:                   t.Date,
			Status:                 t.Status,
		})
	}

	if license, err := h.Repository.GetLicenseByOrder(order.ID); err == nil && license != nil {
		resp.License = &dto.LicenseResponse{
			ID:             license.ID,
			CostPerLicense: license.CostPerLicense,
			TotalLicense:   license.TotalLicense,
			Start:          license.Start,
			End:            license.End,
		}
	}
	if customization, err := h.Repository.GetCustomizationByOrder(order.ID); err == nil && customization != nil {
		resp.Customization = &dto.CustomizationResponse{
			ID:   customization.ID,
			Cost: customization.Cost,
			AMCRate: dto.RateResponse{
				Percentage: customization.AMCRatePercentage,
				Amount:     customization.AMCRateAmount,
			},
			Modules: decodeModules(customization.Modules),
		}
	}
	if services, err := h.Repository.GetAdditionalServices(order.ID); err == nil {
		for _, s := range services {
			resp.AdditionalServices = append(resp.AdditionalServices, dto.AdditionalServiceResponse{
				ID:    s.ID,
				Name:  s.Name,
				Cost:  s.Cost,
				Start: s.Start,
				End:   s.End,
			})
		}
	}
	return resp
}

// CreateOrder создает первый заказ клиента со всеми вложенными блоками
// @Summary Создание заказа
// @Description Создает заказ клиента: платежные этапы, лицензия, кастомизация и график АМС
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID клиента"
// @Param request body dto.CreateOrderRequest true "Данные заказа"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [post]
func (h *APIHandler) CreateOrder(c *gin.Context) {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	client, err := h.Repository.GetClientByID(clientID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "клиент не найден")
		return
	}

	exists, err := h.Repository.ProductExists(request.ProductID)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusBadRequest, "продукт не найден")
		return
	}

	// Пара процент/сумма АМС сверяется на сервере, а не только на форме
	amcRate, err := resolveRate(request.AMCRate, request.BaseCost)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	terms := buildPaymentTerms(request.PaymentTerms, request.BaseCost)

	order := ds.Order{
		ClientID:              clientID,
		ProductID:             request.ProductID,
		Status:                ds.OrderStatusActive,
		BaseCost:              request.BaseCost,
		AMCRatePercentage:     amcRate.Percentage,
		AMCRateAmount:         amcRate.Amount,
		AgreementStart:        request.AgreementStart,
		AgreementEnd:          request.AgreementEnd,
		DeploymentDate:        request.DeploymentDate,
		PurchaseOrderDocument: request.PurchaseOrderDocument,
		CreatedByID:           userID,
	}

	var license *ds.License
	if request.License != nil {
		license = &ds.License{
			CostPerLicense: request.License.CostPerLicense,
			TotalLicense:   request.License.TotalLicense,
			Start:          request.License.Start,
			End:            request.License.End,
		}
	}

	var customization *ds.Customization
	if request.Customization != nil {
		// Ставка АМС кастомизации считается от ее собственной стоимости
		custRate, err := resolveRate(request.Customization.AMCRate, request.Customization.Cost)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		customization = &ds.Customization{
			Cost:              request.Customization.Cost,
			AMCRatePercentage: custRate.Percentage,
			AMCRateAmount:     custRate.Amount,
			Modules:           encodeModules(request.Customization.Modules),
		}
	}

	err = h.Repository.CreateOrderWithDetails(&order, terms, license, customization, client.AMCFrequency)
	if err != nil {
		logrus.Error("Error creating order: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка создания заказа")
		return
	}

	h.invalidateReports(c, reportTagSales, reportTagAMC)

	created, err := h.Repository.GetOrderByID(order.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения заказа")
		return
	}
	h.successResponse(c, http.StatusCreated, "заказ успешно создан", h.orderToResponse(created))
}

// GetOrders получает список заказов (все закупки)
// @Summary Список заказов
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param client_id query int false "Фильтр по клиенту"
// @Param start_date query string false "Созданы не раньше (YYYY-MM-DD)"
// @Param end_date query string false "Созданы не позже (YYYY-MM-DD)"
// @Success 200 {object} dto.OrderListResponse
// @Router /api/orders [get]
func (h *APIHandler) GetOrders(c *gin.Context) {
	var clientID *uint
	if raw := c.Query("client_id"); raw != "" {
		id, err := parseQueryUint(raw)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "неверный фильтр client_id")
			return
		}
		clientID = &id
	}

	var dateFrom, dateTo *time.Time
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "неверный формат start_date")
			return
		}
		dateFrom = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "неверный формат end_date")
			return
		}
		dateTo = &parsed
	}

	orders, err := h.Repository.GetOrders(clientID, dateFrom, dateTo)
	if err != nil {
		logrus.Error("Error getting orders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения списка заказов")
		return
	}

	response := dto.OrderListResponse{Total: len(orders)}
	for i := range orders {
		response.Orders = append(response.Orders, h.orderToResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetOrder получает заказ по ID
// @Summary Карточка заказа
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *APIHandler) GetOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "заказ не найден")
		return
	}
	c.JSON(http.StatusOK, h.orderToResponse(order))
}

// GetFirstOrder получает первый заказ клиента
// @Summary Первый заказ клиента
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param clientId path int true "ID клиента"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/first/{clientId} [get]
func (h *APIHandler) GetFirstOrder(c *gin.Context) {
	clientID, err := parseIDParam(c, "clientId")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Repository.GetFirstOrder(clientID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "у клиента нет заказов")
		return
	}
	c.JSON(http.StatusOK, h.orderToResponse(order))
}

// UpdateOrder обновляет заказ: смена базовой стоимости пересчитывает этапы
// с ненулевым процентом и ставку АМС, ожидающие платежи АМС перестраиваются
// @Summary Обновление заказа
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body dto.UpdateOrderRequest true "Новые данные"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [patch]
func (h *APIHandler) UpdateOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "заказ не найден")
		return
	}

	newBase := order.BaseCost
	if request.BaseCost != nil {
		newBase = *request.BaseCost
	}

	// Ставка АМС: либо новая пара из запроса, либо пересчет старого
	// процента от новой базы
	amcRate := billing.Rate{Percentage: order.AMCRatePercentage, Amount: order.AMCRateAmount}
	if request.AMCRate != nil {
		amcRate, err = resolveRate(*request.AMCRate, newBase)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	} else if newBase != order.BaseCost && amcRate.Percentage != 0 {
		amcRate = billing.RateFromBase(amcRate.Percentage, newBase)
	}

	form := forms.New(map[string]interface{}{
		"base_cost":               order.BaseCost,
		"amc_rate_percentage":     order.AMCRatePercentage,
		"amc_rate_amount":         order.AMCRateAmount,
		"agreement_start":         order.AgreementStart,
		"agreement_end":           order.AgreementEnd,
		"deployment_date":         order.DeploymentDate,
		"purchase_order_document": order.PurchaseOrderDocument,
	}, true)
	if err := form.StartEditing(); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	_ = form.Set("base_cost", newBase)
	_ = form.Set("amc_rate_percentage", amcRate.Percentage)
	_ = form.Set("amc_rate_amount", amcRate.Amount)
	if request.AgreementStart != nil {
		_ = form.Set("agreement_start", request.AgreementStart)
	}
	if request.AgreementEnd != nil {
		_ = form.Set("agreement_end", request.AgreementEnd)
	}
	if request.DeploymentDate != nil {
		_ = form.Set("deployment_date", request.DeploymentDate)
	}
	if request.PurchaseOrderDocument != nil {
		_ = form.Set("purchase_order_document", *request.PurchaseOrderDocument)
	}

	// Ничего не изменилось и этапы не присланы — запись в БД не выполняется
	if !form.IsDirty() && request.PaymentTerms == nil {
		h.successResponse(c, http.StatusOK, "изменений нет", h.orderToResponse(order))
		return
	}

	updates := map[string]interface{}{}
	for _, field := range form.Changed() {
		updates[field] = form.Get(field)
	}

	// Платежные этапы: присланный список пересчитывается от новой базы,
	// иначе при смене базы пересчитываются сохраненные этапы с ненулевым процентом
	var terms []ds.PaymentTerm
	if request.PaymentTerms != nil {
		terms = buildPaymentTerms(*request.PaymentTerms, newBase)
	} else if newBase != order.BaseCost {
		ledger := &billing.Ledger{BaseCost: order.BaseCost}
		for _, t := range order.PaymentTerms {
			ledger.Terms = append(ledger.Terms, billing.PaymentTerm{
				Name:                   t.Name,
				PercentageFromBaseCost: t.PercentageFromBaseCost,
				CalculatedAmount:       t.CalculatedAmount,
				Date:                   t.Date,
			})
		}
		ledger.SetBaseCost(newBase)
		for i, t := range ledger.Terms {
			terms = append(terms, ds.PaymentTerm{
				Position:               i,
				Name:                   t.Name,
				PercentageFromBaseCost: t.PercentageFromBaseCost,
				CalculatedAmount:       t.CalculatedAmount,
				Date:                   t.Date,
				Status:                 order.PaymentTerms[i].Status,
			})
		}
	}

	submitting := form.IsDirty()
	if submitting {
		if err := form.BeginSubmit(); err != nil {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.Repository.UpdateOrderFields(id, updates, terms); err != nil {
		if submitting {
			_ = form.SubmitFailed()
		}
		logrus.Error("Error updating order: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка обновления заказа")
		return
	}
	if submitting {
		_ = form.SubmitSucceeded()
	}

	// Ставка АМС изменилась — ожидающие платежи получают новую сумму
	if amcRate.Percentage != order.AMCRatePercentage || amcRate.Amount != order.AMCRateAmount {
		if amc, err := h.Repository.GetAMCByOrderID(id); err == nil {
			if err := h.Repository.UpdateAMC(amc.ID, &amcRate.Percentage, &amcRate.Amount, nil); err != nil {
				logrus.Error("Error updating AMC rate: ", err)
			}
		}
	}

	// Срок договора изменился — график ожидающих платежей перестраивается
	agreementChanged := request.AgreementStart != nil || request.AgreementEnd != nil
	if agreementChanged {
		updated, err := h.Repository.GetOrderByID(id)
		if err == nil && updated.AgreementStart != nil && updated.AgreementEnd != nil {
			client, cerr := h.Repository.GetClientByID(updated.ClientID)
			if cerr == nil {
				err = h.Repository.RegeneratePendingPayments(id, *updated.AgreementStart, *updated.AgreementEnd, client.AMCFrequency)
				if err != nil {
					logrus.Error("Error regenerating AMC payments: ", err)
				}
			}
		}
	}

	h.invalidateReports(c, reportTagSales, reportTagAMC)

	updated, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения заказа")
		return
	}
	h.successResponse(c, http.StatusOK, "заказ успешно обновлён", h.orderToResponse(updated))
}

// DeleteOrder выполняет логическое удаление заказа
// @Summary Удаление заказа
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [delete]
func (h *APIHandler) DeleteOrder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.DeleteOrder(id); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.invalidateReports(c, reportTagSales, reportTagAMC)
	h.successResponse(c, http.StatusOK, "заказ успешно удалён", nil)
}

// UpsertLicense создает или обновляет лицензионный блок заказа
// @Summary Лицензия заказа
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body dto.LicenseRequest true "Данные лицензии"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/license [post]
func (h *APIHandler) UpsertLicense(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.LicenseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Repository.GetOrderByID(id); err != nil {
		h.errorResponse(c, http.StatusNotFound, "заказ не найден")
		return
	}

	license := ds.License{
		OrderID:        id,
		CostPerLicense: request.CostPerLicense,
		TotalLicense:   request.TotalLicense,
		Start:          request.Start,
		End:            request.End,
	}
	if err := h.Repository.UpsertLicense(&license); err != nil {
		logrus.Error("Error upserting license: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка сохранения лицензии")
		return
	}

	h.successResponse(c, http.StatusOK, "лицензия сохранена", dto.LicenseResponse{
		ID:             license.ID,
		CostPerLicense: license.CostPerLicense,
		TotalLicense:   license.TotalLicense,
		Start:          license.Start,
		End:            license.End,
	})
}

// UpsertCustomization создает или обновляет блок кастомизации заказа
// @Summary Кастомизация заказа
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body dto.CustomizationRequest true "Данные кастомизации"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders/{id}/customization [post]
func (h *APIHandler) UpsertCustomization(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.CustomizationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Repository.GetOrderByID(id); err != nil {
		h.errorResponse(c, http.StatusNotFound, "заказ не найден")
		return
	}

	rate, err := resolveRate(request.AMCRate, request.Cost)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	customization := ds.Customization{
		OrderID:           id,
		Cost:              request.Cost,
		AMCRatePercentage: rate.Percentage,
		AMCRateAmount:     rate.Amount,
		Modules:           encodeModules(request.Modules),
	}
	if err := h.Repository.UpsertCustomization(&customization); err != nil {
		logrus.Error("Error upserting customization: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка сохранения кастомизации")
		return
	}

	h.invalidateReports(c, reportTagSales)
	h.successResponse(c, http.StatusOK, "кастомизация сохранена", dto.CustomizationResponse{
		ID:      customization.ID,
		Cost:    customization.Cost,
		AMCRate: dto.RateResponse{Percentage: rate.Percentage, Amount: rate.Amount},
		Modules: request.Modules,
	})
}

// GetOrderDocument выдает временную ссылку на скачивание документа заказа
// @Summary Документ заказа
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/document [get]
func (h *APIHandler) GetOrderDocument(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "заказ не найден")
		return
	}
	if order.PurchaseOrderDocument == "" {
		h.errorResponse(c, http.StatusNotFound, "документ к заказу не приложен")
		return
	}

	exists, err := h.MinIOClient.FileExists(c.Request.Context(), order.PurchaseOrderDocument)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "документ не найден в хранилище")
		return
	}

	url, err := h.MinIOClient.GetFileURL(c.Request.Context(), order.PurchaseOrderDocument)
	if err != nil {
		logrus.Error("Error generating download URL: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка генерации ссылки")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteOrderDocument удаляет документ заказа из хранилища
// @Summary Удаление документа заказа
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/document [delete]
func (h *APIHandler) DeleteOrderDocument(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "заказ не найден")
		return
	}
	if order.PurchaseOrderDocument == "" {
		h.errorResponse(c, http.StatusNotFound, "документ к заказу не приложен")
		return
	}

	if err := h.MinIOClient.DeleteFile(c.Request.Context(), order.PurchaseOrderDocument); err != nil {
		logrus.Error("Error deleting document: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка удаления документа")
		return
	}

	updates := map[string]interface{}{"purchase_order_document": ""}
	if err := h.Repository.UpdateOrderFields(id, updates, nil); err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "ошибка обновления заказа")
		return
	}

	h.successResponse(c, http.StatusOK, "документ удалён", nil)
}

// GetAdditionalServices получает дополнительные услуги заказа
// @Summary Дополнительные услуги заказа
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {array} dto.AdditionalServiceResponse
// @Router /api/orders/{id}/additional-services [get]
func (h *APIHandler) GetOrderAdditionalServices(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	services, err := h.Repository.GetAdditionalServices(id)
	if err != nil {
		logrus.Error("Error getting additional services: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения услуг")
		return
	}

	response := make([]dto.AdditionalServiceResponse, 0, len(services))
	for _, s := range services {
		response = append(response, dto.AdditionalServiceResponse{
			ID:    s.ID,
			Name:  s.Name,
			Cost:  s.Cost,
			Start: s.Start,
			End:   s.End,
		})
	}
	c.JSON(http.StatusOK, response)
}

// AddAdditionalService добавляет дополнительную услугу к заказу
// @Summary Добавление услуги
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body dto.AdditionalServiceRequest true "Данные услуги"
// @Success 201 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/additional-services [post]
func (h *APIHandler) AddAdditionalService(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.AdditionalServiceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Repository.GetOrderByID(id); err != nil {
		h.errorResponse(c, http.StatusNotFound, "заказ не найден")
		return
	}

	service := ds.AdditionalService{
		OrderID: id,
		Name:    request.Name,
		Cost:    request.Cost,
		Start:   request.Start,
		End:     request.End,
	}
	if err := h.Repository.CreateAdditionalService(&service); err != nil {
		logrus.Error("Error creating additional service: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка добавления услуги")
		return
	}

	h.invalidateReports(c, reportTagSales)
	h.successResponse(c, http.StatusCreated, "услуга добавлена", dto.AdditionalServiceResponse{
		ID:    service.ID,
		Name:  service.Name,
		Cost:  service.Cost,
		Start: service.Start,
		End:   service.End,
	})
}

// RemoveAdditionalService удаляет дополнительную услугу заказа
// @Summary Удаление услуги
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param serviceId path int true "ID услуги"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id}/additional-services/{serviceId} [delete]
func (h *APIHandler) RemoveAdditionalService(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	serviceID, err := parseIDParam(c, "serviceId")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.DeleteAdditionalService(id, serviceID); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.invalidateReports(c, reportTagSales)
	h.successResponse(c, http.StatusOK, "услуга удалена", nil)
}
