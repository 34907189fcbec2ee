package handler

import (
	"net/http"

	"amc-crm/internal/app/ds"
	"amc-crm/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func amcPaymentToResponse(p *ds.AMCPayment) dto.AMCPaymentResponse {
	resp := dto.AMCPaymentResponse{
		ID:           p.ID,
		AMCID:        p.AMCID,
		FromDate:     p.FromDate,
		ToDate:       p.ToDate,
		Amount:       p.Amount,
		Status:       p.Status,
		ReceivedDate: p.ReceivedDate,
	}
	resp.OrderID = p.AMC.OrderID
	resp.ClientID = p.AMC.Order.ClientID
	resp.ClientName = p.AMC.Order.Client.Name
	return resp
}

func amcToResponse(amc *ds.AMC) dto.AMCResponse {
	resp := dto.AMCResponse{
		ID:        amc.ID,
		OrderID:   amc.OrderID,
		Amount:    dto.RateResponse{Percentage: amc.AmountPercentage, Amount: amc.Amount},
		StartDate: amc.StartDate,
	}
	for i := range amc.Payments {
		p := &amc.Payments[i]
		resp.Payments = append(resp.Payments, dto.AMCPaymentResponse{
			ID:           p.ID,
			AMCID:        p.AMCID,
			OrderID:      amc.OrderID,
			ClientID:     amc.Order.ClientID,
			ClientName:   amc.Order.Client.Name,
			FromDate:     p.FromDate,
			ToDate:       p.ToDate,
			Amount:       p.Amount,
			Status:       p.Status,
			ReceivedDate: p.ReceivedDate,
		})
	}
	return resp
}

// GetAMCs получает список всех записей АМС
// @Summary Список АМС
// @Tags AMC
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AMCResponse
// @Router /api/amc [get]
func (h *APIHandler) GetAMCs(c *gin.Context) {
	amcs, err := h.Repository.GetAMCs()
	if err != nil {
		logrus.Error("Error getting AMC list: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения списка АМС")
		return
	}

	response := make([]dto.AMCResponse, 0, len(amcs))
	for i := range amcs {
		response = append(response, amcToResponse(&amcs[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetAMC получает запись АМС по ID заказа
// @Summary АМС по заказу
// @Tags AMC
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.AMCResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/amc/{id} [get]
func (h *APIHandler) GetAMC(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amc, err := h.Repository.GetAMCByOrderID(orderID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "АМС по заказу не найден")
		return
	}
	c.JSON(http.StatusOK, amcToResponse(amc))
}

// UpdateAMC обновляет ставку АМС. Ожидающие платежи получают новую сумму,
// оплаченные не изменяются
// @Summary Обновление АМС
// @Tags AMC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body dto.UpdateAMCRequest true "Новая ставка"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/amc/{id} [patch]
func (h *APIHandler) UpdateAMC(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.UpdateAMCRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	amc, err := h.Repository.GetAMCByOrderID(orderID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "АМС по заказу не найден")
		return
	}

	var pct, amount *float64
	if request.Amount != nil {
		// Пара сверяется с базовой стоимостью заказа
		rate, rerr := resolveRate(*request.Amount, amc.Order.BaseCost)
		if rerr != nil {
			h.errorResponse(c, http.StatusBadRequest, rerr.Error())
			return
		}
		pct = &rate.Percentage
		amount = &rate.Amount
	}

	if err := h.Repository.UpdateAMC(amc.ID, pct, amount, request.StartDate); err != nil {
		logrus.Error("Error updating AMC: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка обновления АМС")
		return
	}

	h.invalidateReports(c, reportTagAMC)

	updated, err := h.Repository.GetAMCByID(amc.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения АМС")
		return
	}
	h.successResponse(c, http.StatusOK, "АМС успешно обновлён", amcToResponse(updated))
}

// GetAMCPayments получает платежи АМС
// @Summary Платежи АМС
// @Description Список платежей с фильтрацией по статусу; upcoming ограничивает ближайшими днями
// @Tags AMC
// @Produce json
// @Security BearerAuth
// @Param filter query string false "Статус (paid|pending)"
// @Param upcoming query int false "Период в днях для ожидающих платежей"
// @Success 200 {object} dto.AMCPaymentListResponse
// @Router /api/amc/payments [get]
func (h *APIHandler) GetAMCPayments(c *gin.Context) {
	status := c.Query("filter")
	if status != "" && status != ds.AMCPaymentPaid && status != ds.AMCPaymentPending {
		h.errorResponse(c, http.StatusBadRequest, "неверный фильтр статуса")
		return
	}

	upcoming := 0
	if raw := c.Query("upcoming"); raw != "" {
		days, err := parseQueryUint(raw)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "неверное значение upcoming")
			return
		}
		upcoming = int(days)
	}

	payments, err := h.Repository.GetAMCPayments(status, upcoming)
	if err != nil {
		logrus.Error("Error getting AMC payments: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения платежей")
		return
	}

	response := dto.AMCPaymentListResponse{Total: len(payments)}
	for i := range payments {
		response.Payments = append(response.Payments, amcPaymentToResponse(&payments[i]))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateAMCPayment меняет статус платежа АМС
// @Summary Обновление платежа АМС
// @Description Отметка платежа оплаченным с датой получения либо возврат в ожидание
// @Tags AMC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param paymentId path int true "ID платежа"
// @Param request body dto.UpdateAMCPaymentRequest true "Новый статус"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/amc/{id}/payments/{paymentId} [patch]
func (h *APIHandler) UpdateAMCPayment(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	paymentID, err := parseIDParam(c, "paymentId")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.UpdateAMCPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := h.Repository.GetAMCPaymentByID(paymentID)
	if err != nil || payment.AMC.OrderID != orderID {
		h.errorResponse(c, http.StatusNotFound, "платёж не найден")
		return
	}

	if err := h.Repository.UpdateAMCPayment(paymentID, request.Status, request.ReceivedDate); err != nil {
		logrus.Error("Error updating AMC payment: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка обновления платежа")
		return
	}

	h.invalidateReports(c, reportTagAMC)
	h.successResponse(c, http.StatusOK, "платёж успешно обновлён", nil)
}
