package handler

import (
	"context"
	"net/http"
	"time"

	"amc-crm/internal/app/ds"
	"amc-crm/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Горизонт напоминаний: платежи и договоры, истекающие в ближайший месяц
const reminderHorizonDays = 30

// syncReminders доводит таблицу напоминаний до актуального состояния:
// по каждому приближающемуся платежу АМС и истекающему договору
// заводится запись, если ее еще нет
func (h *APIHandler) syncReminders() {
	payments, err := h.Repository.GetAMCPayments("", reminderHorizonDays)
	if err != nil {
		logrus.Error("Error listing upcoming AMC payments: ", err)
		return
	}
	for i := range payments {
		p := &payments[i]
		exists, err := h.Repository.ReminderExistsForPayment(p.ID)
		if err != nil || exists {
			continue
		}
		paymentID := p.ID
		reminder := ds.Reminder{
			ClientID:     p.AMC.Order.ClientID,
			AMCPaymentID: &paymentID,
			Kind:         ds.ReminderKindAMCPayment,
			DueDate:      p.FromDate,
			Status:       ds.ReminderStatusScheduled,
		}
		if err := h.Repository.CreateReminder(&reminder); err != nil {
			logrus.Error("Error creating payment reminder: ", err)
		}
	}

	orders, err := h.Repository.ExpiringAgreements(reminderHorizonDays)
	if err != nil {
		logrus.Error("Error listing expiring agreements: ", err)
		return
	}
	for i := range orders {
		o := &orders[i]
		exists, err := h.Repository.ReminderExistsForAgreement(o.ClientID, *o.AgreementEnd)
		if err != nil || exists {
			continue
		}
		reminder := ds.Reminder{
			ClientID: o.ClientID,
			Kind:     ds.ReminderKindAgreement,
			DueDate:  *o.AgreementEnd,
			Status:   ds.ReminderStatusScheduled,
		}
		if err := h.Repository.CreateReminder(&reminder); err != nil {
			logrus.Error("Error creating agreement reminder: ", err)
		}
	}
}

// GetReminders получает список напоминаний
// @Summary Список напоминаний
// @Description Возвращает напоминания о платежах АМС и истекающих договорах
// @Tags Reminders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус (scheduled|sent)"
// @Param client_id query int false "Фильтр по клиенту"
// @Success 200 {object} dto.ReminderListResponse
// @Router /api/reminders [get]
func (h *APIHandler) GetReminders(c *gin.Context) {
	h.syncReminders()

	var clientID *uint
	if raw := c.Query("client_id"); raw != "" {
		id, err := parseQueryUint(raw)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "неверный фильтр client_id")
			return
		}
		clientID = &id
	}

	reminders, err := h.Repository.GetReminders(c.Query("status"), clientID)
	if err != nil {
		logrus.Error("Error getting reminders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения напоминаний")
		return
	}

	response := dto.ReminderListResponse{Total: len(reminders)}
	for _, r := range reminders {
		response.Reminders = append(response.Reminders, dto.ReminderResponse{
			ID:           r.ID,
			ClientID:     r.ClientID,
			ClientName:   r.Client.Name,
			AMCPaymentID: r.AMCPaymentID,
			Kind:         r.Kind,
			DueDate:      r.DueDate,
			Status:       r.Status,
		})
	}
	c.JSON(http.StatusOK, response)
}

// GetReminder получает напоминание по ID
// @Summary Карточка напоминания
// @Tags Reminders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID напоминания"
// @Success 200 {object} dto.ReminderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reminders/{id} [get]
func (h *APIHandler) GetReminder(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	reminder, err := h.Repository.GetReminderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "напоминание не найдено")
		return
	}

	c.JSON(http.StatusOK, dto.ReminderResponse{
		ID:           reminder.ID,
		ClientID:     reminder.ClientID,
		ClientName:   reminder.Client.Name,
		AMCPaymentID: reminder.AMCPaymentID,
		Kind:         reminder.Kind,
		DueDate:      reminder.DueDate,
		Status:       reminder.Status,
	})
}

// SendReminderEmail отправляет письмо клиенту через внешний почтовый шлюз.
// Отправка асинхронная: ответ возвращается сразу, результат фиксируется
// в журнале коммуникаций
// @Summary Отправка письма клиенту
// @Tags Reminders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendReminderEmailRequest true "Письмо"
// @Success 202 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/reminders/send-email-to-client [post]
func (h *APIHandler) SendReminderEmail(c *gin.Context) {
	var request dto.SendReminderEmailRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.Repository.ClientExists(request.ClientID)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "клиент не найден")
		return
	}

	if request.ReminderID != nil {
		if _, err := h.Repository.GetReminderByID(*request.ReminderID); err != nil {
			h.errorResponse(c, http.StatusNotFound, "напоминание не найдено")
			return
		}
	}

	// Ответ клиенту не ждет почтового шлюза
	go func(req dto.SendReminderEmailRequest) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		record := ds.EmailRecord{
			ClientID:   req.ClientID,
			ReminderID: req.ReminderID,
			Email:      req.Email,
			Subject:    req.Subject,
			Body:       req.Body,
			Status:     "sent",
		}

		if err := h.Mailer.Send(ctx, req.Email, req.Subject, req.Body); err != nil {
			logrus.Error("Error sending reminder email: ", err)
			record.Status = "failed"
		} else if req.ReminderID != nil {
			if err := h.Repository.MarkReminderSent(*req.ReminderID); err != nil {
				logrus.Error("Error marking reminder sent: ", err)
			}
		}

		if err := h.Repository.CreateEmailRecord(&record); err != nil {
			logrus.Error("Error recording email: ", err)
		}
	}(request)

	h.successResponse(c, http.StatusAccepted, "письмо поставлено в отправку", nil)
}

// GetExternalCommunications получает журнал отправленных писем
// @Summary История внешних коммуникаций
// @Tags Reminders
// @Produce json
// @Security BearerAuth
// @Param client_id query int false "Фильтр по клиенту"
// @Success 200 {object} dto.EmailRecordListResponse
// @Router /api/reminders/external-communications [get]
func (h *APIHandler) GetExternalCommunications(c *gin.Context) {
	var clientID *uint
	if raw := c.Query("client_id"); raw != "" {
		id, err := parseQueryUint(raw)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "неверный фильтр client_id")
			return
		}
		clientID = &id
	}

	records, err := h.Repository.GetEmailRecords(clientID)
	if err != nil {
		logrus.Error("Error getting email records: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения журнала писем")
		return
	}

	response := dto.EmailRecordListResponse{Total: len(records)}
	for _, r := range records {
		response.Records = append(response.Records, dto.EmailRecordResponse{
			ID:         r.ID,
			ClientID:   r.ClientID,
			ClientName: r.Client.Name,
			Email:      r.Email,
			Subject:    r.Subject,
			SentAt:     r.SentAt,
			Status:     r.Status,
		})
	}
	c.JSON(http.StatusOK, response)
}
