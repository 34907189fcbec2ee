package handler

import (
	"net/http"

	"amc-crm/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetUploadURL выдает подписанный URL для прямой загрузки документа
// в файловое хранилище. Сервер байты файла не принимает: клиент
// выполняет PUT по выданному URL самостоятельно
// @Summary URL для загрузки документа
// @Tags Upload
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UploadURLRequest true "Имя файла"
// @Success 200 {object} dto.UploadURLResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/url-for-upload [post]
func (h *APIHandler) GetUploadURL(c *gin.Context) {
	var request dto.UploadURLRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	objectKey, uploadURL, contentType, err := h.MinIOClient.PresignedUploadURL(c.Request.Context(), request.Filename)
	if err != nil {
		logrus.Error("Error generating upload URL: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка генерации URL загрузки")
		return
	}

	c.JSON(http.StatusOK, dto.UploadURLResponse{
		ObjectKey:   objectKey,
		UploadURL:   uploadURL,
		ContentType: contentType,
	})
}
