package handler

import (
	"fmt"
	"strconv"

	"amc-crm/internal/app/config"
	"amc-crm/internal/app/dto"
	"amc-crm/internal/app/mailer"
	"amc-crm/internal/app/redis"
	"amc-crm/internal/app/repository"
	"amc-crm/internal/app/role"
	"amc-crm/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	MinIOClient *storage.MinIOClient
	Mailer      *mailer.Client
	Config      *config.Config
	AuthHandler *AuthHandler
}

func NewAPIHandler(
	r *repository.Repository,
	redisClient *redis.Client,
	minioClient *storage.MinIOClient,
	mailerClient *mailer.Client,
	cfg *config.Config,
	authHandler *AuthHandler,
) *APIHandler {
	return &APIHandler{
		Repository:  r,
		RedisClient: redisClient,
		MinIOClient: minioClient,
		Mailer:      mailerClient,
		Config:      cfg,
		AuthHandler: authHandler,
	}
}

// Получение текущего пользователя из контекста
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Employee, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// parseIDParam разбирает числовой параметр пути
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("неверный параметр %s", name)
	}
	return uint(id), nil
}

// parseQueryUint разбирает числовой query-параметр
func parseQueryUint(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("неверное числовое значение %q", raw)
	}
	return uint(v), nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}
