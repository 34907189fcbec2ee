package handler

import (
	"net/http"

	"amc-crm/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetProducts получает список продуктов
// @Summary Список продуктов
// @Description Возвращает все продукты с возможностью поиска по названию
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param query query string false "Поиск по названию"
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [get]
func (h *APIHandler) GetProducts(c *gin.Context) {
	products, err := h.Repository.GetProducts(c.Query("query"))
	if err != nil {
		logrus.Error("Error getting products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения списка продуктов")
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

// GetProduct получает продукт по ID
// @Summary Карточка продукта
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID продукта"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id} [get]
func (h *APIHandler) GetProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.Repository.GetProductByID(id)
	if err != nil {
		logrus.Error("Error getting product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка получения продукта")
		return
	}
	if product == nil {
		h.errorResponse(c, http.StatusNotFound, "продукт не найден")
		return
	}

	c.JSON(http.StatusOK, dto.ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		DefaultPrice: product.DefaultPrice,
	})
}

// CreateProduct создает новый продукт
// @Summary Создание продукта
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "Данные продукта"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/products [post]
func (h *APIHandler) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.Repository.CreateProduct(request.Name, request.Description, request.DefaultPrice)
	if err != nil {
		logrus.Error("Error creating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка создания продукта")
		return
	}

	h.successResponse(c, http.StatusCreated, "продукт успешно создан", dto.ProductResponse{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		DefaultPrice: product.DefaultPrice,
	})
}

// UpdateProduct обновляет продукт
// @Summary Обновление продукта
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID продукта"
// @Param request body dto.UpdateProductRequest true "Новые данные"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id} [put]
func (h *APIHandler) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.Repository.ProductExists(id)
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "продукт не найден")
		return
	}

	var name, description *string
	if request.Name != "" {
		name = &request.Name
	}
	if request.Description != "" {
		description = &request.Description
	}

	if err := h.Repository.UpdateProduct(id, name, description, request.DefaultPrice); err != nil {
		logrus.Error("Error updating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка обновления продукта")
		return
	}

	h.invalidateReports(c, reportTagSales)
	h.successResponse(c, http.StatusOK, "продукт успешно обновлён", nil)
}

// DeleteProduct выполняет логическое удаление продукта
// @Summary Удаление продукта
// @Description Продукт, используемый в заказах, удалить нельзя
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID продукта"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *APIHandler) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.DeleteProduct(id); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "продукт успешно удалён", nil)
}
