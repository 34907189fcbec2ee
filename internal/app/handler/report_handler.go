package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"amc-crm/internal/app/dto"
	"amc-crm/internal/app/reports"
	"amc-crm/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Теги кеша отчетов: каждая мутация объявляет, какие наборы
// результатов она делает неактуальными
const (
	reportTagSales = "sales"
	reportTagAMC   = "amc"
)

const reportCacheTTL = 10 * time.Minute

// invalidateReports сбрасывает закешированные отчеты перечисленных тегов
func (h *APIHandler) invalidateReports(c *gin.Context, tags ...string) {
	if err := h.RedisClient.InvalidateReports(c.Request.Context(), tags...); err != nil {
		logrus.Error("Error invalidating report cache: ", err)
	}
}

// parseSelection собирает выбор периода отчета из query-параметров
func parseSelection(c *gin.Context) (reports.Selection, error) {
	sel := reports.Selection{Granularity: reports.GranularityAll}

	switch filter := c.DefaultQuery("filter", string(reports.GranularityAll)); reports.Granularity(filter) {
	case reports.GranularityAll, reports.GranularityMonthly, reports.GranularityQuarterly, reports.GranularityYearly:
		sel.Granularity = reports.Granularity(filter)
	default:
		return sel, fmt.Errorf("неверный фильтр периода %q", filter)
	}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return sel, fmt.Errorf("неверный год %q", raw)
		}
		sel.Year = year
	}
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return sel, fmt.Errorf("неверный месяц %q", raw)
		}
		sel.Month = month
	}
	sel.Quarter = c.Query("quarter")
	if raw := c.Query("product_id"); raw != "" {
		id, err := parseQueryUint(raw)
		if err != nil {
			return sel, err
		}
		sel.ProductID = id
	}

	// Незаполненные параметры выбранной гранулярности берутся от текущей даты
	defaults := sel.WithGranularity(sel.Granularity, time.Now())
	if sel.Year == 0 {
		sel.Year = defaults.Year
	}
	if sel.Month == 0 {
		sel.Month = defaults.Month
	}
	if sel.Quarter == "" {
		sel.Quarter = defaults.Quarter
	}

	return sel, nil
}

func selectionLabel(sel reports.Selection) string {
	switch sel.Granularity {
	case reports.GranularityYearly:
		return fmt.Sprintf("%d", sel.Year)
	case reports.GranularityQuarterly:
		return sel.Quarter
	case reports.GranularityMonthly:
		return fmt.Sprintf("%d-%02d", sel.Year, sel.Month)
	default:
		return "за всё время"
	}
}

func reportCacheKey(name string, sel reports.Selection) string {
	return fmt.Sprintf("reports:%s:%s:%s:%d:%d:%d",
		name, sel.Granularity, sel.Quarter, sel.Year, sel.Month, sel.ProductID)
}

func toSeriesPoints(points []repository.RevenuePoint) []dto.SeriesPoint {
	out := make([]dto.SeriesPoint, 0, len(points))
	for _, p := range points {
		out = append(out, dto.SeriesPoint{Period: p.Period, Total: p.Total})
	}
	return out
}

func toDistributionSlices(slices []repository.RevenueSlice) []dto.DistributionSlice {
	out := make([]dto.DistributionSlice, 0, len(slices))
	for _, s := range slices {
		out = append(out, dto.DistributionSlice{Label: s.Label, Total: s.Total})
	}
	return out
}

// serveSeriesReport отдает временной ряд с кешированием по тегу
func (h *APIHandler) serveSeriesReport(
	c *gin.Context,
	name, tag string,
	query func(start, end time.Time, hasRange bool, productID uint) ([]repository.RevenuePoint, error),
) {
	sel, err := parseSelection(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	key := reportCacheKey(name, sel)
	var cached dto.SeriesReportResponse
	if h.RedisClient.GetReport(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	start, end, hasRange, err := sel.Range()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	points, err := query(start, end, hasRange, sel.ProductID)
	if err != nil {
		logrus.Errorf("Error building %s report: %v", name, err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка построения отчёта")
		return
	}

	response := dto.SeriesReportResponse{
		Filter: selectionLabel(sel),
		Points: toSeriesPoints(points),
	}
	if err := h.RedisClient.SetReport(c.Request.Context(), tag, key, response, reportCacheTTL); err != nil {
		logrus.Error("Error caching report: ", err)
	}
	c.JSON(http.StatusOK, response)
}

// serveDistributionReport отдает распределение выручки с кешированием
func (h *APIHandler) serveDistributionReport(
	c *gin.Context,
	name, tag string,
	query func(start, end time.Time, hasRange bool) ([]repository.RevenueSlice, error),
) {
	sel, err := parseSelection(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	key := reportCacheKey(name, sel)
	var cached dto.DistributionReportResponse
	if h.RedisClient.GetReport(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	start, end, hasRange, err := sel.Range()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	slices, err := query(start, end, hasRange)
	if err != nil {
		logrus.Errorf("Error building %s report: %v", name, err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка построения отчёта")
		return
	}

	response := dto.DistributionReportResponse{
		Filter: selectionLabel(sel),
		Slices: toDistributionSlices(slices),
	}
	if err := h.RedisClient.SetReport(c.Request.Context(), tag, key, response, reportCacheTTL); err != nil {
		logrus.Error("Error caching report: ", err)
	}
	c.JSON(http.StatusOK, response)
}

// GetOverallSalesReport строит отчет по продажам
// @Summary Отчет по продажам
// @Description Сумма базовых стоимостей заказов по месяцам за выбранный период
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param filter query string false "Период (all|monthly|quarterly|yearly)"
// @Param year query int false "Год"
// @Param quarter query string false "Квартал (Q2 2026)"
// @Param month query int false "Месяц (1-12)"
// @Param product_id query int false "Фильтр по продукту"
// @Success 200 {object} dto.SeriesReportResponse
// @Router /api/reports/overall-sales-report [get]
func (h *APIHandler) GetOverallSalesReport(c *gin.Context) {
	h.serveSeriesReport(c, "overall-sales", reportTagSales, h.Repository.OverallSales)
}

// GetAMCRevenueReport строит отчет по выручке АМС
// @Summary Отчет по выручке АМС
// @Description Фактически собранные платежи АМС по месяцам
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param filter query string false "Период (all|monthly|quarterly|yearly)"
// @Param product_id query int false "Фильтр по продукту"
// @Success 200 {object} dto.SeriesReportResponse
// @Router /api/reports/amc-revenue-report [get]
func (h *APIHandler) GetAMCRevenueReport(c *gin.Context) {
	h.serveSeriesReport(c, "amc-revenue", reportTagAMC, h.Repository.AMCRevenue)
}

// GetProductWiseRevenue строит распределение выручки по продуктам
// @Summary Выручка по продуктам
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param filter query string false "Период (all|monthly|quarterly|yearly)"
// @Success 200 {object} dto.DistributionReportResponse
// @Router /api/reports/product-wise-revenue-distribution [get]
func (h *APIHandler) GetProductWiseRevenue(c *gin.Context) {
	h.serveDistributionReport(c, "product-wise", reportTagSales, h.Repository.ProductWiseRevenue)
}

// GetIndustryWiseRevenue строит распределение выручки по отраслям
// @Summary Выручка по отраслям
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param filter query string false "Период (all|monthly|quarterly|yearly)"
// @Success 200 {object} dto.DistributionReportResponse
// @Router /api/reports/industry-wise-revenue-distribution [get]
func (h *APIHandler) GetIndustryWiseRevenue(c *gin.Context) {
	h.serveDistributionReport(c, "industry-wise", reportTagSales, h.Repository.IndustryWiseRevenue)
}

// GetAMCAnnualBreakdown строит разбивку АМС по месяцам года
// @Summary Годовая разбивка АМС
// @Description Собранная выручка АМС по 12 месяцам выбранного года
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param year query int false "Год (по умолчанию текущий)"
// @Param product_id query int false "Фильтр по продукту"
// @Success 200 {object} dto.AnnualBreakdownResponse
// @Router /api/reports/amc-annual-breakdown [get]
func (h *APIHandler) GetAMCAnnualBreakdown(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "неверный год")
			return
		}
		year = parsed
	}

	var productID uint
	if raw := c.Query("product_id"); raw != "" {
		id, err := parseQueryUint(raw)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		productID = id
	}

	key := fmt.Sprintf("reports:amc-annual:%d:%d", year, productID)
	var cached dto.AnnualBreakdownResponse
	if h.RedisClient.GetReport(c.Request.Context(), key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	months, err := h.Repository.AMCAnnualBreakdown(year, productID)
	if err != nil {
		logrus.Error("Error building AMC annual breakdown: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка построения отчёта")
		return
	}

	response := dto.AnnualBreakdownResponse{Year: year}
	for i, total := range months {
		response.Months = append(response.Months, dto.SeriesPoint{
			Period: fmt.Sprintf("%d-%02d", year, i+1),
			Total:  total,
		})
	}
	if err := h.RedisClient.SetReport(c.Request.Context(), reportTagAMC, key, response, reportCacheTTL); err != nil {
		logrus.Error("Error caching report: ", err)
	}
	c.JSON(http.StatusOK, response)
}

// ExportRevenueReport выгружает отчет по выручке в xlsx
// @Summary Выгрузка отчета в Excel
// @Description Книга с листами: продажи, АМС, распределение по продуктам и отраслям
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param filter query string false "Период (all|monthly|quarterly|yearly)"
// @Success 200 {file} binary
// @Router /api/reports/export [get]
func (h *APIHandler) ExportRevenueReport(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	start, end, hasRange, err := sel.Range()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	sales, err := h.Repository.OverallSales(start, end, hasRange, sel.ProductID)
	if err != nil {
		logrus.Error("Error exporting report: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка построения отчёта")
		return
	}
	amcRevenue, err := h.Repository.AMCRevenue(start, end, hasRange, sel.ProductID)
	if err != nil {
		logrus.Error("Error exporting report: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка построения отчёта")
		return
	}
	byProduct, err := h.Repository.ProductWiseRevenue(start, end, hasRange)
	if err != nil {
		logrus.Error("Error exporting report: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка построения отчёта")
		return
	}
	byIndustry, err := h.Repository.IndustryWiseRevenue(start, end, hasRange)
	if err != nil {
		logrus.Error("Error exporting report: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка построения отчёта")
		return
	}

	wb := reports.RevenueWorkbook{Filter: selectionLabel(sel)}
	for _, p := range sales {
		wb.OverallSales = append(wb.OverallSales, reports.Point{Period: p.Period, Total: p.Total})
	}
	for _, p := range amcRevenue {
		wb.AMCRevenue = append(wb.AMCRevenue, reports.Point{Period: p.Period, Total: p.Total})
	}
	for _, s := range byProduct {
		wb.ByProduct = append(wb.ByProduct, reports.Slice{Label: s.Label, Total: s.Total})
	}
	for _, s := range byIndustry {
		wb.ByIndustry = append(wb.ByIndustry, reports.Slice{Label: s.Label, Total: s.Total})
	}

	buf, err := reports.ExportRevenueXLSX(wb)
	if err != nil {
		logrus.Error("Error writing xlsx: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "ошибка формирования файла")
		return
	}

	filename := fmt.Sprintf("revenue_report_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
