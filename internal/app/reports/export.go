package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Point — точка временного ряда для выгрузки
type Point struct {
	Period string
	Total  float64
}

// Slice — доля распределения для выгрузки
type Slice struct {
	Label string
	Total float64
}

// RevenueWorkbook — набор данных для xlsx-выгрузки отчета по выручке
type RevenueWorkbook struct {
	Filter       string
	OverallSales []Point
	AMCRevenue   []Point
	ByProduct    []Slice
	ByIndustry   []Slice
}

func writeSeriesSheet(f *excelize.File, sheet, valueHeader string, points []Point) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", "Период"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", valueHeader); err != nil {
		return err
	}
	var total float64
	for i, p := range points {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Period); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Total); err != nil {
			return err
		}
		total += p.Total
	}
	sumRow := len(points) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", sumRow), "Итого"); err != nil {
		return err
	}
	return f.SetCellValue(sheet, fmt.Sprintf("B%d", sumRow), total)
}

func writeDistributionSheet(f *excelize.File, sheet, labelHeader string, slices []Slice) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "A1", labelHeader); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", "Выручка"); err != nil {
		return err
	}
	for i, s := range slices {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.Label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.Total); err != nil {
			return err
		}
	}
	return nil
}

// ExportRevenueXLSX собирает книгу с листами по продажам, АМС
// и распределениям выручки
func ExportRevenueXLSX(wb RevenueWorkbook) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSeriesSheet(f, "Продажи", "Продажи", wb.OverallSales); err != nil {
		return nil, err
	}
	if err := writeSeriesSheet(f, "АМС", "Выручка АМС", wb.AMCRevenue); err != nil {
		return nil, err
	}
	if err := writeDistributionSheet(f, "По продуктам", "Продукт", wb.ByProduct); err != nil {
		return nil, err
	}
	if err := writeDistributionSheet(f, "По отраслям", "Отрасль", wb.ByIndustry); err != nil {
		return nil, err
	}

	if err := f.SetCellValue("Продажи", "D1", "Период отчета"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue("Продажи", "E1", wb.Filter); err != nil {
		return nil, err
	}

	// Лист по умолчанию от excelize больше не нужен
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
