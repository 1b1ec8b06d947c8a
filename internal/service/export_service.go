package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const exportDateFormat = "02/01/2006"

// ExportService renders expense listings as downloadable files
type ExportService struct{}

// NewExportService creates a new ExportService
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExpensesCSV renders expenses as semicolon-separated CSV, a header row first
func (s *ExportService) ExpensesCSV(expenses []*domain.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write([]string{"Description", "Category", "Date", "Amount", "Notes"}); err != nil {
		return nil, err
	}

	for _, e := range expenses {
		category := ""
		if e.CategoryName != nil {
			category = *e.CategoryName
		}
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		record := []string{
			e.Description,
			category,
			e.Date.Format(exportDateFormat),
			e.Amount.String(),
			notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExpensesXLSX renders expenses as an Excel workbook with one sheet
func (s *ExportService) ExpensesXLSX(expenses []*domain.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expenses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Description", "Category", "Date", "Amount"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, e := range expenses {
		category := ""
		if e.CategoryName != nil {
			category = *e.CategoryName
		}
		amount, _ := e.Amount.Float64()
		values := []interface{}{
			e.Description,
			category,
			e.Date.Format(exportDateFormat),
			amount,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
