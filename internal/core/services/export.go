package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for export formats other than csv and xlsx
var ErrUnsupportedFormat = errors.New("export format must be csv or xlsx")

const exportSheet = "Payments"

var exportHeader = []string{"Employee", "Payment type", "Bonus", "Total", "Date", "Description"}

// Export is a rendered payments file
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export renders the filtered payments as csv or xlsx
func (s *PaymentService) Export(ctx context.Context, filter repositories.PaymentFilter, format string) (*Export, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		return nil, ErrUnsupportedFormat
	}

	payments, err := s.paymentRepo.All(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, exportRow(p))
	}

	stamp := time.Now().Format("20060102-150405")
	var export *Export
	if format == "xlsx" {
		body, err := writeXLSX(rows)
		if err != nil {
			return nil, err
		}
		export = &Export{
			Filename:    fmt.Sprintf("payments-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}
	} else {
		body, err := writeCSV(rows)
		if err != nil {
			return nil, err
		}
		export = &Export{
			Filename:    fmt.Sprintf("payments-%s.csv", stamp),
			ContentType: "text/csv; charset=utf-8",
			Body:        body,
		}
	}

	s.log.Info().Str("format", format).Int("rows", len(rows)).Msg("payments exported")
	return export, nil
}

func exportRow(p *models.Payment) []string {
	date := ""
	if !p.PaidAt.IsZero() {
		date = p.PaidAt.Format("2006-01-02 15:04")
	}
	return []string{
		p.Employee.Name,
		p.Type().Label(),
		fmt.Sprintf("%.2f", p.Bonus()),
		fmt.Sprintf("%.2f", p.FinalSalary()),
		date,
		p.Description,
	}
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := row
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
