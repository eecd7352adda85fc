package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/sendreq/config"
	"p9e.in/sendreq/models"
	"p9e.in/sendreq/pkg/billing"
)

// approvedRequests loads every fully approved request, newest first
func approvedRequests() ([]models.PaymentRequest, error) {
	var requests []models.PaymentRequest
	err := config.DB.
		Where("status = ?", models.StatusApproved).
		Order("updated_at DESC").
		Find(&requests).Error
	return requests, err
}

var exportHeaders = []string{
	"Request ID", "Subject", "Requester", "Department", "Vendor",
	"Billing Project", "Currency", "Sub Total", "Withholding Tax %",
	"Tax Amount", "Grand Total", "Authorized By", "Approved By",
	"Created", "Approved",
}

func exportRow(req *models.PaymentRequest) []string {
	totals := billing.ComputeTotals(req.BillingItems, req.WithholdingTaxPercentage)
	if len(req.BillingItems) == 0 {
		totals.GrandTotal = req.Amount
	}

	approvedBy := ""
	if req.ApproverID != nil {
		approvedBy = req.ApproverID.String()
	}

	return []string{
		req.ID.String(),
		req.RequestSubject,
		req.RequesterName,
		req.Department,
		req.VendorName,
		req.BillingProject,
		req.Currency,
		strconv.FormatFloat(totals.SubTotal, 'f', 2, 64),
		strconv.FormatFloat(req.WithholdingTaxPercentage, 'f', 2, 64),
		strconv.FormatFloat(totals.TaxAmount, 'f', 2, 64),
		strconv.FormatFloat(totals.GrandTotal, 'f', 2, 64),
		req.AuthorizerID.String(),
		approvedBy,
		req.CreatedAt.Format("2006-01-02"),
		req.UpdatedAt.Format("2006-01-02"),
	}
}

// ExportApprovedToExcel exports all approved requests as an xlsx workbook
// GET /api/v1/reports/approved/export
func ExportApprovedToExcel(w http.ResponseWriter, r *http.Request) {
	requests, err := approvedRequests()
	if err != nil {
		http.Error(w, "failed to fetch approved requests", http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Approved Requests"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	endCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheet, "A1", endCol, headerStyle)

	for i, req := range requests {
		row := exportRow(&req)
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("approved_requests_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportApprovedToCSV exports all approved requests as CSV
// GET /api/v1/reports/approved/export/csv
func ExportApprovedToCSV(w http.ResponseWriter, r *http.Request) {
	requests, err := approvedRequests()
	if err != nil {
		http.Error(w, "failed to fetch approved requests", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("approved_requests_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, req := range requests {
		writer.Write(exportRow(&req))
	}
}
