package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

// ReportController meng-export data fleet untuk laporan offline:
// CSV untuk olah data, PDF dengan chart untuk manajemen.
type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// ExportData -> stream CSV, pilih entity lewat query param
func (rc *ReportController) ExportData(c *gin.Context) {
	entity := c.DefaultQuery("entity", "maintenance")

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="fleet-%s-%s.csv"`, entity, time.Now().Format("2006-01-02")))

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	switch entity {
	case "assignments":
		rc.writeAssignmentsCSV(c, w)
	case "maintenance":
		rc.writeMaintenanceCSV(c, w)
	default:
		c.Status(http.StatusBadRequest)
	}
}

func (rc *ReportController) writeMaintenanceCSV(c *gin.Context, w *csv.Writer) {
	var records []models.MaintenanceRecord
	if err := rc.DB.Preload("Machine").Preload("Project").Preload("Supplier").
		Order("maintenance_date DESC, id DESC").
		Find(&records).Error; err != nil {
		utils.ErrorLogger.Printf("Error exporting maintenance records: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	w.Write([]string{"record_number", "machine_code", "machine_name", "project", "supplier",
		"maintenance_date", "maintenance_type", "cost", "performed_by"})

	for _, r := range records {
		projectName := ""
		if r.Project != nil {
			projectName = r.Project.Name
		}
		supplierName := ""
		if r.Supplier != nil {
			supplierName = r.Supplier.Name
		}
		w.Write([]string{
			r.RecordNumber,
			r.Machine.Code,
			r.Machine.Name,
			projectName,
			supplierName,
			r.MaintenanceDate.Format("2006-01-02"),
			r.MaintenanceType,
			strconv.FormatFloat(r.Cost, 'f', 2, 64),
			r.PerformedBy,
		})
	}
}

func (rc *ReportController) writeAssignmentsCSV(c *gin.Context, w *csv.Writer) {
	var assignments []models.MachineAssignment
	if err := rc.DB.Preload("Machine").Preload("Project").
		Order("assign_date DESC").
		Find(&assignments).Error; err != nil {
		utils.ErrorLogger.Printf("Error exporting assignments: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	w.Write([]string{"machine_code", "machine_name", "project", "assign_date", "return_date", "assigned_by"})

	for _, a := range assignments {
		returnDate := ""
		if a.ReturnDate != nil {
			returnDate = a.ReturnDate.Format("2006-01-02")
		}
		w.Write([]string{
			a.Machine.Code,
			a.Machine.Name,
			a.Project.Name,
			a.AssignDate.Format("2006-01-02"),
			returnDate,
			a.AssignedBy,
		})
	}
}

// ExportPDF -> laporan ringkas: tabel mesin per status
// plus bar chart biaya maintenance per bulan
func (rc *ReportController) ExportPDF(c *gin.Context) {
	var statusRows []StatusCountRow
	if err := rc.DB.Model(&models.Machine{}).
		Select("COALESCE(status, 'available') AS status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	expr := monthExpr(rc.DB, "maintenance_date")
	var costRows []MonthCostRow
	if err := rc.DB.Model(&models.MaintenanceRecord{}).
		Select(expr + " AS month, COUNT(*) AS count, COALESCE(SUM(cost), 0) AS total_cost").
		Group(expr).
		Order("month").
		Scan(&costRows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Fleet Equipment Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated at "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Tabel mesin per status
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Machines by status", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Count", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range statusRows {
		pdf.CellFormat(60, 7, row.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, strconv.FormatInt(row.Count, 10), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Tabel + chart biaya maintenance per bulan
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Maintenance cost by month", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range costRows {
		pdf.CellFormat(30, 6, row.Month, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, utils.FormatCurrency(row.TotalCost), "", 1, "R", false, 0, "")
	}

	if png, err := renderCostChart(costRows); err == nil {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("cost-chart", opts, bytes.NewReader(png))
		pdf.Ln(4)
		pdf.ImageOptions("cost-chart", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
	} else {
		utils.ErrorLogger.Printf("Error rendering cost chart: %v", err)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="fleet-report-%s.pdf"`, time.Now().Format("2006-01-02")))

	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Error writing PDF: %v", err)
	}
}

func renderCostChart(rows []MonthCostRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no maintenance data to chart")
	}

	bars := make([]chart.Value, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, chart.Value{Label: r.Month, Value: r.TotalCost})
	}

	graph := chart.BarChart{
		Title:    "Maintenance cost by month",
		Width:    900,
		Height:   400,
		BarWidth: 40,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
