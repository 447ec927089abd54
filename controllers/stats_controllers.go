package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

// StatsController melayani query agregasi untuk chart di dashboard.
// Semua endpoint read-only, tanpa cache: setiap request hitung ulang
// dari data tersimpan.
type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// monthExpr -> ekspresi bucket YYYY-MM sesuai dialect
// (postgres di production, sqlite di development/test)
func monthExpr(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
	}
	return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM')", column)
}

type MonthCostRow struct {
	Month     string  `json:"month"`
	Count     int64   `json:"count"`
	TotalCost float64 `json:"total_cost"`
}

type MonthCountRow struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type CategoryCountRow struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type StatusCountRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ProjectMachineRow struct {
	ProjectName  string `json:"project_name"`
	MachineCount int64  `json:"machine_count"`
}

type TopMachineRow struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	AssignmentCount int64  `json:"assignment_count"`
}

type TypeCostRow struct {
	MaintenanceType string  `json:"maintenance_type"`
	Count           int64   `json:"count"`
	TotalCost       float64 `json:"total_cost"`
}

// MaintenanceByMonth -> jumlah dan total biaya maintenance per bulan
func (sc *StatsController) MaintenanceByMonth(c *gin.Context) {
	expr := monthExpr(sc.DB, "maintenance_date")

	var rows []MonthCostRow
	if err := sc.DB.Model(&models.MaintenanceRecord{}).
		Select(expr + " AS month, COUNT(*) AS count, COALESCE(SUM(cost), 0) AS total_cost").
		Group(expr).
		Order("month").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Maintenance by month", rows)
}

// AssignmentsByMonth -> jumlah assignment per bulan
func (sc *StatsController) AssignmentsByMonth(c *gin.Context) {
	expr := monthExpr(sc.DB, "assign_date")

	var rows []MonthCountRow
	if err := sc.DB.Model(&models.MachineAssignment{}).
		Select(expr + " AS month, COUNT(*) AS count").
		Group(expr).
		Order("month").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assignments by month", rows)
}

// MachinesByCategory
func (sc *StatsController) MachinesByCategory(c *gin.Context) {
	var rows []CategoryCountRow
	if err := sc.DB.Model(&models.Machine{}).
		Select("COALESCE(NULLIF(category, ''), 'Khác') AS category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Machines by category", rows)
}

// MachinesByStatus -> satu baris per status yang ada
func (sc *StatsController) MachinesByStatus(c *gin.Context) {
	var rows []StatusCountRow
	if err := sc.DB.Model(&models.Machine{}).
		Select("COALESCE(status, 'available') AS status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Machines by status", rows)
}

// MachinesByProject -> jumlah mesin per proyek, assignment aktif saja, top 10
func (sc *StatsController) MachinesByProject(c *gin.Context) {
	var rows []ProjectMachineRow
	if err := sc.DB.Table("machine_assignments ma").
		Select("COALESCE(p.name, 'Chưa phân công') AS project_name, COUNT(DISTINCT ma.machine_id) AS machine_count").
		Joins("LEFT JOIN projects p ON ma.project_id = p.id").
		Where("ma.return_date IS NULL").
		Group("p.name").
		Order("machine_count DESC").
		Limit(10).
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Machines by project", rows)
}

// TopMachines -> 10 mesin dengan assignment terbanyak
func (sc *StatsController) TopMachines(c *gin.Context) {
	var rows []TopMachineRow
	if err := sc.DB.Table("machines m").
		Select("m.code, m.name, m.category, COUNT(ma.id) AS assignment_count").
		Joins("LEFT JOIN machine_assignments ma ON ma.machine_id = m.id").
		Group("m.id, m.code, m.name, m.category").
		Order("assignment_count DESC").
		Limit(10).
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Top machines", rows)
}

// MaintenanceCostByType -> biaya maintenance per tipe
func (sc *StatsController) MaintenanceCostByType(c *gin.Context) {
	var rows []TypeCostRow
	if err := sc.DB.Model(&models.MaintenanceRecord{}).
		Select("COALESCE(NULLIF(maintenance_type, ''), 'Khác') AS maintenance_type, COUNT(*) AS count, COALESCE(SUM(cost), 0) AS total_cost").
		Group("maintenance_type").
		Order("total_cost DESC").
		Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Maintenance cost by type", rows)
}
