package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/fleet-app/events"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// DashboardStats adalah snapshot ringkasan untuk halaman dashboard.
// Angka biaya di-scan ke float64 karena storage layer bisa
// mengembalikan decimal sebagai teks.
type DashboardStats struct {
	TotalMachines     int64   `json:"total_machines"`
	TotalProjects     int64   `json:"total_projects"`
	ActiveProjects    int64   `json:"active_projects"`
	ActiveAssignments int64   `json:"active_assignments"`
	MaintenanceCost   float64 `json:"maintenance_cost"`
	MonthCost         float64 `json:"month_cost"`
	MonthAssignments  int64   `json:"month_assignments"`
	MachineStats      struct {
		Available   int64 `json:"available"`
		InUse       int64 `json:"in_use"`
		Maintenance int64 `json:"maintenance"`
		Broken      int64 `json:"broken"`
	} `json:"machine_stats"`
}

// GetDashboardStats mengambil statistik untuk dashboard (admin only)
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no role found"))
		return
	}

	role, ok := roleInterface.(string)
	if !ok || role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	stats, err := ac.collectDashboardStats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Broadcast snapshot ke dashboard yang terhubung
	events.BroadcastDashboardStats(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (ac *AdminController) collectDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats
	month := time.Now().Format("2006-01")

	if err := ac.DB.Model(&models.Machine{}).Count(&stats.TotalMachines).Error; err != nil {
		return nil, err
	}
	ac.DB.Model(&models.Project{}).Count(&stats.TotalProjects)
	ac.DB.Model(&models.Project{}).Where("status = ?", "active").Count(&stats.ActiveProjects)
	ac.DB.Model(&models.MachineAssignment{}).Where("return_date IS NULL").Count(&stats.ActiveAssignments)

	// Machine counts per status
	ac.DB.Model(&models.Machine{}).Where("status = ?", models.MachineAvailable).Count(&stats.MachineStats.Available)
	ac.DB.Model(&models.Machine{}).Where("status = ?", models.MachineInUse).Count(&stats.MachineStats.InUse)
	ac.DB.Model(&models.Machine{}).Where("status = ?", models.MachineMaintenance).Count(&stats.MachineStats.Maintenance)
	ac.DB.Model(&models.Machine{}).Where("status = ?", models.MachineBroken).Count(&stats.MachineStats.Broken)

	// Total biaya maintenance (all time + bulan berjalan)
	ac.DB.Model(&models.MaintenanceRecord{}).
		Select("COALESCE(SUM(cost), 0)").Row().Scan(&stats.MaintenanceCost)
	ac.DB.Model(&models.MaintenanceRecord{}).
		Where(monthExpr(ac.DB, "maintenance_date")+" = ?", month).
		Select("COALESCE(SUM(cost), 0)").Row().Scan(&stats.MonthCost)
	ac.DB.Model(&models.MachineAssignment{}).
		Where(monthExpr(ac.DB, "assign_date")+" = ?", month).
		Count(&stats.MonthAssignments)

	return &stats, nil
}
