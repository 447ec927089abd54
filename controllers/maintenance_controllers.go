package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/fleet-app/events"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

type MaintenanceController struct {
	DB *gorm.DB
}

func NewMaintenanceController(db *gorm.DB) *MaintenanceController {
	return &MaintenanceController{DB: db}
}

// GetAllMaintenanceRecords -> terbaru dulu
func (mc *MaintenanceController) GetAllMaintenanceRecords(c *gin.Context) {
	var records []models.MaintenanceRecord
	if err := mc.DB.Preload("Machine").Preload("Project").Preload("Supplier").
		Order("maintenance_date DESC, id DESC").
		Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of maintenance records", records)
}

// GetMaintenanceRecordByID
func (mc *MaintenanceController) GetMaintenanceRecordByID(c *gin.Context) {
	idStr := c.Param("record_id")
	id, _ := strconv.Atoi(idStr)

	var record models.MaintenanceRecord
	if err := mc.DB.Preload("Machine").Preload("Project").Preload("Supplier").
		First(&record, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Maintenance record detail", record)
}

// CreateMaintenanceRecord -> insert record; untuk tipe preventive/repair
// status mesin ikut di-set ke maintenance dalam transaksi yang sama.
// Inspection tidak menyentuh status. Duplikat record_number -> 409.
func (mc *MaintenanceController) CreateMaintenanceRecord(c *gin.Context) {
	type reqBody struct {
		RecordNumber        string     `json:"record_number" binding:"required"`
		MachineID           uint       `json:"machine_id" binding:"required"`
		ProjectID           *uint      `json:"project_id"`
		SupplierID          *uint      `json:"supplier_id"`
		MaintenanceDate     *time.Time `json:"maintenance_date"`
		MaintenanceType     string     `json:"maintenance_type"` // preventive, repair, inspection
		Cost                float64    `json:"cost"`
		Description         string     `json:"description"`
		NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
		PerformedBy         string     `json:"performed_by"`
		CreatedBy           string     `json:"created_by"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	maintenanceDate := time.Now()
	if body.MaintenanceDate != nil {
		maintenanceDate = *body.MaintenanceDate
	}
	createdBy := body.CreatedBy
	if createdBy == "" {
		createdBy = "admin"
	}

	record := models.MaintenanceRecord{
		RecordNumber:        body.RecordNumber,
		MachineID:           body.MachineID,
		ProjectID:           body.ProjectID,
		SupplierID:          body.SupplierID,
		MaintenanceDate:     maintenanceDate,
		MaintenanceType:     body.MaintenanceType,
		Cost:                body.Cost,
		Description:         body.Description,
		NextMaintenanceDate: body.NextMaintenanceDate,
		PerformedBy:         body.PerformedBy,
		CreatedBy:           createdBy,
	}

	tx := mc.DB.Begin()

	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("maintenance record number already exists"))
			return
		}
		utils.RespondDBError(c, err)
		return
	}

	if record.MaintenanceType == models.MaintenancePreventive ||
		record.MaintenanceType == models.MaintenanceRepair {
		if err := tx.Model(&models.Machine{}).
			Where("id = ?", record.MachineID).
			Update("status", models.MachineMaintenance).Error; err != nil {
			tx.Rollback()
			utils.RespondDBError(c, err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMaintenanceUpdate(record)

	utils.InfoLogger.Printf("Maintenance record %s created for machine %d (type=%s)",
		record.RecordNumber, record.MachineID, record.MaintenanceType)
	utils.RespondJSON(c, http.StatusCreated, "Maintenance record created", record)
}

// UpdateMaintenanceRecord -> mutasi data murni, status mesin tidak berubah
func (mc *MaintenanceController) UpdateMaintenanceRecord(c *gin.Context) {
	idStr := c.Param("record_id")
	id, _ := strconv.Atoi(idStr)

	var record models.MaintenanceRecord
	if err := mc.DB.First(&record, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		RecordNumber        *string    `json:"record_number"`
		MachineID           *uint      `json:"machine_id"`
		ProjectID           *uint      `json:"project_id"`
		SupplierID          *uint      `json:"supplier_id"`
		MaintenanceDate     *time.Time `json:"maintenance_date"`
		MaintenanceType     *string    `json:"maintenance_type"`
		Cost                *float64   `json:"cost"`
		Description         *string    `json:"description"`
		NextMaintenanceDate *time.Time `json:"next_maintenance_date"`
		PerformedBy         *string    `json:"performed_by"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.RecordNumber != nil {
		record.RecordNumber = *body.RecordNumber
	}
	if body.MachineID != nil {
		record.MachineID = *body.MachineID
	}
	if body.ProjectID != nil {
		record.ProjectID = body.ProjectID
	}
	if body.SupplierID != nil {
		record.SupplierID = body.SupplierID
	}
	if body.MaintenanceDate != nil {
		record.MaintenanceDate = *body.MaintenanceDate
	}
	if body.MaintenanceType != nil {
		record.MaintenanceType = *body.MaintenanceType
	}
	if body.Cost != nil {
		record.Cost = *body.Cost
	}
	if body.Description != nil {
		record.Description = *body.Description
	}
	if body.NextMaintenanceDate != nil {
		record.NextMaintenanceDate = body.NextMaintenanceDate
	}
	if body.PerformedBy != nil {
		record.PerformedBy = *body.PerformedBy
	}

	if err := mc.DB.Save(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("maintenance record number already exists"))
			return
		}
		utils.RespondDBError(c, err)
		return
	}

	events.BroadcastMaintenanceUpdate(record)

	utils.RespondJSON(c, http.StatusOK, "Maintenance record updated", record)
}

// DeleteMaintenanceRecord -> mutasi data murni, status mesin tidak berubah
func (mc *MaintenanceController) DeleteMaintenanceRecord(c *gin.Context) {
	idStr := c.Param("record_id")
	id, _ := strconv.Atoi(idStr)

	var record models.MaintenanceRecord
	if err := mc.DB.First(&record, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&record).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	utils.InfoLogger.Printf("Maintenance record %d deleted", record.ID)
	utils.RespondJSON(c, http.StatusOK, "Maintenance record deleted", gin.H{"record_id": record.ID})
}
