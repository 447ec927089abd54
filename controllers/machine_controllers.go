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

type MachineController struct {
	DB *gorm.DB
}

func NewMachineController(db *gorm.DB) *MachineController {
	return &MachineController{DB: db}
}

// GetAllMachines -> urut berdasarkan code
func (mc *MachineController) GetAllMachines(c *gin.Context) {
	var machines []models.Machine
	if err := mc.DB.Order("code").Find(&machines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of machines", machines)
}

// GetMachineByID
func (mc *MachineController) GetMachineByID(c *gin.Context) {
	idStr := c.Param("machine_id")
	id, _ := strconv.Atoi(idStr)

	var machine models.Machine
	if err := mc.DB.First(&machine, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Machine detail", machine)
}

// FindMachinesByStatus -> mis. list mesin available
func (mc *MachineController) FindMachinesByStatus(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = models.MachineAvailable
	}
	var machines []models.Machine
	if err := mc.DB.Where("status = ?", status).Order("code").Find(&machines).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Machines with status: "+status, machines)
}

// CreateMachine -> code harus unik, duplikat -> 409
func (mc *MachineController) CreateMachine(c *gin.Context) {
	type reqBody struct {
		Code          string     `json:"code" binding:"required"`
		Name          string     `json:"name" binding:"required"`
		Category      string     `json:"category"`
		Manufacturer  string     `json:"manufacturer"`
		Model         string     `json:"model"`
		SerialNumber  string     `json:"serial_number"`
		PurchaseDate  *time.Time `json:"purchase_date"`
		PurchasePrice float64    `json:"purchase_price"`
		Status        string     `json:"status"` // optional, default "available"
		Description   string     `json:"description"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	machine := models.Machine{
		Code:          body.Code,
		Name:          body.Name,
		Category:      body.Category,
		Manufacturer:  body.Manufacturer,
		Model:         body.Model,
		SerialNumber:  body.SerialNumber,
		PurchaseDate:  body.PurchaseDate,
		PurchasePrice: body.PurchasePrice,
		Status:        models.MachineAvailable,
		Description:   body.Description,
	}
	if body.Status != "" {
		machine.Status = body.Status
	}

	if err := mc.DB.Create(&machine).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("machine code already exists"))
			return
		}
		utils.RespondDBError(c, err)
		return
	}

	events.BroadcastMachineUpdate(machine)

	utils.InfoLogger.Printf("New machine created: %s (status=%s)", machine.Code, machine.Status)
	utils.RespondJSON(c, http.StatusCreated, "Machine created", machine)
}

// UpdateMachine -> user boleh set status langsung ke nilai manapun,
// terlepas dari history assignment/maintenance
func (mc *MachineController) UpdateMachine(c *gin.Context) {
	idStr := c.Param("machine_id")
	id, _ := strconv.Atoi(idStr)

	var machine models.Machine
	if err := mc.DB.First(&machine, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Code          *string    `json:"code"`
		Name          *string    `json:"name"`
		Category      *string    `json:"category"`
		Manufacturer  *string    `json:"manufacturer"`
		Model         *string    `json:"model"`
		SerialNumber  *string    `json:"serial_number"`
		PurchaseDate  *time.Time `json:"purchase_date"`
		PurchasePrice *float64   `json:"purchase_price"`
		Status        *string    `json:"status"`
		Description   *string    `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Code != nil {
		machine.Code = *body.Code
	}
	if body.Name != nil {
		machine.Name = *body.Name
	}
	if body.Category != nil {
		machine.Category = *body.Category
	}
	if body.Manufacturer != nil {
		machine.Manufacturer = *body.Manufacturer
	}
	if body.Model != nil {
		machine.Model = *body.Model
	}
	if body.SerialNumber != nil {
		machine.SerialNumber = *body.SerialNumber
	}
	if body.PurchaseDate != nil {
		machine.PurchaseDate = body.PurchaseDate
	}
	if body.PurchasePrice != nil {
		machine.PurchasePrice = *body.PurchasePrice
	}
	if body.Status != nil {
		machine.Status = *body.Status
	}
	if body.Description != nil {
		machine.Description = *body.Description
	}

	if err := mc.DB.Save(&machine).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("machine code already exists"))
			return
		}
		utils.RespondDBError(c, err)
		return
	}

	events.BroadcastMachineUpdate(machine)

	utils.InfoLogger.Printf("Machine %d updated (status=%s)", machine.ID, machine.Status)
	utils.RespondJSON(c, http.StatusOK, "Machine updated", machine)
}

// DeleteMachine -> assignments dan maintenance records ikut terhapus (cascade)
func (mc *MachineController) DeleteMachine(c *gin.Context) {
	idStr := c.Param("machine_id")
	id, _ := strconv.Atoi(idStr)

	var machine models.Machine
	if err := mc.DB.First(&machine, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&machine).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	events.BroadcastMachineDelete(machine.ID)

	utils.InfoLogger.Printf("Machine %d deleted", machine.ID)
	utils.RespondJSON(c, http.StatusOK, "Machine deleted", gin.H{"machine_id": machine.ID})
}
