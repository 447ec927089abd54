package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/fleet-app/events"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

type AssignmentController struct {
	DB *gorm.DB
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{DB: db}
}

// GetAllAssignments -> bisa difilter project_id / machine_id
func (ac *AssignmentController) GetAllAssignments(c *gin.Context) {
	query := ac.DB.Preload("Machine").Preload("Project")

	if projectID := c.Query("project_id"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if machineID := c.Query("machine_id"); machineID != "" {
		query = query.Where("machine_id = ?", machineID)
	}

	var assignments []models.MachineAssignment
	if err := query.Order("assign_date DESC").Find(&assignments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of assignments", assignments)
}

// GetActiveAssignments -> assignment yang belum dikembalikan
func (ac *AssignmentController) GetActiveAssignments(c *gin.Context) {
	var assignments []models.MachineAssignment
	if err := ac.DB.Preload("Machine").Preload("Project").
		Where("return_date IS NULL").
		Order("assign_date DESC").
		Find(&assignments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active assignments", assignments)
}

// CreateAssignment -> insert assignment + set status mesin in_use
// dalam satu transaksi. Status di-set tanpa cek status sebelumnya.
func (ac *AssignmentController) CreateAssignment(c *gin.Context) {
	type reqBody struct {
		MachineID  uint       `json:"machine_id" binding:"required"`
		ProjectID  uint       `json:"project_id" binding:"required"`
		AssignDate *time.Time `json:"assign_date"`
		AssignedBy string     `json:"assigned_by"`
		Notes      string     `json:"notes"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	assignDate := time.Now()
	if body.AssignDate != nil {
		assignDate = *body.AssignDate
	}
	assignedBy := body.AssignedBy
	if assignedBy == "" {
		assignedBy = "admin"
	}

	assignment := models.MachineAssignment{
		MachineID:  body.MachineID,
		ProjectID:  body.ProjectID,
		AssignDate: assignDate,
		AssignedBy: assignedBy,
		Notes:      body.Notes,
	}

	tx := ac.DB.Begin()

	if err := tx.Create(&assignment).Error; err != nil {
		tx.Rollback()
		utils.RespondDBError(c, err)
		return
	}

	if err := tx.Model(&models.Machine{}).
		Where("id = ?", body.MachineID).
		Update("status", models.MachineInUse).Error; err != nil {
		tx.Rollback()
		utils.RespondDBError(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastAssignmentUpdate(assignment)

	utils.InfoLogger.Printf("Machine %d assigned to project %d", assignment.MachineID, assignment.ProjectID)
	utils.RespondJSON(c, http.StatusCreated, "Assignment created", assignment)
}

// ReturnAssignment -> set return_date + status mesin kembali available,
// satu transaksi. Notes lama dipertahankan kalau tidak dikirim.
func (ac *AssignmentController) ReturnAssignment(c *gin.Context) {
	idStr := c.Param("assignment_id")
	id, _ := strconv.Atoi(idStr)

	var assignment models.MachineAssignment
	if err := ac.DB.First(&assignment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		ReturnDate *time.Time `json:"return_date"`
		Notes      *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	returnDate := time.Now()
	if body.ReturnDate != nil {
		returnDate = *body.ReturnDate
	}
	assignment.ReturnDate = &returnDate
	if body.Notes != nil {
		assignment.Notes = *body.Notes
	}

	tx := ac.DB.Begin()

	if err := tx.Save(&assignment).Error; err != nil {
		tx.Rollback()
		utils.RespondDBError(c, err)
		return
	}

	if err := tx.Model(&models.Machine{}).
		Where("id = ?", assignment.MachineID).
		Update("status", models.MachineAvailable).Error; err != nil {
		tx.Rollback()
		utils.RespondDBError(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastAssignmentUpdate(assignment)

	utils.InfoLogger.Printf("Assignment %d returned, machine %d available", assignment.ID, assignment.MachineID)
	utils.RespondJSON(c, http.StatusOK, "Assignment returned", assignment)
}

// DeleteAssignment -> hanya menghapus baris.
// Status mesin tidak disentuh di sini.
func (ac *AssignmentController) DeleteAssignment(c *gin.Context) {
	idStr := c.Param("assignment_id")
	id, _ := strconv.Atoi(idStr)

	var assignment models.MachineAssignment
	if err := ac.DB.First(&assignment, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := ac.DB.Delete(&assignment).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	events.BroadcastAssignmentUpdate(assignment)

	utils.InfoLogger.Printf("Assignment %d deleted", assignment.ID)
	utils.RespondJSON(c, http.StatusOK, "Assignment deleted", gin.H{"assignment_id": assignment.ID})
}
