package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

type ProjectController struct {
	DB *gorm.DB
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

// GetAllProjects
func (pc *ProjectController) GetAllProjects(c *gin.Context) {
	var projects []models.Project
	if err := pc.DB.Order("created_at DESC").Find(&projects).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of projects", projects)
}

// GetProjectByID
func (pc *ProjectController) GetProjectByID(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	var project models.Project
	if err := pc.DB.First(&project, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Project detail", project)
}

// CreateProject
func (pc *ProjectController) CreateProject(c *gin.Context) {
	type reqBody struct {
		Name        string     `json:"name" binding:"required"`
		Location    string     `json:"location"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Status      string     `json:"status"` // optional, default "active"
		Description string     `json:"description"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	project := models.Project{
		Name:        body.Name,
		Location:    body.Location,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Status:      "active",
		Description: body.Description,
	}
	if body.Status != "" {
		project.Status = body.Status
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	utils.InfoLogger.Printf("New project created: %s (status=%s)", project.Name, project.Status)
	utils.RespondJSON(c, http.StatusCreated, "Project created", project)
}

// UpdateProject
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	var project models.Project
	if err := pc.DB.First(&project, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name        *string    `json:"name"`
		Location    *string    `json:"location"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Status      *string    `json:"status"`
		Description *string    `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		project.Name = *body.Name
	}
	if body.Location != nil {
		project.Location = *body.Location
	}
	if body.StartDate != nil {
		project.StartDate = body.StartDate
	}
	if body.EndDate != nil {
		project.EndDate = body.EndDate
	}
	if body.Status != nil {
		project.Status = *body.Status
	}
	if body.Description != nil {
		project.Description = *body.Description
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Project updated", project)
}

// DeleteProject -> assignments ikut terhapus (cascade),
// maintenance records kehilangan referensi project (set null)
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	idStr := c.Param("project_id")
	id, _ := strconv.Atoi(idStr)

	var project models.Project
	if err := pc.DB.First(&project, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := pc.DB.Delete(&project).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	utils.InfoLogger.Printf("Project %d deleted", project.ID)
	utils.RespondJSON(c, http.StatusOK, "Project deleted", gin.H{"project_id": project.ID})
}
