package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/fleet-app/models"
	"github.com/yeremiapane/fleet-app/utils"
	"gorm.io/gorm"
)

type SupplierController struct {
	DB *gorm.DB
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

// GetAllSuppliers
func (sc *SupplierController) GetAllSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := sc.DB.Order("name").Find(&suppliers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of suppliers", suppliers)
}

// GetSupplierByID
func (sc *SupplierController) GetSupplierByID(c *gin.Context) {
	idStr := c.Param("supplier_id")
	id, _ := strconv.Atoi(idStr)

	var supplier models.Supplier
	if err := sc.DB.First(&supplier, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Supplier detail", supplier)
}

// CreateSupplier
func (sc *SupplierController) CreateSupplier(c *gin.Context) {
	type reqBody struct {
		Name          string `json:"name" binding:"required"`
		ContactPerson string `json:"contact_person"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
		Address       string `json:"address"`
		TaxCode       string `json:"tax_code"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	supplier := models.Supplier{
		Name:          body.Name,
		ContactPerson: body.ContactPerson,
		Phone:         body.Phone,
		Email:         body.Email,
		Address:       body.Address,
		TaxCode:       body.TaxCode,
	}

	if err := sc.DB.Create(&supplier).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Supplier created", supplier)
}

// UpdateSupplier
func (sc *SupplierController) UpdateSupplier(c *gin.Context) {
	idStr := c.Param("supplier_id")
	id, _ := strconv.Atoi(idStr)

	var supplier models.Supplier
	if err := sc.DB.First(&supplier, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name          *string `json:"name"`
		ContactPerson *string `json:"contact_person"`
		Phone         *string `json:"phone"`
		Email         *string `json:"email"`
		Address       *string `json:"address"`
		TaxCode       *string `json:"tax_code"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		supplier.Name = *body.Name
	}
	if body.ContactPerson != nil {
		supplier.ContactPerson = *body.ContactPerson
	}
	if body.Phone != nil {
		supplier.Phone = *body.Phone
	}
	if body.Email != nil {
		supplier.Email = *body.Email
	}
	if body.Address != nil {
		supplier.Address = *body.Address
	}
	if body.TaxCode != nil {
		supplier.TaxCode = *body.TaxCode
	}

	if err := sc.DB.Save(&supplier).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Supplier updated", supplier)
}

// DeleteSupplier -> maintenance records yang menunjuk supplier ini
// kehilangan referensinya (set null)
func (sc *SupplierController) DeleteSupplier(c *gin.Context) {
	idStr := c.Param("supplier_id")
	id, _ := strconv.Atoi(idStr)

	var supplier models.Supplier
	if err := sc.DB.First(&supplier, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := sc.DB.Delete(&supplier).Error; err != nil {
		utils.RespondDBError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Supplier deleted", gin.H{"supplier_id": supplier.ID})
}
