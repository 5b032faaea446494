package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-admin-server/internal/models"
	"hospital-admin-server/internal/utils"
)

// DepartmentHandler handles department management requests.
type DepartmentHandler struct {
	DB *gorm.DB
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{DB: db}
}

// DepartmentRequest represents the request body for creating or updating a department.
type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateDepartment handles creating a new department (admin).
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.Department
	if err := h.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Department with this name already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	department := models.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.DB.Create(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to create department: "+err.Error())
		return
	}

	utils.Created(c, "Department created successfully", department)
}

// GetDepartments handles fetching all departments.
func (h *DepartmentHandler) GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Order("name asc").Find(&departments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch departments: "+err.Error())
		return
	}

	utils.Success(c, "Departments fetched successfully", departments)
}

// GetDepartmentByID handles fetching a single department.
func (h *DepartmentHandler) GetDepartmentByID(c *gin.Context) {
	var department models.Department
	if err := h.DB.First(&department, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Department fetched successfully", department)
}

// UpdateDepartment handles updating a department (admin).
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != department.Name {
		var existing models.Department
		if err := h.DB.Where("name = ? AND id != ?", req.Name, department.ID).First(&existing).Error; err == nil {
			utils.BadRequest(c, "Department with this name already exists")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
	}

	department.Name = req.Name
	department.Description = req.Description

	if err := h.DB.Save(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to update department: "+err.Error())
		return
	}

	utils.Success(c, "Department updated successfully", department)
}

// DeleteDepartment handles deleting a department (admin).
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	var department models.Department
	if err := h.DB.First(&department, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var count int64
	if err := h.DB.Model(&models.Appointment{}).Where("department_id = ?", department.ID).Count(&count).Error; err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if count > 0 {
		utils.BadRequest(c, "Cannot delete a department with existing appointments")
		return
	}

	if err := h.DB.Delete(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete department: "+err.Error())
		return
	}

	utils.Success(c, "Department deleted successfully", nil)
}
