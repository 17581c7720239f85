package controllers

import (
	"net/http"
	"strconv"

	"wiretrack-http-service/internal/error/response"
	"wiretrack-http-service/models"
	"wiretrack-http-service/services"
	"wiretrack-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// TechnicianController 处理技师账号相关的请求
type TechnicianController struct {
	BaseControllerImpl
}

// NewTechnicianController 创建一个新的技师控制器
func (f *ControllerFactory) NewTechnicianController(ctx *gin.Context) *TechnicianController {
	return &TechnicianController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetTechnicians 获取技师列表
// @Summary      Get Technician List
// @Description  Get a paginated list of technician accounts
// @Tags         Technician
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        page_size query int false "Items per page, default is 10" example:"10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /technicians [get]
// @Security     BearerAuth
func (c *TechnicianController) GetTechnicians() {
	page, _ := strconv.Atoi(c.Context.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	technicianService := c.Container.GetService("technician").(services.InterfaceTechnicianService)
	techs, total, err := technicianService.GetAllTechnicians(page, pageSize)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      techs,
	})
}

// GetTechnician 获取单个技师详情
// @Summary      Get Technician By ID
// @Description  Get details of a specific technician by ID
// @Tags         Technician
// @Accept       json
// @Produce      json
// @Param        id path int true "Technician ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /technicians/{id} [get]
// @Security     BearerAuth
func (c *TechnicianController) GetTechnician() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	technicianService := c.Container.GetService("technician").(services.InterfaceTechnicianService)
	tech, err := technicianService.GetTechnicianByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, tech)
}

// CreateTechnicianRequest 表示创建技师的请求体
type CreateTechnicianRequest struct {
	Username string `json:"username" binding:"required" example:"mike"`
	Password string `json:"password" binding:"required" example:"Field@123"`
	Name     string `json:"name" binding:"required" example:"Mike Rivera"`
	Phone    string `json:"phone" example:"555-0108"`
	Role     string `json:"role" example:"tech"` // 可选值: admin, lead, tech
}

// CreateTechnician 创建新技师账号
// @Summary      Create Technician
// @Description  Create a new technician account; the password is hashed before storage
// @Tags         Technician
// @Accept       json
// @Produce      json
// @Param        request body CreateTechnicianRequest true "Technician information"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /technicians [post]
// @Security     BearerAuth
func (c *TechnicianController) CreateTechnician() {
	var req CreateTechnicianRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	tech := &models.Technician{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     models.TechnicianRole(req.Role),
	}
	if tech.Role == "" {
		tech.Role = models.TechnicianRoleTech
	}

	technicianService := c.Container.GetService("technician").(services.InterfaceTechnicianService)
	if err := technicianService.CreateTechnician(tech); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功创建技师",
		"data": gin.H{
			"id":       tech.ID,
			"username": tech.Username,
			"name":     tech.Name,
			"role":     tech.Role,
		},
	})
}

// UpdateTechnicianRequest 表示更新技师的请求体
type UpdateTechnicianRequest struct {
	Name   string `json:"name" example:"Mike Rivera"`
	Phone  string `json:"phone" example:"555-0108"`
	Role   string `json:"role" example:"lead"`
	Status string `json:"status" example:"active"`
}

// UpdateTechnician 更新技师信息
// @Summary      Update Technician
// @Description  Update details of a technician with the specified ID; the password has its own endpoint
// @Tags         Technician
// @Accept       json
// @Produce      json
// @Param        id path int true "Technician ID" example:"1"
// @Param        request body UpdateTechnicianRequest true "Updated technician information"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /technicians/{id} [put]
// @Security     BearerAuth
func (c *TechnicianController) UpdateTechnician() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdateTechnicianRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	technicianService := c.Container.GetService("technician").(services.InterfaceTechnicianService)
	tech, err := technicianService.UpdateTechnician(uint(id), updates)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, tech)
}

// ChangePasswordRequest 表示修改密码的请求体
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"Field@123"`
	NewPassword string `json:"new_password" binding:"required" example:"Field@456"`
}

// ChangePassword 修改技师密码
// @Summary      Change Technician Password
// @Description  Change a technician's password after verifying the old one
// @Tags         Technician
// @Accept       json
// @Produce      json
// @Param        id path int true "Technician ID" example:"1"
// @Param        request body ChangePasswordRequest true "Old and new passwords"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse "Old password incorrect"
// @Failure      404  {object}  ErrorResponse
// @Router       /technicians/{id}/password [put]
// @Security     BearerAuth
func (c *TechnicianController) ChangePassword() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req ChangePasswordRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	technicianService := c.Container.GetService("technician").(services.InterfaceTechnicianService)
	if err := technicianService.ChangePassword(uint(id), req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// DeleteTechnician 删除技师账号
// @Summary      Delete Technician
// @Description  Delete a technician account with the specified ID
// @Tags         Technician
// @Accept       json
// @Produce      json
// @Param        id path int true "Technician ID" example:"2"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /technicians/{id} [delete]
// @Security     BearerAuth
func (c *TechnicianController) DeleteTechnician() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	technicianService := c.Container.GetService("technician").(services.InterfaceTechnicianService)
	if err := technicianService.DeleteTechnician(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// HandleTechnicianFunc 返回一个处理技师请求的Gin处理函数
func HandleTechnicianFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewTechnicianController(ctx)

		switch method {
		case "getTechnicians":
			controller.GetTechnicians()
		case "getTechnician":
			controller.GetTechnician()
		case "createTechnician":
			controller.CreateTechnician()
		case "updateTechnician":
			controller.UpdateTechnician()
		case "changePassword":
			controller.ChangePassword()
		case "deleteTechnician":
			controller.DeleteTechnician()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
