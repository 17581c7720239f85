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

// StakeholderController 处理项目干系人相关的请求
type StakeholderController struct {
	BaseControllerImpl
}

// NewStakeholderController 创建一个新的干系人控制器
func (f *ControllerFactory) NewStakeholderController(ctx *gin.Context) *StakeholderController {
	return &StakeholderController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetStakeholders 获取项目干系人列表
// @Summary      Get Stakeholder List
// @Description  Get all stakeholders of a project, ordered by role and name
// @Tags         Stakeholder
// @Accept       json
// @Produce      json
// @Param        project_id query int true "Project ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /stakeholders [get]
// @Security     BearerAuth
func (c *StakeholderController) GetStakeholders() {
	projectID, err := strconv.Atoi(c.Context.Query("project_id"))
	if err != nil || projectID < 1 {
		response.ParamError(c.Context, "无效的project_id参数")
		return
	}

	stakeholderService := c.Container.GetService("stakeholder").(services.InterfaceStakeholderService)
	stakeholders, err := stakeholderService.GetStakeholdersByProject(uint(projectID))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, stakeholders)
}

// CreateStakeholderRequest 表示创建干系人的请求体
type CreateStakeholderRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required" example:"1"`
	Name        string `json:"name" binding:"required" example:"Dana Builder"`
	Role        string `json:"role" example:"builder"` // 可选值: client, builder, electrician, designer
	Email       string `json:"email" example:"dana@example.com"`
	Phone       string `json:"phone" example:"555-0142"`
	NotifyEmail bool   `json:"notify_email" example:"true"`
}

// CreateStakeholder 创建新干系人
// @Summary      Create Stakeholder
// @Description  Add a contact (client, builder, designer...) to a project
// @Tags         Stakeholder
// @Accept       json
// @Produce      json
// @Param        request body CreateStakeholderRequest true "Stakeholder information"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /stakeholders [post]
// @Security     BearerAuth
func (c *StakeholderController) CreateStakeholder() {
	var req CreateStakeholderRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	stakeholder := &models.Stakeholder{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Role:        req.Role,
		Email:       req.Email,
		Phone:       req.Phone,
		NotifyEmail: req.NotifyEmail,
	}

	stakeholderService := c.Container.GetService("stakeholder").(services.InterfaceStakeholderService)
	if err := stakeholderService.CreateStakeholder(stakeholder); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功创建干系人",
		"data":    stakeholder,
	})
}

// UpdateStakeholderRequest 表示更新干系人的请求体
type UpdateStakeholderRequest struct {
	Name        string `json:"name" example:"Dana Builder"`
	Role        string `json:"role" example:"builder"`
	Email       string `json:"email" example:"dana@example.com"`
	Phone       string `json:"phone" example:"555-0142"`
	NotifyEmail *bool  `json:"notify_email"`
}

// UpdateStakeholder 更新干系人信息
// @Summary      Update Stakeholder
// @Description  Update details of a stakeholder with the specified ID
// @Tags         Stakeholder
// @Accept       json
// @Produce      json
// @Param        id path int true "Stakeholder ID" example:"1"
// @Param        request body UpdateStakeholderRequest true "Updated stakeholder information"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /stakeholders/{id} [put]
// @Security     BearerAuth
func (c *StakeholderController) UpdateStakeholder() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdateStakeholderRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.NotifyEmail != nil {
		updates["notify_email"] = *req.NotifyEmail
	}

	stakeholderService := c.Container.GetService("stakeholder").(services.InterfaceStakeholderService)
	stakeholder, err := stakeholderService.UpdateStakeholder(uint(id), updates)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, stakeholder)
}

// DeleteStakeholder 删除干系人
// @Summary      Delete Stakeholder
// @Description  Delete a stakeholder with the specified ID
// @Tags         Stakeholder
// @Accept       json
// @Produce      json
// @Param        id path int true "Stakeholder ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /stakeholders/{id} [delete]
// @Security     BearerAuth
func (c *StakeholderController) DeleteStakeholder() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	stakeholderService := c.Container.GetService("stakeholder").(services.InterfaceStakeholderService)
	if err := stakeholderService.DeleteStakeholder(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// HandleStakeholderFunc 返回一个处理干系人请求的Gin处理函数
func HandleStakeholderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewStakeholderController(ctx)

		switch method {
		case "getStakeholders":
			controller.GetStakeholders()
		case "createStakeholder":
			controller.CreateStakeholder()
		case "updateStakeholder":
			controller.UpdateStakeholder()
		case "deleteStakeholder":
			controller.DeleteStakeholder()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
