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

// ProjectController 处理项目相关的请求
type ProjectController struct {
	BaseControllerImpl
}

// NewProjectController 创建一个新的项目控制器
func (f *ControllerFactory) NewProjectController(ctx *gin.Context) *ProjectController {
	return &ProjectController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetProjects 获取项目列表
// @Summary      Get Project List
// @Description  Get a paginated list of installation projects
// @Tags         Project
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        page_size query int false "Items per page, default is 10" example:"10"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /projects [get]
// @Security     BearerAuth
func (c *ProjectController) GetProjects() {
	page, _ := strconv.Atoi(c.Context.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	projectService := c.Container.GetService("project").(services.InterfaceProjectService)
	projects, total, err := projectService.GetAllProjects(page, pageSize)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      projects,
	})
}

// GetProject 获取单个项目详情
// @Summary      Get Project By ID
// @Description  Get details of a specific project by ID
// @Tags         Project
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id} [get]
// @Security     BearerAuth
func (c *ProjectController) GetProject() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	projectService := c.Container.GetService("project").(services.InterfaceProjectService)
	project, err := projectService.GetProjectByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, project)
}

// GetProjectSummary 获取项目完成度汇总
// @Summary      Get Project Completion Summary
// @Description  Get per-stage completion counts and per-drop percentages for a project
// @Tags         Project
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id}/summary [get]
// @Security     BearerAuth
func (c *ProjectController) GetProjectSummary() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	completionService := c.Container.GetService("completion").(services.InterfaceCompletionService)
	summary, err := completionService.ProjectSummary(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, summary)
}

// CreateProjectRequest 表示创建项目的请求体
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required" example:"Smith Residence"`
	ClientName  string `json:"client_name" example:"John Smith"`
	Address     string `json:"address" example:"42 Lakeside Dr"`
	Status      string `json:"status" example:"planning"` // 可选值: planning, active, on_hold, completed
	DoubleBlind bool   `json:"double_blind" example:"false"`
}

// CreateProject 创建新项目
// @Summary      Create Project
// @Description  Create a new installation project
// @Tags         Project
// @Accept       json
// @Produce      json
// @Param        request body CreateProjectRequest true "Project information"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /projects [post]
// @Security     BearerAuth
func (c *ProjectController) CreateProject() {
	var req CreateProjectRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	project := &models.Project{
		Name:        req.Name,
		ClientName:  req.ClientName,
		Address:     req.Address,
		Status:      models.ProjectStatus(req.Status),
		DoubleBlind: req.DoubleBlind,
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusPlanning
	}

	projectService := c.Container.GetService("project").(services.InterfaceProjectService)
	if err := projectService.CreateProject(project); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功创建项目",
		"data":    project,
	})
}

// UpdateProjectRequest 表示更新项目的请求体
type UpdateProjectRequest struct {
	Name        string `json:"name" example:"Smith Residence Phase 2"`
	ClientName  string `json:"client_name" example:"John Smith"`
	Address     string `json:"address" example:"42 Lakeside Dr"`
	Status      string `json:"status" example:"active"`
	DoubleBlind *bool  `json:"double_blind"`
}

// UpdateProject 更新项目信息
// @Summary      Update Project
// @Description  Update details of a project with the specified ID
// @Tags         Project
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID" example:"1"
// @Param        request body UpdateProjectRequest true "Updated project information"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id} [put]
// @Security     BearerAuth
func (c *ProjectController) UpdateProject() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdateProjectRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.ClientName != "" {
		updates["client_name"] = req.ClientName
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.DoubleBlind != nil {
		updates["double_blind"] = *req.DoubleBlind
	}

	projectService := c.Container.GetService("project").(services.InterfaceProjectService)
	project, err := projectService.UpdateProject(uint(id), updates)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, project)
}

// DeleteProject 删除项目
// @Summary      Delete Project
// @Description  Delete a project and all of its wire drops, equipment, shades and records
// @Tags         Project
// @Accept       json
// @Produce      json
// @Param        id path int true "Project ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id} [delete]
// @Security     BearerAuth
func (c *ProjectController) DeleteProject() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	projectService := c.Container.GetService("project").(services.InterfaceProjectService)
	if err := projectService.DeleteProject(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// HandleProjectFunc 返回一个处理项目请求的Gin处理函数
func HandleProjectFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewProjectController(ctx)

		switch method {
		case "getProjects":
			controller.GetProjects()
		case "getProject":
			controller.GetProject()
		case "getProjectSummary":
			controller.GetProjectSummary()
		case "createProject":
			controller.CreateProject()
		case "updateProject":
			controller.UpdateProject()
		case "deleteProject":
			controller.DeleteProject()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
