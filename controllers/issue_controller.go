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

// IssueController 处理现场问题单相关的请求
type IssueController struct {
	BaseControllerImpl
}

// NewIssueController 创建一个新的问题单控制器
func (f *ControllerFactory) NewIssueController(ctx *gin.Context) *IssueController {
	return &IssueController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetIssues 获取项目问题单列表
// @Summary      Get Issue List
// @Description  Get a paginated list of field issues for a project, optionally filtered by status
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        project_id query int true "Project ID" example:"1"
// @Param        status query string false "Filter by status: open, blocked or resolved" example:"open"
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        page_size query int false "Items per page, default is 20" example:"20"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /issues [get]
// @Security     BearerAuth
func (c *IssueController) GetIssues() {
	projectID, err := strconv.Atoi(c.Context.Query("project_id"))
	if err != nil || projectID < 1 {
		response.ParamError(c.Context, "无效的project_id参数")
		return
	}

	status := models.IssueStatus(c.Context.Query("status"))
	page, _ := strconv.Atoi(c.Context.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	issues, total, err := issueService.GetIssuesByProject(uint(projectID), status, page, pageSize)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      issues,
	})
}

// GetIssue 获取单个问题单详情
// @Summary      Get Issue By ID
// @Description  Get details of a specific issue by ID
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        id path int true "Issue ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /issues/{id} [get]
// @Security     BearerAuth
func (c *IssueController) GetIssue() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	issue, err := issueService.GetIssueByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, issue)
}

// CreateIssueRequest 表示创建问题单的请求体
type CreateIssueRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required" example:"1"`
	WireDropID  *uint  `json:"wire_drop_id" example:"5"`
	Title       string `json:"title" binding:"required" example:"Drywall screw through Cat6"`
	Description string `json:"description" example:"Run needs to be repulled from the attic"`
	Priority    string `json:"priority" example:"high"` // 可选值: low, normal, high
}

// CreateIssue 创建新问题单
// @Summary      Create Issue
// @Description  Report a field issue, optionally tied to a wire drop; the reporter is taken from the session
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        request body CreateIssueRequest true "Issue information"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /issues [post]
// @Security     BearerAuth
func (c *IssueController) CreateIssue() {
	var req CreateIssueRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	issue := &models.Issue{
		ProjectID:   req.ProjectID,
		WireDropID:  req.WireDropID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      models.IssueStatusOpen,
		ReportedBy:  actorUsername(c.Context),
	}
	if issue.Priority == "" {
		issue.Priority = "normal"
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	if err := issueService.CreateIssue(issue); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功创建问题单",
		"data":    issue,
	})
}

// UpdateIssueRequest 表示更新问题单的请求体
type UpdateIssueRequest struct {
	Title       string `json:"title" example:"Drywall screw through Cat6"`
	Description string `json:"description" example:""`
	Status      string `json:"status" example:"blocked"` // 可选值: open, blocked, resolved
	Priority    string `json:"priority" example:"high"`
	AssignedTo  string `json:"assigned_to" example:"mike"`
}

// UpdateIssue 更新问题单
// @Summary      Update Issue
// @Description  Update details or status of an issue with the specified ID
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        id path int true "Issue ID" example:"1"
// @Param        request body UpdateIssueRequest true "Updated issue information"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /issues/{id} [put]
// @Security     BearerAuth
func (c *IssueController) UpdateIssue() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdateIssueRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.Priority != "" {
		updates["priority"] = req.Priority
	}
	if req.AssignedTo != "" {
		updates["assigned_to"] = req.AssignedTo
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	issue, err := issueService.UpdateIssue(uint(id), updates)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, issue)
}

// ResolveIssue 关闭问题单
// @Summary      Resolve Issue
// @Description  Mark an issue resolved, stamping the resolving technician
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        id path int true "Issue ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /issues/{id}/resolve [post]
// @Security     BearerAuth
func (c *IssueController) ResolveIssue() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	issue, err := issueService.ResolveIssue(uint(id), actorUsername(c.Context))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, issue)
}

// DeleteIssue 删除问题单
// @Summary      Delete Issue
// @Description  Delete an issue with the specified ID
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        id path int true "Issue ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /issues/{id} [delete]
// @Security     BearerAuth
func (c *IssueController) DeleteIssue() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	if err := issueService.DeleteIssue(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// HandleIssueFunc 返回一个处理问题单请求的Gin处理函数
func HandleIssueFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewIssueController(ctx)

		switch method {
		case "getIssues":
			controller.GetIssues()
		case "getIssue":
			controller.GetIssue()
		case "createIssue":
			controller.CreateIssue()
		case "updateIssue":
			controller.UpdateIssue()
		case "resolveIssue":
			controller.ResolveIssue()
		case "deleteIssue":
			controller.DeleteIssue()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
