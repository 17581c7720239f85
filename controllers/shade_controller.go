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

// ShadeController 处理窗帘相关的请求
type ShadeController struct {
	BaseControllerImpl
}

// NewShadeController 创建一个新的窗帘控制器
func (f *ControllerFactory) NewShadeController(ctx *gin.Context) *ShadeController {
	return &ShadeController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetShades 获取项目窗帘列表
// @Summary      Get Shade List
// @Description  Get all shades on a project, ordered by room and name
// @Tags         Shade
// @Accept       json
// @Produce      json
// @Param        project_id query int true "Project ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /shades [get]
// @Security     BearerAuth
func (c *ShadeController) GetShades() {
	projectID, err := strconv.Atoi(c.Context.Query("project_id"))
	if err != nil || projectID < 1 {
		response.ParamError(c.Context, "无效的project_id参数")
		return
	}

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	shades, err := shadeService.GetShadesByProject(uint(projectID))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, shades)
}

// GetShade 获取单个窗帘详情
// @Summary      Get Shade By ID
// @Description  Get details of a specific shade by ID
// @Tags         Shade
// @Accept       json
// @Produce      json
// @Param        id path int true "Shade ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /shades/{id} [get]
// @Security     BearerAuth
func (c *ShadeController) GetShade() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	shade, err := shadeService.GetShadeByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, shade)
}

// CreateShadeRequest 表示创建窗帘的请求体
type CreateShadeRequest struct {
	ProjectID uint   `json:"project_id" binding:"required" example:"1"`
	Name      string `json:"name" binding:"required" example:"South Window"`
	RoomName  string `json:"room_name" example:"Master Bedroom"`
	Window    string `json:"window" example:"W-204"`
	Notes     string `json:"notes" example:""`
}

// CreateShade 创建新窗帘
// @Summary      Create Shade
// @Description  Add a shade opening to a project
// @Tags         Shade
// @Accept       json
// @Produce      json
// @Param        request body CreateShadeRequest true "Shade information"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /shades [post]
// @Security     BearerAuth
func (c *ShadeController) CreateShade() {
	var req CreateShadeRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	shade := &models.ProjectShade{
		ProjectID: req.ProjectID,
		Name:      req.Name,
		RoomName:  req.RoomName,
		Window:    req.Window,
		Notes:     req.Notes,
	}

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	if err := shadeService.CreateShade(shade); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功创建窗帘",
		"data":    shade,
	})
}

// UpdateShadeRequest 表示更新窗帘的请求体
type UpdateShadeRequest struct {
	Name     string `json:"name" example:"South Window"`
	RoomName string `json:"room_name" example:"Master Bedroom"`
	Window   string `json:"window" example:"W-204"`
}

// UpdateShade 更新窗帘基本信息
// @Summary      Update Shade
// @Description  Update details of a shade with the specified ID
// @Tags         Shade
// @Accept       json
// @Produce      json
// @Param        id path int true "Shade ID" example:"1"
// @Param        request body UpdateShadeRequest true "Updated shade information"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /shades/{id} [put]
// @Security     BearerAuth
func (c *ShadeController) UpdateShade() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdateShadeRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.RoomName != "" {
		updates["room_name"] = req.RoomName
	}
	if req.Window != "" {
		updates["window"] = req.Window
	}

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	shade, err := shadeService.UpdateShade(uint(id), updates)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, shade)
}

// UpdateShadeNotes 更新窗帘备注，写入是防抖的
// @Summary      Update Shade Notes
// @Description  Queue a debounced write of the shade's free-text notes
// @Tags         Shade
// @Accept       json
// @Produce      json
// @Param        id path int true "Shade ID" example:"1"
// @Param        request body UpdateNotesRequest true "New notes text"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /shades/{id}/notes [put]
// @Security     BearerAuth
func (c *ShadeController) UpdateShadeNotes() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdateNotesRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	if _, err := shadeService.GetShadeByID(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	noteSaver := c.Container.GetService("note_saver").(services.InterfaceNoteSaver)
	noteSaver.QueueShadeNotes(uint(id), req.Notes)

	response.Success(c.Context, nil)
}

// SaveMeasurementRequest 表示保存一次测量的请求体
type SaveMeasurementRequest struct {
	WidthTop    float64 `json:"width_top" example:"48.125"`
	WidthMiddle float64 `json:"width_middle" example:"48.0625"`
	WidthBottom float64 `json:"width_bottom" example:"48.125"`
	Height      float64 `json:"height" example:"62.5"`
	MountDepth  float64 `json:"mount_depth" example:"4.25"`
	Complete    bool    `json:"complete" example:"true"`
}

// SaveMeasurement 保存一次测量
// @Summary      Save Shade Measurement
// @Description  Save one measurement pass (m1 or m2) for a shade; completing a pass stamps the measuring technician
// @Tags         Shade
// @Accept       json
// @Produce      json
// @Param        id path int true "Shade ID" example:"1"
// @Param        pass path string true "Measurement pass: m1 or m2" example:"m1"
// @Param        request body SaveMeasurementRequest true "Measurement values"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /shades/{id}/measurements/{pass} [put]
// @Security     BearerAuth
func (c *ShadeController) SaveMeasurement() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	pass := models.MeasurePass(c.Context.Param("pass"))

	var req SaveMeasurementRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	input := services.MeasurementInput{
		WidthTop:    req.WidthTop,
		WidthMiddle: req.WidthMiddle,
		WidthBottom: req.WidthBottom,
		Height:      req.Height,
		MountDepth:  req.MountDepth,
		Complete:    req.Complete,
	}

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	shade, err := shadeService.SaveMeasurement(uint(id), pass, input, actorUsername(c.Context))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, shade)
}

// GetMeasurement 获取一次测量，按当前查看者套用盲复核规则
// @Summary      Get Shade Measurement
// @Description  Get one measurement pass with blind-verification masking: in double-blind mode a pass completed by another technician is masked for the viewer
// @Tags         Shade
// @Accept       json
// @Produce      json
// @Param        id path int true "Shade ID" example:"1"
// @Param        pass path string true "Measurement pass: m1 or m2" example:"m2"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /shades/{id}/measurements/{pass} [get]
// @Security     BearerAuth
func (c *ShadeController) GetMeasurement() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	pass := models.MeasurePass(c.Context.Param("pass"))

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	shade, err := shadeService.GetShadeByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	projectService := c.Container.GetService("project").(services.InterfaceProjectService)
	project, err := projectService.GetProjectByID(shade.ProjectID)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	view, err := shadeService.MeasurementFor(actorUsername(c.Context), shade, pass, project.DoubleBlind)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, view)
}

// DeleteShade 删除窗帘
// @Summary      Delete Shade
// @Description  Delete a shade; wire drop links pointing at it are removed as well
// @Tags         Shade
// @Accept       json
// @Produce      json
// @Param        id path int true "Shade ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /shades/{id} [delete]
// @Security     BearerAuth
func (c *ShadeController) DeleteShade() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	if err := shadeService.DeleteShade(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// HandleShadeFunc 返回一个处理窗帘请求的Gin处理函数
func HandleShadeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewShadeController(ctx)

		switch method {
		case "getShades":
			controller.GetShades()
		case "getShade":
			controller.GetShade()
		case "createShade":
			controller.CreateShade()
		case "updateShade":
			controller.UpdateShade()
		case "updateShadeNotes":
			controller.UpdateShadeNotes()
		case "saveMeasurement":
			controller.SaveMeasurement()
		case "getMeasurement":
			controller.GetMeasurement()
		case "deleteShade":
			controller.DeleteShade()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
