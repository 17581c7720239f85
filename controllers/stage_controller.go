package controllers

import (
	"io"
	"net/http"
	"strconv"

	"wiretrack-http-service/internal/error/response"
	"wiretrack-http-service/models"
	"wiretrack-http-service/services"
	"wiretrack-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// StageController 处理线缆阶段相关的请求
type StageController struct {
	BaseControllerImpl
}

// NewStageController 创建一个新的阶段控制器
func (f *ControllerFactory) NewStageController(ctx *gin.Context) *StageController {
	return &StageController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// stageParams 解析路径中的线缆ID和阶段类型
func (c *StageController) stageParams() (uint, models.StageType, bool) {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return 0, "", false
	}

	stageType := models.StageType(c.Context.Param("type"))
	if !models.IsValidStageType(stageType) {
		response.ParamError(c.Context, "无效的阶段类型")
		return 0, "", false
	}

	return uint(id), stageType, true
}

// doubleBlindFor 查线缆所属项目是否开启双盲模式
func (c *StageController) doubleBlindFor(wireDropID uint) (bool, error) {
	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	drop, err := wireDropService.GetWireDropByID(wireDropID)
	if err != nil {
		return false, err
	}

	projectService := c.Container.GetService("project").(services.InterfaceProjectService)
	project, err := projectService.GetProjectByID(drop.ProjectID)
	if err != nil {
		return false, err
	}

	return project.DoubleBlind, nil
}

// GetStages 获取线缆的全部阶段，按当前查看者套用盲复核规则
// @Summary      Get Wire Drop Stages
// @Description  Get the three installation stages of a wire drop, with blind-verification masking applied for the current viewer
// @Tags         Stage
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/stages [get]
// @Security     BearerAuth
func (c *StageController) GetStages() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	stageService := c.Container.GetService("stage").(services.InterfaceStageService)
	stages, err := stageService.GetStages(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	doubleBlind, err := c.doubleBlindFor(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	viewer := actorUsername(c.Context)
	views := make([]services.StageView, 0, len(stages))
	for i := range stages {
		views = append(views, stageService.VisibilityFor(viewer, &stages[i], doubleBlind))
	}

	response.Success(c.Context, views)
}

// AttachPhoto 上传阶段照片
// @Summary      Attach Stage Photo
// @Description  Upload the photo for an installation stage; does not change completion state
// @Tags         Stage
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        type path string true "Stage type: prewire, trim_out or commission" example:"prewire"
// @Param        photo formData file true "Photo file"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Another photo operation is in flight"
// @Router       /wire_drops/{id}/stages/{type}/photo [post]
// @Security     BearerAuth
func (c *StageController) AttachPhoto() {
	c.putPhoto(false)
}

// ReplacePhoto 替换阶段照片
// @Summary      Replace Stage Photo
// @Description  Replace the existing photo of a stage; the old stored object is superseded, not deleted
// @Tags         Stage
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        type path string true "Stage type" example:"prewire"
// @Param        photo formData file true "Photo file"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse "No existing photo"
// @Failure      409  {object}  ErrorResponse
// @Router       /wire_drops/{id}/stages/{type}/photo [put]
// @Security     BearerAuth
func (c *StageController) ReplacePhoto() {
	c.putPhoto(true)
}

func (c *StageController) putPhoto(replace bool) {
	id, stageType, ok := c.stageParams()
	if !ok {
		return
	}

	file, err := c.Context.FormFile("photo")
	if err != nil {
		response.ParamError(c.Context, "缺少photo文件")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.ParamError(c.Context, "读取photo文件失败: "+err.Error())
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.ParamError(c.Context, "读取photo文件失败: "+err.Error())
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	stageService := c.Container.GetService("stage").(services.InterfaceStageService)

	var stage *models.WireDropStage
	if replace {
		stage, err = stageService.ReplacePhoto(c.Context.Request.Context(), id, stageType, data, contentType)
	} else {
		stage, err = stageService.AttachPhoto(c.Context.Request.Context(), id, stageType, data, contentType)
	}
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, stage)
}

// RemovePhoto 删除阶段照片，完成状态被强制回退
// @Summary      Remove Stage Photo
// @Description  Remove the stage photo; a completed stage is forced back to incomplete because completion without a photo is not a legal state
// @Tags         Stage
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        type path string true "Stage type" example:"prewire"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse "No photo to remove"
// @Router       /wire_drops/{id}/stages/{type}/photo [delete]
// @Security     BearerAuth
func (c *StageController) RemovePhoto() {
	id, stageType, ok := c.stageParams()
	if !ok {
		return
	}

	stageService := c.Container.GetService("stage").(services.InterfaceStageService)
	stage, err := stageService.RemovePhoto(id, stageType)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, stage)
}

// RegisterPendingPhoto 离线场景：登记待上传照片
// @Summary      Register Pending Photo
// @Description  Register a deferred photo upload taken while offline; the stage shows pending and does not satisfy completion until the upload lands
// @Tags         Stage
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        type path string true "Stage type" example:"prewire"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /wire_drops/{id}/stages/{type}/photo/pending [post]
// @Security     BearerAuth
func (c *StageController) RegisterPendingPhoto() {
	id, stageType, ok := c.stageParams()
	if !ok {
		return
	}

	stageService := c.Container.GetService("stage").(services.InterfaceStageService)
	stage, err := stageService.RegisterPendingPhoto(id, stageType, actorUsername(c.Context))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, stage)
}

// CompleteStageRequest 表示标记阶段完成的请求体
type CompleteStageRequest struct {
	Notes string `json:"notes" example:"Verified audio path end to end"` // 仅调试阶段保存
}

// MarkComplete 标记阶段完成
// @Summary      Mark Stage Complete
// @Description  Mark a stage complete. Prewire and trim-out require an uploaded photo; commission requires only the technician's sign-off and accepts notes.
// @Tags         Stage
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        type path string true "Stage type" example:"prewire"
// @Param        request body CompleteStageRequest false "Optional commission notes"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "Photo precondition not met"
// @Router       /wire_drops/{id}/stages/{type}/complete [post]
// @Security     BearerAuth
func (c *StageController) MarkComplete() {
	id, stageType, ok := c.stageParams()
	if !ok {
		return
	}

	var req CompleteStageRequest
	// 请求体可以为空
	_ = c.Context.ShouldBindJSON(&req)

	stageService := c.Container.GetService("stage").(services.InterfaceStageService)
	stage, err := stageService.MarkComplete(id, stageType, actorUsername(c.Context), req.Notes)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, stage)
}

// UndoComplete 撤销阶段完成
// @Summary      Undo Stage Completion
// @Description  Revert a stage to incomplete; the photo is kept
// @Tags         Stage
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        type path string true "Stage type" example:"commission"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/stages/{type}/complete [delete]
// @Security     BearerAuth
func (c *StageController) UndoComplete() {
	id, stageType, ok := c.stageParams()
	if !ok {
		return
	}

	stageService := c.Container.GetService("stage").(services.InterfaceStageService)
	stage, err := stageService.UndoComplete(id, stageType)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, stage)
}

// HandleStageFunc 返回一个处理阶段请求的Gin处理函数
func HandleStageFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewStageController(ctx)

		switch method {
		case "getStages":
			controller.GetStages()
		case "attachPhoto":
			controller.AttachPhoto()
		case "replacePhoto":
			controller.ReplacePhoto()
		case "removePhoto":
			controller.RemovePhoto()
		case "registerPendingPhoto":
			controller.RegisterPendingPhoto()
		case "markComplete":
			controller.MarkComplete()
		case "undoComplete":
			controller.UndoComplete()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
