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

// WireDropController 处理线缆相关的请求
type WireDropController struct {
	BaseControllerImpl
}

// NewWireDropController 创建一个新的线缆控制器
func (f *ControllerFactory) NewWireDropController(ctx *gin.Context) *WireDropController {
	return &WireDropController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetWireDrops 获取项目内的线缆列表
// @Summary      Get Wire Drop List
// @Description  Get a paginated list of wire drops for a project, ordered by room and name, with completion summaries
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        project_id query int true "Project ID" example:"1"
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        page_size query int false "Items per page, default is 20" example:"20"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /wire_drops [get]
// @Security     BearerAuth
func (c *WireDropController) GetWireDrops() {
	projectID, err := strconv.Atoi(c.Context.Query("project_id"))
	if err != nil || projectID < 1 {
		response.ParamError(c.Context, "无效的project_id参数")
		return
	}

	page, _ := strconv.Atoi(c.Context.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.Context.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	completionService := c.Container.GetService("completion").(services.InterfaceCompletionService)

	drops, total, err := wireDropService.GetWireDropsByProject(uint(projectID), page, pageSize)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	// 列表视图附带完成度和徽标
	summaries := make([]services.WireDropSummary, 0, len(drops))
	for i := range drops {
		summaries = append(summaries, completionService.Summarize(&drops[i]))
	}

	response.Success(c.Context, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      drops,
		"summaries": summaries,
	})
}

// GetWireDrop 获取单条线缆详情
// @Summary      Get Wire Drop By ID
// @Description  Get full details of a wire drop including stages and linked equipment
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id} [get]
// @Security     BearerAuth
func (c *WireDropController) GetWireDrop() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	drop, err := wireDropService.GetWireDropByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, drop)
}

// ScanWireDrop 扫码入口，按二维码编号查线缆
// @Summary      Get Wire Drop By QR Code
// @Description  Resolve a scanned QR code to the wire drop it identifies
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        uid path string true "Wire drop UID from the QR label" example:"WD-1A2B3C4D"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/scan/{uid} [get]
// @Security     BearerAuth
func (c *WireDropController) ScanWireDrop() {
	uid := c.Context.Param("uid")
	if uid == "" {
		response.ParamError(c.Context, "无效的uid参数")
		return
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	drop, err := wireDropService.GetWireDropByUID(uid)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, drop)
}

// GetNextIncomplete 引导式巡检：下一条预埋未完成的线缆
// @Summary      Get Next Incomplete Wire Drop
// @Description  Walk the project's drops in room/name order and return the next one whose prewire stage is incomplete
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        id path int true "Current wire drop ID" example:"1"
// @Success      200  {object}  map[string]interface{} "data is null when every drop is prewired"
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/next_incomplete [get]
// @Security     BearerAuth
func (c *WireDropController) GetNextIncomplete() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	completionService := c.Container.GetService("completion").(services.InterfaceCompletionService)

	drop, err := wireDropService.GetWireDropByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	next, err := completionService.NextIncomplete(drop.ProjectID, drop.ID)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	// next为nil表示项目内全部预埋完成
	response.Success(c.Context, next)
}

// CreateWireDropRequest 表示创建线缆的请求体
type CreateWireDropRequest struct {
	ProjectID uint   `json:"project_id" binding:"required" example:"1"`
	UID       string `json:"uid" example:"WD-1A2B3C4D"` // 留空自动生成
	Name      string `json:"name" binding:"required" example:"Left Surround"`
	RoomName  string `json:"room_name" example:"Media Room"`
	Floor     string `json:"floor" example:"2"`
	WireType  string `json:"wire_type" example:"16/2"`
	DropType  string `json:"drop_type" example:"speaker"`
	Auxiliary bool   `json:"auxiliary" example:"false"`
	Notes     string `json:"notes" example:""`
}

// CreateWireDrop 创建新线缆
// @Summary      Create Wire Drop
// @Description  Create a new wire drop; the QR UID is generated when omitted
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        request body CreateWireDropRequest true "Wire drop information"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /wire_drops [post]
// @Security     BearerAuth
func (c *WireDropController) CreateWireDrop() {
	var req CreateWireDropRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	drop := &models.WireDrop{
		ProjectID: req.ProjectID,
		UID:       req.UID,
		Name:      req.Name,
		RoomName:  req.RoomName,
		Floor:     req.Floor,
		WireType:  req.WireType,
		DropType:  req.DropType,
		Auxiliary: req.Auxiliary,
		Notes:     req.Notes,
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	if err := wireDropService.CreateWireDrop(drop); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功创建线缆",
		"data":    drop,
	})
}

// ImportWireDropsRequest 表示批量导入线缆的请求体
type ImportWireDropsRequest struct {
	ProjectID uint              `json:"project_id" binding:"required" example:"1"`
	WireDrops []models.WireDrop `json:"wire_drops" binding:"required"`
}

// ImportWireDrops 从图纸工具批量导入线缆
// @Summary      Import Wire Drops
// @Description  Bulk import wire drops from an external drawing tool; rows with duplicate UIDs are skipped
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        request body ImportWireDropsRequest true "Wire drops to import"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /wire_drops/import [post]
// @Security     BearerAuth
func (c *WireDropController) ImportWireDrops() {
	var req ImportWireDropsRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	imported, err := wireDropService.ImportWireDrops(req.ProjectID, req.WireDrops)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, gin.H{
		"imported": imported,
		"total":    len(req.WireDrops),
	})
}

// UpdateWireDropRequest 表示更新线缆的请求体
type UpdateWireDropRequest struct {
	UID       string `json:"uid" example:"WD-1A2B3C4D"`
	Name      string `json:"name" example:"Left Surround"`
	RoomName  string `json:"room_name" example:"Media Room"`
	Floor     string `json:"floor" example:"2"`
	WireType  string `json:"wire_type" example:"16/2"`
	DropType  string `json:"drop_type" example:"speaker"`
	Auxiliary *bool  `json:"auxiliary"`
}

// UpdateWireDrop 更新线缆基本信息
// @Summary      Update Wire Drop
// @Description  Update details of a wire drop with the specified ID
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        request body UpdateWireDropRequest true "Updated wire drop information"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id} [put]
// @Security     BearerAuth
func (c *WireDropController) UpdateWireDrop() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdateWireDropRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.UID != "" {
		updates["uid"] = req.UID
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.RoomName != "" {
		updates["room_name"] = req.RoomName
	}
	if req.Floor != "" {
		updates["floor"] = req.Floor
	}
	if req.WireType != "" {
		updates["wire_type"] = req.WireType
	}
	if req.DropType != "" {
		updates["drop_type"] = req.DropType
	}
	if req.Auxiliary != nil {
		updates["auxiliary"] = *req.Auxiliary
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	drop, err := wireDropService.UpdateWireDrop(uint(id), updates)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, drop)
}

// UpdateNotesRequest 表示更新线缆备注的请求体
type UpdateNotesRequest struct {
	Notes string `json:"notes" example:"Pulled through the east chase"`
}

// UpdateNotes 更新线缆备注，写入是防抖的
// @Summary      Update Wire Drop Notes
// @Description  Queue a debounced write of the wire drop's free-text notes
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        request body UpdateNotesRequest true "New notes text"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/notes [put]
// @Security     BearerAuth
func (c *WireDropController) UpdateNotes() {
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

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	if err := wireDropService.QueueNotes(uint(id), req.Notes); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// DeleteWireDrop 删除线缆
// @Summary      Delete Wire Drop
// @Description  Delete a wire drop and all of its stages and links; admin only, requires explicit confirmation in the client
// @Tags         WireDrop
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id} [delete]
// @Security     BearerAuth
func (c *WireDropController) DeleteWireDrop() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	if err := wireDropService.DeleteWireDrop(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// HandleWireDropFunc 返回一个处理线缆请求的Gin处理函数
func HandleWireDropFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewWireDropController(ctx)

		switch method {
		case "getWireDrops":
			controller.GetWireDrops()
		case "getWireDrop":
			controller.GetWireDrop()
		case "scanWireDrop":
			controller.ScanWireDrop()
		case "getNextIncomplete":
			controller.GetNextIncomplete()
		case "createWireDrop":
			controller.CreateWireDrop()
		case "importWireDrops":
			controller.ImportWireDrops()
		case "updateWireDrop":
			controller.UpdateWireDrop()
		case "updateNotes":
			controller.UpdateNotes()
		case "deleteWireDrop":
			controller.DeleteWireDrop()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
