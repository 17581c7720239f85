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

// LinkController 处理线缆两端设备关联和窗帘关联的请求
type LinkController struct {
	BaseControllerImpl
}

// NewLinkController 创建一个新的关联控制器
func (f *ControllerFactory) NewLinkController(ctx *gin.Context) *LinkController {
	return &LinkController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// loadWireDrop 加载含关联的线缆记录
func (c *LinkController) loadWireDrop() (*models.WireDrop, bool) {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return nil, false
	}

	wireDropService := c.Container.GetService("wire_drop").(services.InterfaceWireDropService)
	drop, err := wireDropService.GetWireDropByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return nil, false
	}
	return drop, true
}

// GetRoomEndCandidates 获取房间端候选设备，同房间优先
// @Summary      Get Room-End Candidates
// @Description  Get rankable equipment candidates for the room end of a wire drop; same-room equipment first, the rest grouped by room
// @Tags         Link
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/room_end/candidates [get]
// @Security     BearerAuth
func (c *LinkController) GetRoomEndCandidates() {
	drop, ok := c.loadWireDrop()
	if !ok {
		return
	}

	linkService := c.Container.GetService("equipment_link").(services.InterfaceEquipmentLinkService)
	candidates, err := linkService.EligibleEquipment(drop.ProjectID)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	var currentID uint
	if link := drop.RoomEndLink(); link != nil {
		currentID = link.ProjectEquipmentID
	}

	response.Success(c.Context, linkService.RankForRoomEnd(candidates, drop.RoomName, currentID))
}

// SetRoomEndRequest 表示设置房间端设备的请求体
type SetRoomEndRequest struct {
	EquipmentID *uint `json:"equipment_id" example:"7"` // null清空关联
}

// SetRoomEnd 设置房间端设备，替换语义
// @Summary      Set Room-End Equipment
// @Description  Set the single room-end equipment link; replaces any previous selection, null clears it. Returns the authoritative wire drop.
// @Tags         Link
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        request body SetRoomEndRequest true "Equipment selection"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse "Equipment not linkable"
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/room_end [put]
// @Security     BearerAuth
func (c *LinkController) SetRoomEnd() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req SetRoomEndRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	linkService := c.Container.GetService("equipment_link").(services.InterfaceEquipmentLinkService)
	drop, err := linkService.SetRoomEnd(uint(id), req.EquipmentID, actorUsername(c.Context))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, drop)
}

// GetHeadEndCandidates 获取机柜端候选设备
// @Summary      Get Head-End Candidates
// @Description  Get rankable equipment candidates for the head end; head-end-room equipment first, already-selected equipment excluded
// @Tags         Link
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/head_end/candidates [get]
// @Security     BearerAuth
func (c *LinkController) GetHeadEndCandidates() {
	drop, ok := c.loadWireDrop()
	if !ok {
		return
	}

	linkService := c.Container.GetService("equipment_link").(services.InterfaceEquipmentLinkService)
	candidates, err := linkService.EligibleEquipment(drop.ProjectID)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	var selectedIDs []uint
	for _, link := range drop.EquipmentLinks {
		if link.LinkSide == models.LinkSideHeadEnd {
			selectedIDs = append(selectedIDs, link.ProjectEquipmentID)
		}
	}

	response.Success(c.Context, linkService.RankForHeadEnd(candidates, selectedIDs))
}

// HeadEndRequest 表示机柜端设备操作的请求体
type HeadEndRequest struct {
	EquipmentID uint `json:"equipment_id" binding:"required" example:"12"`
}

// AddHeadEnd 添加机柜端设备
// @Summary      Add Head-End Equipment
// @Description  Add an equipment link on the head end; multi-select, the first added becomes primary. Adding an existing link is a no-op.
// @Tags         Link
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        request body HeadEndRequest true "Equipment to add"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/head_end [post]
// @Security     BearerAuth
func (c *LinkController) AddHeadEnd() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req HeadEndRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	linkService := c.Container.GetService("equipment_link").(services.InterfaceEquipmentLinkService)
	drop, err := linkService.AddHeadEnd(uint(id), req.EquipmentID, actorUsername(c.Context))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, drop)
}

// RemoveHeadEnd 移除机柜端设备
// @Summary      Remove Head-End Equipment
// @Description  Remove a head-end equipment link; removing a link that does not exist succeeds. When the primary is removed the oldest remaining link is promoted.
// @Tags         Link
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        equipment_id path int true "Equipment ID" example:"12"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/head_end/{equipment_id} [delete]
// @Security     BearerAuth
func (c *LinkController) RemoveHeadEnd() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	equipmentID, err := strconv.Atoi(c.Context.Param("equipment_id"))
	if err != nil {
		response.ParamError(c.Context, "无效的equipment_id参数")
		return
	}

	linkService := c.Container.GetService("equipment_link").(services.InterfaceEquipmentLinkService)
	drop, err := linkService.RemoveHeadEnd(uint(id), uint(equipmentID))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, drop)
}

// SetPrimaryHeadEnd 指定机柜端主显示设备
// @Summary      Set Primary Head-End Equipment
// @Description  Mark one of the linked head-end equipment as the primary display device
// @Tags         Link
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        request body HeadEndRequest true "Equipment to promote"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/head_end/primary [put]
// @Security     BearerAuth
func (c *LinkController) SetPrimaryHeadEnd() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req HeadEndRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	linkService := c.Container.GetService("equipment_link").(services.InterfaceEquipmentLinkService)
	drop, err := linkService.SetPrimaryHeadEnd(uint(id), req.EquipmentID)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, drop)
}

// GetShadeCandidates 获取窗帘候选，同房间优先
// @Summary      Get Shade Candidates
// @Description  Get rankable shade candidates for a wire drop; same-room shades first
// @Tags         Link
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/shade_link/candidates [get]
// @Security     BearerAuth
func (c *LinkController) GetShadeCandidates() {
	drop, ok := c.loadWireDrop()
	if !ok {
		return
	}

	shadeService := c.Container.GetService("shade").(services.InterfaceShadeService)
	shades, err := shadeService.GetShadesByProject(drop.ProjectID)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	var currentID uint
	if drop.ShadeLink != nil {
		currentID = drop.ShadeLink.ProjectShadeID
	}

	shadeLinkService := c.Container.GetService("shade_link").(services.InterfaceShadeLinkService)
	response.Success(c.Context, shadeLinkService.RankShades(shades, drop.RoomName, currentID))
}

// SetShadeLinkRequest 表示设置窗帘关联的请求体
type SetShadeLinkRequest struct {
	ShadeID *uint `json:"shade_id" example:"3"` // null清空关联
}

// SetShadeLink 设置窗帘关联，替换语义
// @Summary      Set Shade Link
// @Description  Set the single shade link of a wire drop; replaces any previous selection, null clears it
// @Tags         Link
// @Accept       json
// @Produce      json
// @Param        id path int true "Wire Drop ID" example:"1"
// @Param        request body SetShadeLinkRequest true "Shade selection"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /wire_drops/{id}/shade_link [put]
// @Security     BearerAuth
func (c *LinkController) SetShadeLink() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req SetShadeLinkRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	shadeLinkService := c.Container.GetService("shade_link").(services.InterfaceShadeLinkService)
	drop, err := shadeLinkService.SetShadeLink(uint(id), req.ShadeID, actorUsername(c.Context))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, drop)
}

// HandleLinkFunc 返回一个处理关联请求的Gin处理函数
func HandleLinkFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewLinkController(ctx)

		switch method {
		case "getRoomEndCandidates":
			controller.GetRoomEndCandidates()
		case "setRoomEnd":
			controller.SetRoomEnd()
		case "getHeadEndCandidates":
			controller.GetHeadEndCandidates()
		case "addHeadEnd":
			controller.AddHeadEnd()
		case "removeHeadEnd":
			controller.RemoveHeadEnd()
		case "setPrimaryHeadEnd":
			controller.SetPrimaryHeadEnd()
		case "getShadeCandidates":
			controller.GetShadeCandidates()
		case "setShadeLink":
			controller.SetShadeLink()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
