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

// EquipmentController 处理项目设备相关的请求
type EquipmentController struct {
	BaseControllerImpl
}

// NewEquipmentController 创建一个新的设备控制器
func (f *ControllerFactory) NewEquipmentController(ctx *gin.Context) *EquipmentController {
	return &EquipmentController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetEquipmentList 获取项目设备列表
// @Summary      Get Equipment List
// @Description  Get a paginated list of equipment on a project, ordered by room and name
// @Tags         Equipment
// @Accept       json
// @Produce      json
// @Param        project_id query int true "Project ID" example:"1"
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        page_size query int false "Items per page, default is 20" example:"20"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /equipment [get]
// @Security     BearerAuth
func (c *EquipmentController) GetEquipmentList() {
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

	equipmentService := c.Container.GetService("equipment").(services.InterfaceEquipmentService)
	items, total, err := equipmentService.GetEquipmentByProject(uint(projectID), page, pageSize)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      items,
	})
}

// GetEquipment 获取单个设备详情
// @Summary      Get Equipment By ID
// @Description  Get details of a specific piece of equipment by ID
// @Tags         Equipment
// @Accept       json
// @Produce      json
// @Param        id path int true "Equipment ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /equipment/{id} [get]
// @Security     BearerAuth
func (c *EquipmentController) GetEquipment() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	equipmentService := c.Container.GetService("equipment").(services.InterfaceEquipmentService)
	equipment, err := equipmentService.GetEquipmentByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, equipment)
}

// CreateEquipmentRequest 表示创建设备的请求体
type CreateEquipmentRequest struct {
	ProjectID       uint   `json:"project_id" binding:"required" example:"1"`
	Name            string `json:"name" binding:"required" example:"In-Wall Speaker"`
	Manufacturer    string `json:"manufacturer" example:"Sonance"`
	Model           string `json:"model" example:"VP66R"`
	PartNumber      string `json:"part_number" example:"93021"`
	RoomName        string `json:"room_name" example:"Media Room"`
	HeadEndRoom     bool   `json:"head_end_room" example:"false"`
	WireDropVisible bool   `json:"wire_drop_visible" example:"true"`
	IPAddress       string `json:"ip_address" example:""`
	MACAddress      string `json:"mac_address" example:""`
	HomeKitID       string `json:"homekit_id" example:""`
}

// CreateEquipment 创建新设备
// @Summary      Create Equipment
// @Description  Add a piece of equipment to a project
// @Tags         Equipment
// @Accept       json
// @Produce      json
// @Param        request body CreateEquipmentRequest true "Equipment information"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /equipment [post]
// @Security     BearerAuth
func (c *EquipmentController) CreateEquipment() {
	var req CreateEquipmentRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	equipment := &models.ProjectEquipment{
		ProjectID:       req.ProjectID,
		Name:            req.Name,
		Manufacturer:    req.Manufacturer,
		Model:           req.Model,
		PartNumber:      req.PartNumber,
		RoomName:        req.RoomName,
		HeadEndRoom:     req.HeadEndRoom,
		WireDropVisible: req.WireDropVisible,
		IPAddress:       req.IPAddress,
		MACAddress:      req.MACAddress,
		HomeKitID:       req.HomeKitID,
	}

	equipmentService := c.Container.GetService("equipment").(services.InterfaceEquipmentService)
	if err := equipmentService.CreateEquipment(equipment); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功创建设备",
		"data":    equipment,
	})
}

// ImportEquipmentRequest 表示批量导入设备的请求体
type ImportEquipmentRequest struct {
	ProjectID uint                      `json:"project_id" binding:"required" example:"1"`
	Equipment []models.ProjectEquipment `json:"equipment" binding:"required"`
}

// ImportEquipment 从报价工具批量导入设备
// @Summary      Import Equipment
// @Description  Bulk import equipment rows from the proposal tool
// @Tags         Equipment
// @Accept       json
// @Produce      json
// @Param        request body ImportEquipmentRequest true "Equipment rows to import"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /equipment/import [post]
// @Security     BearerAuth
func (c *EquipmentController) ImportEquipment() {
	var req ImportEquipmentRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	equipmentService := c.Container.GetService("equipment").(services.InterfaceEquipmentService)
	imported, err := equipmentService.ImportEquipment(req.ProjectID, req.Equipment)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, gin.H{
		"imported": imported,
		"total":    len(req.Equipment),
	})
}

// UpdateEquipmentRequest 表示更新设备的请求体
type UpdateEquipmentRequest struct {
	Name            string `json:"name" example:"In-Wall Speaker"`
	Manufacturer    string `json:"manufacturer" example:"Sonance"`
	Model           string `json:"model" example:"VP66R"`
	PartNumber      string `json:"part_number" example:"93021"`
	RoomName        string `json:"room_name" example:"Media Room"`
	HeadEndRoom     *bool  `json:"head_end_room"`
	WireDropVisible *bool  `json:"wire_drop_visible"`
	IPAddress       string `json:"ip_address" example:"10.0.1.40"`
	MACAddress      string `json:"mac_address" example:""`
	HomeKitID       string `json:"homekit_id" example:""`
}

// UpdateEquipment 更新设备信息
// @Summary      Update Equipment
// @Description  Update details of a piece of equipment with the specified ID
// @Tags         Equipment
// @Accept       json
// @Produce      json
// @Param        id path int true "Equipment ID" example:"1"
// @Param        request body UpdateEquipmentRequest true "Updated equipment information"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /equipment/{id} [put]
// @Security     BearerAuth
func (c *EquipmentController) UpdateEquipment() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdateEquipmentRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Manufacturer != "" {
		updates["manufacturer"] = req.Manufacturer
	}
	if req.Model != "" {
		updates["model"] = req.Model
	}
	if req.PartNumber != "" {
		updates["part_number"] = req.PartNumber
	}
	if req.RoomName != "" {
		updates["room_name"] = req.RoomName
	}
	if req.HeadEndRoom != nil {
		updates["head_end_room"] = *req.HeadEndRoom
	}
	if req.WireDropVisible != nil {
		updates["wire_drop_visible"] = *req.WireDropVisible
	}
	if req.IPAddress != "" {
		updates["ip_address"] = req.IPAddress
	}
	if req.MACAddress != "" {
		updates["mac_address"] = req.MACAddress
	}
	if req.HomeKitID != "" {
		updates["homekit_id"] = req.HomeKitID
	}

	equipmentService := c.Container.GetService("equipment").(services.InterfaceEquipmentService)
	equipment, err := equipmentService.UpdateEquipment(uint(id), updates)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, equipment)
}

// DeleteEquipment 删除设备
// @Summary      Delete Equipment
// @Description  Delete a piece of equipment; wire drop links pointing at it are removed as well
// @Tags         Equipment
// @Accept       json
// @Produce      json
// @Param        id path int true "Equipment ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /equipment/{id} [delete]
// @Security     BearerAuth
func (c *EquipmentController) DeleteEquipment() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	equipmentService := c.Container.GetService("equipment").(services.InterfaceEquipmentService)
	if err := equipmentService.DeleteEquipment(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// HandleEquipmentFunc 返回一个处理设备请求的Gin处理函数
func HandleEquipmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewEquipmentController(ctx)

		switch method {
		case "getEquipmentList":
			controller.GetEquipmentList()
		case "getEquipment":
			controller.GetEquipment()
		case "createEquipment":
			controller.CreateEquipment()
		case "importEquipment":
			controller.ImportEquipment()
		case "updateEquipment":
			controller.UpdateEquipment()
		case "deleteEquipment":
			controller.DeleteEquipment()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
