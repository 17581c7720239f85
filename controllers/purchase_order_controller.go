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

// PurchaseOrderController 处理采购单相关的请求
type PurchaseOrderController struct {
	BaseControllerImpl
}

// NewPurchaseOrderController 创建一个新的采购单控制器
func (f *ControllerFactory) NewPurchaseOrderController(ctx *gin.Context) *PurchaseOrderController {
	return &PurchaseOrderController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// GetPurchaseOrders 获取项目采购单列表
// @Summary      Get Purchase Order List
// @Description  Get a paginated list of purchase orders for a project
// @Tags         PurchaseOrder
// @Accept       json
// @Produce      json
// @Param        project_id query int true "Project ID" example:"1"
// @Param        page query int false "Page number, default is 1" example:"1"
// @Param        page_size query int false "Items per page, default is 20" example:"20"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /purchase_orders [get]
// @Security     BearerAuth
func (c *PurchaseOrderController) GetPurchaseOrders() {
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
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	poService := c.Container.GetService("purchase_order").(services.InterfacePurchaseOrderService)
	orders, total, err := poService.GetPurchaseOrdersByProject(uint(projectID), page, pageSize)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"data":      orders,
	})
}

// GetPurchaseOrder 获取单个采购单详情
// @Summary      Get Purchase Order By ID
// @Description  Get details of a specific purchase order, including line items
// @Tags         PurchaseOrder
// @Accept       json
// @Produce      json
// @Param        id path int true "Purchase Order ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /purchase_orders/{id} [get]
// @Security     BearerAuth
func (c *PurchaseOrderController) GetPurchaseOrder() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	poService := c.Container.GetService("purchase_order").(services.InterfacePurchaseOrderService)
	po, err := poService.GetPurchaseOrderByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, po)
}

// CreatePurchaseOrderRequest 表示创建采购单的请求体
type CreatePurchaseOrderRequest struct {
	ProjectID uint                       `json:"project_id" binding:"required" example:"1"`
	PONumber  string                     `json:"po_number" binding:"required" example:"PO-2026-0142"`
	Vendor    string                     `json:"vendor" example:"ADI"`
	Items     []models.PurchaseOrderItem `json:"items"`
}

// CreatePurchaseOrder 创建新采购单
// @Summary      Create Purchase Order
// @Description  Create a purchase order with its line items
// @Tags         PurchaseOrder
// @Accept       json
// @Produce      json
// @Param        request body CreatePurchaseOrderRequest true "Purchase order information"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /purchase_orders [post]
// @Security     BearerAuth
func (c *PurchaseOrderController) CreatePurchaseOrder() {
	var req CreatePurchaseOrderRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	po := &models.PurchaseOrder{
		ProjectID: req.ProjectID,
		PONumber:  req.PONumber,
		Vendor:    req.Vendor,
		Status:    models.POStatusDraft,
		Items:     req.Items,
	}

	poService := c.Container.GetService("purchase_order").(services.InterfacePurchaseOrderService)
	if err := poService.CreatePurchaseOrder(po); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "成功创建采购单",
		"data":    po,
	})
}

// UpdatePurchaseOrderRequest 表示更新采购单的请求体
type UpdatePurchaseOrderRequest struct {
	Vendor string `json:"vendor" example:"ADI"`
	Status string `json:"status" example:"ordered"` // 可选值: draft, ordered, partial, received
}

// UpdatePurchaseOrder 更新采购单基本信息
// @Summary      Update Purchase Order
// @Description  Update vendor or status of a purchase order with the specified ID
// @Tags         PurchaseOrder
// @Accept       json
// @Produce      json
// @Param        id path int true "Purchase Order ID" example:"1"
// @Param        request body UpdatePurchaseOrderRequest true "Updated purchase order information"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /purchase_orders/{id} [put]
// @Security     BearerAuth
func (c *PurchaseOrderController) UpdatePurchaseOrder() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req UpdatePurchaseOrderRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Vendor != "" {
		updates["vendor"] = req.Vendor
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	poService := c.Container.GetService("purchase_order").(services.InterfacePurchaseOrderService)
	po, err := poService.UpdatePurchaseOrder(uint(id), updates)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, po)
}

// ReceiveItemsRequest 表示登记到货的请求体
type ReceiveItemsRequest struct {
	Items []services.ReceiveItemInput `json:"items" binding:"required"`
}

// ReceiveItems 登记到货数量
// @Summary      Receive Purchase Order Items
// @Description  Record received quantities per line; the order moves to partial or received and the receiving technician is stamped when complete
// @Tags         PurchaseOrder
// @Accept       json
// @Produce      json
// @Param        id path int true "Purchase Order ID" example:"1"
// @Param        request body ReceiveItemsRequest true "Received quantities"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /purchase_orders/{id}/receive [post]
// @Security     BearerAuth
func (c *PurchaseOrderController) ReceiveItems() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	var req ReceiveItemsRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Context, "无效的请求参数: "+err.Error())
		return
	}

	poService := c.Container.GetService("purchase_order").(services.InterfacePurchaseOrderService)
	po, err := poService.ReceiveItems(uint(id), req.Items, actorUsername(c.Context))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, po)
}

// DeletePurchaseOrder 删除采购单
// @Summary      Delete Purchase Order
// @Description  Delete a purchase order and its line items
// @Tags         PurchaseOrder
// @Accept       json
// @Produce      json
// @Param        id path int true "Purchase Order ID" example:"1"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /purchase_orders/{id} [delete]
// @Security     BearerAuth
func (c *PurchaseOrderController) DeletePurchaseOrder() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		response.ParamError(c.Context, "无效的ID参数")
		return
	}

	poService := c.Container.GetService("purchase_order").(services.InterfacePurchaseOrderService)
	if err := poService.DeletePurchaseOrder(uint(id)); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	response.Success(c.Context, nil)
}

// HandlePurchaseOrderFunc 返回一个处理采购单请求的Gin处理函数
func HandlePurchaseOrderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewPurchaseOrderController(ctx)

		switch method {
		case "getPurchaseOrders":
			controller.GetPurchaseOrders()
		case "getPurchaseOrder":
			controller.GetPurchaseOrder()
		case "createPurchaseOrder":
			controller.CreatePurchaseOrder()
		case "updatePurchaseOrder":
			controller.UpdatePurchaseOrder()
		case "receiveItems":
			controller.ReceiveItems()
		case "deletePurchaseOrder":
			controller.DeletePurchaseOrder()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}
