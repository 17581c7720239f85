package controllers

import (
	"errors"

	"wiretrack-http-service/internal/error/code"
	"wiretrack-http-service/internal/error/response"
	"wiretrack-http-service/services"
	"wiretrack-http-service/services/container"

	"github.com/gin-gonic/gin"
)

// BaseController 是所有控制器的基础接口
type BaseController interface {
	// 获取服务容器
	GetContainer() *container.ServiceContainer
	// 获取Gin上下文
	GetContext() *gin.Context
}

// BaseControllerImpl 是控制器的基础实现
type BaseControllerImpl struct {
	Container *container.ServiceContainer
	Context   *gin.Context
}

// GetContainer 实现 BaseController 接口
func (c *BaseControllerImpl) GetContainer() *container.ServiceContainer {
	return c.Container
}

// GetContext 实现 BaseController 接口
func (c *BaseControllerImpl) GetContext() *gin.Context {
	return c.Context
}

// ControllerFactory 用于创建控制器的工厂
type ControllerFactory struct {
	Container *container.ServiceContainer
}

// NewControllerFactory 创建一个新的控制器工厂
func NewControllerFactory(container *container.ServiceContainer) *ControllerFactory {
	return &ControllerFactory{
		Container: container,
	}
}

// actorUsername 从JWT中间件写入的上下文取当前操作人落款
func actorUsername(ctx *gin.Context) string {
	return ctx.GetString("username")
}

// respondServiceError 把服务层哨兵错误映射为统一错误码响应
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTechnicianNotFound):
		response.Fail(ctx, code.ErrTechnicianNotFound, nil)
	case errors.Is(err, services.ErrTechnicianExists):
		response.Fail(ctx, code.ErrTechnicianAlreadyExist, nil)
	case errors.Is(err, services.ErrPasswordIncorrect):
		response.Fail(ctx, code.ErrTechnicianPasswordIncorrect, nil)
	case errors.Is(err, services.ErrProjectNotFound):
		response.Fail(ctx, code.ErrProjectNotFound, nil)
	case errors.Is(err, services.ErrWireDropNotFound):
		response.Fail(ctx, code.ErrWireDropNotFound, nil)
	case errors.Is(err, services.ErrWireDropUIDTaken):
		response.Fail(ctx, code.ErrWireDropAlreadyExist, nil)
	case errors.Is(err, services.ErrStageNotFound):
		response.Fail(ctx, code.ErrStageNotFound, nil)
	case errors.Is(err, services.ErrInvalidStageType):
		response.Fail(ctx, code.ErrStageInvalidType, nil)
	case errors.Is(err, services.ErrPhotoRequired):
		response.Fail(ctx, code.ErrStagePhotoRequired, nil)
	case errors.Is(err, services.ErrPhotoNotFound):
		response.Fail(ctx, code.ErrStagePhotoNotFound, nil)
	case errors.Is(err, services.ErrStageBusy):
		response.Fail(ctx, code.ErrStageBusy, nil)
	case errors.Is(err, services.ErrSignOffRequired):
		response.Fail(ctx, code.ErrStageSignOffRequired, nil)
	case errors.Is(err, services.ErrPhotoUpload):
		response.FailWithMessage(ctx, code.ErrPhotoUpload, err.Error(), nil)
	case errors.Is(err, services.ErrEquipmentNotFound):
		response.Fail(ctx, code.ErrEquipmentNotFound, nil)
	case errors.Is(err, services.ErrEquipmentNotVisible):
		response.Fail(ctx, code.ErrEquipmentNotVisible, nil)
	case errors.Is(err, services.ErrInvalidLinkSide):
		response.Fail(ctx, code.ErrLinkInvalidSide, nil)
	case errors.Is(err, services.ErrShadeNotFound):
		response.Fail(ctx, code.ErrShadeNotFound, nil)
	case errors.Is(err, services.ErrInvalidMeasurePass):
		response.Fail(ctx, code.ErrMeasureInvalidPass, nil)
	case errors.Is(err, services.ErrIssueNotFound):
		response.Fail(ctx, code.ErrIssueNotFound, nil)
	case errors.Is(err, services.ErrPurchaseOrderNotFound):
		response.Fail(ctx, code.ErrPurchaseOrderNotFound, nil)
	case errors.Is(err, services.ErrStakeholderNotFound):
		response.Fail(ctx, code.ErrStakeholderNotFound, nil)
	case errors.Is(err, services.ErrRecordNotFound):
		response.Fail(ctx, code.ErrRecordNotFound, nil)
	default:
		response.FailWithMessage(ctx, code.ErrDatabase, err.Error(), nil)
	}
}
