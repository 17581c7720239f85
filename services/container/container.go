package container

import (
	"context"
	"log"
	"sync"
	"time"

	"wiretrack-http-service/config"
	"wiretrack-http-service/services"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService
	photoService services.InterfacePhotoService

	// MQTT离线上传队列
	uploadQueueService services.InterfaceUploadQueueService

	// 核心引擎服务
	stageService         services.InterfaceStageService
	equipmentLinkService services.InterfaceEquipmentLinkService
	shadeLinkService     services.InterfaceShadeLinkService
	completionService    services.InterfaceCompletionService
	noteSaver            services.InterfaceNoteSaver

	// 业务服务
	projectService       services.InterfaceProjectService
	wireDropService      services.InterfaceWireDropService
	technicianService    services.InterfaceTechnicianService
	equipmentService     services.InterfaceEquipmentService
	shadeService         services.InterfaceShadeService
	issueService         services.InterfaceIssueService
	purchaseOrderService services.InterfacePurchaseOrderService
	stakeholderService   services.InterfaceStakeholderService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)

	// 初始化Redis服务
	c.redisService = services.NewRedisService(c.config)

	// 初始化照片存储服务
	c.photoService = services.NewPhotoService(c.config)

	// 初始化离线上传队列 - 使用接口类型
	c.uploadQueueService = services.NewUploadQueueService(c.config)

	// 连接MQTT服务器
	if err := c.uploadQueueService.Connect(); err != nil {
		log.Printf("MQTT服务连接失败: %v", err)
	}

	// 初始化核心引擎服务
	c.noteSaver = services.NewNoteSaver(c.db, services.DefaultNoteSaveDelay)
	c.stageService = services.NewStageService(c.db, c.config, c.photoService, c.uploadQueueService, c.redisService)
	c.equipmentLinkService = services.NewEquipmentLinkService(c.db, c.config, c.redisService)
	c.shadeLinkService = services.NewShadeLinkService(c.db, c.config, c.redisService)
	c.completionService = services.NewCompletionService(c.db, c.config, c.redisService)

	// 初始化业务服务
	c.projectService = services.NewProjectService(c.db, c.config, c.redisService)
	c.wireDropService = services.NewWireDropService(c.db, c.config, c.noteSaver)
	c.technicianService = services.NewTechnicianService(c.db, c.config)
	c.equipmentService = services.NewEquipmentService(c.db, c.config)
	c.shadeService = services.NewShadeService(c.db, c.config)
	c.issueService = services.NewIssueService(c.db, c.config)
	c.purchaseOrderService = services.NewPurchaseOrderService(c.db, c.config)
	c.stakeholderService = services.NewStakeholderService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "photo":
		return c.photoService
	case "upload_queue":
		return c.uploadQueueService
	case "stage":
		return c.stageService
	case "equipment_link":
		return c.equipmentLinkService
	case "shade_link":
		return c.shadeLinkService
	case "completion":
		return c.completionService
	case "note_saver":
		return c.noteSaver
	case "project":
		return c.projectService
	case "wire_drop":
		return c.wireDropService
	case "technician":
		return c.technicianService
	case "equipment":
		return c.equipmentService
	case "shade":
		return c.shadeService
	case "issue":
		return c.issueService
	case "purchase_order":
		return c.purchaseOrderService
	case "stakeholder":
		return c.stakeholderService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Shutdown 关闭容器持有的外部连接，并落盘挂起的防抖写入
func (c *ServiceContainer) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.noteSaver != nil {
		c.noteSaver.Flush()
	}
	if c.uploadQueueService != nil {
		c.uploadQueueService.Disconnect()
	}
}
