package routes

import (
	"wiretrack-http-service/config"
	"wiretrack-http-service/controllers"
	_ "wiretrack-http-service/docs"
	"wiretrack-http-service/middleware"
	"wiretrack-http-service/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
	// 注册管理员路由
	registerAdminRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)

	// 认证路由
	api.POST("/auth/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件，任何在职技师都可访问
	auth := api.Group("/")
	auth.Use(middleware.Authentication())

	// 项目路由
	auth.Group("/projects").GET("", controllers.HandleProjectFunc(container, "getProjects"))
	auth.Group("/projects").GET("/:id", controllers.HandleProjectFunc(container, "getProject"))
	auth.Group("/projects").GET("/:id/summary", controllers.HandleProjectFunc(container, "getProjectSummary"))
	auth.Group("/projects").POST("", controllers.HandleProjectFunc(container, "createProject"))
	auth.Group("/projects").PUT("/:id", controllers.HandleProjectFunc(container, "updateProject"))

	// 线缆点位路由
	auth.Group("/wire_drops").GET("", controllers.HandleWireDropFunc(container, "getWireDrops"))
	auth.Group("/wire_drops").GET("/scan/:uid", controllers.HandleWireDropFunc(container, "scanWireDrop"))
	auth.Group("/wire_drops").GET("/:id", controllers.HandleWireDropFunc(container, "getWireDrop"))
	auth.Group("/wire_drops").GET("/:id/next_incomplete", controllers.HandleWireDropFunc(container, "getNextIncomplete"))
	auth.Group("/wire_drops").POST("", controllers.HandleWireDropFunc(container, "createWireDrop"))
	auth.Group("/wire_drops").POST("/import", controllers.HandleWireDropFunc(container, "importWireDrops"))
	auth.Group("/wire_drops").PUT("/:id", controllers.HandleWireDropFunc(container, "updateWireDrop"))
	auth.Group("/wire_drops").PUT("/:id/notes", controllers.HandleWireDropFunc(container, "updateNotes"))

	// 阶段与照片路由
	auth.Group("/wire_drops").GET("/:id/stages", controllers.HandleStageFunc(container, "getStages"))
	auth.Group("/wire_drops").POST("/:id/stages/:type/photo", controllers.HandleStageFunc(container, "attachPhoto"))
	auth.Group("/wire_drops").PUT("/:id/stages/:type/photo", controllers.HandleStageFunc(container, "replacePhoto"))
	auth.Group("/wire_drops").DELETE("/:id/stages/:type/photo", controllers.HandleStageFunc(container, "removePhoto"))
	auth.Group("/wire_drops").POST("/:id/stages/:type/photo/pending", controllers.HandleStageFunc(container, "registerPendingPhoto"))
	auth.Group("/wire_drops").POST("/:id/stages/:type/complete", controllers.HandleStageFunc(container, "markComplete"))
	auth.Group("/wire_drops").DELETE("/:id/stages/:type/complete", controllers.HandleStageFunc(container, "undoComplete"))

	// 点位与设备、窗帘的关联路由
	auth.Group("/wire_drops").GET("/:id/room_end/candidates", controllers.HandleLinkFunc(container, "getRoomEndCandidates"))
	auth.Group("/wire_drops").PUT("/:id/room_end", controllers.HandleLinkFunc(container, "setRoomEnd"))
	auth.Group("/wire_drops").GET("/:id/head_end/candidates", controllers.HandleLinkFunc(container, "getHeadEndCandidates"))
	auth.Group("/wire_drops").POST("/:id/head_end", controllers.HandleLinkFunc(container, "addHeadEnd"))
	auth.Group("/wire_drops").DELETE("/:id/head_end/:equipment_id", controllers.HandleLinkFunc(container, "removeHeadEnd"))
	auth.Group("/wire_drops").PUT("/:id/head_end/primary", controllers.HandleLinkFunc(container, "setPrimaryHeadEnd"))
	auth.Group("/wire_drops").GET("/:id/shade_link/candidates", controllers.HandleLinkFunc(container, "getShadeCandidates"))
	auth.Group("/wire_drops").PUT("/:id/shade_link", controllers.HandleLinkFunc(container, "setShadeLink"))

	// 项目设备路由
	auth.Group("/equipment").GET("", controllers.HandleEquipmentFunc(container, "getEquipmentList"))
	auth.Group("/equipment").GET("/:id", controllers.HandleEquipmentFunc(container, "getEquipment"))
	auth.Group("/equipment").POST("", controllers.HandleEquipmentFunc(container, "createEquipment"))
	auth.Group("/equipment").POST("/import", controllers.HandleEquipmentFunc(container, "importEquipment"))
	auth.Group("/equipment").PUT("/:id", controllers.HandleEquipmentFunc(container, "updateEquipment"))
	auth.Group("/equipment").DELETE("/:id", controllers.HandleEquipmentFunc(container, "deleteEquipment"))

	// 窗帘路由
	auth.Group("/shades").GET("", controllers.HandleShadeFunc(container, "getShades"))
	auth.Group("/shades").GET("/:id", controllers.HandleShadeFunc(container, "getShade"))
	auth.Group("/shades").POST("", controllers.HandleShadeFunc(container, "createShade"))
	auth.Group("/shades").PUT("/:id", controllers.HandleShadeFunc(container, "updateShade"))
	auth.Group("/shades").PUT("/:id/notes", controllers.HandleShadeFunc(container, "updateShadeNotes"))
	auth.Group("/shades").PUT("/:id/measurements/:pass", controllers.HandleShadeFunc(container, "saveMeasurement"))
	auth.Group("/shades").GET("/:id/measurements/:pass", controllers.HandleShadeFunc(container, "getMeasurement"))
	auth.Group("/shades").DELETE("/:id", controllers.HandleShadeFunc(container, "deleteShade"))

	// 问题单路由
	auth.Group("/issues").GET("", controllers.HandleIssueFunc(container, "getIssues"))
	auth.Group("/issues").GET("/:id", controllers.HandleIssueFunc(container, "getIssue"))
	auth.Group("/issues").POST("", controllers.HandleIssueFunc(container, "createIssue"))
	auth.Group("/issues").PUT("/:id", controllers.HandleIssueFunc(container, "updateIssue"))
	auth.Group("/issues").POST("/:id/resolve", controllers.HandleIssueFunc(container, "resolveIssue"))
	auth.Group("/issues").DELETE("/:id", controllers.HandleIssueFunc(container, "deleteIssue"))

	// 采购单路由
	auth.Group("/purchase_orders").GET("", controllers.HandlePurchaseOrderFunc(container, "getPurchaseOrders"))
	auth.Group("/purchase_orders").GET("/:id", controllers.HandlePurchaseOrderFunc(container, "getPurchaseOrder"))
	auth.Group("/purchase_orders").POST("", controllers.HandlePurchaseOrderFunc(container, "createPurchaseOrder"))
	auth.Group("/purchase_orders").PUT("/:id", controllers.HandlePurchaseOrderFunc(container, "updatePurchaseOrder"))
	auth.Group("/purchase_orders").POST("/:id/receive", controllers.HandlePurchaseOrderFunc(container, "receiveItems"))
	auth.Group("/purchase_orders").DELETE("/:id", controllers.HandlePurchaseOrderFunc(container, "deletePurchaseOrder"))

	// 干系人路由
	auth.Group("/stakeholders").GET("", controllers.HandleStakeholderFunc(container, "getStakeholders"))
	auth.Group("/stakeholders").POST("", controllers.HandleStakeholderFunc(container, "createStakeholder"))
	auth.Group("/stakeholders").PUT("/:id", controllers.HandleStakeholderFunc(container, "updateStakeholder"))
	auth.Group("/stakeholders").DELETE("/:id", controllers.HandleStakeholderFunc(container, "deleteStakeholder"))

	// 技师路由，修改自己的密码不需要管理员权限
	auth.Group("/technicians").GET("", controllers.HandleTechnicianFunc(container, "getTechnicians"))
	auth.Group("/technicians").GET("/:id", controllers.HandleTechnicianFunc(container, "getTechnician"))
	auth.Group("/technicians").PUT("/:id/password", controllers.HandleTechnicianFunc(container, "changePassword"))
}

// registerAdminRoutes 注册仅限管理员的路由，删除项目和点位属于破坏性操作
func registerAdminRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	admin := api.Group("/")
	admin.Use(middleware.AuthenticateSystemAdmin())

	admin.Group("/projects").DELETE("/:id", controllers.HandleProjectFunc(container, "deleteProject"))
	admin.Group("/wire_drops").DELETE("/:id", controllers.HandleWireDropFunc(container, "deleteWireDrop"))

	// 技师账号管理
	admin.Group("/technicians").POST("", controllers.HandleTechnicianFunc(container, "createTechnician"))
	admin.Group("/technicians").PUT("/:id", controllers.HandleTechnicianFunc(container, "updateTechnician"))
	admin.Group("/technicians").DELETE("/:id", controllers.HandleTechnicianFunc(container, "deleteTechnician"))
}
