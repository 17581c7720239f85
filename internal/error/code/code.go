package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
)

// 用户相关错误码 (101xxx).
const (
	// ErrTechnicianNotFound - 404: 技术员不存在.
	ErrTechnicianNotFound int = iota + 101000
	// ErrTechnicianAlreadyExist - 400: 技术员已存在.
	ErrTechnicianAlreadyExist
	// ErrTechnicianPasswordIncorrect - 401: 密码错误.
	ErrTechnicianPasswordIncorrect
)

// 项目相关错误码 (102xxx).
const (
	// ErrProjectNotFound - 404: 项目不存在.
	ErrProjectNotFound int = iota + 102000
	// ErrProjectAlreadyExist - 400: 项目已存在.
	ErrProjectAlreadyExist
)

// 线缆相关错误码 (103xxx).
const (
	// ErrWireDropNotFound - 404: 线缆不存在.
	ErrWireDropNotFound int = iota + 103000
	// ErrWireDropAlreadyExist - 400: 线缆编号已存在.
	ErrWireDropAlreadyExist
	// ErrStageNotFound - 404: 阶段记录不存在.
	ErrStageNotFound
	// ErrStageInvalidType - 400: 无效的阶段类型.
	ErrStageInvalidType
	// ErrStagePhotoRequired - 400: 阶段照片未上传.
	ErrStagePhotoRequired
	// ErrStagePhotoNotFound - 404: 阶段照片不存在.
	ErrStagePhotoNotFound
	// ErrStageBusy - 409: 阶段照片操作正在进行中.
	ErrStageBusy
	// ErrStageSignOffRequired - 400: 缺少完成人签核.
	ErrStageSignOffRequired
)

// 设备关联相关错误码 (104xxx).
const (
	// ErrEquipmentNotFound - 404: 设备不存在.
	ErrEquipmentNotFound int = iota + 104000
	// ErrEquipmentNotVisible - 400: 设备部件不允许关联线缆.
	ErrEquipmentNotVisible
	// ErrLinkInvalidSide - 400: 无效的关联端.
	ErrLinkInvalidSide
)

// 窗帘相关错误码 (105xxx).
const (
	// ErrShadeNotFound - 404: 窗帘不存在.
	ErrShadeNotFound int = iota + 105000
	// ErrMeasureInvalidPass - 400: 无效的测量批次.
	ErrMeasureInvalidPass
)

// 工单/采购相关错误码 (106xxx).
const (
	// ErrIssueNotFound - 404: 问题工单不存在.
	ErrIssueNotFound int = iota + 106000
	// ErrPurchaseOrderNotFound - 404: 采购单不存在.
	ErrPurchaseOrderNotFound
	// ErrPurchaseOrderReceived - 400: 采购单已完成收货.
	ErrPurchaseOrderReceived
	// ErrStakeholderNotFound - 404: 项目联系人不存在.
	ErrStakeholderNotFound
)

// 存储相关错误码 (107xxx).
const (
	// ErrPhotoUpload - 500: 照片上传失败.
	ErrPhotoUpload int = iota + 107000
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
