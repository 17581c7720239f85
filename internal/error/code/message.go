package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:      "成功",
	ErrUnknown:      "未知错误",
	ErrBind:         "请求参数绑定错误",
	ErrValidation:   "请求参数验证错误",
	ErrTokenInvalid: "无效的认证令牌",

	// 用户相关错误码
	ErrTechnicianNotFound:          "技术员不存在",
	ErrTechnicianAlreadyExist:      "技术员已存在",
	ErrTechnicianPasswordIncorrect: "密码错误",

	// 项目相关错误码
	ErrProjectNotFound:     "项目不存在",
	ErrProjectAlreadyExist: "项目已存在",

	// 线缆相关错误码
	ErrWireDropNotFound:     "线缆不存在",
	ErrWireDropAlreadyExist: "线缆编号已存在",
	ErrStageNotFound:        "阶段记录不存在",
	ErrStageInvalidType:     "无效的阶段类型",
	ErrStagePhotoRequired:   "阶段照片未上传，无法标记完成",
	ErrStagePhotoNotFound:   "阶段照片不存在",
	ErrStageBusy:            "阶段照片操作正在进行中，请稍后再试",
	ErrStageSignOffRequired: "缺少完成人签核",

	// 设备关联相关错误码
	ErrEquipmentNotFound:   "设备不存在",
	ErrEquipmentNotVisible: "该设备部件不允许关联线缆",
	ErrLinkInvalidSide:     "无效的关联端",

	// 窗帘相关错误码
	ErrShadeNotFound:      "窗帘不存在",
	ErrMeasureInvalidPass: "无效的测量批次",

	// 工单/采购相关错误码
	ErrIssueNotFound:         "问题工单不存在",
	ErrPurchaseOrderNotFound: "采购单不存在",
	ErrPurchaseOrderReceived: "采购单已完成收货",
	ErrStakeholderNotFound:   "项目联系人不存在",

	// 存储相关错误码
	ErrPhotoUpload:    "照片上传失败",
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:      StatusOK,
	ErrUnknown:      StatusInternalServerError,
	ErrBind:         StatusBadRequest,
	ErrValidation:   StatusBadRequest,
	ErrTokenInvalid: StatusUnauthorized,

	// 用户相关错误码
	ErrTechnicianNotFound:          StatusNotFound,
	ErrTechnicianAlreadyExist:      StatusBadRequest,
	ErrTechnicianPasswordIncorrect: StatusUnauthorized,

	// 项目相关错误码
	ErrProjectNotFound:     StatusNotFound,
	ErrProjectAlreadyExist: StatusBadRequest,

	// 线缆相关错误码
	ErrWireDropNotFound:     StatusNotFound,
	ErrWireDropAlreadyExist: StatusBadRequest,
	ErrStageNotFound:        StatusNotFound,
	ErrStageInvalidType:     StatusBadRequest,
	ErrStagePhotoRequired:   StatusBadRequest,
	ErrStagePhotoNotFound:   StatusNotFound,
	ErrStageBusy:            StatusConflict,
	ErrStageSignOffRequired: StatusBadRequest,

	// 设备关联相关错误码
	ErrEquipmentNotFound:   StatusNotFound,
	ErrEquipmentNotVisible: StatusBadRequest,
	ErrLinkInvalidSide:     StatusBadRequest,

	// 窗帘相关错误码
	ErrShadeNotFound:      StatusNotFound,
	ErrMeasureInvalidPass: StatusBadRequest,

	// 工单/采购相关错误码
	ErrIssueNotFound:         StatusNotFound,
	ErrPurchaseOrderNotFound: StatusNotFound,
	ErrPurchaseOrderReceived: StatusBadRequest,
	ErrStakeholderNotFound:   StatusNotFound,

	// 存储相关错误码
	ErrPhotoUpload:    StatusInternalServerError,
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
