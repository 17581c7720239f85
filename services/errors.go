package services

import "errors"

// 服务层哨兵错误，控制器通过 errors.Is 映射为错误码
var (
	// 通用
	ErrRecordNotFound = errors.New("记录不存在")

	// 技术员相关
	ErrTechnicianNotFound = errors.New("技术员不存在")
	ErrTechnicianExists   = errors.New("技术员已存在")
	ErrPasswordIncorrect  = errors.New("密码错误")

	// 项目相关
	ErrProjectNotFound = errors.New("项目不存在")

	// 线缆相关
	ErrWireDropNotFound = errors.New("线缆不存在")
	ErrWireDropUIDTaken = errors.New("线缆编号已存在")

	// 阶段相关
	ErrInvalidStageType = errors.New("无效的阶段类型")
	ErrStageNotFound    = errors.New("阶段记录不存在")
	ErrPhotoNotFound    = errors.New("阶段照片不存在")
	ErrPhotoRequired    = errors.New("阶段照片未上传，无法标记完成")
	ErrSignOffRequired  = errors.New("缺少完成人签核")
	ErrStageBusy        = errors.New("阶段照片操作正在进行中")
	ErrPhotoUpload      = errors.New("照片上传失败")

	// 设备关联相关
	ErrEquipmentNotFound   = errors.New("设备不存在")
	ErrEquipmentNotVisible = errors.New("该设备部件不允许关联线缆")
	ErrInvalidLinkSide     = errors.New("无效的关联端")

	// 窗帘相关
	ErrShadeNotFound      = errors.New("窗帘不存在")
	ErrInvalidMeasurePass = errors.New("无效的测量批次")

	// 工单/采购相关
	ErrIssueNotFound         = errors.New("问题工单不存在")
	ErrPurchaseOrderNotFound = errors.New("采购单不存在")
	ErrStakeholderNotFound   = errors.New("项目联系人不存在")
)
