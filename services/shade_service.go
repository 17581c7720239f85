package services

import (
	"errors"
	"time"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// MeasurementView 带可见性标记的测量视图
type MeasurementView struct {
	State       VisibilityState         `json:"state"`
	Pass        models.MeasurePass      `json:"pass"`
	Measurement models.ShadeMeasurement `json:"measurement"`
}

// MeasurementInput 一次测量的录入数据
type MeasurementInput struct {
	WidthTop    float64 `json:"width_top"`
	WidthMiddle float64 `json:"width_middle"`
	WidthBottom float64 `json:"width_bottom"`
	Height      float64 `json:"height"`
	MountDepth  float64 `json:"mount_depth"`
	Complete    bool    `json:"complete"`
}

// InterfaceShadeService 定义窗帘服务接口
type InterfaceShadeService interface {
	GetShadesByProject(projectID uint) ([]models.ProjectShade, error)
	GetShadeByID(id uint) (*models.ProjectShade, error)
	CreateShade(shade *models.ProjectShade) error
	UpdateShade(id uint, updates map[string]interface{}) (*models.ProjectShade, error)
	DeleteShade(id uint) error
	SaveMeasurement(shadeID uint, pass models.MeasurePass, input MeasurementInput, actorID string) (*models.ProjectShade, error)
	MeasurementFor(viewerID string, shade *models.ProjectShade, pass models.MeasurePass, doubleBlind bool) (MeasurementView, error)
}

// ShadeService 提供窗帘相关的服务。
// 每个窗帘有两次独立测量（m1/m2），复核时套用与线缆阶段相同的盲复核规则。
type ShadeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewShadeService 创建一个新的窗帘服务
func NewShadeService(db *gorm.DB, cfg *config.Config) InterfaceShadeService {
	return &ShadeService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetShadesByProject 获取项目内的全部窗帘
func (s *ShadeService) GetShadesByProject(projectID uint) ([]models.ProjectShade, error) {
	var shades []models.ProjectShade
	if err := s.DB.Where("project_id = ?", projectID).Order("room_name, name").Find(&shades).Error; err != nil {
		return nil, err
	}
	return shades, nil
}

// 2. GetShadeByID 根据ID获取窗帘
func (s *ShadeService) GetShadeByID(id uint) (*models.ProjectShade, error) {
	var shade models.ProjectShade
	if err := s.DB.First(&shade, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShadeNotFound
		}
		return nil, err
	}
	return &shade, nil
}

// 3. CreateShade 创建新窗帘
func (s *ShadeService) CreateShade(shade *models.ProjectShade) error {
	return s.DB.Create(shade).Error
}

// 4. UpdateShade 更新窗帘基本信息
func (s *ShadeService) UpdateShade(id uint, updates map[string]interface{}) (*models.ProjectShade, error) {
	shade, err := s.GetShadeByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(shade).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetShadeByID(id)
}

// 5. DeleteShade 删除窗帘，并清理指向它的线缆关联
func (s *ShadeService) DeleteShade(id uint) error {
	shade, err := s.GetShadeByID(id)
	if err != nil {
		return err
	}

	// 不允许悬空关联
	if err := s.DB.Where("project_shade_id = ?", id).Delete(&models.ShadeLink{}).Error; err != nil {
		return err
	}

	return s.DB.Delete(shade).Error
}

// 6. SaveMeasurement 保存一次测量。字段是固定的类型化列，
// 不做按批次拼接字段名的动态访问。
func (s *ShadeService) SaveMeasurement(shadeID uint, pass models.MeasurePass, input MeasurementInput, actorID string) (*models.ProjectShade, error) {
	if !models.IsValidMeasurePass(pass) {
		return nil, ErrInvalidMeasurePass
	}

	shade, err := s.GetShadeByID(shadeID)
	if err != nil {
		return nil, err
	}

	// 通过枚举选中类型化的测量记录，避免动态拼接字段名
	m := shade.MeasurementByPass(pass)
	m.WidthTop = input.WidthTop
	m.WidthMiddle = input.WidthMiddle
	m.WidthBottom = input.WidthBottom
	m.Height = input.Height
	m.MountDepth = input.MountDepth
	m.Complete = input.Complete
	if input.Complete {
		now := time.Now()
		m.MeasuredBy = actorID
		m.MeasuredAt = &now
	} else {
		m.MeasuredBy = ""
		m.MeasuredAt = nil
	}

	if err := s.DB.Save(shade).Error; err != nil {
		return nil, err
	}

	return s.GetShadeByID(shadeID)
}

// 7. MeasurementFor 盲复核视图：双盲模式下，另一人完成的测量
// 对当前查看者遮蔽，数值清零。
func (s *ShadeService) MeasurementFor(viewerID string, shade *models.ProjectShade, pass models.MeasurePass, doubleBlind bool) (MeasurementView, error) {
	m := shade.MeasurementByPass(pass)
	if m == nil {
		return MeasurementView{}, ErrInvalidMeasurePass
	}

	view := MeasurementView{
		State:       VisibilityVisible,
		Pass:        pass,
		Measurement: *m,
	}

	if MaskedFromViewer(m.Complete, m.MeasuredBy, viewerID, doubleBlind) {
		view.State = VisibilityMasked
		view.Measurement = models.ShadeMeasurement{Complete: true}
	}

	return view, nil
}
