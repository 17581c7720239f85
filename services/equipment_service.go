package services

import (
	"errors"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// InterfaceEquipmentService 定义设备服务接口
type InterfaceEquipmentService interface {
	GetEquipmentByProject(projectID uint, page, pageSize int) ([]models.ProjectEquipment, int64, error)
	GetEquipmentByID(id uint) (*models.ProjectEquipment, error)
	CreateEquipment(equipment *models.ProjectEquipment) error
	ImportEquipment(projectID uint, items []models.ProjectEquipment) (int, error)
	UpdateEquipment(id uint, updates map[string]interface{}) (*models.ProjectEquipment, error)
	DeleteEquipment(id uint) error
}

// EquipmentService 提供项目设备相关的服务。
// 设备清单来自报价工具的导入，线缆核心只读它。
type EquipmentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEquipmentService 创建一个新的设备服务
func NewEquipmentService(db *gorm.DB, cfg *config.Config) InterfaceEquipmentService {
	return &EquipmentService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetEquipmentByProject 获取项目设备列表，支持分页
func (s *EquipmentService) GetEquipmentByProject(projectID uint, page, pageSize int) ([]models.ProjectEquipment, int64, error) {
	var items []models.ProjectEquipment
	var total int64

	if err := s.DB.Model(&models.ProjectEquipment{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := s.DB.Where("project_id = ?", projectID).
		Order("room_name, name").
		Limit(pageSize).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// 2. GetEquipmentByID 根据ID获取设备
func (s *EquipmentService) GetEquipmentByID(id uint) (*models.ProjectEquipment, error) {
	var equipment models.ProjectEquipment
	if err := s.DB.First(&equipment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// 3. CreateEquipment 创建新设备
func (s *EquipmentService) CreateEquipment(equipment *models.ProjectEquipment) error {
	return s.DB.Create(equipment).Error
}

// 4. ImportEquipment 从报价工具批量导入设备，返回成功条数
func (s *EquipmentService) ImportEquipment(projectID uint, items []models.ProjectEquipment) (int, error) {
	imported := 0
	for i := range items {
		items[i].ID = 0
		items[i].ProjectID = projectID
		if err := s.DB.Create(&items[i]).Error; err != nil {
			config.Error("导入设备失败 %s: %v", items[i].Name, err)
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// 5. UpdateEquipment 更新设备信息
func (s *EquipmentService) UpdateEquipment(id uint, updates map[string]interface{}) (*models.ProjectEquipment, error) {
	equipment, err := s.GetEquipmentByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(equipment).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetEquipmentByID(id)
}

// 6. DeleteEquipment 删除设备，并清理指向它的线缆关联
func (s *EquipmentService) DeleteEquipment(id uint) error {
	equipment, err := s.GetEquipmentByID(id)
	if err != nil {
		return err
	}

	// 不允许悬空关联
	if err := s.DB.Where("project_equipment_id = ?", id).Delete(&models.EquipmentLink{}).Error; err != nil {
		return err
	}

	return s.DB.Delete(equipment).Error
}
