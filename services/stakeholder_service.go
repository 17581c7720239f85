package services

import (
	"errors"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// InterfaceStakeholderService 定义干系人服务接口
type InterfaceStakeholderService interface {
	GetStakeholdersByProject(projectID uint) ([]models.Stakeholder, error)
	GetStakeholderByID(id uint) (*models.Stakeholder, error)
	CreateStakeholder(stakeholder *models.Stakeholder) error
	UpdateStakeholder(id uint, updates map[string]interface{}) (*models.Stakeholder, error)
	DeleteStakeholder(id uint) error
}

// StakeholderService 提供项目干系人相关的服务
type StakeholderService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewStakeholderService 创建一个新的干系人服务
func NewStakeholderService(db *gorm.DB, cfg *config.Config) InterfaceStakeholderService {
	return &StakeholderService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetStakeholdersByProject 获取项目干系人列表
func (s *StakeholderService) GetStakeholdersByProject(projectID uint) ([]models.Stakeholder, error) {
	var stakeholders []models.Stakeholder
	if err := s.DB.Where("project_id = ?", projectID).Order("role, name").Find(&stakeholders).Error; err != nil {
		return nil, err
	}
	return stakeholders, nil
}

// 2. GetStakeholderByID 根据ID获取干系人
func (s *StakeholderService) GetStakeholderByID(id uint) (*models.Stakeholder, error) {
	var stakeholder models.Stakeholder
	if err := s.DB.First(&stakeholder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStakeholderNotFound
		}
		return nil, err
	}
	return &stakeholder, nil
}

// 3. CreateStakeholder 创建新干系人
func (s *StakeholderService) CreateStakeholder(stakeholder *models.Stakeholder) error {
	return s.DB.Create(stakeholder).Error
}

// 4. UpdateStakeholder 更新干系人信息
func (s *StakeholderService) UpdateStakeholder(id uint, updates map[string]interface{}) (*models.Stakeholder, error) {
	stakeholder, err := s.GetStakeholderByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(stakeholder).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetStakeholderByID(id)
}

// 5. DeleteStakeholder 删除干系人
func (s *StakeholderService) DeleteStakeholder(id uint) error {
	stakeholder, err := s.GetStakeholderByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(stakeholder).Error
}
