package services

import (
	"errors"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// InterfaceProjectService 定义项目服务接口
type InterfaceProjectService interface {
	GetAllProjects(page, pageSize int) ([]models.Project, int64, error)
	GetProjectByID(id uint) (*models.Project, error)
	CreateProject(project *models.Project) error
	UpdateProject(id uint, updates map[string]interface{}) (*models.Project, error)
	DeleteProject(id uint) error
}

// ProjectService 提供项目相关的服务
type ProjectService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewProjectService 创建一个新的项目服务
func NewProjectService(db *gorm.DB, cfg *config.Config, redisSvc InterfaceRedisService) InterfaceProjectService {
	return &ProjectService{
		DB:     db,
		Config: cfg,
		Redis:  redisSvc,
	}
}

// 1. GetAllProjects 获取项目列表，支持分页
func (s *ProjectService) GetAllProjects(page, pageSize int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	if err := s.DB.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Order("id desc").Limit(pageSize).Offset(offset).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// 2. GetProjectByID 根据ID获取项目
func (s *ProjectService) GetProjectByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// 3. CreateProject 创建新项目
func (s *ProjectService) CreateProject(project *models.Project) error {
	return s.DB.Create(project).Error
}

// 4. UpdateProject 更新项目信息
func (s *ProjectService) UpdateProject(id uint, updates map[string]interface{}) (*models.Project, error) {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.InvalidateProjectSummary(id); err != nil {
			config.Warning("使项目汇总缓存失效失败: %v", err)
		}
	}

	return s.GetProjectByID(id)
}

// 5. DeleteProject 删除项目及其全部下属记录
func (s *ProjectService) DeleteProject(id uint) error {
	project, err := s.GetProjectByID(id)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var dropIDs []uint
		if err := tx.Model(&models.WireDrop{}).Where("project_id = ?", id).Pluck("id", &dropIDs).Error; err != nil {
			return err
		}

		if len(dropIDs) > 0 {
			if err := tx.Where("wire_drop_id IN ?", dropIDs).Delete(&models.WireDropStage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("wire_drop_id IN ?", dropIDs).Delete(&models.EquipmentLink{}).Error; err != nil {
				return err
			}
			if err := tx.Where("wire_drop_id IN ?", dropIDs).Delete(&models.ShadeLink{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.WireDrop{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectEquipment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectShade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Issue{}).Error; err != nil {
			return err
		}

		var poIDs []uint
		if err := tx.Model(&models.PurchaseOrder{}).Where("project_id = ?", id).Pluck("id", &poIDs).Error; err != nil {
			return err
		}
		if len(poIDs) > 0 {
			if err := tx.Where("purchase_order_id IN ?", poIDs).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.PurchaseOrder{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.Stakeholder{}).Error; err != nil {
			return err
		}

		return tx.Delete(project).Error
	})
	if err != nil {
		return err
	}

	if s.Redis != nil {
		if err := s.Redis.InvalidateProjectSummary(id); err != nil {
			config.Warning("使项目汇总缓存失效失败: %v", err)
		}
	}

	return nil
}
