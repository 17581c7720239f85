package services

import (
	"errors"
	"time"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// InterfaceIssueService 定义问题单服务接口
type InterfaceIssueService interface {
	GetIssuesByProject(projectID uint, status models.IssueStatus, page, pageSize int) ([]models.Issue, int64, error)
	GetIssueByID(id uint) (*models.Issue, error)
	CreateIssue(issue *models.Issue) error
	UpdateIssue(id uint, updates map[string]interface{}) (*models.Issue, error)
	ResolveIssue(id uint, actorID string) (*models.Issue, error)
	DeleteIssue(id uint) error
}

// IssueService 提供现场问题单相关的服务
type IssueService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewIssueService 创建一个新的问题单服务
func NewIssueService(db *gorm.DB, cfg *config.Config) InterfaceIssueService {
	return &IssueService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetIssuesByProject 获取项目问题单列表，可按状态过滤，支持分页
func (s *IssueService) GetIssuesByProject(projectID uint, status models.IssueStatus, page, pageSize int) ([]models.Issue, int64, error) {
	query := s.DB.Model(&models.Issue{}).Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []models.Issue
	offset := (page - 1) * pageSize
	err := query.Preload("WireDrop").
		Order("id desc").
		Limit(pageSize).Offset(offset).
		Find(&issues).Error
	if err != nil {
		return nil, 0, err
	}

	return issues, total, nil
}

// 2. GetIssueByID 根据ID获取问题单
func (s *IssueService) GetIssueByID(id uint) (*models.Issue, error) {
	var issue models.Issue
	if err := s.DB.Preload("WireDrop").First(&issue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// 3. CreateIssue 创建新问题单。关联线缆时校验其存在。
func (s *IssueService) CreateIssue(issue *models.Issue) error {
	if issue.WireDropID != nil {
		var count int64
		if err := s.DB.Model(&models.WireDrop{}).Where("id = ?", *issue.WireDropID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrWireDropNotFound
		}
	}

	return s.DB.Create(issue).Error
}

// 4. UpdateIssue 更新问题单
func (s *IssueService) UpdateIssue(id uint, updates map[string]interface{}) (*models.Issue, error) {
	issue, err := s.GetIssueByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(issue).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetIssueByID(id)
}

// 5. ResolveIssue 关闭问题单，记录处理人
func (s *IssueService) ResolveIssue(id uint, actorID string) (*models.Issue, error) {
	issue, err := s.GetIssueByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":      models.IssueStatusResolved,
		"assigned_to": actorID,
		"updated_at":  time.Now(),
	}
	if err := s.DB.Model(issue).Updates(updates).Error; err != nil {
		return nil, err
	}

	config.Info("问题单 %d 已由 %s 处理完毕", id, actorID)
	return s.GetIssueByID(id)
}

// 6. DeleteIssue 删除问题单
func (s *IssueService) DeleteIssue(id uint) error {
	issue, err := s.GetIssueByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(issue).Error
}
