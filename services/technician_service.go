package services

import (
	"errors"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"
	"wiretrack-http-service/utils"

	"gorm.io/gorm"
)

// InterfaceTechnicianService 定义技师服务接口
type InterfaceTechnicianService interface {
	Login(username, password string) (*models.Technician, error)
	GetAllTechnicians(page, pageSize int) ([]models.Technician, int64, error)
	GetTechnicianByID(id uint) (*models.Technician, error)
	CreateTechnician(tech *models.Technician) error
	UpdateTechnician(id uint, updates map[string]interface{}) (*models.Technician, error)
	ChangePassword(id uint, oldPassword, newPassword string) error
	DeleteTechnician(id uint) error
	EnsureAdmin(username, password string) error
}

// TechnicianService 提供技师账号相关的服务
type TechnicianService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewTechnicianService 创建一个新的技师服务
func NewTechnicianService(db *gorm.DB, cfg *config.Config) InterfaceTechnicianService {
	return &TechnicianService{
		DB:     db,
		Config: cfg,
	}
}

// 1. Login 校验用户名密码，成功返回技师记录
func (s *TechnicianService) Login(username, password string) (*models.Technician, error) {
	var tech models.Technician
	if err := s.DB.Where("username = ?", username).First(&tech).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, tech.Password) {
		return nil, ErrPasswordIncorrect
	}

	return &tech, nil
}

// 2. GetAllTechnicians 获取技师列表，支持分页
func (s *TechnicianService) GetAllTechnicians(page, pageSize int) ([]models.Technician, int64, error) {
	var techs []models.Technician
	var total int64

	if err := s.DB.Model(&models.Technician{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := s.DB.Order("id").Limit(pageSize).Offset(offset).Find(&techs).Error; err != nil {
		return nil, 0, err
	}

	return techs, total, nil
}

// 3. GetTechnicianByID 根据ID获取技师
func (s *TechnicianService) GetTechnicianByID(id uint) (*models.Technician, error) {
	var tech models.Technician
	if err := s.DB.First(&tech, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, err
	}
	return &tech, nil
}

// 4. CreateTechnician 创建新技师，密码入库前加密
func (s *TechnicianService) CreateTechnician(tech *models.Technician) error {
	var count int64
	if err := s.DB.Model(&models.Technician{}).Where("username = ?", tech.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrTechnicianExists
	}

	hashed, err := utils.HashPassword(tech.Password)
	if err != nil {
		return err
	}
	tech.Password = hashed

	return s.DB.Create(tech).Error
}

// 5. UpdateTechnician 更新技师信息，密码字段不在此处修改
func (s *TechnicianService) UpdateTechnician(id uint, updates map[string]interface{}) (*models.Technician, error) {
	tech, err := s.GetTechnicianByID(id)
	if err != nil {
		return nil, err
	}

	delete(updates, "password")

	if err := s.DB.Model(tech).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetTechnicianByID(id)
}

// 6. ChangePassword 修改密码，需要验证旧密码
func (s *TechnicianService) ChangePassword(id uint, oldPassword, newPassword string) error {
	tech, err := s.GetTechnicianByID(id)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(oldPassword, tech.Password) {
		return ErrPasswordIncorrect
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.DB.Model(tech).Update("password", hashed).Error
}

// 7. DeleteTechnician 删除技师账号
func (s *TechnicianService) DeleteTechnician(id uint) error {
	tech, err := s.GetTechnicianByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(tech).Error
}

// 8. EnsureAdmin 保证存在系统管理员账号，启动时调用
func (s *TechnicianService) EnsureAdmin(username, password string) error {
	var count int64
	if err := s.DB.Model(&models.Technician{}).Where("role = ?", models.TechnicianRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.Technician{
		Username: username,
		Password: password,
		Name:     "System Admin",
		Role:     models.TechnicianRoleAdmin,
	}
	if err := s.CreateTechnician(admin); err != nil {
		return err
	}

	config.Info("已创建默认管理员账号: %s", username)
	return nil
}
