package services

import (
	"errors"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"
	"wiretrack-http-service/utils"

	"gorm.io/gorm"
)

// InterfaceWireDropService 定义线缆服务接口
type InterfaceWireDropService interface {
	GetWireDropsByProject(projectID uint, page, pageSize int) ([]models.WireDrop, int64, error)
	GetWireDropByID(id uint) (*models.WireDrop, error)
	GetWireDropByUID(uid string) (*models.WireDrop, error)
	CreateWireDrop(drop *models.WireDrop) error
	ImportWireDrops(projectID uint, drops []models.WireDrop) (int, error)
	UpdateWireDrop(id uint, updates map[string]interface{}) (*models.WireDrop, error)
	QueueNotes(id uint, notes string) error
	DeleteWireDrop(id uint) error
}

// WireDropService 提供线缆相关的服务
type WireDropService struct {
	DB     *gorm.DB
	Config *config.Config
	Notes  InterfaceNoteSaver
}

// NewWireDropService 创建一个新的线缆服务
func NewWireDropService(db *gorm.DB, cfg *config.Config, notes InterfaceNoteSaver) InterfaceWireDropService {
	return &WireDropService{
		DB:     db,
		Config: cfg,
		Notes:  notes,
	}
}

// 1. GetWireDropsByProject 获取项目内的线缆列表，支持分页，
// 按(房间名, 线缆名)排序，与引导式巡检一致
func (s *WireDropService) GetWireDropsByProject(projectID uint, page, pageSize int) ([]models.WireDrop, int64, error) {
	var drops []models.WireDrop
	var total int64

	// 获取总数
	if err := s.DB.Model(&models.WireDrop{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	err := s.DB.Where("project_id = ?", projectID).
		Preload("Stages").
		Preload("EquipmentLinks").
		Order("room_name, name").
		Limit(pageSize).Offset(offset).
		Find(&drops).Error
	if err != nil {
		return nil, 0, err
	}

	return drops, total, nil
}

// 2. GetWireDropByID 根据ID获取线缆详情
func (s *WireDropService) GetWireDropByID(id uint) (*models.WireDrop, error) {
	var drop models.WireDrop
	err := s.DB.Preload("Stages").
		Preload("EquipmentLinks").
		Preload("EquipmentLinks.Equipment").
		Preload("ShadeLink").
		Preload("ShadeLink.Shade").
		First(&drop, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWireDropNotFound
		}
		return nil, err
	}
	return &drop, nil
}

// 3. GetWireDropByUID 扫码入口：根据二维码编号获取线缆
func (s *WireDropService) GetWireDropByUID(uid string) (*models.WireDrop, error) {
	var drop models.WireDrop
	err := s.DB.Where("uid = ?", uid).
		Preload("Stages").
		Preload("EquipmentLinks").
		Preload("EquipmentLinks.Equipment").
		Preload("ShadeLink").
		Preload("ShadeLink.Shade").
		First(&drop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWireDropNotFound
		}
		return nil, err
	}
	return &drop, nil
}

// 4. CreateWireDrop 创建新线缆，编号为空时自动生成
func (s *WireDropService) CreateWireDrop(drop *models.WireDrop) error {
	if drop.UID == "" {
		drop.UID = utils.NewWireDropUID()
	}

	// 验证编号唯一性
	var count int64
	if err := s.DB.Model(&models.WireDrop{}).Where("uid = ?", drop.UID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrWireDropUIDTaken
	}

	return s.DB.Create(drop).Error
}

// 5. ImportWireDrops 从外部图纸工具批量导入线缆，返回成功条数。
// 编号冲突的行跳过，不中断整批。
func (s *WireDropService) ImportWireDrops(projectID uint, drops []models.WireDrop) (int, error) {
	imported := 0
	for i := range drops {
		drops[i].ID = 0
		drops[i].ProjectID = projectID
		if err := s.CreateWireDrop(&drops[i]); err != nil {
			if errors.Is(err, ErrWireDropUIDTaken) {
				config.Warning("导入跳过重复编号: %s", drops[i].UID)
				continue
			}
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// 6. UpdateWireDrop 更新线缆基本信息
func (s *WireDropService) UpdateWireDrop(id uint, updates map[string]interface{}) (*models.WireDrop, error) {
	drop, err := s.GetWireDropByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新编号，需要检查唯一性
	if uid, ok := updates["uid"].(string); ok && uid != drop.UID {
		var count int64
		if err := s.DB.Model(&models.WireDrop{}).Where("uid = ? AND id != ?", uid, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrWireDropUIDTaken
		}
	}

	if err := s.DB.Model(drop).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetWireDropByID(id)
}

// 7. QueueNotes 备注走防抖写入，快速连续编辑只落库一次
func (s *WireDropService) QueueNotes(id uint, notes string) error {
	if _, err := s.GetWireDropByID(id); err != nil {
		return err
	}

	if s.Notes != nil {
		s.Notes.QueueWireDropNotes(id, notes)
		return nil
	}

	return s.DB.Model(&models.WireDrop{}).Where("id = ?", id).Update("notes", notes).Error
}

// 8. DeleteWireDrop 删除线缆及其全部附属记录。
// 删除是显式触发并需要前端确认的操作，本服务不做自动删除。
func (s *WireDropService) DeleteWireDrop(id uint) error {
	drop, err := s.GetWireDropByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wire_drop_id = ?", id).Delete(&models.WireDropStage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("wire_drop_id = ?", id).Delete(&models.EquipmentLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("wire_drop_id = ?", id).Delete(&models.ShadeLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(drop).Error
	})
}
