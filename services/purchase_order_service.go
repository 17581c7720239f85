package services

import (
	"errors"
	"time"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// ReceiveItemInput 一次到货登记的单行数量
type ReceiveItemInput struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// InterfacePurchaseOrderService 定义采购单服务接口
type InterfacePurchaseOrderService interface {
	GetPurchaseOrdersByProject(projectID uint, page, pageSize int) ([]models.PurchaseOrder, int64, error)
	GetPurchaseOrderByID(id uint) (*models.PurchaseOrder, error)
	CreatePurchaseOrder(po *models.PurchaseOrder) error
	UpdatePurchaseOrder(id uint, updates map[string]interface{}) (*models.PurchaseOrder, error)
	ReceiveItems(id uint, items []ReceiveItemInput, actorID string) (*models.PurchaseOrder, error)
	DeletePurchaseOrder(id uint) error
}

// PurchaseOrderService 提供采购单相关的服务
type PurchaseOrderService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPurchaseOrderService 创建一个新的采购单服务
func NewPurchaseOrderService(db *gorm.DB, cfg *config.Config) InterfacePurchaseOrderService {
	return &PurchaseOrderService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetPurchaseOrdersByProject 获取项目采购单列表，支持分页
func (s *PurchaseOrderService) GetPurchaseOrdersByProject(projectID uint, page, pageSize int) ([]models.PurchaseOrder, int64, error) {
	var orders []models.PurchaseOrder
	var total int64

	if err := s.DB.Model(&models.PurchaseOrder{}).Where("project_id = ?", projectID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := s.DB.Where("project_id = ?", projectID).
		Preload("Items").
		Order("id desc").
		Limit(pageSize).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// 2. GetPurchaseOrderByID 根据ID获取采购单
func (s *PurchaseOrderService) GetPurchaseOrderByID(id uint) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	if err := s.DB.Preload("Items").First(&po, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseOrderNotFound
		}
		return nil, err
	}
	return &po, nil
}

// 3. CreatePurchaseOrder 创建采购单，行项目一并写入
func (s *PurchaseOrderService) CreatePurchaseOrder(po *models.PurchaseOrder) error {
	return s.DB.Create(po).Error
}

// 4. UpdatePurchaseOrder 更新采购单基本信息
func (s *PurchaseOrderService) UpdatePurchaseOrder(id uint, updates map[string]interface{}) (*models.PurchaseOrder, error) {
	po, err := s.GetPurchaseOrderByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(po).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetPurchaseOrderByID(id)
}

// 5. ReceiveItems 登记到货数量。全部行收齐置为received，
// 部分收货置为partial，并记录经手人和时间。
func (s *PurchaseOrderService) ReceiveItems(id uint, items []ReceiveItemInput, actorID string) (*models.PurchaseOrder, error) {
	po, err := s.GetPurchaseOrderByID(id)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range items {
			res := tx.Model(&models.PurchaseOrderItem{}).
				Where("id = ? AND purchase_order_id = ?", in.ItemID, id).
				Update("quantity_recv", gorm.Expr("quantity_recv + ?", in.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrPurchaseOrderNotFound
			}
		}

		// 重新统计收货进度
		var lines []models.PurchaseOrderItem
		if err := tx.Where("purchase_order_id = ?", id).Find(&lines).Error; err != nil {
			return err
		}

		allReceived := len(lines) > 0
		anyReceived := false
		for _, line := range lines {
			if line.QuantityRecv > 0 {
				anyReceived = true
			}
			if line.QuantityRecv < line.Quantity {
				allReceived = false
			}
		}

		status := po.Status
		switch {
		case allReceived:
			status = models.POStatusReceived
		case anyReceived:
			status = models.POStatusPartial
		}

		updates := map[string]interface{}{"status": status}
		if allReceived {
			now := time.Now()
			updates["received_by"] = actorID
			updates["received_at"] = &now
		}

		return tx.Model(&models.PurchaseOrder{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	config.Info("采购单 %s 登记到货，经手人 %s", po.PONumber, actorID)
	return s.GetPurchaseOrderByID(id)
}

// 6. DeletePurchaseOrder 删除采购单及其行项目
func (s *PurchaseOrderService) DeletePurchaseOrder(id uint) error {
	po, err := s.GetPurchaseOrderByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(po).Error
	})
}
