package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"
	"wiretrack-http-service/utils"

	"gorm.io/gorm"
)

// VisibilityState 阶段数据对查看者的可见状态
type VisibilityState string

const (
	VisibilityVisible VisibilityState = "visible"
	VisibilityMasked  VisibilityState = "masked"
)

// StageView 带可见性标记的阶段视图。被遮蔽时照片和完成人信息被清空。
type StageView struct {
	State VisibilityState      `json:"state"`
	Stage models.WireDropStage `json:"stage"`
}

// InterfaceStageService 定义线缆阶段服务接口
type InterfaceStageService interface {
	GetStages(wireDropID uint) ([]models.WireDropStage, error)
	GetStage(wireDropID uint, stageType models.StageType) (*models.WireDropStage, error)
	AttachPhoto(ctx context.Context, wireDropID uint, stageType models.StageType, data []byte, contentType string) (*models.WireDropStage, error)
	ReplacePhoto(ctx context.Context, wireDropID uint, stageType models.StageType, data []byte, contentType string) (*models.WireDropStage, error)
	RemovePhoto(wireDropID uint, stageType models.StageType) (*models.WireDropStage, error)
	RegisterPendingPhoto(wireDropID uint, stageType models.StageType, queuedBy string) (*models.WireDropStage, error)
	MarkComplete(wireDropID uint, stageType models.StageType, completedBy string, notes string) (*models.WireDropStage, error)
	UndoComplete(wireDropID uint, stageType models.StageType) (*models.WireDropStage, error)
	VisibilityFor(viewerID string, stage *models.WireDropStage, doubleBlind bool) StageView
}

// StageService 管理线缆的三个安装阶段：预埋、面板、调试。
// 完成状态只通过 MarkComplete / UndoComplete 变化，删除照片会强制回退完成状态。
type StageService struct {
	DB       *gorm.DB
	Config   *config.Config
	Photos   InterfacePhotoService
	Queue    InterfaceUploadQueueService
	Redis    InterfaceRedisService
	inFlight sync.Map // "wireDropID:stageType" -> struct{}，照片操作的重入保护
}

// NewStageService 创建一个新的阶段服务
func NewStageService(db *gorm.DB, cfg *config.Config, photos InterfacePhotoService, queue InterfaceUploadQueueService, redisSvc InterfaceRedisService) *StageService {
	s := &StageService{
		DB:     db,
		Config: cfg,
		Photos: photos,
		Queue:  queue,
		Redis:  redisSvc,
	}

	// 离线上传完成的回执：把pending照片转成已落库
	if queue != nil {
		queue.OnUploadComplete(s.confirmPendingPhoto)
	}

	return s
}

// 1. GetStages 获取线缆的全部阶段记录
func (s *StageService) GetStages(wireDropID uint) ([]models.WireDropStage, error) {
	if _, err := s.getWireDrop(wireDropID); err != nil {
		return nil, err
	}

	var stages []models.WireDropStage
	if err := s.DB.Where("wire_drop_id = ?", wireDropID).Find(&stages).Error; err != nil {
		return nil, err
	}
	return stages, nil
}

// 2. GetStage 获取指定类型的阶段记录
func (s *StageService) GetStage(wireDropID uint, stageType models.StageType) (*models.WireDropStage, error) {
	if !models.IsValidStageType(stageType) {
		return nil, ErrInvalidStageType
	}

	var stage models.WireDropStage
	err := s.DB.Where("wire_drop_id = ? AND stage_type = ?", wireDropID, stageType).First(&stage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStageNotFound
		}
		return nil, err
	}
	return &stage, nil
}

// 3. AttachPhoto 上传阶段照片。只更新照片字段，不改变完成状态。
func (s *StageService) AttachPhoto(ctx context.Context, wireDropID uint, stageType models.StageType, data []byte, contentType string) (*models.WireDropStage, error) {
	return s.putPhoto(ctx, wireDropID, stageType, data, contentType, false)
}

// 4. ReplacePhoto 替换已有的阶段照片。旧存储对象被取代，不主动删除。
func (s *StageService) ReplacePhoto(ctx context.Context, wireDropID uint, stageType models.StageType, data []byte, contentType string) (*models.WireDropStage, error) {
	return s.putPhoto(ctx, wireDropID, stageType, data, contentType, true)
}

func (s *StageService) putPhoto(ctx context.Context, wireDropID uint, stageType models.StageType, data []byte, contentType string, mustExist bool) (*models.WireDropStage, error) {
	if !models.IsValidStageType(stageType) {
		return nil, ErrInvalidStageType
	}
	if _, err := s.getWireDrop(wireDropID); err != nil {
		return nil, err
	}

	// 同一阶段同时只允许一个照片操作在进行
	release, err := s.acquire(wireDropID, stageType)
	if err != nil {
		return nil, err
	}
	defer release()

	stage, err := s.getOrCreateStage(wireDropID, stageType)
	if err != nil {
		return nil, err
	}
	if mustExist && stage.PhotoURL == "" {
		return nil, ErrPhotoNotFound
	}

	key := utils.NewStorageKey("stages")
	url, err := s.Photos.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPhotoUpload, err)
	}

	updates := map[string]interface{}{
		"photo_url":    url,
		"photo_key":    key,
		"photo_status": models.PhotoStatusUploaded,
	}
	if err := s.DB.Model(stage).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateSummary(wireDropID)
	return s.GetStage(wireDropID, stageType)
}

// 5. RemovePhoto 删除阶段照片，并强制将完成状态回退为未完成。
// 已完成但没有照片的阶段是非法状态，不允许出现。
func (s *StageService) RemovePhoto(wireDropID uint, stageType models.StageType) (*models.WireDropStage, error) {
	if !models.IsValidStageType(stageType) {
		return nil, ErrInvalidStageType
	}

	release, err := s.acquire(wireDropID, stageType)
	if err != nil {
		return nil, err
	}
	defer release()

	stage, err := s.GetStage(wireDropID, stageType)
	if err != nil {
		return nil, err
	}
	if stage.PhotoURL == "" {
		return nil, ErrPhotoNotFound
	}

	updates := map[string]interface{}{
		"photo_url":    "",
		"photo_key":    "",
		"photo_status": "",
		"completed":    false,
		"completed_at": nil,
		"completed_by": "",
	}
	if err := s.DB.Model(stage).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateSummary(wireDropID)
	return s.GetStage(wireDropID, stageType)
}

// 6. RegisterPendingPhoto 设备离线时登记待上传照片。
// 阶段显示为pending，不满足完成条件；实际上传由队列协作方完成。
func (s *StageService) RegisterPendingPhoto(wireDropID uint, stageType models.StageType, queuedBy string) (*models.WireDropStage, error) {
	if !models.IsValidStageType(stageType) {
		return nil, ErrInvalidStageType
	}
	if _, err := s.getWireDrop(wireDropID); err != nil {
		return nil, err
	}

	stage, err := s.getOrCreateStage(wireDropID, stageType)
	if err != nil {
		return nil, err
	}

	key := utils.NewStorageKey("stages")
	updates := map[string]interface{}{
		"photo_key":    key,
		"photo_status": models.PhotoStatusPending,
	}
	if err := s.DB.Model(stage).Updates(updates).Error; err != nil {
		return nil, err
	}

	if s.Queue != nil {
		task := PhotoUploadTask{
			WireDropID: wireDropID,
			StageType:  string(stageType),
			PhotoKey:   key,
			QueuedBy:   queuedBy,
		}
		if err := s.Queue.EnqueuePhotoUpload(task); err != nil {
			config.Warning("发布离线上传任务失败: %v", err)
		}
	}

	return s.GetStage(wireDropID, stageType)
}

// confirmPendingPhoto 收到上传完成回执后，把pending照片标记为已落库
func (s *StageService) confirmPendingPhoto(receipt PhotoUploadReceipt) {
	stage, err := s.GetStage(receipt.WireDropID, models.StageType(receipt.StageType))
	if err != nil {
		config.Warning("上传回执对应的阶段不存在: wire_drop=%d stage=%s", receipt.WireDropID, receipt.StageType)
		return
	}

	// 回执必须对应当前登记的key，过期回执直接丢弃
	if stage.PhotoKey != receipt.PhotoKey || stage.PhotoStatus != models.PhotoStatusPending {
		return
	}

	updates := map[string]interface{}{
		"photo_url":    receipt.PhotoURL,
		"photo_status": models.PhotoStatusUploaded,
	}
	if err := s.DB.Model(stage).Updates(updates).Error; err != nil {
		config.Error("更新pending照片失败: %v", err)
		return
	}

	s.invalidateSummary(receipt.WireDropID)
}

// 7. MarkComplete 标记阶段完成。
// 预埋/面板阶段要求已落库的照片；调试阶段不要求照片，要求签核人，可附备注。
func (s *StageService) MarkComplete(wireDropID uint, stageType models.StageType, completedBy string, notes string) (*models.WireDropStage, error) {
	if !models.IsValidStageType(stageType) {
		return nil, ErrInvalidStageType
	}
	if _, err := s.getWireDrop(wireDropID); err != nil {
		return nil, err
	}
	if completedBy == "" {
		return nil, ErrSignOffRequired
	}

	stage, err := s.getOrCreateStage(wireDropID, stageType)
	if err != nil {
		return nil, err
	}

	if stageType != models.StageCommission && !stage.HasDurablePhoto() {
		return nil, ErrPhotoRequired
	}

	now := time.Now()
	updates := map[string]interface{}{
		"completed":    true,
		"completed_at": &now,
		"completed_by": completedBy,
	}
	if stageType == models.StageCommission && notes != "" {
		updates["notes"] = notes
	}
	if err := s.DB.Model(stage).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateSummary(wireDropID)
	return s.GetStage(wireDropID, stageType)
}

// 8. UndoComplete 撤销阶段完成，照片保留。主要用于撤销调试签核。
func (s *StageService) UndoComplete(wireDropID uint, stageType models.StageType) (*models.WireDropStage, error) {
	stage, err := s.GetStage(wireDropID, stageType)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"completed":    false,
		"completed_at": nil,
		"completed_by": "",
	}
	if err := s.DB.Model(stage).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateSummary(wireDropID)
	return s.GetStage(wireDropID, stageType)
}

// 9. VisibilityFor 盲复核规则：开启双盲模式时，已完成且完成人不是
// 当前查看者的阶段对其遮蔽，强制第二次独立测量。
func (s *StageService) VisibilityFor(viewerID string, stage *models.WireDropStage, doubleBlind bool) StageView {
	view := StageView{State: VisibilityVisible, Stage: *stage}

	if MaskedFromViewer(stage.Completed, stage.CompletedBy, viewerID, doubleBlind) {
		view.State = VisibilityMasked
		view.Stage.PhotoURL = ""
		view.Stage.PhotoKey = ""
		view.Stage.CompletedBy = ""
		view.Stage.Notes = ""
	}

	return view
}

// getWireDrop 确认线缆存在
func (s *StageService) getWireDrop(id uint) (*models.WireDrop, error) {
	var drop models.WireDrop
	if err := s.DB.First(&drop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWireDropNotFound
		}
		return nil, err
	}
	return &drop, nil
}

// getOrCreateStage 阶段记录在第一次被操作时惰性创建
func (s *StageService) getOrCreateStage(wireDropID uint, stageType models.StageType) (*models.WireDropStage, error) {
	stage, err := s.GetStage(wireDropID, stageType)
	if err == nil {
		return stage, nil
	}
	if !errors.Is(err, ErrStageNotFound) {
		return nil, err
	}

	created := &models.WireDropStage{
		WireDropID: wireDropID,
		StageType:  stageType,
	}
	if err := s.DB.Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// acquire 获取阶段照片操作的重入锁，返回释放函数
func (s *StageService) acquire(wireDropID uint, stageType models.StageType) (func(), error) {
	key := fmt.Sprintf("%d:%s", wireDropID, stageType)
	if _, loaded := s.inFlight.LoadOrStore(key, struct{}{}); loaded {
		return nil, ErrStageBusy
	}
	return func() { s.inFlight.Delete(key) }, nil
}

// invalidateSummary 阶段变化后使项目汇总缓存失效
func (s *StageService) invalidateSummary(wireDropID uint) {
	if s.Redis == nil {
		return
	}

	var drop models.WireDrop
	if err := s.DB.Select("project_id").First(&drop, wireDropID).Error; err != nil {
		return
	}
	if err := s.Redis.InvalidateProjectSummary(drop.ProjectID); err != nil {
		config.Warning("使项目汇总缓存失效失败: %v", err)
	}
}
