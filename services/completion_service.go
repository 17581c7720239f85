package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// Badge 列表页的单字母指示徽标，线缆属性的纯函数
type Badge struct {
	Letter string `json:"letter"`
	Color  string `json:"color"`
}

// WireDropSummary 列表视图使用的线缆摘要
type WireDropSummary struct {
	ID                uint   `json:"id"`
	UID               string `json:"uid"`
	Name              string `json:"name"`
	RoomName          string `json:"room_name"`
	Auxiliary         bool   `json:"auxiliary"`
	CompletionPercent int    `json:"completion_percent"`
	Badge             Badge  `json:"badge"`
}

// ProjectCompletionSummary 项目级完成度汇总
type ProjectCompletionSummary struct {
	ProjectID      uint              `json:"project_id"`
	TotalDrops     int               `json:"total_drops"`
	PrewireDone    int               `json:"prewire_done"`
	TrimOutDone    int               `json:"trim_out_done"`
	CommissionDone int               `json:"commission_done"`
	AveragePercent int               `json:"average_percent"`
	Drops          []WireDropSummary `json:"drops"`
}

// InterfaceCompletionService 定义完成度汇总服务接口
type InterfaceCompletionService interface {
	CompletionPercent(drop *models.WireDrop) int
	Badge(drop *models.WireDrop) Badge
	Summarize(drop *models.WireDrop) WireDropSummary
	NextIncomplete(projectID uint, currentWireDropID uint) (*models.WireDrop, error)
	ProjectSummary(projectID uint) (*ProjectCompletionSummary, error)
}

// CompletionService 从阶段和关联状态推导完成度数值和徽标。
// 三个阶段等权重；auxiliary只豁免设备关联要求，不改变阶段权重。
type CompletionService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewCompletionService 创建一个新的完成度汇总服务
func NewCompletionService(db *gorm.DB, cfg *config.Config, redisSvc InterfaceRedisService) InterfaceCompletionService {
	return &CompletionService{
		DB:     db,
		Config: cfg,
		Redis:  redisSvc,
	}
}

// 1. CompletionPercent 完成度 = ⌊100 × 已完成阶段数 / 3⌋
func (s *CompletionService) CompletionPercent(drop *models.WireDrop) int {
	completed := 0
	for _, stage := range drop.Stages {
		if stage.Completed {
			completed++
		}
	}
	return 100 * completed / len(models.AllStageTypes)
}

// 2. Badge 徽标：字母取接线类型首字母，颜色按完成度分档
func (s *CompletionService) Badge(drop *models.WireDrop) Badge {
	letter := "?"
	if drop.DropType != "" {
		letter = strings.ToUpper(drop.DropType[:1])
	}

	percent := s.CompletionPercent(drop)
	color := "gray"
	switch {
	case percent >= 100:
		color = "green"
	case percent > 0:
		color = "amber"
	}

	return Badge{Letter: letter, Color: color}
}

// 3. Summarize 生成列表视图摘要
func (s *CompletionService) Summarize(drop *models.WireDrop) WireDropSummary {
	return WireDropSummary{
		ID:                drop.ID,
		UID:               drop.UID,
		Name:              drop.Name,
		RoomName:          drop.RoomName,
		Auxiliary:         drop.Auxiliary,
		CompletionPercent: s.CompletionPercent(drop),
		Badge:             s.Badge(drop),
	}
}

// 4. NextIncomplete 引导式巡检：按(房间名, 线缆名)排序，从当前线缆
// 往后循环查找预埋未完成的下一条，全部完成返回nil。
func (s *CompletionService) NextIncomplete(projectID uint, currentWireDropID uint) (*models.WireDrop, error) {
	var drops []models.WireDrop
	err := s.DB.Where("project_id = ?", projectID).Preload("Stages").Find(&drops).Error
	if err != nil {
		return nil, err
	}
	if len(drops) == 0 {
		return nil, nil
	}

	sort.SliceStable(drops, func(i, j int) bool {
		ri, rj := normalizeRoomName(drops[i].RoomName), normalizeRoomName(drops[j].RoomName)
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(drops[i].Name) < strings.ToLower(drops[j].Name)
	})

	// 当前线缆在排序后的位置，找不到则从头开始
	start := 0
	for i, drop := range drops {
		if drop.ID == currentWireDropID {
			start = i + 1
			break
		}
	}

	for i := 0; i < len(drops); i++ {
		drop := drops[(start+i)%len(drops)]
		prewire := drop.StageByType(models.StagePrewire)
		if prewire == nil || !prewire.Completed {
			result := drop
			return &result, nil
		}
	}

	return nil, nil
}

// 5. ProjectSummary 项目完成度汇总，带redis缓存，缓存5分钟，
// 阶段或关联写入时由各服务使缓存失效。
func (s *CompletionService) ProjectSummary(projectID uint) (*ProjectCompletionSummary, error) {
	if s.Redis != nil {
		var cached ProjectCompletionSummary
		if err := s.Redis.GetProjectSummary(projectID, &cached); err == nil {
			return &cached, nil
		}
	}

	var project models.Project
	if err := s.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	var drops []models.WireDrop
	err := s.DB.Where("project_id = ?", projectID).Preload("Stages").
		Order("room_name, name").Find(&drops).Error
	if err != nil {
		return nil, err
	}

	summary := &ProjectCompletionSummary{
		ProjectID: projectID,
		Drops:     make([]WireDropSummary, 0, len(drops)),
	}

	totalPercent := 0
	for i := range drops {
		drop := &drops[i]
		summary.TotalDrops++

		if stage := drop.StageByType(models.StagePrewire); stage != nil && stage.Completed {
			summary.PrewireDone++
		}
		if stage := drop.StageByType(models.StageTrimOut); stage != nil && stage.Completed {
			summary.TrimOutDone++
		}
		if stage := drop.StageByType(models.StageCommission); stage != nil && stage.Completed {
			summary.CommissionDone++
		}

		ds := s.Summarize(drop)
		totalPercent += ds.CompletionPercent
		summary.Drops = append(summary.Drops, ds)
	}

	if summary.TotalDrops > 0 {
		summary.AveragePercent = totalPercent / summary.TotalDrops
	}

	if s.Redis != nil {
		if err := s.Redis.CacheProjectSummary(projectID, summary, 5*time.Minute); err != nil {
			config.Warning("缓存项目汇总失败: %v", err)
		}
	}

	return summary, nil
}
