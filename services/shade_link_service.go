package services

import (
	"errors"
	"sort"
	"strings"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// RankedShadeCandidate 一个候选窗帘及其选中标记
type RankedShadeCandidate struct {
	Shade    models.ProjectShade `json:"shade"`
	Selected bool                `json:"selected"`
}

// ShadeRoomGroup 按房间分组的候选窗帘
type ShadeRoomGroup struct {
	RoomName string                 `json:"room_name"`
	Shades   []RankedShadeCandidate `json:"shades"`
}

// RankedShades 排序后的窗帘候选集，同房间优先
type RankedShades struct {
	SameRoom   []RankedShadeCandidate `json:"same_room"`
	OtherRooms []ShadeRoomGroup       `json:"other_rooms"`
}

// InterfaceShadeLinkService 定义窗帘关联服务接口
type InterfaceShadeLinkService interface {
	RankShades(candidates []models.ProjectShade, wireDropRoomName string, currentSelectionID uint) RankedShades
	SetShadeLink(wireDropID uint, shadeID *uint, actorID string) (*models.WireDrop, error)
	LinkedShade(wireDropID uint) (*models.ProjectShade, error)
}

// ShadeLinkService 线缆与窗帘的单选关联。
// 结构上就是房间端设备关联的受限版本：同样的同房间优先排序和替换语义，
// 没有机柜端的对应物。
type ShadeLinkService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewShadeLinkService 创建一个新的窗帘关联服务
func NewShadeLinkService(db *gorm.DB, cfg *config.Config, redisSvc InterfaceRedisService) InterfaceShadeLinkService {
	return &ShadeLinkService{
		DB:     db,
		Config: cfg,
		Redis:  redisSvc,
	}
}

// 1. RankShades 窗帘候选排序，同房间的排最前
func (s *ShadeLinkService) RankShades(candidates []models.ProjectShade, wireDropRoomName string, currentSelectionID uint) RankedShades {
	dropRoom := normalizeRoomName(wireDropRoomName)

	var sameRoom []models.ProjectShade
	var others []models.ProjectShade
	for _, shade := range candidates {
		if dropRoom != "" && normalizeRoomName(shade.RoomName) == dropRoom {
			sameRoom = append(sameRoom, shade)
		} else {
			others = append(others, shade)
		}
	}

	return RankedShades{
		SameRoom:   markShadeSelection(sortShadesByName(sameRoom), currentSelectionID),
		OtherRooms: groupShadesByRoom(others, currentSelectionID),
	}
}

// 2. SetShadeLink 设置窗帘关联，替换语义，传nil清空。
// 重复设置同一窗帘和清空不存在的关联都是幂等的no-op。
func (s *ShadeLinkService) SetShadeLink(wireDropID uint, shadeID *uint, actorID string) (*models.WireDrop, error) {
	var drop models.WireDrop
	if err := s.DB.First(&drop, wireDropID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWireDropNotFound
		}
		return nil, err
	}

	if shadeID != nil {
		var shade models.ProjectShade
		if err := s.DB.Where("project_id = ?", drop.ProjectID).First(&shade, *shadeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrShadeNotFound
			}
			return nil, err
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wire_drop_id = ?", wireDropID).Delete(&models.ShadeLink{}).Error; err != nil {
			return err
		}

		if shadeID == nil {
			return nil
		}

		link := &models.ShadeLink{
			WireDropID:     wireDropID,
			ProjectShadeID: *shadeID,
		}
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.InvalidateProjectSummary(drop.ProjectID); err != nil {
			config.Warning("使项目汇总缓存失效失败: %v", err)
		}
	}

	return s.reload(wireDropID)
}

// 3. LinkedShade 返回已关联的窗帘，未关联返回nil
func (s *ShadeLinkService) LinkedShade(wireDropID uint) (*models.ProjectShade, error) {
	var drop models.WireDrop
	if err := s.DB.First(&drop, wireDropID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWireDropNotFound
		}
		return nil, err
	}

	var link models.ShadeLink
	err := s.DB.Where("wire_drop_id = ?", wireDropID).Preload("Shade").First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return link.Shade, nil
}

func (s *ShadeLinkService) reload(wireDropID uint) (*models.WireDrop, error) {
	var drop models.WireDrop
	err := s.DB.Preload("Stages").
		Preload("EquipmentLinks").
		Preload("ShadeLink").
		Preload("ShadeLink.Shade").
		First(&drop, wireDropID).Error
	if err != nil {
		return nil, err
	}
	return &drop, nil
}

func sortShadesByName(shades []models.ProjectShade) []models.ProjectShade {
	sorted := make([]models.ProjectShade, len(shades))
	copy(sorted, shades)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Name, sorted[j].Name
		if a == "" || b == "" {
			return b == "" && a != ""
		}
		return strings.ToLower(a) < strings.ToLower(b)
	})
	return sorted
}

func markShadeSelection(shades []models.ProjectShade, selectedID uint) []RankedShadeCandidate {
	candidates := make([]RankedShadeCandidate, 0, len(shades))
	for _, shade := range shades {
		candidates = append(candidates, RankedShadeCandidate{
			Shade:    shade,
			Selected: selectedID != 0 && shade.ID == selectedID,
		})
	}
	return candidates
}

func groupShadesByRoom(shades []models.ProjectShade, selectedID uint) []ShadeRoomGroup {
	byRoom := make(map[string][]models.ProjectShade)
	displayName := make(map[string]string)
	for _, shade := range shades {
		norm := normalizeRoomName(shade.RoomName)
		byRoom[norm] = append(byRoom[norm], shade)
		if _, ok := displayName[norm]; !ok {
			displayName[norm] = strings.TrimSpace(shade.RoomName)
		}
	}

	rooms := make([]string, 0, len(byRoom))
	for room := range byRoom {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i] == "" || rooms[j] == "" {
			return rooms[j] == "" && rooms[i] != ""
		}
		return rooms[i] < rooms[j]
	})

	groups := make([]ShadeRoomGroup, 0, len(rooms))
	for _, room := range rooms {
		groups = append(groups, ShadeRoomGroup{
			RoomName: displayName[room],
			Shades:   markShadeSelection(sortShadesByName(byRoom[room]), selectedID),
		})
	}
	return groups
}
