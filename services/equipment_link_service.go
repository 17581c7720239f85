package services

import (
	"errors"
	"sort"
	"strings"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// RoomGroup 按房间分组的候选设备
type RoomGroup struct {
	RoomName  string                     `json:"room_name"`
	Equipment []RankedEquipmentCandidate `json:"equipment"`
}

// RankedEquipmentCandidate 一个候选设备及其选中标记
type RankedEquipmentCandidate struct {
	Equipment models.ProjectEquipment `json:"equipment"`
	Selected  bool                    `json:"selected"`
}

// RankedCandidates 排序后的候选集：优先组在前，其余按房间分组
type RankedCandidates struct {
	Preferred  []RankedEquipmentCandidate `json:"preferred"` // 房间端=同房间设备；机柜端=机柜间设备
	OtherRooms []RoomGroup                `json:"other_rooms"`
}

// InterfaceEquipmentLinkService 定义设备关联服务接口
type InterfaceEquipmentLinkService interface {
	EligibleEquipment(projectID uint) ([]models.ProjectEquipment, error)
	RankForRoomEnd(candidates []models.ProjectEquipment, wireDropRoomName string, currentSelectionID uint) RankedCandidates
	RankForHeadEnd(candidates []models.ProjectEquipment, currentSelectionIDs []uint) RankedCandidates
	SetRoomEnd(wireDropID uint, equipmentID *uint, actorID string) (*models.WireDrop, error)
	AddHeadEnd(wireDropID uint, equipmentID uint, actorID string) (*models.WireDrop, error)
	RemoveHeadEnd(wireDropID uint, equipmentID uint) (*models.WireDrop, error)
	SetPrimaryHeadEnd(wireDropID uint, equipmentID uint) (*models.WireDrop, error)
	PrimaryRoomEnd(wireDropID uint) (*models.ProjectEquipment, error)
	PrimaryHeadEnd(wireDropID uint) (*models.ProjectEquipment, error)
}

// EquipmentLinkService 负责线缆两端设备关联的展示排序和变更。
// 房间端单选替换，机柜端多选，首个加入者为主显示设备。
type EquipmentLinkService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewEquipmentLinkService 创建一个新的设备关联服务
func NewEquipmentLinkService(db *gorm.DB, cfg *config.Config, redisSvc InterfaceRedisService) InterfaceEquipmentLinkService {
	return &EquipmentLinkService{
		DB:     db,
		Config: cfg,
		Redis:  redisSvc,
	}
}

// 1. EligibleEquipment 获取项目内可关联线缆的设备全集。
// 只有全局部件定义标记为可见的设备才能作为候选。
func (s *EquipmentLinkService) EligibleEquipment(projectID uint) ([]models.ProjectEquipment, error) {
	var equipment []models.ProjectEquipment
	if err := s.DB.Where("project_id = ? AND wire_drop_visible = ?", projectID, true).Find(&equipment).Error; err != nil {
		return nil, err
	}
	return equipment, nil
}

// 2. RankForRoomEnd 房间端候选排序：与线缆同房间的设备永远排在最前，
// 其余按房间名分组排序。房间名比较做去空格和大小写归一，
// 因为导入数据的房间名经常只差大小写或空格。
func (s *EquipmentLinkService) RankForRoomEnd(candidates []models.ProjectEquipment, wireDropRoomName string, currentSelectionID uint) RankedCandidates {
	dropRoom := normalizeRoomName(wireDropRoomName)

	var sameRoom []models.ProjectEquipment
	var others []models.ProjectEquipment
	for _, eq := range candidates {
		if dropRoom != "" && normalizeRoomName(eq.RoomName) == dropRoom {
			sameRoom = append(sameRoom, eq)
		} else {
			others = append(others, eq)
		}
	}

	return RankedCandidates{
		Preferred:  markSelection(sortByName(sameRoom), []uint{currentSelectionID}),
		OtherRooms: groupByRoom(others, []uint{currentSelectionID}),
	}
}

// 3. RankForHeadEnd 机柜端候选排序：机柜间的设备排在最前，
// 已选中的设备从候选中剔除（前端单独显示为已选标签）。
func (s *EquipmentLinkService) RankForHeadEnd(candidates []models.ProjectEquipment, currentSelectionIDs []uint) RankedCandidates {
	selected := make(map[uint]bool, len(currentSelectionIDs))
	for _, id := range currentSelectionIDs {
		selected[id] = true
	}

	var headEnd []models.ProjectEquipment
	var others []models.ProjectEquipment
	for _, eq := range candidates {
		if selected[eq.ID] {
			continue
		}
		if eq.HeadEndRoom {
			headEnd = append(headEnd, eq)
		} else {
			others = append(others, eq)
		}
	}

	return RankedCandidates{
		Preferred:  markSelection(sortByName(headEnd), nil),
		OtherRooms: groupByRoom(others, nil),
	}
}

// 4. SetRoomEnd 设置房间端设备，替换语义：新选择总是取代旧选择，
// 传nil清空。重复设置同一设备是幂等的no-op。
func (s *EquipmentLinkService) SetRoomEnd(wireDropID uint, equipmentID *uint, actorID string) (*models.WireDrop, error) {
	drop, err := s.getWireDrop(wireDropID)
	if err != nil {
		return nil, err
	}

	if equipmentID != nil {
		if _, err := s.getEligible(drop.ProjectID, *equipmentID); err != nil {
			return nil, err
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// 单选替换：先清掉现有的房间端关联
		if err := tx.Where("wire_drop_id = ? AND link_side = ?", wireDropID, models.LinkSideRoomEnd).
			Delete(&models.EquipmentLink{}).Error; err != nil {
			return err
		}

		if equipmentID == nil {
			return nil
		}

		link := &models.EquipmentLink{
			WireDropID:         wireDropID,
			ProjectEquipmentID: *equipmentID,
			LinkSide:           models.LinkSideRoomEnd,
			Primary:            true,
		}
		return tx.Create(link).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateSummary(drop.ProjectID)
	return s.reload(wireDropID)
}

// 5. AddHeadEnd 添加机柜端设备，多选累加。第一个加入的设备为主显示设备。
// 重复添加同一设备是幂等的no-op。
func (s *EquipmentLinkService) AddHeadEnd(wireDropID uint, equipmentID uint, actorID string) (*models.WireDrop, error) {
	drop, err := s.getWireDrop(wireDropID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getEligible(drop.ProjectID, equipmentID); err != nil {
		return nil, err
	}

	var existing int64
	if err := s.DB.Model(&models.EquipmentLink{}).
		Where("wire_drop_id = ? AND link_side = ? AND project_equipment_id = ?", wireDropID, models.LinkSideHeadEnd, equipmentID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		// 已存在，幂等返回
		return s.reload(wireDropID)
	}

	var count int64
	if err := s.DB.Model(&models.EquipmentLink{}).
		Where("wire_drop_id = ? AND link_side = ?", wireDropID, models.LinkSideHeadEnd).
		Count(&count).Error; err != nil {
		return nil, err
	}

	link := &models.EquipmentLink{
		WireDropID:         wireDropID,
		ProjectEquipmentID: equipmentID,
		LinkSide:           models.LinkSideHeadEnd,
		Primary:            count == 0, // 第一个加入者为主设备
	}
	if err := s.DB.Create(link).Error; err != nil {
		return nil, err
	}

	s.invalidateSummary(drop.ProjectID)
	return s.reload(wireDropID)
}

// 6. RemoveHeadEnd 移除机柜端设备。移除不存在的关联按成功处理，
// 因为现场快速连点删除是常见操作。移除主设备时最早加入的剩余设备顶上。
func (s *EquipmentLinkService) RemoveHeadEnd(wireDropID uint, equipmentID uint) (*models.WireDrop, error) {
	drop, err := s.getWireDrop(wireDropID)
	if err != nil {
		return nil, err
	}

	var link models.EquipmentLink
	err = s.DB.Where("wire_drop_id = ? AND link_side = ? AND project_equipment_id = ?", wireDropID, models.LinkSideHeadEnd, equipmentID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 幂等：关联本来就不存在
			return s.reload(wireDropID)
		}
		return nil, err
	}

	wasPrimary := link.Primary
	if err := s.DB.Delete(&link).Error; err != nil {
		return nil, err
	}

	if wasPrimary {
		// 主设备被移除，按加入顺序提升下一个
		var next models.EquipmentLink
		err := s.DB.Where("wire_drop_id = ? AND link_side = ?", wireDropID, models.LinkSideHeadEnd).
			Order("id asc").First(&next).Error
		if err == nil {
			if err := s.DB.Model(&next).Update("is_primary", true).Error; err != nil {
				return nil, err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	s.invalidateSummary(drop.ProjectID)
	return s.reload(wireDropID)
}

// 7. SetPrimaryHeadEnd 显式指定机柜端主显示设备
func (s *EquipmentLinkService) SetPrimaryHeadEnd(wireDropID uint, equipmentID uint) (*models.WireDrop, error) {
	if _, err := s.getWireDrop(wireDropID); err != nil {
		return nil, err
	}

	var link models.EquipmentLink
	err := s.DB.Where("wire_drop_id = ? AND link_side = ? AND project_equipment_id = ?", wireDropID, models.LinkSideHeadEnd, equipmentID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EquipmentLink{}).
			Where("wire_drop_id = ? AND link_side = ?", wireDropID, models.LinkSideHeadEnd).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&link).Update("is_primary", true).Error
	})
	if err != nil {
		return nil, err
	}

	return s.reload(wireDropID)
}

// 8. PrimaryRoomEnd 返回房间端关联的设备，未关联返回nil
func (s *EquipmentLinkService) PrimaryRoomEnd(wireDropID uint) (*models.ProjectEquipment, error) {
	return s.primaryBySide(wireDropID, models.LinkSideRoomEnd)
}

// 9. PrimaryHeadEnd 返回机柜端的主显示设备，未关联返回nil
func (s *EquipmentLinkService) PrimaryHeadEnd(wireDropID uint) (*models.ProjectEquipment, error) {
	return s.primaryBySide(wireDropID, models.LinkSideHeadEnd)
}

func (s *EquipmentLinkService) primaryBySide(wireDropID uint, side models.LinkSide) (*models.ProjectEquipment, error) {
	if _, err := s.getWireDrop(wireDropID); err != nil {
		return nil, err
	}

	var link models.EquipmentLink
	err := s.DB.Where("wire_drop_id = ? AND link_side = ? AND is_primary = ?", wireDropID, side, true).
		Preload("Equipment").First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return link.Equipment, nil
}

func (s *EquipmentLinkService) getWireDrop(id uint) (*models.WireDrop, error) {
	var drop models.WireDrop
	if err := s.DB.First(&drop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWireDropNotFound
		}
		return nil, err
	}
	return &drop, nil
}

// getEligible 确认设备存在且允许关联线缆
func (s *EquipmentLinkService) getEligible(projectID, equipmentID uint) (*models.ProjectEquipment, error) {
	var eq models.ProjectEquipment
	if err := s.DB.Where("project_id = ?", projectID).First(&eq, equipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	if !eq.WireDropVisible {
		return nil, ErrEquipmentNotVisible
	}
	return &eq, nil
}

// reload 返回含阶段和关联的权威线缆记录，供前端对账本地乐观状态
func (s *EquipmentLinkService) reload(wireDropID uint) (*models.WireDrop, error) {
	var drop models.WireDrop
	err := s.DB.Preload("Stages").
		Preload("EquipmentLinks").
		Preload("EquipmentLinks.Equipment").
		Preload("ShadeLink").
		Preload("ShadeLink.Shade").
		First(&drop, wireDropID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWireDropNotFound
		}
		return nil, err
	}
	return &drop, nil
}

func (s *EquipmentLinkService) invalidateSummary(projectID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.InvalidateProjectSummary(projectID); err != nil {
		config.Warning("使项目汇总缓存失效失败: %v", err)
	}
}

// normalizeRoomName 去空格、大小写归一后的房间名
func normalizeRoomName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// sortByName 按设备名做不区分大小写的字典序排序，空名排最后
func sortByName(equipment []models.ProjectEquipment) []models.ProjectEquipment {
	sorted := make([]models.ProjectEquipment, len(equipment))
	copy(sorted, equipment)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Name, sorted[j].Name
		if a == "" || b == "" {
			return b == "" && a != ""
		}
		return strings.ToLower(a) < strings.ToLower(b)
	})
	return sorted
}

// markSelection 给当前已选中的设备打标记
func markSelection(equipment []models.ProjectEquipment, selectedIDs []uint) []RankedEquipmentCandidate {
	selected := make(map[uint]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		if id != 0 {
			selected[id] = true
		}
	}

	candidates := make([]RankedEquipmentCandidate, 0, len(equipment))
	for _, eq := range equipment {
		candidates = append(candidates, RankedEquipmentCandidate{
			Equipment: eq,
			Selected:  selected[eq.ID],
		})
	}
	return candidates
}

// groupByRoom 其余设备按房间名分组，组间按房间名排序，组内按设备名排序
func groupByRoom(equipment []models.ProjectEquipment, selectedIDs []uint) []RoomGroup {
	byRoom := make(map[string][]models.ProjectEquipment)
	displayName := make(map[string]string)
	for _, eq := range equipment {
		norm := normalizeRoomName(eq.RoomName)
		byRoom[norm] = append(byRoom[norm], eq)
		if _, ok := displayName[norm]; !ok {
			displayName[norm] = strings.TrimSpace(eq.RoomName)
		}
	}

	rooms := make([]string, 0, len(byRoom))
	for room := range byRoom {
		rooms = append(rooms, room)
	}
	// 空房间名分组排最后
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i] == "" || rooms[j] == "" {
			return rooms[j] == "" && rooms[i] != ""
		}
		return rooms[i] < rooms[j]
	})

	groups := make([]RoomGroup, 0, len(rooms))
	for _, room := range rooms {
		groups = append(groups, RoomGroup{
			RoomName:  displayName[room],
			Equipment: markSelection(sortByName(byRoom[room]), selectedIDs),
		})
	}
	return groups
}
