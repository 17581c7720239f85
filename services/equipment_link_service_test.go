package services

import (
	"testing"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedEquipment(t *testing.T, db *gorm.DB, projectID uint, name, room string, headEnd, visible bool) *models.ProjectEquipment {
	t.Helper()

	eq := &models.ProjectEquipment{
		ProjectID:       projectID,
		Name:            name,
		RoomName:        room,
		HeadEndRoom:     headEnd,
		WireDropVisible: visible,
	}
	require.NoError(t, db.Create(eq).Error)
	return eq
}

func TestEligibleEquipmentFiltersInvisible(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewEquipmentLinkService(db, testConfig(), nil)

	seedEquipment(t, db, project.ID, "Touch Panel", "Theater", false, true)
	seedEquipment(t, db, project.ID, "Power Supply", "Theater", false, false)

	eligible, err := svc.EligibleEquipment(project.ID)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "Touch Panel", eligible[0].Name)
}

func TestRankForRoomEndPrefersSameRoom(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewEquipmentLinkService(db, testConfig(), nil)

	// 房间名只差大小写和空格也要归入同一房间
	tp := seedEquipment(t, db, project.ID, "Touch Panel", " theater ", false, true)
	amp := seedEquipment(t, db, project.ID, "Amplifier", "Theater", false, true)
	seedEquipment(t, db, project.ID, "Keypad", "Kitchen", false, true)
	seedEquipment(t, db, project.ID, "Doorbell", "", false, true)

	eligible, err := svc.EligibleEquipment(project.ID)
	require.NoError(t, err)

	ranked := svc.RankForRoomEnd(eligible, "Theater", tp.ID)

	require.Len(t, ranked.Preferred, 2)
	assert.Equal(t, amp.ID, ranked.Preferred[0].Equipment.ID) // 组内按名称排序
	assert.Equal(t, tp.ID, ranked.Preferred[1].Equipment.ID)
	assert.True(t, ranked.Preferred[1].Selected)
	assert.False(t, ranked.Preferred[0].Selected)

	// 其余按房间分组，空房间名排最后
	require.Len(t, ranked.OtherRooms, 2)
	assert.Equal(t, "Kitchen", ranked.OtherRooms[0].RoomName)
	assert.Equal(t, "", ranked.OtherRooms[1].RoomName)
}

func TestRankForHeadEndExcludesSelected(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewEquipmentLinkService(db, testConfig(), nil)

	sw := seedEquipment(t, db, project.ID, "Network Switch", "Rack Room", true, true)
	patch := seedEquipment(t, db, project.ID, "Patch Panel", "Rack Room", true, true)
	seedEquipment(t, db, project.ID, "Keypad", "Kitchen", false, true)

	eligible, err := svc.EligibleEquipment(project.ID)
	require.NoError(t, err)

	ranked := svc.RankForHeadEnd(eligible, []uint{patch.ID})

	// 已选中的设备从候选中剔除，机柜间设备排最前
	require.Len(t, ranked.Preferred, 1)
	assert.Equal(t, sw.ID, ranked.Preferred[0].Equipment.ID)
	require.Len(t, ranked.OtherRooms, 1)
	assert.Equal(t, "Kitchen", ranked.OtherRooms[0].RoomName)
}

func TestSetRoomEndReplaceSemantics(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewEquipmentLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")

	tp := seedEquipment(t, db, project.ID, "Touch Panel", "Theater", false, true)
	amp := seedEquipment(t, db, project.ID, "Amplifier", "Theater", false, true)

	_, err := svc.SetRoomEnd(drop.ID, &tp.ID, "mike")
	require.NoError(t, err)

	// 新选择取代旧选择，始终只有一条房间端关联
	reloaded, err := svc.SetRoomEnd(drop.ID, &amp.ID, "mike")
	require.NoError(t, err)
	link := reloaded.RoomEndLink()
	require.NotNil(t, link)
	assert.Equal(t, amp.ID, link.ProjectEquipmentID)

	var count int64
	require.NoError(t, db.Model(&models.EquipmentLink{}).
		Where("wire_drop_id = ? AND link_side = ?", drop.ID, models.LinkSideRoomEnd).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// 传nil清空
	reloaded, err = svc.SetRoomEnd(drop.ID, nil, "mike")
	require.NoError(t, err)
	assert.Nil(t, reloaded.RoomEndLink())
}

func TestSetRoomEndRejectsInvisibleEquipment(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewEquipmentLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")

	hidden := seedEquipment(t, db, project.ID, "Power Supply", "Theater", false, false)

	_, err := svc.SetRoomEnd(drop.ID, &hidden.ID, "mike")
	assert.ErrorIs(t, err, ErrEquipmentNotVisible)
}

func TestAddHeadEndFirstIsPrimary(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewEquipmentLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")

	sw := seedEquipment(t, db, project.ID, "Network Switch", "Rack Room", true, true)
	patch := seedEquipment(t, db, project.ID, "Patch Panel", "Rack Room", true, true)

	_, err := svc.AddHeadEnd(drop.ID, sw.ID, "mike")
	require.NoError(t, err)
	_, err = svc.AddHeadEnd(drop.ID, patch.ID, "mike")
	require.NoError(t, err)

	primary, err := svc.PrimaryHeadEnd(drop.ID)
	require.NoError(t, err)
	require.NotNil(t, primary)
	assert.Equal(t, sw.ID, primary.ID)

	// 重复添加是幂等的
	_, err = svc.AddHeadEnd(drop.ID, sw.ID, "mike")
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.EquipmentLink{}).
		Where("wire_drop_id = ? AND link_side = ?", drop.ID, models.LinkSideHeadEnd).
		Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRemoveHeadEndPromotesOldest(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewEquipmentLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")

	sw := seedEquipment(t, db, project.ID, "Network Switch", "Rack Room", true, true)
	patch := seedEquipment(t, db, project.ID, "Patch Panel", "Rack Room", true, true)
	amp := seedEquipment(t, db, project.ID, "Amplifier", "Rack Room", true, true)

	_, err := svc.AddHeadEnd(drop.ID, sw.ID, "mike")
	require.NoError(t, err)
	_, err = svc.AddHeadEnd(drop.ID, patch.ID, "mike")
	require.NoError(t, err)
	_, err = svc.AddHeadEnd(drop.ID, amp.ID, "mike")
	require.NoError(t, err)

	// 移除主设备后按加入顺序提升下一个
	_, err = svc.RemoveHeadEnd(drop.ID, sw.ID)
	require.NoError(t, err)

	primary, err := svc.PrimaryHeadEnd(drop.ID)
	require.NoError(t, err)
	require.NotNil(t, primary)
	assert.Equal(t, patch.ID, primary.ID)

	// 移除不存在的关联按成功处理
	_, err = svc.RemoveHeadEnd(drop.ID, sw.ID)
	assert.NoError(t, err)
}

func TestSetPrimaryHeadEnd(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewEquipmentLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")

	sw := seedEquipment(t, db, project.ID, "Network Switch", "Rack Room", true, true)
	patch := seedEquipment(t, db, project.ID, "Patch Panel", "Rack Room", true, true)

	_, err := svc.AddHeadEnd(drop.ID, sw.ID, "mike")
	require.NoError(t, err)
	_, err = svc.AddHeadEnd(drop.ID, patch.ID, "mike")
	require.NoError(t, err)

	_, err = svc.SetPrimaryHeadEnd(drop.ID, patch.ID)
	require.NoError(t, err)

	primary, err := svc.PrimaryHeadEnd(drop.ID)
	require.NoError(t, err)
	require.NotNil(t, primary)
	assert.Equal(t, patch.ID, primary.ID)

	// 未关联的设备不能设为主设备
	other := seedEquipment(t, db, project.ID, "Matrix", "Rack Room", true, true)
	_, err = svc.SetPrimaryHeadEnd(drop.ID, other.ID)
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}
