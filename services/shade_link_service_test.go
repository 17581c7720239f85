package services

import (
	"testing"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedShade(t *testing.T, db *gorm.DB, projectID uint, name, room string) *models.ProjectShade {
	t.Helper()

	shade := &models.ProjectShade{
		ProjectID: projectID,
		Name:      name,
		RoomName:  room,
	}
	require.NoError(t, db.Create(shade).Error)
	return shade
}

func TestRankShadesPrefersSameRoom(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewShadeLinkService(db, testConfig(), nil)

	west := seedShade(t, db, project.ID, "West Window", "Master Bedroom")
	east := seedShade(t, db, project.ID, "East Window", "MASTER BEDROOM ")
	kitchen := seedShade(t, db, project.ID, "Sink Window", "Kitchen")

	ranked := svc.RankShades([]models.ProjectShade{*west, *east, *kitchen}, "Master Bedroom", east.ID)

	require.Len(t, ranked.SameRoom, 2)
	assert.Equal(t, east.ID, ranked.SameRoom[0].Shade.ID) // 组内按名称排序
	assert.True(t, ranked.SameRoom[0].Selected)
	assert.Equal(t, west.ID, ranked.SameRoom[1].Shade.ID)

	require.Len(t, ranked.OtherRooms, 1)
	assert.Equal(t, "Kitchen", ranked.OtherRooms[0].RoomName)
}

func TestSetShadeLinkReplaceSemantics(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewShadeLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Shade Drop", "Master Bedroom")

	west := seedShade(t, db, project.ID, "West Window", "Master Bedroom")
	east := seedShade(t, db, project.ID, "East Window", "Master Bedroom")

	_, err := svc.SetShadeLink(drop.ID, &west.ID, "mike")
	require.NoError(t, err)

	// 替换语义：新选择取代旧选择
	reloaded, err := svc.SetShadeLink(drop.ID, &east.ID, "mike")
	require.NoError(t, err)
	require.NotNil(t, reloaded.ShadeLink)
	assert.Equal(t, east.ID, reloaded.ShadeLink.ProjectShadeID)

	var count int64
	require.NoError(t, db.Model(&models.ShadeLink{}).Where("wire_drop_id = ?", drop.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// 清空不存在的关联也是no-op
	reloaded, err = svc.SetShadeLink(drop.ID, nil, "mike")
	require.NoError(t, err)
	assert.Nil(t, reloaded.ShadeLink)

	_, err = svc.SetShadeLink(drop.ID, nil, "mike")
	assert.NoError(t, err)
}

func TestSetShadeLinkRejectsOtherProject(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	other := &models.Project{Name: "Other Job", Status: models.ProjectStatusActive}
	require.NoError(t, db.Create(other).Error)

	svc := NewShadeLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Shade Drop", "Master Bedroom")
	foreign := seedShade(t, db, other.ID, "West Window", "Master Bedroom")

	_, err := svc.SetShadeLink(drop.ID, &foreign.ID, "mike")
	assert.ErrorIs(t, err, ErrShadeNotFound)
}

func TestLinkedShade(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewShadeLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Shade Drop", "Master Bedroom")

	shade, err := svc.LinkedShade(drop.ID)
	require.NoError(t, err)
	assert.Nil(t, shade)

	west := seedShade(t, db, project.ID, "West Window", "Master Bedroom")
	_, err = svc.SetShadeLink(drop.ID, &west.ID, "mike")
	require.NoError(t, err)

	shade, err = svc.LinkedShade(drop.ID)
	require.NoError(t, err)
	require.NotNil(t, shade)
	assert.Equal(t, west.ID, shade.ID)
}
