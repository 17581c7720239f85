package services

import (
	"testing"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWireDropGeneratesUID(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewWireDropService(db, testConfig(), nil)

	drop := &models.WireDrop{
		ProjectID: project.ID,
		Name:      "Theater Left",
		RoomName:  "Theater",
	}
	require.NoError(t, svc.CreateWireDrop(drop))
	assert.NotEmpty(t, drop.UID)

	found, err := svc.GetWireDropByUID(drop.UID)
	require.NoError(t, err)
	assert.Equal(t, drop.ID, found.ID)
}

func TestCreateWireDropRejectsDuplicateUID(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewWireDropService(db, testConfig(), nil)

	require.NoError(t, svc.CreateWireDrop(&models.WireDrop{
		ProjectID: project.ID, UID: "WD-0001", Name: "Theater Left",
	}))

	err := svc.CreateWireDrop(&models.WireDrop{
		ProjectID: project.ID, UID: "WD-0001", Name: "Theater Right",
	})
	assert.ErrorIs(t, err, ErrWireDropUIDTaken)
}

func TestImportWireDropsSkipsDuplicates(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewWireDropService(db, testConfig(), nil)

	require.NoError(t, svc.CreateWireDrop(&models.WireDrop{
		ProjectID: project.ID, UID: "WD-0001", Name: "Existing",
	}))

	// 编号冲突的行跳过，不中断整批
	imported, err := svc.ImportWireDrops(project.ID, []models.WireDrop{
		{UID: "WD-0001", Name: "Duplicate"},
		{UID: "WD-0002", Name: "Keypad", RoomName: "Hall"},
		{UID: "WD-0003", Name: "Speaker", RoomName: "Kitchen"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	_, total, err := svc.GetWireDropsByProject(project.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestUpdateWireDropUIDUniqueness(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewWireDropService(db, testConfig(), nil)

	a := &models.WireDrop{ProjectID: project.ID, UID: "WD-0001", Name: "A"}
	b := &models.WireDrop{ProjectID: project.ID, UID: "WD-0002", Name: "B"}
	require.NoError(t, svc.CreateWireDrop(a))
	require.NoError(t, svc.CreateWireDrop(b))

	_, err := svc.UpdateWireDrop(b.ID, map[string]interface{}{"uid": "WD-0001"})
	assert.ErrorIs(t, err, ErrWireDropUIDTaken)

	// 改回自己的编号不算冲突
	updated, err := svc.UpdateWireDrop(b.ID, map[string]interface{}{"uid": "WD-0002", "name": "B2"})
	require.NoError(t, err)
	assert.Equal(t, "B2", updated.Name)
}

func TestDeleteWireDropCascades(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewWireDropService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")

	seedStage(t, db, drop.ID, models.StagePrewire, true)
	eq := seedEquipment(t, db, project.ID, "Touch Panel", "Theater", false, true)
	linkSvc := NewEquipmentLinkService(db, testConfig(), nil)
	_, err := linkSvc.SetRoomEnd(drop.ID, &eq.ID, "mike")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWireDrop(drop.ID))

	var stages, links int64
	require.NoError(t, db.Model(&models.WireDropStage{}).Where("wire_drop_id = ?", drop.ID).Count(&stages).Error)
	require.NoError(t, db.Model(&models.EquipmentLink{}).Where("wire_drop_id = ?", drop.ID).Count(&links).Error)
	assert.EqualValues(t, 0, stages)
	assert.EqualValues(t, 0, links)

	_, err = svc.GetWireDropByID(drop.ID)
	assert.ErrorIs(t, err, ErrWireDropNotFound)
}

func TestGetWireDropByUIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewWireDropService(db, testConfig(), nil)

	_, err := svc.GetWireDropByUID("WD-9999")
	assert.ErrorIs(t, err, ErrWireDropNotFound)
}
