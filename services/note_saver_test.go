package services

import (
	"testing"
	"time"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteSaverCoalescesRapidEdits(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")

	saver := NewNoteSaver(db, 40*time.Millisecond)

	// 快速连续编辑只保留最后一次
	saver.QueueWireDropNotes(drop.ID, "first draft")
	saver.QueueWireDropNotes(drop.ID, "second draft")
	saver.QueueWireDropNotes(drop.ID, "final text")

	// 窗口未到期前数据库不变
	var current models.WireDrop
	require.NoError(t, db.First(&current, drop.ID).Error)
	assert.Empty(t, current.Notes)

	require.Eventually(t, func() bool {
		var d models.WireDrop
		if err := db.First(&d, drop.ID).Error; err != nil {
			return false
		}
		return d.Notes == "final text"
	}, time.Second, 10*time.Millisecond)
}

func TestNoteSaverFlushWritesImmediately(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")
	shade := seedShade(t, db, project.ID, "West Window", "Master Bedroom")

	saver := NewNoteSaver(db, time.Minute)

	saver.QueueWireDropNotes(drop.ID, "pull extra slack")
	saver.QueueShadeNotes(shade.ID, "inside mount")
	saver.Flush()

	var d models.WireDrop
	require.NoError(t, db.First(&d, drop.ID).Error)
	assert.Equal(t, "pull extra slack", d.Notes)

	var s models.ProjectShade
	require.NoError(t, db.First(&s, shade.ID).Error)
	assert.Equal(t, "inside mount", s.Notes)

	// 再次Flush没有挂起写入，也不应出错
	saver.Flush()
}

func TestNoteSaverIndependentKeys(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	a := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")
	b := seedWireDrop(t, db, project.ID, "WD-0002", "Theater Right", "Theater")

	saver := NewNoteSaver(db, time.Minute)

	// 不同线缆互不覆盖
	saver.QueueWireDropNotes(a.ID, "left notes")
	saver.QueueWireDropNotes(b.ID, "right notes")
	saver.Flush()

	var da, db2 models.WireDrop
	require.NoError(t, db.First(&da, a.ID).Error)
	require.NoError(t, db.First(&db2, b.ID).Error)
	assert.Equal(t, "left notes", da.Notes)
	assert.Equal(t, "right notes", db2.Notes)
}
