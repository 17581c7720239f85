package services

import (
	"testing"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedStage(t *testing.T, db *gorm.DB, wireDropID uint, stageType models.StageType, completed bool) {
	t.Helper()

	stage := &models.WireDropStage{
		WireDropID: wireDropID,
		StageType:  stageType,
		Completed:  completed,
	}
	require.NoError(t, db.Create(stage).Error)
}

func loadDropWithStages(t *testing.T, db *gorm.DB, id uint) *models.WireDrop {
	t.Helper()

	var drop models.WireDrop
	require.NoError(t, db.Preload("Stages").First(&drop, id).Error)
	return &drop
}

func TestCompletionPercentThirds(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewCompletionService(db, testConfig(), nil)

	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")
	assert.Equal(t, 0, svc.CompletionPercent(loadDropWithStages(t, db, drop.ID)))

	seedStage(t, db, drop.ID, models.StagePrewire, true)
	assert.Equal(t, 33, svc.CompletionPercent(loadDropWithStages(t, db, drop.ID)))

	seedStage(t, db, drop.ID, models.StageTrimOut, true)
	assert.Equal(t, 66, svc.CompletionPercent(loadDropWithStages(t, db, drop.ID)))

	seedStage(t, db, drop.ID, models.StageCommission, true)
	assert.Equal(t, 100, svc.CompletionPercent(loadDropWithStages(t, db, drop.ID)))
}

func TestBadgeLetterAndColor(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewCompletionService(db, testConfig(), nil)

	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")
	drop.DropType = "speaker"
	require.NoError(t, db.Save(drop).Error)

	badge := svc.Badge(loadDropWithStages(t, db, drop.ID))
	assert.Equal(t, "S", badge.Letter)
	assert.Equal(t, "gray", badge.Color)

	seedStage(t, db, drop.ID, models.StagePrewire, true)
	badge = svc.Badge(loadDropWithStages(t, db, drop.ID))
	assert.Equal(t, "amber", badge.Color)

	seedStage(t, db, drop.ID, models.StageTrimOut, true)
	seedStage(t, db, drop.ID, models.StageCommission, true)
	badge = svc.Badge(loadDropWithStages(t, db, drop.ID))
	assert.Equal(t, "green", badge.Color)

	// 未知接线类型
	unknown := seedWireDrop(t, db, project.ID, "WD-0002", "Mystery", "Hall")
	unknown.DropType = ""
	require.NoError(t, db.Save(unknown).Error)
	badge = svc.Badge(loadDropWithStages(t, db, unknown.ID))
	assert.Equal(t, "?", badge.Letter)
}

func TestNextIncompleteCyclicScan(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewCompletionService(db, testConfig(), nil)

	// 排序后的顺序: Hall/Keypad, Kitchen/Speaker, Theater/Left
	hall := seedWireDrop(t, db, project.ID, "WD-0001", "Keypad", "Hall")
	kitchen := seedWireDrop(t, db, project.ID, "WD-0002", "Speaker", "Kitchen")
	theater := seedWireDrop(t, db, project.ID, "WD-0003", "Left", "Theater")

	seedStage(t, db, kitchen.ID, models.StagePrewire, true)

	// 从Hall出发，Kitchen已完成预埋，跳到Theater
	next, err := svc.NextIncomplete(project.ID, hall.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, theater.ID, next.ID)

	// 从末尾出发则环回到开头
	next, err = svc.NextIncomplete(project.ID, theater.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, hall.ID, next.ID)

	// 全部完成返回nil
	seedStage(t, db, hall.ID, models.StagePrewire, true)
	seedStage(t, db, theater.ID, models.StagePrewire, true)
	next, err = svc.NextIncomplete(project.ID, hall.ID)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestNextIncompleteEmptyProject(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewCompletionService(db, testConfig(), nil)

	next, err := svc.NextIncomplete(project.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestProjectSummaryCounts(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewCompletionService(db, testConfig(), nil)

	done := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")
	seedStage(t, db, done.ID, models.StagePrewire, true)
	seedStage(t, db, done.ID, models.StageTrimOut, true)
	seedStage(t, db, done.ID, models.StageCommission, true)

	partial := seedWireDrop(t, db, project.ID, "WD-0002", "Keypad", "Hall")
	seedStage(t, db, partial.ID, models.StagePrewire, true)

	seedWireDrop(t, db, project.ID, "WD-0003", "Speaker", "Kitchen")

	summary, err := svc.ProjectSummary(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalDrops)
	assert.Equal(t, 2, summary.PrewireDone)
	assert.Equal(t, 1, summary.TrimOutDone)
	assert.Equal(t, 1, summary.CommissionDone)
	assert.Equal(t, (100+33+0)/3, summary.AveragePercent)
	assert.Len(t, summary.Drops, 3)
}

func TestProjectSummaryUnknownProject(t *testing.T) {
	db := newTestDB(t)
	svc := NewCompletionService(db, testConfig(), nil)

	_, err := svc.ProjectSummary(999)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
