package services

import (
	"context"
	"testing"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStageTestService(t *testing.T) (*StageService, *fakePhotoService, *fakeUploadQueue, *models.WireDrop) {
	t.Helper()

	db := newTestDB(t)
	project := seedProject(t, db)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Theater Left", "Theater")

	photos := &fakePhotoService{}
	queue := &fakeUploadQueue{}
	svc := NewStageService(db, testConfig(), photos, queue, nil)
	return svc, photos, queue, drop
}

func TestMarkCompleteRequiresDurablePhoto(t *testing.T) {
	svc, _, _, drop := newStageTestService(t)

	// 没有照片不能完成预埋
	_, err := svc.MarkComplete(drop.ID, models.StagePrewire, "mike", "")
	assert.ErrorIs(t, err, ErrPhotoRequired)

	_, err = svc.AttachPhoto(context.Background(), drop.ID, models.StagePrewire, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)

	stage, err := svc.MarkComplete(drop.ID, models.StagePrewire, "mike", "")
	require.NoError(t, err)
	assert.True(t, stage.Completed)
	assert.Equal(t, "mike", stage.CompletedBy)
	assert.NotNil(t, stage.CompletedAt)
}

func TestMarkCompleteRequiresSignOff(t *testing.T) {
	svc, _, _, drop := newStageTestService(t)

	_, err := svc.MarkComplete(drop.ID, models.StageCommission, "", "")
	assert.ErrorIs(t, err, ErrSignOffRequired)
}

func TestCommissionCompletesWithoutPhoto(t *testing.T) {
	svc, _, _, drop := newStageTestService(t)

	// 调试阶段不要求照片，签核人加备注即可
	stage, err := svc.MarkComplete(drop.ID, models.StageCommission, "sara", "racked and labeled")
	require.NoError(t, err)
	assert.True(t, stage.Completed)
	assert.Equal(t, "sara", stage.CompletedBy)
	assert.Equal(t, "racked and labeled", stage.Notes)
	assert.Empty(t, stage.PhotoURL)
}

func TestRemovePhotoForcesIncomplete(t *testing.T) {
	svc, _, _, drop := newStageTestService(t)

	_, err := svc.AttachPhoto(context.Background(), drop.ID, models.StageTrimOut, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	_, err = svc.MarkComplete(drop.ID, models.StageTrimOut, "mike", "")
	require.NoError(t, err)

	// 删除照片必须回退完成状态，不允许出现已完成但无照片的阶段
	stage, err := svc.RemovePhoto(drop.ID, models.StageTrimOut)
	require.NoError(t, err)
	assert.False(t, stage.Completed)
	assert.Empty(t, stage.CompletedBy)
	assert.Nil(t, stage.CompletedAt)
	assert.Empty(t, stage.PhotoURL)

	_, err = svc.RemovePhoto(drop.ID, models.StageTrimOut)
	assert.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestUndoCompleteKeepsPhoto(t *testing.T) {
	svc, _, _, drop := newStageTestService(t)

	_, err := svc.AttachPhoto(context.Background(), drop.ID, models.StagePrewire, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	_, err = svc.MarkComplete(drop.ID, models.StagePrewire, "mike", "")
	require.NoError(t, err)

	stage, err := svc.UndoComplete(drop.ID, models.StagePrewire)
	require.NoError(t, err)
	assert.False(t, stage.Completed)
	assert.NotEmpty(t, stage.PhotoURL)

	// 照片还在，可以直接再次完成
	stage, err = svc.MarkComplete(drop.ID, models.StagePrewire, "sara", "")
	require.NoError(t, err)
	assert.True(t, stage.Completed)
	assert.Equal(t, "sara", stage.CompletedBy)
}

func TestReplacePhotoRequiresExisting(t *testing.T) {
	svc, photos, _, drop := newStageTestService(t)

	_, err := svc.ReplacePhoto(context.Background(), drop.ID, models.StagePrewire, []byte("jpeg"), "image/jpeg")
	assert.ErrorIs(t, err, ErrPhotoNotFound)

	first, err := svc.AttachPhoto(context.Background(), drop.ID, models.StagePrewire, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)

	replaced, err := svc.ReplacePhoto(context.Background(), drop.ID, models.StagePrewire, []byte("jpeg2"), "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, first.PhotoKey, replaced.PhotoKey)
	assert.Equal(t, 2, photos.uploads)
}

func TestPendingPhotoDoesNotSatisfyCompletion(t *testing.T) {
	svc, _, queue, drop := newStageTestService(t)

	stage, err := svc.RegisterPendingPhoto(drop.ID, models.StagePrewire, "mike")
	require.NoError(t, err)
	assert.Equal(t, models.PhotoStatusPending, stage.PhotoStatus)
	assert.False(t, stage.HasDurablePhoto())
	require.Len(t, queue.tasks, 1)

	// pending照片不算落库，不能完成
	_, err = svc.MarkComplete(drop.ID, models.StagePrewire, "mike", "")
	assert.ErrorIs(t, err, ErrPhotoRequired)

	// 上传完成回执把pending转成已落库
	require.NotNil(t, queue.handler)
	queue.handler(PhotoUploadReceipt{
		WireDropID: drop.ID,
		StageType:  string(models.StagePrewire),
		PhotoKey:   queue.tasks[0].PhotoKey,
		PhotoURL:   "http://photos.local/" + queue.tasks[0].PhotoKey,
	})

	stage, err = svc.GetStage(drop.ID, models.StagePrewire)
	require.NoError(t, err)
	assert.Equal(t, models.PhotoStatusUploaded, stage.PhotoStatus)
	assert.True(t, stage.HasDurablePhoto())

	_, err = svc.MarkComplete(drop.ID, models.StagePrewire, "mike", "")
	assert.NoError(t, err)
}

func TestStalePendingReceiptIgnored(t *testing.T) {
	svc, _, queue, drop := newStageTestService(t)

	_, err := svc.RegisterPendingPhoto(drop.ID, models.StagePrewire, "mike")
	require.NoError(t, err)

	// key对不上的过期回执直接丢弃
	queue.handler(PhotoUploadReceipt{
		WireDropID: drop.ID,
		StageType:  string(models.StagePrewire),
		PhotoKey:   "stale-key",
		PhotoURL:   "http://photos.local/stale-key",
	})

	stage, err := svc.GetStage(drop.ID, models.StagePrewire)
	require.NoError(t, err)
	assert.Equal(t, models.PhotoStatusPending, stage.PhotoStatus)
	assert.Empty(t, stage.PhotoURL)
}

func TestConcurrentPhotoOperationRejected(t *testing.T) {
	svc, _, _, drop := newStageTestService(t)

	release, err := svc.acquire(drop.ID, models.StagePrewire)
	require.NoError(t, err)

	_, err = svc.AttachPhoto(context.Background(), drop.ID, models.StagePrewire, []byte("jpeg"), "image/jpeg")
	assert.ErrorIs(t, err, ErrStageBusy)

	release()
	_, err = svc.AttachPhoto(context.Background(), drop.ID, models.StagePrewire, []byte("jpeg"), "image/jpeg")
	assert.NoError(t, err)
}

func TestInvalidStageTypeRejected(t *testing.T) {
	svc, _, _, drop := newStageTestService(t)

	_, err := svc.MarkComplete(drop.ID, models.StageType("paint"), "mike", "")
	assert.ErrorIs(t, err, ErrInvalidStageType)

	_, err = svc.GetStage(drop.ID, models.StageType("paint"))
	assert.ErrorIs(t, err, ErrInvalidStageType)
}

func TestVisibilityForMasksOtherTechnician(t *testing.T) {
	svc, _, _, drop := newStageTestService(t)

	_, err := svc.AttachPhoto(context.Background(), drop.ID, models.StagePrewire, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	stage, err := svc.MarkComplete(drop.ID, models.StagePrewire, "mike", "")
	require.NoError(t, err)

	// 双盲模式下别人的完成记录被遮蔽
	view := svc.VisibilityFor("sara", stage, true)
	assert.Equal(t, VisibilityMasked, view.State)
	assert.Empty(t, view.Stage.PhotoURL)
	assert.Empty(t, view.Stage.CompletedBy)
	assert.True(t, view.Stage.Completed)

	// 完成人自己能看到
	view = svc.VisibilityFor("mike", stage, true)
	assert.Equal(t, VisibilityVisible, view.State)
	assert.Equal(t, "mike", view.Stage.CompletedBy)

	// 非双盲模式全部可见
	view = svc.VisibilityFor("sara", stage, false)
	assert.Equal(t, VisibilityVisible, view.State)
	assert.NotEmpty(t, view.Stage.PhotoURL)
}
