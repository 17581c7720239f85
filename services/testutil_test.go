package services

import (
	"context"
	"fmt"
	"testing"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建内存sqlite数据库并迁移全部模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库在多连接下会各自为政，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Technician{},
		&models.Project{},
		&models.Stakeholder{},
		&models.WireDrop{},
		&models.WireDropStage{},
		&models.ProjectEquipment{},
		&models.EquipmentLink{},
		&models.ProjectShade{},
		&models.ShadeLink{},
		&models.Issue{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{}
}

// seedProject 创建一个测试项目
func seedProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:   "Harbor Residence",
		Status: models.ProjectStatusActive,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// seedWireDrop 创建一条测试线缆
func seedWireDrop(t *testing.T, db *gorm.DB, projectID uint, uid, name, room string) *models.WireDrop {
	t.Helper()

	drop := &models.WireDrop{
		ProjectID: projectID,
		UID:       uid,
		Name:      name,
		RoomName:  room,
		WireType:  "Cat6",
		DropType:  "network",
	}
	require.NoError(t, db.Create(drop).Error)
	return drop
}

// fakePhotoService 测试用的内存照片存储
type fakePhotoService struct {
	uploads int
	failErr error
}

func (f *fakePhotoService) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	f.uploads++
	return "http://photos.local/" + key, nil
}

func (f *fakePhotoService) PresignGetURL(ctx context.Context, key string) (string, error) {
	return "http://photos.local/" + key, nil
}

func (f *fakePhotoService) ThumbnailURL(ctx context.Context, key string, maxWidth int) (string, error) {
	return fmt.Sprintf("http://photos.local/%s?thumb_width=%d", key, maxWidth), nil
}

// fakeUploadQueue 测试用的内存上传队列
type fakeUploadQueue struct {
	tasks   []PhotoUploadTask
	handler UploadCompleteHandler
}

func (f *fakeUploadQueue) Connect() error { return nil }

func (f *fakeUploadQueue) Disconnect() {}

func (f *fakeUploadQueue) EnqueuePhotoUpload(task PhotoUploadTask) error {
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeUploadQueue) OnUploadComplete(handler UploadCompleteHandler) {
	f.handler = handler
}
