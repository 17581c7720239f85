package services

import (
	"testing"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMeasurementStampsTechnician(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewShadeService(db, testConfig())
	shade := seedShade(t, db, project.ID, "West Window", "Master Bedroom")

	input := MeasurementInput{
		WidthTop:    36.25,
		WidthMiddle: 36.125,
		WidthBottom: 36.25,
		Height:      58.5,
		MountDepth:  4.0,
		Complete:    true,
	}
	saved, err := svc.SaveMeasurement(shade.ID, models.MeasurePassM1, input, "alice")
	require.NoError(t, err)
	assert.True(t, saved.M1.Complete)
	assert.Equal(t, "alice", saved.M1.MeasuredBy)
	assert.NotNil(t, saved.M1.MeasuredAt)
	assert.Equal(t, 36.125, saved.M1.WidthMiddle)

	// 第二次测量独立存储
	assert.False(t, saved.M2.Complete)

	// 取消完成时清掉落款
	input.Complete = false
	saved, err = svc.SaveMeasurement(shade.ID, models.MeasurePassM1, input, "alice")
	require.NoError(t, err)
	assert.False(t, saved.M1.Complete)
	assert.Empty(t, saved.M1.MeasuredBy)
	assert.Nil(t, saved.M1.MeasuredAt)
}

func TestSaveMeasurementRejectsInvalidPass(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewShadeService(db, testConfig())
	shade := seedShade(t, db, project.ID, "West Window", "Master Bedroom")

	_, err := svc.SaveMeasurement(shade.ID, models.MeasurePass("m3"), MeasurementInput{}, "alice")
	assert.ErrorIs(t, err, ErrInvalidMeasurePass)
}

func TestMeasurementForMasksOtherTechnician(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewShadeService(db, testConfig())
	shade := seedShade(t, db, project.ID, "West Window", "Master Bedroom")

	input := MeasurementInput{WidthTop: 36.25, Height: 58.5, Complete: true}
	saved, err := svc.SaveMeasurement(shade.ID, models.MeasurePassM1, input, "alice")
	require.NoError(t, err)

	// 双盲模式下另一人的完成测量被遮蔽，数值清零
	view, err := svc.MeasurementFor("bob", saved, models.MeasurePassM1, true)
	require.NoError(t, err)
	assert.Equal(t, VisibilityMasked, view.State)
	assert.True(t, view.Measurement.Complete)
	assert.Zero(t, view.Measurement.WidthTop)
	assert.Empty(t, view.Measurement.MeasuredBy)

	// 测量人自己可见
	view, err = svc.MeasurementFor("alice", saved, models.MeasurePassM1, true)
	require.NoError(t, err)
	assert.Equal(t, VisibilityVisible, view.State)
	assert.Equal(t, 36.25, view.Measurement.WidthTop)

	// 未完成的测量不遮蔽
	view, err = svc.MeasurementFor("bob", saved, models.MeasurePassM2, true)
	require.NoError(t, err)
	assert.Equal(t, VisibilityVisible, view.State)

	// 非双盲模式全部可见
	view, err = svc.MeasurementFor("bob", saved, models.MeasurePassM1, false)
	require.NoError(t, err)
	assert.Equal(t, VisibilityVisible, view.State)
}

func TestDeleteShadeCleansLinks(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewShadeService(db, testConfig())
	linkSvc := NewShadeLinkService(db, testConfig(), nil)
	drop := seedWireDrop(t, db, project.ID, "WD-0001", "Shade Drop", "Master Bedroom")
	shade := seedShade(t, db, project.ID, "West Window", "Master Bedroom")

	_, err := linkSvc.SetShadeLink(drop.ID, &shade.ID, "mike")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShade(shade.ID))

	// 不允许悬空关联
	var count int64
	require.NoError(t, db.Model(&models.ShadeLink{}).Where("project_shade_id = ?", shade.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	_, err = svc.GetShadeByID(shade.ID)
	assert.ErrorIs(t, err, ErrShadeNotFound)
}
