package services

import (
	"testing"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginVerifiesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianService(db, testConfig())

	require.NoError(t, svc.CreateTechnician(&models.Technician{
		Username: "mike",
		Password: "Field@123",
		Name:     "Mike Rivera",
		Role:     models.TechnicianRoleTech,
	}))

	tech, err := svc.Login("mike", "Field@123")
	require.NoError(t, err)
	assert.Equal(t, "mike", tech.Username)
	// 密码必须加密存储
	assert.NotEqual(t, "Field@123", tech.Password)

	_, err = svc.Login("mike", "wrong")
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Login("nobody", "Field@123")
	assert.ErrorIs(t, err, ErrTechnicianNotFound)
}

func TestCreateTechnicianRejectsDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianService(db, testConfig())

	require.NoError(t, svc.CreateTechnician(&models.Technician{
		Username: "mike", Password: "Field@123", Name: "Mike",
	}))

	err := svc.CreateTechnician(&models.Technician{
		Username: "mike", Password: "Other@456", Name: "Imposter",
	})
	assert.ErrorIs(t, err, ErrTechnicianExists)
}

func TestChangePasswordRequiresOldPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianService(db, testConfig())

	tech := &models.Technician{Username: "mike", Password: "Field@123", Name: "Mike"}
	require.NoError(t, svc.CreateTechnician(tech))

	err := svc.ChangePassword(tech.ID, "wrong", "Field@456")
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	require.NoError(t, svc.ChangePassword(tech.ID, "Field@123", "Field@456"))

	_, err = svc.Login("mike", "Field@456")
	assert.NoError(t, err)
}

func TestUpdateTechnicianIgnoresPasswordField(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianService(db, testConfig())

	tech := &models.Technician{Username: "mike", Password: "Field@123", Name: "Mike"}
	require.NoError(t, svc.CreateTechnician(tech))

	// 密码只能通过ChangePassword修改
	updated, err := svc.UpdateTechnician(tech.ID, map[string]interface{}{
		"name":     "Mike Rivera",
		"password": "sneaky",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mike Rivera", updated.Name)

	_, err = svc.Login("mike", "Field@123")
	assert.NoError(t, err)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewTechnicianService(db, testConfig())

	require.NoError(t, svc.EnsureAdmin("admin", "admin123"))
	require.NoError(t, svc.EnsureAdmin("admin", "admin123"))

	var count int64
	require.NoError(t, db.Model(&models.Technician{}).
		Where("role = ?", models.TechnicianRoleAdmin).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err := svc.Login("admin", "admin123")
	assert.NoError(t, err)
}
