package models

// Stakeholder represents a project contact (client, builder, designer...)
type Stakeholder struct {
	BaseModel
	ProjectID   uint   `gorm:"index;not null" json:"project_id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Role        string `gorm:"type:varchar(50)" json:"role"` // client, builder, electrician, designer
	Email       string `gorm:"type:varchar(100)" json:"email"`
	Phone       string `gorm:"type:varchar(20)" json:"phone"`
	NotifyEmail bool   `gorm:"default:false" json:"notify_email"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
