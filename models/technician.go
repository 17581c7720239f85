package models

// TechnicianRole represents the access level of a field technician
type TechnicianRole string

const (
	TechnicianRoleAdmin TechnicianRole = "admin"
	TechnicianRoleLead  TechnicianRole = "lead"
	TechnicianRoleTech  TechnicianRole = "tech"
)

// Technician represents a crew member who can log in and stamp completions
type Technician struct {
	BaseModel
	Username string         `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password string         `gorm:"type:varchar(100);not null" json:"-"`
	Name     string         `gorm:"type:varchar(50);not null" json:"name"`
	Phone    string         `gorm:"type:varchar(20)" json:"phone"`
	Role     TechnicianRole `gorm:"type:varchar(20);default:'tech'" json:"role"`
	Status   string         `gorm:"type:varchar(20);default:'active'" json:"status"`
}
