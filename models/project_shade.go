package models

import "time"

// MeasurePass identifies one of the two independent measurement passes
type MeasurePass string

const (
	MeasurePassM1 MeasurePass = "m1"
	MeasurePassM2 MeasurePass = "m2"
)

// IsValidMeasurePass reports whether p is a known measurement pass
func IsValidMeasurePass(p MeasurePass) bool {
	return p == MeasurePassM1 || p == MeasurePassM2
}

// ShadeMeasurement is one typed measurement record for a shade opening.
// Two passes are taken by different technicians (blind verification).
type ShadeMeasurement struct {
	WidthTop    float64    `json:"width_top"`
	WidthMiddle float64    `json:"width_middle"`
	WidthBottom float64    `json:"width_bottom"`
	Height      float64    `json:"height"`
	MountDepth  float64    `json:"mount_depth"`
	MeasuredBy  string     `gorm:"type:varchar(50)" json:"measured_by"`
	MeasuredAt  *time.Time `json:"measured_at,omitempty"`
	Complete    bool       `gorm:"default:false" json:"complete"`
}

// ProjectShade represents one window shade opening on a project
type ProjectShade struct {
	BaseModel
	ProjectID uint   `gorm:"index;not null" json:"project_id"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	RoomName  string `gorm:"type:varchar(100)" json:"room_name"`
	Window    string `gorm:"type:varchar(100)" json:"window"`
	Notes     string `gorm:"type:text" json:"notes"`

	// 两次独立测量，字段固定，不做动态字段名拼接
	M1 ShadeMeasurement `gorm:"embedded;embeddedPrefix:m1_" json:"m1"`
	M2 ShadeMeasurement `gorm:"embedded;embeddedPrefix:m2_" json:"m2"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

// MeasurementByPass returns a pointer to the requested measurement pass, or nil
func (s *ProjectShade) MeasurementByPass(pass MeasurePass) *ShadeMeasurement {
	switch pass {
	case MeasurePassM1:
		return &s.M1
	case MeasurePassM2:
		return &s.M2
	}
	return nil
}
