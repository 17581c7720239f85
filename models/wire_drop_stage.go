package models

import "time"

// StageType represents one lifecycle checkpoint of a wire drop
type StageType string

const (
	StagePrewire    StageType = "prewire"
	StageTrimOut    StageType = "trim_out"
	StageCommission StageType = "commission"
)

// AllStageTypes lists the three checkpoints in advisory working order
var AllStageTypes = []StageType{StagePrewire, StageTrimOut, StageCommission}

// IsValidStageType reports whether s is one of the known stage types
func IsValidStageType(s StageType) bool {
	return s == StagePrewire || s == StageTrimOut || s == StageCommission
}

// PhotoStatus represents durability of a stage photo
type PhotoStatus string

const (
	PhotoStatusUploaded PhotoStatus = "uploaded"
	PhotoStatusPending  PhotoStatus = "pending" // 离线排队中，照片尚未落库到对象存储
)

// WireDropStage is one lifecycle checkpoint record for a wire drop.
// At most one row exists per (wire_drop_id, stage_type). A completed stage
// always carries completed_at/completed_by, and for prewire/trim_out a photo.
type WireDropStage struct {
	BaseModel
	WireDropID  uint        `gorm:"uniqueIndex:idx_drop_stage;not null" json:"wire_drop_id"`
	StageType   StageType   `gorm:"type:varchar(20);uniqueIndex:idx_drop_stage;not null" json:"stage_type"`
	Completed   bool        `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CompletedBy string      `gorm:"type:varchar(50)" json:"completed_by"`
	PhotoURL    string      `gorm:"type:varchar(500)" json:"photo_url"`
	PhotoKey    string      `gorm:"type:varchar(255)" json:"photo_key"` // 对象存储的key
	PhotoStatus PhotoStatus `gorm:"type:varchar(20)" json:"photo_status"`
	Notes       string      `gorm:"type:text" json:"notes"` // 仅commission阶段使用

	WireDrop *WireDrop `gorm:"foreignKey:WireDropID" json:"wire_drop,omitempty"`
}

// HasDurablePhoto reports whether the stage carries an uploaded (not pending) photo
func (s *WireDropStage) HasDurablePhoto() bool {
	return s.PhotoURL != "" && s.PhotoStatus == PhotoStatusUploaded
}
