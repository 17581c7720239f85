package models

// IssueStatus represents the state of a field issue
type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "open"
	IssueStatusBlocked  IssueStatus = "blocked"
	IssueStatusResolved IssueStatus = "resolved"
)

// Issue represents a problem reported from the field, optionally tied to a wire drop
type Issue struct {
	BaseModel
	ProjectID   uint        `gorm:"index;not null" json:"project_id"`
	WireDropID  *uint       `gorm:"index" json:"wire_drop_id,omitempty"`
	Title       string      `gorm:"type:varchar(200);not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Status      IssueStatus `gorm:"type:varchar(20);default:'open'" json:"status"`
	Priority    string      `gorm:"type:varchar(20);default:'normal'" json:"priority"` // low, normal, high
	ReportedBy  string      `gorm:"type:varchar(50)" json:"reported_by"`
	AssignedTo  string      `gorm:"type:varchar(50)" json:"assigned_to"`

	Project  *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	WireDrop *WireDrop `gorm:"foreignKey:WireDropID" json:"wire_drop,omitempty"`
}
