package models

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Project represents one installation job site
type Project struct {
	BaseModel
	Name       string        `gorm:"type:varchar(100);not null" json:"name"`
	ClientName string        `gorm:"type:varchar(100)" json:"client_name"`
	Address    string        `gorm:"type:varchar(255)" json:"address"`
	Status     ProjectStatus `gorm:"type:varchar(20);default:'planning'" json:"status"`

	// DoubleBlind enables blind verification: completed work recorded by one
	// technician is hidden from the others until they record their own pass
	DoubleBlind bool `gorm:"default:false" json:"double_blind"`

	// Relations
	WireDrops      []WireDrop         `gorm:"foreignKey:ProjectID" json:"wire_drops,omitempty"`
	Equipment      []ProjectEquipment `gorm:"foreignKey:ProjectID" json:"equipment,omitempty"`
	Shades         []ProjectShade     `gorm:"foreignKey:ProjectID" json:"shades,omitempty"`
	Issues         []Issue            `gorm:"foreignKey:ProjectID" json:"issues,omitempty"`
	PurchaseOrders []PurchaseOrder    `gorm:"foreignKey:ProjectID" json:"purchase_orders,omitempty"`
	Stakeholders   []Stakeholder      `gorm:"foreignKey:ProjectID" json:"stakeholders,omitempty"`
}
