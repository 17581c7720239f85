package models

// ShadeLink associates a wire drop with a project shade.
// Same cardinality rule as the room-end equipment link: at most one per drop.
type ShadeLink struct {
	BaseModel
	WireDropID     uint `gorm:"uniqueIndex;not null" json:"wire_drop_id"`
	ProjectShadeID uint `gorm:"index;not null" json:"project_shade_id"`

	WireDrop *WireDrop     `gorm:"foreignKey:WireDropID" json:"wire_drop,omitempty"`
	Shade    *ProjectShade `gorm:"foreignKey:ProjectShadeID" json:"shade,omitempty"`
}
