package models

// LinkSide represents which end of the cable run a piece of equipment sits on
type LinkSide string

const (
	LinkSideRoomEnd LinkSide = "room_end" // 房间端，单选
	LinkSideHeadEnd LinkSide = "head_end" // 机柜端，多选
)

// IsValidLinkSide reports whether s is a known link side
func IsValidLinkSide(s LinkSide) bool {
	return s == LinkSideRoomEnd || s == LinkSideHeadEnd
}

// EquipmentLink associates a wire drop with a piece of project equipment.
// room_end cardinality is at most one per wire drop; head_end is multi-select
// with exactly one row flagged primary for summary display.
type EquipmentLink struct {
	BaseModel
	WireDropID         uint     `gorm:"index:idx_link_drop_side;not null" json:"wire_drop_id"`
	ProjectEquipmentID uint     `gorm:"index;not null" json:"project_equipment_id"`
	LinkSide           LinkSide `gorm:"type:varchar(20);index:idx_link_drop_side;not null" json:"link_side"`
	Primary            bool     `gorm:"column:is_primary;default:false" json:"primary"`

	WireDrop  *WireDrop         `gorm:"foreignKey:WireDropID" json:"wire_drop,omitempty"`
	Equipment *ProjectEquipment `gorm:"foreignKey:ProjectEquipmentID" json:"equipment,omitempty"`
}
