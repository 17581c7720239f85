package models

// ProjectEquipment represents a device placed on a project.
// Read-only to the wire-drop core; rows are imported from the proposal tool.
type ProjectEquipment struct {
	BaseModel
	ProjectID       uint   `gorm:"index;not null" json:"project_id"`
	Name            string `gorm:"type:varchar(100);not null" json:"name"`
	Manufacturer    string `gorm:"type:varchar(100)" json:"manufacturer"`
	Model           string `gorm:"type:varchar(100)" json:"model"`
	PartNumber      string `gorm:"type:varchar(100)" json:"part_number"`
	RoomName        string `gorm:"type:varchar(100)" json:"room_name"`
	HeadEndRoom     bool   `gorm:"default:false" json:"head_end_room"`      // 所在房间是否为机柜间
	WireDropVisible bool   `gorm:"default:false" json:"wire_drop_visible"`  // 全局部件定义是否允许关联线缆
	IPAddress       string `gorm:"type:varchar(45)" json:"ip_address"`
	MACAddress      string `gorm:"type:varchar(17)" json:"mac_address"`
	HomeKitID       string `gorm:"type:varchar(100)" json:"homekit_id"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
