package models

// WireDrop represents one physical cable run tracked through installation
type WireDrop struct {
	BaseModel
	ProjectID uint   `gorm:"index;not null" json:"project_id"`
	UID       string `gorm:"type:varchar(50);unique;not null" json:"uid"` // 二维码编码用的唯一编号
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	RoomName  string `gorm:"type:varchar(100)" json:"room_name"`
	Floor     string `gorm:"type:varchar(20)" json:"floor"`
	WireType  string `gorm:"type:varchar(50)" json:"wire_type"` // Cat6, 16/2, fiber...
	DropType  string `gorm:"type:varchar(50)" json:"drop_type"` // speaker, network, keypad...
	Auxiliary bool   `gorm:"default:false" json:"auxiliary"`    // 备用线，免除设备关联要求
	Notes     string `gorm:"type:text" json:"notes"`

	// Relations
	Project        *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Stages         []WireDropStage `gorm:"foreignKey:WireDropID" json:"stages,omitempty"`
	EquipmentLinks []EquipmentLink `gorm:"foreignKey:WireDropID" json:"equipment_links,omitempty"`
	ShadeLink      *ShadeLink      `gorm:"foreignKey:WireDropID" json:"shade_link,omitempty"`
}

// StageByType returns the loaded stage record of the given type, or nil
func (w *WireDrop) StageByType(stageType StageType) *WireDropStage {
	for i := range w.Stages {
		if w.Stages[i].StageType == stageType {
			return &w.Stages[i]
		}
	}
	return nil
}

// RoomEndLink returns the loaded room-end equipment link, or nil
func (w *WireDrop) RoomEndLink() *EquipmentLink {
	for i := range w.EquipmentLinks {
		if w.EquipmentLinks[i].LinkSide == LinkSideRoomEnd {
			return &w.EquipmentLinks[i]
		}
	}
	return nil
}
