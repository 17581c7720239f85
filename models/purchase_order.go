package models

import "time"

// PurchaseOrderStatus represents the receiving state of a PO
type PurchaseOrderStatus string

const (
	POStatusDraft    PurchaseOrderStatus = "draft"
	POStatusOrdered  PurchaseOrderStatus = "ordered"
	POStatusPartial  PurchaseOrderStatus = "partial"
	POStatusReceived PurchaseOrderStatus = "received"
)

// PurchaseOrder represents an equipment order for a project
type PurchaseOrder struct {
	BaseModel
	ProjectID  uint                `gorm:"index;not null" json:"project_id"`
	PONumber   string              `gorm:"type:varchar(50);unique;not null" json:"po_number"`
	Vendor     string              `gorm:"type:varchar(100)" json:"vendor"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	ReceivedBy string              `gorm:"type:varchar(50)" json:"received_by"`
	ReceivedAt *time.Time          `json:"received_at,omitempty"`

	Project *Project            `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Items   []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items,omitempty"`
}

// PurchaseOrderItem is one line of a purchase order
type PurchaseOrderItem struct {
	BaseModel
	PurchaseOrderID uint   `gorm:"index;not null" json:"purchase_order_id"`
	PartNumber      string `gorm:"type:varchar(100)" json:"part_number"`
	Description     string `gorm:"type:varchar(200)" json:"description"`
	Quantity        int    `gorm:"default:1" json:"quantity"`
	QuantityRecv    int    `gorm:"default:0" json:"quantity_received"`
}
