package services

import (
	"testing"

	"wiretrack-http-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPurchaseOrder(t *testing.T, svc InterfacePurchaseOrderService, projectID uint) *models.PurchaseOrder {
	t.Helper()

	po := &models.PurchaseOrder{
		ProjectID: projectID,
		PONumber:  "PO-2026-0142",
		Vendor:    "ADI",
		Status:    models.POStatusOrdered,
		Items: []models.PurchaseOrderItem{
			{PartNumber: "CAT6-1000", Description: "Cat6 spool", Quantity: 4},
			{PartNumber: "KP-7", Description: "Keypad", Quantity: 10},
		},
	}
	require.NoError(t, svc.CreatePurchaseOrder(po))
	return po
}

func TestReceiveItemsPartialThenComplete(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewPurchaseOrderService(db, testConfig())
	po := seedPurchaseOrder(t, svc, project.ID)

	// 部分收货
	updated, err := svc.ReceiveItems(po.ID, []ReceiveItemInput{
		{ItemID: po.Items[0].ID, Quantity: 4},
	}, "mike")
	require.NoError(t, err)
	assert.Equal(t, models.POStatusPartial, updated.Status)
	assert.Empty(t, updated.ReceivedBy)

	// 余量到齐后置为received并记录经手人
	updated, err = svc.ReceiveItems(po.ID, []ReceiveItemInput{
		{ItemID: po.Items[1].ID, Quantity: 6},
		{ItemID: po.Items[1].ID, Quantity: 4},
	}, "sara")
	require.NoError(t, err)
	assert.Equal(t, models.POStatusReceived, updated.Status)
	assert.Equal(t, "sara", updated.ReceivedBy)
	assert.NotNil(t, updated.ReceivedAt)

	for _, item := range updated.Items {
		assert.GreaterOrEqual(t, item.QuantityRecv, item.Quantity)
	}
}

func TestReceiveItemsRejectsForeignLine(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewPurchaseOrderService(db, testConfig())
	po := seedPurchaseOrder(t, svc, project.ID)

	// 行项目必须属于该采购单
	_, err := svc.ReceiveItems(po.ID, []ReceiveItemInput{
		{ItemID: 9999, Quantity: 1},
	}, "mike")
	assert.ErrorIs(t, err, ErrPurchaseOrderNotFound)

	// 失败的整批不落库
	reloaded, err := svc.GetPurchaseOrderByID(po.ID)
	require.NoError(t, err)
	assert.Equal(t, models.POStatusOrdered, reloaded.Status)
}

func TestDeletePurchaseOrderRemovesItems(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db)
	svc := NewPurchaseOrderService(db, testConfig())
	po := seedPurchaseOrder(t, svc, project.ID)

	require.NoError(t, svc.DeletePurchaseOrder(po.ID))

	var items int64
	require.NoError(t, db.Model(&models.PurchaseOrderItem{}).
		Where("purchase_order_id = ?", po.ID).Count(&items).Error)
	assert.EqualValues(t, 0, items)

	_, err := svc.GetPurchaseOrderByID(po.ID)
	assert.ErrorIs(t, err, ErrPurchaseOrderNotFound)
}
