package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repair-system/internal/dto"
)

func TestCreateEquipmentRejectsDuplicateSerialBeforeRemoteCall(t *testing.T) {
	st, fake := newTestStore(t)
	svc := NewEquipmentService(st, zap.NewNop())

	_, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		EquipmentType: "Loader", EquipmentNumber: "L-01", SerialNumber: "SN-100",
	})
	require.NoError(t, err)

	callsBefore := len(fake.Calls())
	_, err = svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		EquipmentType: "Loader", EquipmentNumber: "L-02", SerialNumber: "SN-100",
	})
	require.Error(t, err)
	assert.Len(t, fake.Calls(), callsBefore, "a rejected duplicate never reaches the remote store")
}

func TestUpdateEquipmentChecksSerialAgainstOtherRecords(t *testing.T) {
	st, _ := newTestStore(t)
	svc := NewEquipmentService(st, zap.NewNop())

	first, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		EquipmentType: "Loader", EquipmentNumber: "L-01", SerialNumber: "SN-100",
	})
	require.NoError(t, err)
	second, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		EquipmentType: "Shovel", EquipmentNumber: "S-01", SerialNumber: "SN-200",
	})
	require.NoError(t, err)

	taken := "SN-100"
	_, err = svc.UpdateEquipment(context.Background(), second.ID, dto.UpdateEquipmentDTO{SerialNumber: &taken})
	assert.Error(t, err)

	// Re-submitting its own serial is not a conflict.
	own := "SN-100"
	_, err = svc.UpdateEquipment(context.Background(), first.ID, dto.UpdateEquipmentDTO{SerialNumber: &own})
	assert.NoError(t, err)
}

func TestListEquipmentsSearchesNumberAndSerial(t *testing.T) {
	st, _ := newTestStore(t)
	svc := NewEquipmentService(st, zap.NewNop())

	_, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		EquipmentType: "Excavator", EquipmentNumber: "EX-230", SerialNumber: "CAT-99871",
	})
	require.NoError(t, err)
	_, err = svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		EquipmentType: "Dump Truck", EquipmentNumber: "DT-14", SerialNumber: "VOL-11220",
	})
	require.NoError(t, err)

	byNumber, err := svc.ListEquipments(context.Background(), "ex-2")
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, "EX-230", byNumber[0].EquipmentNumber)

	bySerial, err := svc.ListEquipments(context.Background(), "vol")
	require.NoError(t, err)
	require.Len(t, bySerial, 1)
	assert.Equal(t, "DT-14", bySerial[0].EquipmentNumber)

	all, err := svc.ListEquipments(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteEquipmentReportsOrphanedRequests(t *testing.T) {
	st, _ := newTestStore(t)
	seedWorkshop(t, st, "w1")
	svc := NewEquipmentService(st, zap.NewNop())

	eq, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		EquipmentType: "Loader", EquipmentNumber: "L-01", SerialNumber: "SN-100",
	})
	require.NoError(t, err)

	reqSvc := NewRequestService(st, zap.NewNop())
	_, err = reqSvc.CreateRequest(context.Background(), createDTO(eq.ID))
	require.NoError(t, err)

	res, err := svc.DeleteEquipment(context.Background(), eq.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.OrphanedRequests)

	_, err = svc.FindEquipment(context.Background(), eq.ID)
	assert.Error(t, err)
}
