package sheetdb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repair-system/internal/entities"
)

func TestDecodeFaultsAcceptsArray(t *testing.T) {
	raw := json.RawMessage(`[{"id":"f1","description":"Leak","workshopId":"w1"}]`)

	faults, err := DecodeFaults(raw)
	require.NoError(t, err)
	require.Len(t, faults, 1)
	assert.Equal(t, "Leak", faults[0].Description)
}

func TestDecodeFaultsAcceptsEncodedString(t *testing.T) {
	// The sheet stores the fault list as a JSON string inside one cell.
	raw := json.RawMessage(`"[{\"id\":\"f1\",\"description\":\"Leak\",\"workshopId\":\"w1\"}]"`)

	faults, err := DecodeFaults(raw)
	require.NoError(t, err)
	require.Len(t, faults, 1)
	assert.Equal(t, "w1", faults[0].WorkshopID)
}

func TestDecodeFaultsEmptyVariants(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage("null"), json.RawMessage(`""`)} {
		faults, err := DecodeFaults(raw)
		require.NoError(t, err)
		assert.Empty(t, faults)
	}
}

func TestDecodeFaultsRejectsGarbage(t *testing.T) {
	_, err := DecodeFaults(json.RawMessage(`"not json at all"`))
	assert.Error(t, err)

	_, err = DecodeFaults(json.RawMessage(`42`))
	assert.Error(t, err)
}

func TestEncodeRequestStringifiesFaults(t *testing.T) {
	req := entities.RepairRequest{
		ID:          "262001",
		EquipmentID: "eq1",
		DriverName:  "J. Mokoena",
		Purpose:     entities.PurposeRepairing,
		Faults:      []entities.Fault{{ID: "f1", Description: "Leak", WorkshopID: "w1"}},
		DateIn:      "2026-03-02",
		TimeIn:      "08:15:00",
		Status:      entities.StatusPending,
		WorkshopID:  "w1",
	}

	payload, err := EncodeRequest(req)
	require.NoError(t, err)

	var faults []entities.Fault
	require.NoError(t, json.Unmarshal([]byte(payload.Faults), &faults))
	require.Len(t, faults, 1)
	assert.Equal(t, req.Faults[0], faults[0])
}
