package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/store"
)

func newExportFixture(t *testing.T) (ExportServiceInterface, *RequestService, *store.Store) {
	t.Helper()
	st, _ := newTestStore(t)
	seedEquipment(t, st, "eq1")
	seedEquipment(t, st, "eq2")
	seedWorkshop(t, st, "w1")
	seedWorkshop(t, st, "w2")

	reqSvc := NewRequestService(st, zap.NewNop())
	return NewExportService(st, reqSvc, zap.NewNop()), reqSvc, st
}

func TestHistoryCSVOneRowPerFault(t *testing.T) {
	exportSvc, reqSvc, _ := newExportFixture(t)

	payload := createDTO("eq1")
	payload.Faults = []dto.FaultInputDTO{
		{Description: "Hydraulic leak", WorkshopID: "w1", MechanicName: "T. Dube"},
		{Description: "Broken light", WorkshopID: "w2"},
	}
	_, err := reqSvc.CreateRequest(context.Background(), payload)
	require.NoError(t, err)

	data, err := exportSvc.HistoryCSV(context.Background(), dto.RequestFilterDTO{})
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "\uFEFF"), "spreadsheet imports need the UTF-8 BOM")
	assert.Contains(t, out, "\r\n")
	assert.Contains(t, out, "Job #,Equipment,Date In,Mileage,Status,Workshop,Mechanic,Fault")
	assert.Contains(t, out, "Hydraulic leak")
	assert.Contains(t, out, "Broken light")
	assert.Contains(t, out, "EX-eq1 (SN-eq1)")

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	assert.Len(t, lines, 3, "header plus one row per fault")
}

func TestHistoryCSVWorkshopFilterLeavesNoForeignFaults(t *testing.T) {
	exportSvc, reqSvc, _ := newExportFixture(t)

	mixed := createDTO("eq1")
	mixed.Faults = []dto.FaultInputDTO{
		{Description: "Hydraulic leak", WorkshopID: "w1"},
		{Description: "Broken light", WorkshopID: "w2"},
	}
	_, err := reqSvc.CreateRequest(context.Background(), mixed)
	require.NoError(t, err)

	foreign := createDTO("eq2")
	foreign.Faults = []dto.FaultInputDTO{{Description: "Cracked windshield", WorkshopID: "w2"}}
	_, err = reqSvc.CreateRequest(context.Background(), foreign)
	require.NoError(t, err)

	data, err := exportSvc.HistoryCSV(context.Background(), dto.RequestFilterDTO{WorkshopID: "w1"})
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "Hydraulic leak")
	assert.NotContains(t, out, "Broken light", "faults of other workshops never leak into a filtered export")
	assert.NotContains(t, out, "Cracked windshield")
}

func TestHistoryXLSXBuildsHistorySheet(t *testing.T) {
	exportSvc, reqSvc, _ := newExportFixture(t)

	created, err := reqSvc.CreateRequest(context.Background(), createDTO("eq1"))
	require.NoError(t, err)
	_, err = reqSvc.CompleteRequest(context.Background(), created.ID, dto.CompleteRepairRequestDTO{
		Faults: []dto.CompletionFaultDTO{{
			FaultID:   created.Faults[0].ID,
			WorkDone:  "Replaced hose",
			PartsUsed: []dto.PartInputDTO{{Name: "Hose", Quantity: "1"}},
		}},
	})
	require.NoError(t, err)

	f, err := exportSvc.HistoryXLSX(context.Background(), dto.RequestFilterDTO{})
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"History"}, f.GetSheetList())

	head, err := f.GetCellValue("History", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Workshop", head)

	work, err := f.GetCellValue("History", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Replaced hose", work)

	parts, err := f.GetCellValue("History", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Hose (x1)", parts)
}

func TestJobCardPDF(t *testing.T) {
	exportSvc, reqSvc, _ := newExportFixture(t)

	created, err := reqSvc.CreateRequest(context.Background(), createDTO("eq1"))
	require.NoError(t, err)

	data, err := exportSvc.JobCardPDF(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "output must be a PDF document")

	_, err = exportSvc.JobCardPDF(context.Background(), "999999")
	assert.Error(t, err)
}

func TestWhatsAppLinkEncodesSummary(t *testing.T) {
	exportSvc, reqSvc, _ := newExportFixture(t)

	created, err := reqSvc.CreateRequest(context.Background(), createDTO("eq1"))
	require.NoError(t, err)

	link, err := exportSvc.WhatsAppLink(context.Background(), created.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/?text="))
	assert.Contains(t, link, created.ID)
	assert.NotContains(t, link, " ", "the message text must be URL-encoded")
}
