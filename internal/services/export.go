package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/store"
	apperrors "repair-system/pkg/errors"
)

const historySheetName = "History"

const whatsAppShareMessage = "New repair request created for equipment:"

type ExportServiceInterface interface {
	HistoryCSV(ctx context.Context, filter dto.RequestFilterDTO) ([]byte, error)
	HistoryXLSX(ctx context.Context, filter dto.RequestFilterDTO) (*excelize.File, error)
	JobCardPDF(ctx context.Context, requestID string) ([]byte, error)
	WhatsAppLink(ctx context.Context, requestID string) (string, error)
}

type ExportService struct {
	store      *store.Store
	requestSvc RequestServiceInterface
	logger     *zap.Logger
}

func NewExportService(st *store.Store, requestSvc RequestServiceInterface, logger *zap.Logger) ExportServiceInterface {
	return &ExportService{store: st, requestSvc: requestSvc, logger: logger}
}

func (s *ExportService) equipmentLabel(snap store.Snapshot, equipmentID string) string {
	for _, e := range snap.Equipments {
		if e.ID == equipmentID {
			return fmt.Sprintf("%s (%s)", e.EquipmentNumber, e.SerialNumber)
		}
	}
	return "Unknown"
}

func (s *ExportService) workshopName(snap store.Snapshot, workshopID string) string {
	for _, w := range snap.Workshops {
		if w.ID == workshopID {
			return w.SubName
		}
	}
	return "N/A"
}

// HistoryCSV flattens each request into one row per fault. Under a workshop
// filter only that workshop's faults are exported, and a request left with
// no matching fault still contributes one row with blank fault columns.
// Output carries a UTF-8 BOM and CRLF line endings for spreadsheet imports.
func (s *ExportService) HistoryCSV(ctx context.Context, filter dto.RequestFilterDTO) ([]byte, error) {
	requests, err := s.requestSvc.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	snap := s.store.Snapshot()

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	header := []string{"Job #", "Equipment", "Date In", "Mileage", "Status", "Workshop", "Mechanic", "Fault"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, req := range requests {
		equipment := s.equipmentLabel(snap, req.EquipmentID)

		faults := req.Faults
		if filter.WorkshopID != "" {
			faults = nil
			for _, f := range req.Faults {
				if f.WorkshopID == filter.WorkshopID {
					faults = append(faults, f)
				}
			}
		}

		if len(faults) == 0 {
			if err := w.Write([]string{req.ID, equipment, req.DateIn, req.Mileage, string(req.Status), "", "", ""}); err != nil {
				return nil, err
			}
			continue
		}

		for _, f := range faults {
			row := []string{
				req.ID,
				equipment,
				req.DateIn,
				req.Mileage,
				string(req.Status),
				s.workshopName(snap, f.WorkshopID),
				f.MechanicName,
				f.Description,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var historyHeaders = []interface{}{"Workshop", "Equipment", "Date In", "Date Out", "Work Done", "Parts"}

// HistoryXLSX builds the spreadsheet export: one sheet named "History",
// one row per request with fault narratives and parts joined up.
func (s *ExportService) HistoryXLSX(ctx context.Context, filter dto.RequestFilterDTO) (*excelize.File, error) {
	requests, err := s.requestSvc.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}
	snap := s.store.Snapshot()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(historySheetName, "A1", &historyHeaders); err != nil {
		return nil, err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		f.SetCellStyle(historySheetName, "A1", "F1", style)
	}

	for i, req := range requests {
		var equipment string
		for _, e := range snap.Equipments {
			if e.ID == req.EquipmentID {
				equipment = fmt.Sprintf("%s %s", e.EquipmentType, e.EquipmentNumber)
				break
			}
		}

		var workDone, parts []string
		for _, fault := range req.Faults {
			if fault.WorkDone != "" {
				workDone = append(workDone, fault.WorkDone)
			}
			for _, p := range fault.PartsUsed {
				parts = append(parts, fmt.Sprintf("%s (x%s)", p.Name, p.Quantity))
			}
		}

		row := []interface{}{
			s.workshopName(snap, req.WorkshopID),
			equipment,
			req.DateIn,
			req.DateOut,
			strings.Join(workDone, "; "),
			strings.Join(parts, ", "),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(historySheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	f.SetColWidth(historySheetName, "A", "B", 25)
	f.SetColWidth(historySheetName, "E", "F", 40)
	return f, nil
}

// JobCardPDF renders the printable A4 job card for a request.
func (s *ExportService) JobCardPDF(ctx context.Context, requestID string) ([]byte, error) {
	req, err := s.requestSvc.FindRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	snap := s.store.Snapshot()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(190, 12, "Job Card #"+req.ID, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	writeLine := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(145, 7, value, "", 1, "L", false, 0, "")
	}

	equipmentLabel := s.equipmentLabel(snap, req.EquipmentID)
	writeLine("Equipment:", equipmentLabel)
	writeLine("Driver:", req.DriverName)
	if req.Mileage != "" {
		writeLine("Mileage:", req.Mileage)
	}
	writeLine("Purpose:", string(req.Purpose))
	writeLine("Date in:", req.DateIn+" "+req.TimeIn)
	writeLine("Status:", string(req.Status))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(190, 8, "Faults", "B", 1, "L", false, 0, "")
	for i, f := range req.Faults {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(190, 7, fmt.Sprintf("%d. %s", i+1, f.Description), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(190, 6, "Workshop: "+s.workshopName(snap, f.WorkshopID), "", 1, "L", false, 0, "")
		if f.MechanicName != "" {
			pdf.CellFormat(190, 6, "Mechanic: "+f.MechanicName, "", 1, "L", false, 0, "")
		}
		if f.WorkDone != "" {
			pdf.MultiCell(190, 6, "Work done: "+f.WorkDone, "", "L", false)
		}
		for _, p := range f.PartsUsed {
			pdf.CellFormat(190, 6, fmt.Sprintf("Part: %s (x%s)", p.Name, p.Quantity), "", 1, "L", false, 0, "")
		}
		pdf.Ln(1)
	}

	if req.Status == entities.StatusCompleted {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(190, 8, "Completed", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(190, 7, "Date out: "+req.DateOut+" "+req.TimeOut, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.logger.Error("pdf generation failed", zap.String("request", requestID), zap.Error(err))
		return nil, apperrors.NewHttpError(500, "failed to generate job card PDF", err, nil)
	}
	return buf.Bytes(), nil
}

// WhatsAppLink builds the wa.me deep link carrying the URL-encoded job-card
// summary.
func (s *ExportService) WhatsAppLink(ctx context.Context, requestID string) (string, error) {
	req, err := s.requestSvc.FindRequest(ctx, requestID)
	if err != nil {
		return "", err
	}

	message := fmt.Sprintf("%s %s. \nJob Card No: %s",
		whatsAppShareMessage, s.equipmentLabel(s.store.Snapshot(), req.EquipmentID), req.ID)
	return "https://wa.me/?text=" + url.QueryEscape(message), nil
}
