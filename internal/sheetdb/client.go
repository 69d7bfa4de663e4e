package sheetdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"repair-system/internal/entities"
)

// Sheet names on the remote store.
const (
	SheetEquipments     = "Equipments"
	SheetWorkshops      = "Workshops"
	SheetRepairRequests = "RepairRequests"
	SheetUsers          = "Users"
	SheetSettings       = "Settings"
)

const (
	actionCreate = "CREATE"
	actionUpdate = "UPDATE"
	actionDelete = "DELETE"
)

// RawRepairRequest is a repair request as the sheet returns it: faults may
// arrive either as a JSON array or as a JSON-encoded string of one.
type RawRepairRequest struct {
	ID          string                 `json:"id"`
	EquipmentID string                 `json:"equipmentId"`
	DriverName  string                 `json:"driverName"`
	Mileage     string                 `json:"mileage,omitempty"`
	Purpose     entities.Purpose       `json:"purpose"`
	Faults      json.RawMessage        `json:"faults"`
	DateIn      string                 `json:"dateIn"`
	TimeIn      string                 `json:"timeIn"`
	DateOut     string                 `json:"dateOut,omitempty"`
	TimeOut     string                 `json:"timeOut,omitempty"`
	Status      entities.RequestStatus `json:"status"`
	WorkshopID  string                 `json:"workshopId,omitempty"`
}

// AllData is the full remote snapshot returned by action=getAllData.
type AllData struct {
	Equipments     []entities.Equipment `json:"equipments"`
	Workshops      []entities.Workshop  `json:"workshops"`
	RepairRequests []RawRepairRequest   `json:"repairRequests"`
	Users          []entities.User      `json:"users"`
	Settings       *entities.Settings   `json:"settings"`
}

type Client interface {
	GetAllData(ctx context.Context) (*AllData, error)
	Create(ctx context.Context, sheetName string, payload interface{}) error
	Update(ctx context.Context, sheetName string, payload interface{}) error
	Delete(ctx context.Context, sheetName string, id string) error
}

type HTTPClient struct {
	url    string
	http   *http.Client
	logger *zap.Logger
}

func NewHTTPClient(url string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		url:    url,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (c *HTTPClient) GetAllData(ctx context.Context) (*AllData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?action=getAllData", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sheet data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sheet API returned %d: %s", resp.StatusCode, string(body))
	}

	var data AllData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding sheet data: %w", err)
	}
	return &data, nil
}

type postBody struct {
	Action    string      `json:"action"`
	Payload   interface{} `json:"payload"`
	SheetName string      `json:"sheetName"`
}

func (c *HTTPClient) post(ctx context.Context, action, sheetName string, payload interface{}) error {
	body, err := json.Marshal(postBody{Action: action, Payload: payload, SheetName: sheetName})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s on %s: %w", action, sheetName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s on %s returned %d: %s", action, sheetName, resp.StatusCode, string(respBody))
	}

	// Result body is acknowledged but not interpreted; the caller refetches
	// the whole snapshot anyway.
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *HTTPClient) Create(ctx context.Context, sheetName string, payload interface{}) error {
	return c.post(ctx, actionCreate, sheetName, payload)
}

func (c *HTTPClient) Update(ctx context.Context, sheetName string, payload interface{}) error {
	return c.post(ctx, actionUpdate, sheetName, payload)
}

func (c *HTTPClient) Delete(ctx context.Context, sheetName string, id string) error {
	return c.post(ctx, actionDelete, sheetName, map[string]string{"id": id})
}
