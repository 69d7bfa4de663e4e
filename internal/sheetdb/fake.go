package sheetdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Fake is an in-memory Client used by tests and local development. Rows are
// kept as JSON documents per sheet, the way the real backend keeps cells,
// so the encode/decode path stays honest.
type Fake struct {
	mu    sync.Mutex
	rows  map[string][]json.RawMessage
	calls []string

	// FailNextWrite makes the next Create/Update/Delete fail once.
	FailNextWrite error
}

func NewFake() *Fake {
	return &Fake{rows: map[string][]json.RawMessage{}}
}

// Calls returns the mutation log ("CREATE Equipments", ...) for assertions.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) GetAllData(ctx context.Context) (*AllData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := &AllData{}
	if err := decodeRows(f.rows[SheetEquipments], &data.Equipments); err != nil {
		return nil, err
	}
	if err := decodeRows(f.rows[SheetWorkshops], &data.Workshops); err != nil {
		return nil, err
	}
	if err := decodeRows(f.rows[SheetRepairRequests], &data.RepairRequests); err != nil {
		return nil, err
	}
	if err := decodeRows(f.rows[SheetUsers], &data.Users); err != nil {
		return nil, err
	}
	if rows := f.rows[SheetSettings]; len(rows) > 0 {
		if err := json.Unmarshal(rows[len(rows)-1], &data.Settings); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func decodeRows[T any](rows []json.RawMessage, dst *[]T) error {
	for _, row := range rows {
		var v T
		if err := json.Unmarshal(row, &v); err != nil {
			return err
		}
		*dst = append(*dst, v)
	}
	return nil
}

func (f *Fake) failIfArmed(action, sheetName string) error {
	if f.FailNextWrite != nil {
		err := f.FailNextWrite
		f.FailNextWrite = nil
		f.calls = append(f.calls, action+" "+sheetName+" (failed)")
		return err
	}
	f.calls = append(f.calls, action+" "+sheetName)
	return nil
}

func (f *Fake) Create(ctx context.Context, sheetName string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfArmed(actionCreate, sheetName); err != nil {
		return err
	}
	row, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.rows[sheetName] = append(f.rows[sheetName], row)
	return nil
}

func (f *Fake) Update(ctx context.Context, sheetName string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfArmed(actionUpdate, sheetName); err != nil {
		return err
	}
	row, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if sheetName == SheetSettings {
		f.rows[sheetName] = []json.RawMessage{row}
		return nil
	}

	id := rowID(row)
	for i, existing := range f.rows[sheetName] {
		if rowID(existing) == id {
			f.rows[sheetName][i] = row
			return nil
		}
	}
	return fmt.Errorf("no row with id %q in %s", id, sheetName)
}

func (f *Fake) Delete(ctx context.Context, sheetName string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIfArmed(actionDelete, sheetName); err != nil {
		return err
	}
	rows := f.rows[sheetName]
	for i, existing := range rows {
		if rowID(existing) == id {
			f.rows[sheetName] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no row with id %q in %s", id, sheetName)
}

func rowID(row json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	json.Unmarshal(row, &probe)
	return probe.ID
}
