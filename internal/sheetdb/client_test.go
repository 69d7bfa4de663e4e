package sheetdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetAllDataParsesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "getAllData", r.URL.Query().Get("action"))
		w.Write([]byte(`{
			"equipments": [{"id":"eq1","equipmentType":"Loader","equipmentNumber":"L-01","serialNumber":"SN-1"}],
			"workshops": [{"id":"w1","subName":"Hydraulics","foreman":"S. Naidoo"}],
			"repairRequests": [{"id":"262001","equipmentId":"eq1","driverName":"J","purpose":"Repairing","faults":"[]","dateIn":"2026-03-02","timeIn":"08:15:00","status":"Pending"}],
			"users": [],
			"settings": {"jobCardStartNumber": 262400}
		}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 5*time.Second, zap.NewNop())
	data, err := client.GetAllData(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Equipments, 1)
	require.Len(t, data.Workshops, 1)
	require.Len(t, data.RepairRequests, 1)
	assert.Equal(t, "262001", data.RepairRequests[0].ID)
	require.NotNil(t, data.Settings)
	assert.Equal(t, int64(262400), data.Settings.JobCardStartNumber)
}

func TestMutationsPostActionEnvelope(t *testing.T) {
	var bodies []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 5*time.Second, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, client.Create(ctx, SheetWorkshops, map[string]string{"id": "w1"}))
	require.NoError(t, client.Update(ctx, SheetWorkshops, map[string]string{"id": "w1"}))
	require.NoError(t, client.Delete(ctx, SheetWorkshops, "w1"))

	require.Len(t, bodies, 3)
	assert.Equal(t, "CREATE", bodies[0]["action"])
	assert.Equal(t, "UPDATE", bodies[1]["action"])
	assert.Equal(t, "DELETE", bodies[2]["action"])
	for _, body := range bodies {
		assert.Equal(t, "Workshops", body["sheetName"])
		assert.NotNil(t, body["payload"])
	}
	assert.Equal(t, map[string]interface{}{"id": "w1"}, bodies[2]["payload"])
}

func TestNonSuccessStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 5*time.Second, zap.NewNop())

	_, err := client.GetAllData(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	err = client.Create(context.Background(), SheetUsers, map[string]string{"id": "u1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
