package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repair-system/internal/dto"
)

func TestTranslateEchoesBackWhenNotConfigured(t *testing.T) {
	svc := NewTranslateService("", zap.NewNop())

	res, err := svc.Translate(context.Background(), dto.TranslateDTO{Text: "Утечка гидравлики"})
	require.NoError(t, err)
	assert.Equal(t, "Утечка гидравлики", res.Text)
}

func TestTranslateUsesConfiguredEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Утечка гидравлики", in.Text)
		json.NewEncoder(w).Encode(map[string]string{"text": "Hydraulic leak"})
	}))
	defer srv.Close()

	svc := NewTranslateService(srv.URL, zap.NewNop())
	res, err := svc.Translate(context.Background(), dto.TranslateDTO{Text: "Утечка гидравлики"})
	require.NoError(t, err)
	assert.Equal(t, "Hydraulic leak", res.Text)
}

func TestTranslateFailureMarksTextInsteadOfErroring(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := NewTranslateService(srv.URL, zap.NewNop())
	res, err := svc.Translate(context.Background(), dto.TranslateDTO{Text: "some text"})
	require.NoError(t, err)
	assert.Equal(t, "Translation error", res.Text)
}
