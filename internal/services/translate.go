package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"repair-system/internal/dto"
)

const translateTimeout = 10 * time.Second

// TranslateService proxies free-text fields (fault descriptions, work done)
// to an external translation endpoint. Translation is a convenience, never a
// gate: when the endpoint is not configured the input comes back unchanged,
// and a failed call returns the input tagged with an error marker instead of
// an error.
type TranslateServiceInterface interface {
	Translate(ctx context.Context, payload dto.TranslateDTO) (*dto.TranslateResponseDTO, error)
}

type TranslateService struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewTranslateService(url string, logger *zap.Logger) TranslateServiceInterface {
	return &TranslateService{
		url:    url,
		client: &http.Client{Timeout: translateTimeout},
		logger: logger,
	}
}

func (s *TranslateService) Translate(ctx context.Context, payload dto.TranslateDTO) (*dto.TranslateResponseDTO, error) {
	text := strings.TrimSpace(payload.Text)
	if s.url == "" {
		return &dto.TranslateResponseDTO{Text: text}, nil
	}

	translated, err := s.call(ctx, text)
	if err != nil {
		s.logger.Warn("translation failed", zap.Error(err))
		return &dto.TranslateResponseDTO{Text: "Translation error"}, nil
	}
	return &dto.TranslateResponseDTO{Text: translated}, nil
}

func (s *TranslateService) call(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("translation endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decoding translation response: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("translation endpoint returned an empty text")
	}
	return out.Text, nil
}
