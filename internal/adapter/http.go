package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/go-resty/resty/v2"
)

// httpIndexer is the HTTP/REST implementation of [Indexer].
type httpIndexer struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPIndexer constructs an HTTP [Indexer] client. It normalises and
// validates the base URL from cfg.Address and configures the underlying
// client with the resolved base URL and request timeout.
//
// Returns an error if cfg.Address is empty or cannot be parsed as a valid
// URL.
func NewHTTPIndexer(cfg config.Indexer, logger *logger.Logger) (Indexer, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid indexer address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	logger.Debug().Str("indexer_address", baseURL).Msg("creating indexer client")

	return &httpIndexer{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// IndexDocument implements [Indexer]. It PUTs the document to
// PUT /api/index/documents/{id}; the indexer replaces any version it holds.
func (h *httpIndexer) IndexDocument(ctx context.Context, document models.Document) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(document).
		Put("/api/index/documents/" + url.PathEscape(document.ID))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexerUnavailable, err)
	}

	return mapHTTPError(resp)
}

// RemoveDocument implements [Indexer]. It DELETEs
// /api/index/documents/{id}. A 404 means the index never held the document
// and counts as success.
func (h *httpIndexer) RemoveDocument(ctx context.Context, documentID string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/index/documents/" + url.PathEscape(documentID))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexerUnavailable, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil
	}

	return mapHTTPError(resp)
}
