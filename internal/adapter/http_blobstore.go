package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/utils"
	"github.com/MKhiriev/go-gene-consent/models"
)

// FileNameHeader names the exported file on upload.
const FileNameHeader = "X-File-Name"

type httpBlobStore struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPBlobStore returns a [BlobStore] at cfg.BlobStoreAddress.
func NewHTTPBlobStore(cfg config.Adapter, logger *logger.Logger) (BlobStore, error) {
	client, err := newClient(cfg.BlobStoreAddress, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid blob store address: %w", err)
	}

	return &httpBlobStore{client: client, logger: logger}, nil
}

// Put implements [BlobStore]. It PUTs the blob as text to /blobs and reads
// the reference from the JSON answer.
func (b *httpBlobStore) Put(ctx context.Context, blob string, fileName string) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetHeader(FileNameHeader, fileName).
		SetBody(blob).
		Put("/blobs")
	if err != nil {
		b.logger.Err(err).Str("func", "*httpBlobStore.Put").Msg("blob upload failed")
		return "", fmt.Errorf("put blob: %w: %w", ErrServiceUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("put blob: %w", err)
	}

	var ref models.BlobRef
	if err = json.Unmarshal(resp.Body(), &ref); err != nil {
		return "", fmt.Errorf("decode blob reference: %w", err)
	}
	if ref.Ref == "" {
		return "", fmt.Errorf("blob store returned an empty reference")
	}
	return ref.Ref, nil
}

// Get implements [BlobStore].
func (b *httpBlobStore) Get(ctx context.Context, ref string) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("ref", ref).
		Get("/blobs/{ref}")
	if err != nil {
		b.logger.Err(err).Str("func", "*httpBlobStore.Get").Str("ref", ref).Msg("blob download failed")
		return "", fmt.Errorf("get blob: %w: %w", ErrServiceUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", fmt.Errorf("get blob: %w", err)
	}

	return string(resp.Body()), nil
}
