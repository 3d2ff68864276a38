package client

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/astra-video/astra-client/internal/api"
)

// FileKind selects the preview treatment for an uploaded file.
type FileKind string

const (
	FileKindImage FileKind = "image"
	FileKindVideo FileKind = "video"
)

// Image previews are served at a fixed size; callers never configure this.
const (
	previewWidth   = 2000
	previewHeight  = 2000
	previewGravity = "top"
	previewQuality = 100
)

// UploadFile streams the asset at asset.URI to the file service and returns
// the durable URL for it: a transformed preview for images, a direct view
// URL for videos. Callers only ever deal in URLs, never raw file ids.
//
// A nil asset is a no-op returning an empty URL, not an error.
func (c *Client) UploadFile(ctx context.Context, asset *UploadAsset, kind FileKind) (string, error) {
	if asset == nil {
		return "", nil
	}
	if kind != FileKindImage && kind != FileKindVideo {
		return "", fmt.Errorf("upload file: invalid file kind %q: %w", kind, ErrUpload)
	}

	content, err := os.Open(asset.URI)
	if err != nil {
		return "", fmt.Errorf("upload file: open asset: %w: %w", ErrUpload, err)
	}
	defer content.Close()

	stored, err := api.CreateFile(ctx, c.http, c.cfg.baseURL(), c.cfg.StorageBucketID, uuid.NewString(), asset, content)
	if err != nil {
		return "", fmt.Errorf("upload file: %w: %w", ErrUpload, err)
	}

	switch kind {
	case FileKindVideo:
		return api.FileViewURL(c.cfg.baseURL(), c.cfg.ProjectID, c.cfg.StorageBucketID, stored.ID), nil
	default:
		return api.FilePreviewURL(c.cfg.baseURL(), c.cfg.ProjectID, c.cfg.StorageBucketID, stored.ID,
			previewWidth, previewHeight, previewGravity, previewQuality), nil
	}
}
