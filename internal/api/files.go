package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/astra-video/astra-client/internal/types"
)

// CreateFile streams content to the file service as a multipart upload and
// returns the stored-file record. The asset supplies name, mime type, and
// size metadata; content supplies the bytes.
func CreateFile(ctx context.Context, httpClient *http.Client, baseURL, bucketID, fileID string, asset *types.UploadAsset, content io.Reader) (*types.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(bucketID, "bucketId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(fileID, "fileId"); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("fileId", fileID); err != nil {
		return nil, err
	}
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, asset.Name))
	if asset.MimeType != "" {
		hdr.Set("Content-Type", asset.MimeType)
	}
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	uploadURL := fmt.Sprintf("%s/storage/buckets/%s/files", baseURL, bucketID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := do(httpClient, httpReq, http.StatusCreated, "create file")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var stored types.StoredFile
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// FileViewURL builds the durable direct-view URL for a stored file.
// Pure URL construction; no round trip. The project id rides along as a
// query parameter because view URLs are consumed outside the authenticated
// client (media players, image views).
func FileViewURL(baseURL, projectID, bucketID, fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s",
		baseURL, bucketID, fileID, url.QueryEscape(projectID))
}

// FilePreviewURL builds the transformed-preview URL for a stored file.
func FilePreviewURL(baseURL, projectID, bucketID, fileID string, width, height int, gravity string, quality int) string {
	vals := url.Values{}
	vals.Set("width", strconv.Itoa(width))
	vals.Set("height", strconv.Itoa(height))
	vals.Set("gravity", gravity)
	vals.Set("quality", strconv.Itoa(quality))
	vals.Set("project", projectID)
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/preview?%s",
		baseURL, bucketID, fileID, vals.Encode())
}
