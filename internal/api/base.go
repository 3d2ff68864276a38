// Package api contains the thin typed bindings over the remote backend's
// REST protocol: session service, document service, file service, and the
// avatar URL builder. Functions here do no business logic; failures surface
// as classified errors the resource layer interprets.
package api

import (
	"io"
	"net/http"

	apierrors "github.com/astra-video/astra-client/internal/errors"
)

// HTTPClient interface for dependency injection.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxErrorBody bounds how much of an error response is retained for
// diagnostics.
const maxErrorBody = 4 << 10

// do executes req and verifies the expected status code. Any other outcome
// is returned as a *ClassifiedError carrying the status and partial body.
// The caller owns resp.Body on success.
func do(httpClient *http.Client, req *http.Request, wantStatus int, operation string) (*http.Response, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError(operation, err)
	}
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		return nil, apierrors.NewHTTPError(resp.StatusCode, string(body), operation)
	}
	return resp, nil
}
