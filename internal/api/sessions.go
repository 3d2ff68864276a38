package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/astra-video/astra-client/internal/types"
)

// CreateAccount registers a new account with the session service.
func CreateAccount(ctx context.Context, httpClient *http.Client, baseURL, accountID, email, password, username string) (*types.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(accountID, "accountId"); err != nil {
		return nil, err
	}
	if err := types.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]string{
		"accountId": accountID,
		"email":     email,
		"password":  password,
		"username":  username,
	})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/account", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := do(httpClient, httpReq, http.StatusCreated, "create account")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var acct types.Account
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// CreateSession signs in with email/password credentials. The returned
// session secret authenticates subsequent calls.
func CreateSession(ctx context.Context, httpClient *http.Client, baseURL, email, password string) (*types.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/account/sessions", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := do(httpClient, httpReq, http.StatusCreated, "create session")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sess types.Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetAccount resolves the active session to its account identity.
// Fails with a 401-classified error when no session is active.
func GetAccount(ctx context.Context, httpClient *http.Client, baseURL string) (*types.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/account", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := do(httpClient, httpReq, http.StatusOK, "get account")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var acct types.Account
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// DeleteSession destroys the current session (sign-out).
func DeleteSession(ctx context.Context, httpClient *http.Client, baseURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/account/sessions/current", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := do(httpClient, httpReq, http.StatusNoContent, "delete session")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
