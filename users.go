package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/astra-video/astra-client/internal/api"
	apierrors "github.com/astra-video/astra-client/internal/errors"
	"github.com/astra-video/astra-client/internal/types"
)

// SignIn creates a session for the given credentials and attaches its token
// to the client so subsequent calls are authenticated.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	sess, err := api.CreateSession(ctx, c.http, c.cfg.baseURL(), email, password)
	if err != nil {
		return nil, mapRemoteError("sign in", err)
	}
	c.setSessionToken(sess.Secret)
	return sess, nil
}

// SignOut destroys the current session and clears the client's token.
// Fails with ErrAuth when no session is active.
func (c *Client) SignOut(ctx context.Context) error {
	if err := api.DeleteSession(ctx, c.http, c.cfg.baseURL()); err != nil {
		return mapRemoteError("sign out", err)
	}
	c.setSessionToken("")
	return nil
}

// GetCurrentUser resolves the active session to its user profile. A nil
// profile with nil error means "logged out": no session is active, or no
// profile document matches the session's account.
func (c *Client) GetCurrentUser(ctx context.Context) (*UserProfile, error) {
	if c.sessionToken() == "" {
		return nil, nil
	}

	acct, err := api.GetAccount(ctx, c.http, c.cfg.baseURL())
	if err != nil {
		// An expired or revoked session is "logged out", not a failure.
		var classified *apierrors.ClassifiedError
		if errors.As(err, &classified) && classified.StatusCode == 401 {
			return nil, nil
		}
		return nil, mapRemoteError("get current user", err)
	}

	list, err := api.ListDocuments(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.UserCollectionID,
		api.Equal("accountId", acct.ID))
	if err != nil {
		return nil, mapRemoteError("get current user", err)
	}
	if len(list.Documents) == 0 {
		return nil, nil
	}

	var profile UserProfile
	if err := json.Unmarshal(list.Documents[0], &profile); err != nil {
		return nil, fmt.Errorf("get current user: decode profile: %w", err)
	}
	return &profile, nil
}

// RegisterUser creates an account, derives the initials avatar for the
// username, signs in, and creates the matching profile document.
//
// There is no compensating rollback: a failure after account creation
// leaves an account with no profile behind.
func (c *Client) RegisterUser(ctx context.Context, email, password, username string) (*UserProfile, error) {
	if err := types.ValidateCredentials(email, password); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	if err := types.ValidateIDPresent(username, "username"); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	acct, err := api.CreateAccount(ctx, c.http, c.cfg.baseURL(), uuid.NewString(), email, password, username)
	if err != nil {
		return nil, mapRemoteError("register user", err)
	}

	// Deterministic initials avatar; nothing is uploaded.
	avatarURL := api.InitialsAvatarURL(c.cfg.baseURL(), c.cfg.ProjectID, username)

	if _, err := c.SignIn(ctx, email, password); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	doc, err := api.CreateDocument(ctx, c.http, c.cfg.baseURL(), c.cfg.DatabaseID, c.cfg.UserCollectionID,
		uuid.NewString(), map[string]string{
			"accountId": acct.ID,
			"email":     email,
			"username":  username,
			"avatarUrl": avatarURL,
		})
	if err != nil {
		return nil, mapRemoteError("register user", err)
	}

	var profile UserProfile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, fmt.Errorf("register user: decode profile: %w", err)
	}
	return &profile, nil
}
