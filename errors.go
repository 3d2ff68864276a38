package client

import (
	"errors"
	"fmt"

	apierrors "github.com/astra-video/astra-client/internal/errors"
	"github.com/astra-video/astra-client/internal/pairqueue"
	"github.com/astra-video/astra-client/internal/types"
)

// Error taxonomy. Resource operations wrap one of these sentinels with
// domain context; callers classify with errors.Is or the predicates below.
var (
	// ErrInvalidArgument reports a missing required identifier.
	// Re-exported from the shared types package so validation failures and
	// caller checks compare against one symbol.
	ErrInvalidArgument = types.ErrMissingID

	// ErrAuth reports bad credentials or an absent session.
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound reports an expected document that is absent.
	ErrNotFound = errors.New("not found")

	// ErrUpload reports an asset the file service rejected.
	ErrUpload = errors.New("file upload failed")

	// ErrRemote reports a generic transport or protocol failure.
	ErrRemote = errors.New("remote service failure")

	// ErrBackPressure is returned when the client's internal save queue is full.
	ErrBackPressure = errors.New("back-pressure (save queue full)")
)

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool { return errors.Is(err, ErrAuth) }

// IsInvalidArgument reports whether err is a missing-identifier failure.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// mapRemoteError translates a binding-level failure into the public taxonomy,
// keeping the underlying error on the chain. op names the domain operation.
func mapRemoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	var classified *apierrors.ClassifiedError
	if errors.As(err, &classified) {
		switch classified.StatusCode {
		case 401, 403:
			return fmt.Errorf("%s: %w: %w", op, ErrAuth, err)
		case 404:
			return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
		}
		return fmt.Errorf("%s: %w: %w", op, ErrRemote, err)
	}
	if errors.Is(err, types.ErrMissingID) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrRemote, err)
}

// mapQueueError translates save-executor submission failures.
func mapQueueError(op string, err error) error {
	if errors.Is(err, pairqueue.ErrQueueFull) {
		return fmt.Errorf("%s: %w", op, ErrBackPressure)
	}
	return fmt.Errorf("%s: %w", op, err)
}
