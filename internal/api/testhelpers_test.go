package api

import (
	"errors"

	apierrors "github.com/astra-video/astra-client/internal/errors"
)

func asClassified(err error, target **apierrors.ClassifiedError) bool {
	return errors.As(err, target)
}
