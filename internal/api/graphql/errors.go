package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"

	apierrors "github.com/ispcore/ipam/internal/api/shared/errors"
	"github.com/ispcore/ipam/internal/logger"
)

// ErrorPresenter formats errors the way the REST API does.
// Domain errors are mapped through the shared table; parse and validation errors pass through untouched.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	var gqlErr *gqlerror.Error
	if !errors.As(err, &gqlErr) {
		gqlErr = gqlerror.WrapIfUnwrapped(err)
	}
	if gqlErr.Err == nil {
		return gqlErr
	}

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		_, apiErr = apierrors.FromDomainError(err)
	}

	switch apiErr.Code {
	case apierrors.ErrCodeInternalError, apierrors.ErrCodeServiceError, apierrors.ErrCodeDatabaseError:
		logger.ErrorCtx(ctx, err, zap.String("path", gqlErr.Path.String()))
	}

	presented := &gqlerror.Error{
		Err:       err,
		Message:   apiErr.Message,
		Path:      gqlErr.Path,
		Locations: gqlErr.Locations,
		Extensions: map[string]interface{}{
			"code":    string(apiErr.Code),
			"message": apiErr.Message,
		},
	}
	if apiErr.Details != "" {
		presented.Extensions["details"] = apiErr.Details
	}
	return presented
}

// RecoverFunc handles panics in resolvers
func RecoverFunc(ctx context.Context, err interface{}) error {
	logger.ErrorCtx(ctx, fmt.Errorf("panic: %v", err), zap.Any("panic", err))
	return apierrors.NewInternalError("Internal server error")
}
