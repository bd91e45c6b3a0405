package grpcsvc

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// toStatus переводит доменную ошибку в gRPC-статус.
func toStatus(logger *log.Entry, method string, err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case domain.IsStoreUnavailable(err):
		logger.WithError(err).WithField("method", method).Warn("store unavailable")
		return status.Error(codes.Unavailable, "store unavailable")
	default:
		logger.WithError(err).WithField("method", method).Error("unexpected error")
		return status.Error(codes.Internal, "internal error")
	}
}
