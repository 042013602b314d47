package http

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	"github.com/superj80820/url2short/kit/code"
	httpKit "github.com/superj80820/url2short/kit/http"
	loggerKit "github.com/superj80820/url2short/kit/logger"
)

// EncodeError maps domain errors to error codes. Internal errors are logged
// with their call stack and answered without detail.
func EncodeError(logger *loggerKit.Logger) func(ctx context.Context, err error, w http.ResponseWriter) {
	encodeHTTPErrorResponse := httpKit.EncodeHTTPErrorResponse()
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		err = toErrorCode(err)
		if errorCode := code.ParseErrorCode(err); errorCode.GeneralCode == http.StatusInternalServerError {
			logger.Error("internal error",
				loggerKit.String("url", httpKit.GetURL(ctx)),
				loggerKit.Int64("request_id", httpKit.GetRequestID(ctx)),
				loggerKit.String("call_stack", errorCode.CallStack),
				loggerKit.Error(err),
			)
		}
		encodeHTTPErrorResponse(ctx, err, w)
	}
}

func toErrorCode(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return code.CreateErrorCode(http.StatusNotFound)
	case errors.Is(err, domain.ErrExpired):
		return code.CreateErrorCode(http.StatusGone).AddCode(code.Expired)
	case errors.Is(err, domain.ErrExpiryInPast):
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.ExpiryInPast)
	case errors.Is(err, domain.ErrInvalidTarget):
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidTarget)
	case errors.Is(err, domain.ErrInvalidTimeRange):
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidTimeRange)
	case errors.Is(err, domain.ErrCollisionExhausted):
		return code.CreateErrorCode(http.StatusInternalServerError).
			AddCode(code.CollisionExhausted, domain.AliasMaxRetries).
			AddErrorMetaData(err)
	}
	return err
}

func ownerScoped(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return code.CreateErrorCode(http.StatusNotFound).AddCode(code.AuthorizationFailed)
	}
	return err
}
