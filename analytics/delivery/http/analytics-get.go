package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
	"github.com/superj80820/url2short/kit/code"
	httpKit "github.com/superj80820/url2short/kit/http"
	httpTransportKit "github.com/superj80820/url2short/kit/http/transport"
)

var intervals = map[string]time.Duration{
	"":     time.Hour,
	"hour": time.Hour,
	"day":  24 * time.Hour,
}

type getSummaryRequest struct {
	Code     string
	Start    time.Time
	End      time.Time
	Interval time.Duration
}

var EncodeGetSummaryResponse = httpTransportKit.EncodeJsonResponse

// DecodeGetSummaryRequest reads the optional start, end (RFC3339) and
// interval (hour or day) query parameters. Unset bounds are filled by the use case.
func DecodeGetSummaryRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	aliasCode := mux.Vars(r)["code"]
	if !domain.IsValidAliasCode(aliasCode) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidCode)
	}
	query := r.URL.Query()
	req := getSummaryRequest{Code: aliasCode}
	var err error
	if req.Start, err = parseTime(query.Get("start")); err != nil {
		return nil, err
	}
	if req.End, err = parseTime(query.Get("end")); err != nil {
		return nil, err
	}
	interval, ok := intervals[query.Get("interval")]
	if !ok {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidInterval)
	}
	req.Interval = interval
	return req, nil
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidTimeRange).AddErrorMetaData(err)
	}
	return t, nil
}

func MakeGetSummaryEndpoint(svc domain.AnalyticsUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(getSummaryRequest)
		summary, err := svc.GetSummary(ctx, httpKit.GetUserID(ctx), &domain.AnalyticsQuery{
			Code:     req.Code,
			Start:    req.Start,
			End:      req.End,
			Interval: req.Interval,
		})
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, code.CreateErrorCode(http.StatusNotFound).AddCode(code.AuthorizationFailed)
		case errors.Is(err, domain.ErrInvalidTimeRange):
			return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidTimeRange)
		case err != nil:
			return nil, err
		}
		return summary, nil
	}
}
