package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url2short/domain"
	httpKit "github.com/superj80820/url2short/kit/http"
	"github.com/superj80820/url2short/kit/http/middleware"
	httpTransportKit "github.com/superj80820/url2short/kit/http/transport"
)

type CreateAliasRequest struct {
	Target    string          `json:"target" validate:"required,url,max=2048"`
	Metadata  domain.Metadata `json:"metadata"`
	ExpiresAt *time.Time      `json:"expires_at"`
}

type createAliasResponse struct {
	*domain.Alias
}

func (createAliasResponse) StatusCode() int {
	return http.StatusCreated
}

var (
	DecodeCreateAliasRequest  = httpTransportKit.DecodeJsonRequest[CreateAliasRequest]
	EncodeCreateAliasResponse = middleware.EncodeResponseSetSuccessHTTPCode(httpTransportKit.EncodeJsonResponse)
)

func MakeCreateAliasEndpoint(svc domain.AllocatorUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(CreateAliasRequest)
		alias, err := svc.Create(ctx, &domain.CreateAliasParams{
			UserID:    httpKit.GetUserID(ctx),
			Target:    req.Target,
			Metadata:  req.Metadata,
			ExpiresAt: req.ExpiresAt,
		})
		if err != nil {
			return nil, err
		}
		return createAliasResponse{Alias: alias}, nil
	}
}
