package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url2short/domain"
	httpKit "github.com/superj80820/url2short/kit/http"
	httpTransportKit "github.com/superj80820/url2short/kit/http/transport"
)

type UpdateAliasRequest struct {
	Code      string          `json:"-"`
	Target    *string         `json:"target" validate:"omitempty,url,max=2048"`
	Metadata  domain.Metadata `json:"metadata"`
	ExpiresAt *time.Time      `json:"expires_at"`
	IsActive  *bool           `json:"is_active"`
}

var EncodeUpdateAliasResponse = httpTransportKit.EncodeJsonResponse

func DecodeUpdateAliasRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	aliasCode, err := getCode(r)
	if err != nil {
		return nil, err
	}
	req, err := httpTransportKit.DecodeValidJSON[UpdateAliasRequest](r)
	if err != nil {
		return nil, err
	}
	req.Code = aliasCode
	return *req, nil
}

func MakeUpdateAliasEndpoint(svc domain.AliasUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(UpdateAliasRequest)
		alias, err := svc.UpdateAlias(ctx, httpKit.GetUserID(ctx), req.Code, &domain.UpdateAliasParams{
			Target:    req.Target,
			Metadata:  req.Metadata,
			ExpiresAt: req.ExpiresAt,
			IsActive:  req.IsActive,
		})
		if err != nil {
			return nil, ownerScoped(err)
		}
		return alias, nil
	}
}
