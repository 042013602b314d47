package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url2short/domain"
	httpKit "github.com/superj80820/url2short/kit/http"
	httpTransportKit "github.com/superj80820/url2short/kit/http/transport"
)

var (
	DecodeGetAliasesRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeGetAliasesResponse = httpTransportKit.EncodeJsonResponse
	DecodeGetAliasRequest    = decodeCodeRequest
	EncodeGetAliasResponse   = httpTransportKit.EncodeJsonResponse
)

func MakeGetAliasesEndpoint(svc domain.AliasUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		aliases, err := svc.GetAliases(ctx, httpKit.GetUserID(ctx))
		if err != nil {
			return nil, err
		}
		if aliases == nil {
			aliases = make([]*domain.Alias, 0)
		}
		return aliases, nil
	}
}

func MakeGetAliasEndpoint(svc domain.AliasUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(codeRequest)
		alias, err := svc.GetAlias(ctx, httpKit.GetUserID(ctx), req.Code)
		if err != nil {
			return nil, err
		}
		return alias, nil
	}
}
