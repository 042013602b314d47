package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url2short/domain"
	httpKit "github.com/superj80820/url2short/kit/http"
	httpTransportKit "github.com/superj80820/url2short/kit/http/transport"
)

type deleteAliasResponse struct {
	Message string `json:"message"`
}

var (
	DecodeDeleteAliasRequest  = decodeCodeRequest
	EncodeDeleteAliasResponse = httpTransportKit.EncodeJsonResponse
)

func MakeDeleteAliasEndpoint(svc domain.AliasUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(codeRequest)
		if err := svc.DeleteAlias(ctx, httpKit.GetUserID(ctx), req.Code); err != nil {
			return nil, ownerScoped(err)
		}
		return deleteAliasResponse{Message: "alias deleted"}, nil
	}
}
