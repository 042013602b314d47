package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url2short/domain"
	httpTransportKit "github.com/superj80820/url2short/kit/http/transport"
)

type resolveTargetResponse struct {
	Target string `json:"target"`
}

var (
	DecodeResolveTargetRequest  = decodeCodeRequest
	EncodeResolveTargetResponse = httpTransportKit.EncodeJsonResponse
)

func MakeResolveTargetEndpoint(svc domain.AliasUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(codeRequest)
		target, err := svc.ResolveTarget(ctx, req.Code)
		if err != nil {
			return nil, err
		}
		return resolveTargetResponse{Target: target}, nil
	}
}
