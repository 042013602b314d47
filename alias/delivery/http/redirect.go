package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url2short/domain"
	"github.com/superj80820/url2short/kit/code"
	httpKit "github.com/superj80820/url2short/kit/http"
)

var DecodeRedirectRequest = decodeCodeRequest

func MakeRedirectEndpoint(svc domain.ResolverUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(codeRequest)
		resolution, err := svc.Resolve(ctx, &domain.ResolveRequest{
			Code:      req.Code,
			ClientIP:  httpKit.GetIP(ctx),
			UserAgent: httpKit.GetUserAgent(ctx),
			Referer:   httpKit.GetReferer(ctx),
		})
		if err != nil {
			return nil, err
		}
		if resolution.Outcome == domain.ResolutionNotFound {
			return nil, code.CreateErrorCode(http.StatusNotFound)
		}
		return resolution, nil
	}
}

func EncodeRedirectResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	res := response.(*domain.Resolution)
	if res.Outcome == domain.ResolutionInterstitial {
		return renderInterstitial(w, res.Target)
	}
	w.Header().Set("Location", res.Target)
	w.WriteHeader(http.StatusFound)
	return nil
}
