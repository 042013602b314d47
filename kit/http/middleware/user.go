package middleware

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url2short/kit/code"
	httpKit "github.com/superj80820/url2short/kit/http"
)

// CreateRequireUserMiddleware rejects requests that reach the endpoint without
// the user id the gateway forwards in X-User-Id.
func CreateRequireUserMiddleware() endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			if httpKit.GetUserID(ctx) == "" {
				return nil, code.CreateErrorCode(http.StatusUnauthorized).AddCode(code.MissingUser)
			}
			return e(ctx, request)
		}
	}
}
