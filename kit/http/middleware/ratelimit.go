package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"
	"github.com/superj80820/url2short/kit/code"
	httpKit "github.com/superj80820/url2short/kit/http"
)

type PassFunc func(ctx context.Context, key string) (pass bool, lastRequests, curExpiry int, err error)

func CreateGlobalRateLimitMiddleware(key string, passFunc PassFunc) endpoint.Middleware {
	return createRateLimitMiddleware(func(ctx context.Context) string {
		return key
	}, passFunc)
}

func CreateRateLimitMiddlewareWithSpecKey(isIPUse, isMethodUse, isUserUse bool, passFunc PassFunc) endpoint.Middleware {
	return createRateLimitMiddleware(func(ctx context.Context) string {
		keySlice := []string{"rate-limit"}
		if isIPUse {
			keySlice = append(keySlice, httpKit.GetIP(ctx))
		}
		if isMethodUse {
			keySlice = append(keySlice, httpKit.GetMethod(ctx), httpKit.GetURL(ctx))
		}
		if isUserUse {
			if userID := httpKit.GetUserID(ctx); userID != "" {
				keySlice = append(keySlice, userID)
			}
		}
		return strings.Join(keySlice, "-")
	}, passFunc)
}

func createRateLimitMiddleware(getKey func(ctx context.Context) string, passFunc PassFunc) endpoint.Middleware {
	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			pass, _, expiry, err := passFunc(ctx, getKey(ctx))
			if err != nil {
				return nil, errors.Wrap(err, "get rate limit failed")
			}
			if !pass {
				return nil, code.CreateErrorCode(http.StatusTooManyRequests).AddCode(code.RateLimit, expiry)
			}
			return e(ctx, request)
		}
	}
}
