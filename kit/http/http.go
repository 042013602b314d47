package http

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/superj80820/url2short/kit/code"
	utilKit "github.com/superj80820/url2short/kit/util"
	"go.opentelemetry.io/otel/trace"
)

const UserIDHeader = "X-User-Id"

type ctxKeyType int

const (
	_CTX_IP_KEY ctxKeyType = iota
	_CTX_HOST
	_CTX_URL_PATH
	_CTX_METHOD
	_CTX_USER_AGENT
	_CTX_REFERER
	_CTX_TRACE_ID
	_CTX_REQUEST_ID
	_CTX_USER_ID
)

func ReadUserIP(r *http.Request) string {
	IPAddress := r.Header.Get("X-Real-Ip")
	if IPAddress == "" {
		IPAddress = strings.TrimSpace(strings.Split(r.Header.Get("X-Forwarded-For"), ",")[0])
	}
	if IPAddress == "" {
		IPAddress = r.RemoteAddr
	}
	if host, _, err := net.SplitHostPort(IPAddress); err == nil {
		return host
	}
	return IPAddress
}

func CustomBeforeCtx(tracer trace.Tracer) func(ctx context.Context, r *http.Request) context.Context {
	return func(ctx context.Context, r *http.Request) context.Context {
		ctx = context.WithValue(ctx, _CTX_HOST, r.Host)
		ctx = context.WithValue(ctx, _CTX_URL_PATH, r.URL.Path)
		ctx = context.WithValue(ctx, _CTX_METHOD, r.Method)
		ctx = context.WithValue(ctx, _CTX_USER_AGENT, r.UserAgent())
		ctx = context.WithValue(ctx, _CTX_REFERER, r.Referer())
		ctx = context.WithValue(ctx, _CTX_IP_KEY, ReadUserIP(r))
		ctx = context.WithValue(ctx, _CTX_USER_ID, strings.TrimSpace(r.Header.Get(UserIDHeader)))
		ctx = AddRequestID(ctx)

		ctx, span := tracer.Start(ctx, r.Method+" "+GetURL(ctx))
		defer span.End()

		ctx = AddTraceID(ctx, span.SpanContext().TraceID().String())

		return ctx
	}
}

func CustomAfterCtx(ctx context.Context, w http.ResponseWriter) context.Context {
	w.Header().Add("X-B3-TraceId", trace.SpanContextFromContext(ctx).TraceID().String())
	return ctx
}

func getString(ctx context.Context, key ctxKeyType) string {
	value, _ := ctx.Value(key).(string)
	return value
}

func GetTraceID(ctx context.Context) string {
	return getString(ctx, _CTX_TRACE_ID)
}

func GetIP(ctx context.Context) string {
	return getString(ctx, _CTX_IP_KEY)
}

func AddTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, _CTX_TRACE_ID, traceID)
}

func GetURL(ctx context.Context) string {
	return getString(ctx, _CTX_URL_PATH)
}

func GetMethod(ctx context.Context) string {
	return getString(ctx, _CTX_METHOD)
}

func GetUserAgent(ctx context.Context) string {
	return getString(ctx, _CTX_USER_AGENT)
}

func GetReferer(ctx context.Context) string {
	return getString(ctx, _CTX_REFERER)
}

func AddUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, _CTX_USER_ID, userID)
}

func GetUserID(ctx context.Context) string {
	return getString(ctx, _CTX_USER_ID)
}

func AddRequestID(ctx context.Context) context.Context {
	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return ctx
	}
	return context.WithValue(ctx, _CTX_REQUEST_ID, uniqueIDGenerate.Generate().GetInt64())
}

func GetRequestID(ctx context.Context) int64 {
	requestID, _ := ctx.Value(_CTX_REQUEST_ID).(int64)
	return requestID
}

func EncodeHTTPErrorResponse() func(ctx context.Context, err error, w http.ResponseWriter) {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		if err == nil {
			panic("encodeError with nil error")
		}

		ctx = CustomAfterCtx(ctx, w)

		errorCode := code.CreateHTTPError(code.ParseErrorCode(err))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(errorCode.HTTPCode)
		json.NewEncoder(w).Encode(errorCode)
	}
}
