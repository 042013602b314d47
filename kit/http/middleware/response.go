package middleware

import (
	"context"
	"net/http"

	"github.com/superj80820/url2short/kit/code"
)

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusWriter) WriteHeader(statusCode int) {
	if s.wroteHeader {
		return
	}
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(statusCode)
}

func (s *statusWriter) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(s.status)
	}
	return s.ResponseWriter.Write(b)
}

// EncodeResponseSetSuccessHTTPCode writes the status derived from the response
// before the first body byte.
func EncodeResponseSetSuccessHTTPCode(next func(ctx context.Context, w http.ResponseWriter, response interface{}) error) func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		sw := &statusWriter{
			ResponseWriter: w,
			status:         code.ParseResponseSuccessCode(response).HTTPCode,
		}
		if err := next(ctx, sw, response); err != nil {
			return err
		}
		if !sw.wroteHeader {
			sw.WriteHeader(sw.status)
		}
		return nil
	}
}
