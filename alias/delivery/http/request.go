package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/superj80820/url2short/domain"
	"github.com/superj80820/url2short/kit/code"
)

type codeRequest struct {
	Code string
}

func getCode(r *http.Request) (string, error) {
	aliasCode := mux.Vars(r)["code"]
	if !domain.IsValidAliasCode(aliasCode) {
		return "", code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidCode)
	}
	return aliasCode, nil
}

func decodeCodeRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	aliasCode, err := getCode(r)
	if err != nil {
		return nil, err
	}
	return codeRequest{Code: aliasCode}, nil
}
