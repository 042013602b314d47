package code

import (
	"encoding/json"
	"fmt"
	httpPKG "net/http"

	"github.com/pkg/errors"
)

type errorCode struct {
	GeneralCode int    `json:"-"`
	Code        int    `json:"code"`
	Message     string `json:"error"`
	OriginError error  `json:"-"`
	CallStack   string `json:"-"`
}

func CreateHTTPError(err *errorCode) *httpErrorCode {
	return &httpErrorCode{
		HTTPCode:  err.GeneralCode,
		errorCode: err,
	}
}

type httpErrorCode struct {
	HTTPCode int `json:"-"`
	*errorCode
}

func (e errorCode) Error() string {
	errorStr, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	return string(errorStr)
}

func (e *errorCode) AddErrorMetaData(err error) *errorCode {
	e.OriginError = err
	e.CallStack = fmt.Sprintf("%+v", err)
	return e
}

func (e *errorCode) AddCode(code int, args ...any) *errorCode {
	if httpErrorCodes, ok := errorCodes[e.GeneralCode]; ok {
		if errorCodes, ok := httpErrorCodes[code]; ok {
			e.Code = code
			e.Message = fmt.Sprintf(errorCodes, args...)
		}
	}
	return e
}

const (
	Default             = 0
	RateLimit           = 1
	InvalidBody         = 2
	Expired             = 3
	ExpiryInPast        = 4
	InvalidTarget       = 5
	MissingUser         = 6
	InvalidCode         = 7
	CollisionExhausted  = 8
	AuthorizationFailed = 9
	InvalidTimeRange    = 10
	InvalidInterval     = 11
)

var errorCodes = map[int]map[int]string{
	httpPKG.StatusTooManyRequests: {
		Default:   "too many requests",
		RateLimit: "rate limit error. expiry: %d",
	},
	httpPKG.StatusNotFound: {
		Default:             "not found",
		AuthorizationFailed: "alias not found or authorization failed",
	},
	httpPKG.StatusGone: {
		Default: "gone",
		Expired: "alias has expired",
	},
	httpPKG.StatusInternalServerError: {
		Default:            "internal error",
		CollisionExhausted: "failed to generate unique alias after %d attempts",
	},
	httpPKG.StatusBadRequest: {
		Default:          "bad request",
		InvalidBody:      "invalid body",
		ExpiryInPast:     "expires_at must be in the future",
		InvalidTarget:    "invalid target url",
		InvalidCode:      "invalid code",
		InvalidTimeRange: "invalid time range, start and end are RFC3339 and start must be before end",
		InvalidInterval:  "invalid interval, expected hour or day",
	},
	httpPKG.StatusUnauthorized: {
		Default:     "unauthorized",
		MissingUser: "missing x-user-id header",
	},
	httpPKG.StatusForbidden: {
		Default: "forbidden",
	},
}

type errorCodeOption func(*errorCode)

func CreateErrorCode(code int, options ...errorCodeOption) *errorCode {
	resCode := httpPKG.StatusInternalServerError
	resMessage := errorCodes[httpPKG.StatusInternalServerError][Default]
	if codes, ok := errorCodes[code]; ok {
		resCode = code

		if errorCodes, ok := codes[Default]; ok {
			resMessage = errorCodes
		}
	}

	errorCode := errorCode{
		GeneralCode: resCode,
		Code:        Default,
		Message:     resMessage,
	}

	for _, option := range options {
		option(&errorCode)
	}

	return &errorCode
}

func ParseErrorCode(err error) *errorCode {
	causeErr := errors.Cause(err)
	switch errorCode := causeErr.(type) {
	case *errorCode:
		return errorCode
	}

	errorCode := CreateErrorCode(httpPKG.StatusInternalServerError).AddErrorMetaData(err)

	return errorCode
}
