package code

import httpPKG "net/http"

type SuccessCode struct {
	HTTPCode int
}

type statusCoder interface {
	StatusCode() int
}

func ParseResponseSuccessCode(res interface{}) *SuccessCode {
	switch successCode := res.(type) {
	case SuccessCode:
		return &successCode
	case *SuccessCode:
		return successCode
	case statusCoder:
		return &SuccessCode{HTTPCode: successCode.StatusCode()}
	case nil:
		return &SuccessCode{HTTPCode: httpPKG.StatusNoContent}
	}
	return &SuccessCode{HTTPCode: httpPKG.StatusOK}
}
