package util

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/jxskiss/base62"
	"github.com/pkg/errors"
)

const base62Radix = 62

// ShortCodeGenerate returns a random fixed-length code over 0-9A-Za-z.
type ShortCodeGenerate func() (string, error)

func CreateRandomShortCodeGenerate(length int) ShortCodeGenerate {
	upperBound := new(big.Int).Exp(big.NewInt(base62Radix), big.NewInt(int64(length)), nil)
	return func() (string, error) {
		n, err := rand.Int(rand.Reader, upperBound)
		if err != nil {
			return "", errors.Wrap(err, "read random failed")
		}
		code := string(base62.FormatInt(n.Int64()))
		if len(code) < length {
			code = strings.Repeat("0", length-len(code)) + code
		}
		return code, nil
	}
}
