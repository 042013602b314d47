package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeString(t *testing.T) {
	assert.Equal(t, "unknown", normalizeString(""))
	assert.Equal(t, "unknown", normalizeString("   "))
	assert.Equal(t, "germany", normalizeString(" Germany "))
}

func TestNormalizeReferer(t *testing.T) {
	testCases := []struct {
		referer  string
		expected string
	}{
		{referer: "", expected: ""},
		{referer: "null", expected: ""},
		{referer: "-", expected: ""},
		{referer: "(null)", expected: ""},
		{referer: "about:blank", expected: ""},
		{referer: "https://News.Example.com/path?q=1", expected: "https://news.example.com/"},
		{referer: "http://example.com:8080/a", expected: "https://example.com/"},
		{referer: "//cdn.example.com/x", expected: "https://cdn.example.com/"},
		{referer: "example.com/landing", expected: "https://example.com/"},
		{referer: "https://", expected: ""},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, normalizeReferer(testCase.referer), testCase.referer)
	}
}

func TestParseUserAgent(t *testing.T) {
	testCases := []struct {
		scenario  string
		userAgent string
		expected  *userAgentInfo
	}{
		{
			scenario:  "empty",
			userAgent: "",
			expected:  &userAgentInfo{browser: "unknown", os: "unknown", device: "desktop"},
		},
		{
			scenario:  "chrome on windows",
			userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expected:  &userAgentInfo{browser: "chrome", os: "windows", device: "desktop"},
		},
		{
			scenario:  "safari on iphone",
			userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			expected:  &userAgentInfo{browser: "safari", os: "ios", device: "mobile"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.scenario, func(t *testing.T) {
			assert.Equal(t, testCase.expected, parseUserAgent(testCase.userAgent))
		})
	}
}
