package usecase

import (
	"net/url"
	"strings"

	"github.com/avct/uasurfer"
)

const (
	unknown       = "unknown"
	deviceMobile  = "mobile"
	deviceDesktop = "desktop"
)

func normalizeString(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return unknown
	}
	return strings.ToLower(value)
}

// normalizeReferer keeps only the origin, e.g. "Example.com/a?b" becomes
// "https://example.com/". Unusable values become empty.
func normalizeReferer(value string) string {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "null", "-", "(null)", "about:blank":
		return ""
	}
	if strings.HasPrefix(value, "//") {
		value = "https:" + value
	} else if !strings.Contains(value, "://") {
		value = "https://" + value
	}
	parsed, err := url.Parse(value)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return ""
	}
	return "https://" + host + "/"
}

type userAgentInfo struct {
	browser string
	os      string
	device  string
}

func parseUserAgent(raw string) *userAgentInfo {
	if strings.TrimSpace(raw) == "" {
		return &userAgentInfo{browser: unknown, os: unknown, device: deviceDesktop}
	}
	ua := uasurfer.Parse(raw)
	info := &userAgentInfo{
		browser: normalizeString(ua.Browser.Name.StringTrimPrefix()),
		os:      normalizeString(ua.OS.Name.StringTrimPrefix()),
		device:  deviceDesktop,
	}
	switch ua.DeviceType {
	case uasurfer.DevicePhone, uasurfer.DeviceTablet, uasurfer.DeviceWearable:
		info.device = deviceMobile
	}
	return info
}
