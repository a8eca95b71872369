// Package device derives a device type and a human-readable device name from
// request metadata. Classification is pure: unknown inputs degrade to
// domain.DeviceUnknown instead of erroring.
package device

import (
	"strings"

	"sso-auth/internal/domain"
	"sso-auth/internal/netutil"
)

// classRule maps a lowercase user-agent substring to a device type. Rules are
// evaluated top to bottom; the first match wins, so mobile signatures must
// precede the generic browser ones ("android" user agents also say "mozilla").
type classRule struct {
	pattern string
	class   domain.DeviceType
}

var classRules = []classRule{
	{"iphone", domain.DeviceMobile},
	{"ipad", domain.DeviceMobile},
	{"android", domain.DeviceMobile},
	{"blackberry", domain.DeviceMobile},
	{"windows phone", domain.DeviceMobile},
	{"mobile", domain.DeviceMobile},
	{"electron", domain.DeviceDesktop},
	{"desktop", domain.DeviceDesktop},
	{"mozilla", domain.DeviceWeb},
	{"chrome", domain.DeviceWeb},
	{"safari", domain.DeviceWeb},
	{"firefox", domain.DeviceWeb},
	{"edge", domain.DeviceWeb},
	{"opera", domain.DeviceWeb},
}

var osRules = []struct {
	pattern string
	name    string
}{
	{"windows nt 10.0", "Windows 10"},
	{"windows nt 6.3", "Windows 8.1"},
	{"windows nt 6.2", "Windows 8"},
	{"windows nt 6.1", "Windows 7"},
	{"windows", "Windows"},
	{"mac os x", "macOS"},
	{"macos", "macOS"},
	{"android", "Android"},
	{"iphone", "iOS"},
	{"ipad", "iOS"},
	{"ios", "iOS"},
	{"linux", "Linux"},
}

// Classify resolves a device type and display name from the optional
// X-Device-Type hint and the User-Agent header. A hint naming a known type
// wins outright; otherwise the user agent is matched against the rule table.
func Classify(hint, userAgent string) (domain.DeviceType, string) {
	userAgent = netutil.TruncateUserAgent(userAgent)

	class, ok := domain.ParseDeviceType(strings.ToLower(strings.TrimSpace(hint)))
	if !ok {
		class = classify(userAgent)
	}
	return class, Name(class, userAgent)
}

func classify(userAgent string) domain.DeviceType {
	ua := strings.ToLower(userAgent)
	for _, rule := range classRules {
		if strings.Contains(ua, rule.pattern) {
			return rule.class
		}
	}
	return domain.DeviceUnknown
}

// Name composes a display name like "Chrome on Windows 10" or "iOS Device"
// from whatever the user agent reveals.
func Name(class domain.DeviceType, userAgent string) string {
	os := osName(userAgent)
	switch class {
	case domain.DeviceWeb:
		browser := browserName(userAgent)
		switch {
		case browser != "" && os != "":
			return browser + " on " + os
		case browser != "":
			return browser
		case os != "":
			return "Browser on " + os
		default:
			return "Web Browser"
		}
	case domain.DeviceMobile:
		if os != "" {
			return os + " Device"
		}
		return "Mobile Device"
	case domain.DeviceDesktop:
		if os != "" {
			return "Desktop App on " + os
		}
		return "Desktop App"
	default:
		return "Unknown Device"
	}
}

func osName(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, rule := range osRules {
		if strings.Contains(ua, rule.pattern) {
			return rule.name
		}
	}
	return ""
}

func browserName(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "edg/"):
		return "Microsoft Edge"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "safari"):
		return "Safari"
	case strings.Contains(ua, "opera"):
		return "Opera"
	}
	return ""
}
