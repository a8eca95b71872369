package device

import (
	"testing"

	"sso-auth/internal/domain"
)

const (
	chromeUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) AppleWebKit/605.1.15"
	androidUA = "Mozilla/5.0 (Linux; Android 12; Pixel 6) AppleWebKit/537.36 Mobile Safari/537.36"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		hint      string
		userAgent string
		class     domain.DeviceType
	}{
		{name: "chrome on windows", userAgent: chromeUA, class: domain.DeviceWeb},
		{name: "iphone", userAgent: iphoneUA, class: domain.DeviceMobile},
		{name: "android beats mozilla", userAgent: androidUA, class: domain.DeviceMobile},
		{name: "electron app", userAgent: "MyApp/1.0 Electron/28.0 (darwin)", class: domain.DeviceDesktop},
		{name: "no signature", userAgent: "curl/8.4.0", class: domain.DeviceUnknown},
		{name: "empty", userAgent: "", class: domain.DeviceUnknown},
		{name: "hint wins over ua", hint: "desktop", userAgent: iphoneUA, class: domain.DeviceDesktop},
		{name: "hint case insensitive", hint: "Mobile", userAgent: "curl/8.4.0", class: domain.DeviceMobile},
		{name: "unknown hint falls through to ua", hint: "toaster", userAgent: chromeUA, class: domain.DeviceWeb},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			class, name := Classify(tc.hint, tc.userAgent)
			if class != tc.class {
				t.Fatalf("expected class %q, got %q", tc.class, class)
			}
			if name == "" {
				t.Fatal("device name must never be empty")
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c1, n1 := Classify("", chromeUA)
	c2, n2 := Classify("", chromeUA)
	if c1 != c2 || n1 != n2 {
		t.Fatalf("classification not deterministic: (%q,%q) vs (%q,%q)", c1, n1, c2, n2)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		name      string
		class     domain.DeviceType
		userAgent string
		expected  string
	}{
		{name: "browser with os", class: domain.DeviceWeb, userAgent: chromeUA, expected: "Chrome on Windows 10"},
		{name: "browser without os", class: domain.DeviceWeb, userAgent: "firefox", expected: "Firefox"},
		{name: "bare web", class: domain.DeviceWeb, userAgent: "", expected: "Web Browser"},
		{name: "mobile ios", class: domain.DeviceMobile, userAgent: iphoneUA, expected: "iOS Device"},
		{name: "bare mobile", class: domain.DeviceMobile, userAgent: "", expected: "Mobile Device"},
		{name: "desktop with os", class: domain.DeviceDesktop, userAgent: "Electron (Mac OS X)", expected: "Desktop App on macOS"},
		{name: "unknown", class: domain.DeviceUnknown, userAgent: "curl/8.4.0", expected: "Unknown Device"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Name(tc.class, tc.userAgent); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
