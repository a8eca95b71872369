package domain

// DeviceType is the coarse client category a session is scoped to. A user
// holds at most one live session per device type.
type DeviceType string

const (
	DeviceWeb     DeviceType = "web"
	DeviceMobile  DeviceType = "mobile"
	DeviceDesktop DeviceType = "desktop"
	DeviceUnknown DeviceType = "unknown"
)

// ParseDeviceType reports whether s names a known device type.
func ParseDeviceType(s string) (DeviceType, bool) {
	switch DeviceType(s) {
	case DeviceWeb, DeviceMobile, DeviceDesktop, DeviceUnknown:
		return DeviceType(s), true
	}
	return DeviceUnknown, false
}
