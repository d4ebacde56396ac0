package session

import (
	"strconv"
	"strings"
)

// PlatformBrowser marks a device derived from a browser user agent.
const PlatformBrowser = "browser"

// Device is a best-effort fingerprint of the client, derived from request
// headers. A zero Device means the client was undetectable.
type Device struct {
	UserAgent    string `json:"userAgent"`
	Platform     string `json:"platform"`
	Name         string `json:"name"`
	Version      string `json:"version"`
	OS           string `json:"os"`
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
}

// UndetectableDevice returns the empty device used when no client
// information is available.
func UndetectableDevice() Device { return Device{} }

// BrowserDevice derives a device from a raw User-Agent header and the
// client-reported window size headers. The platform is always "browser";
// name, version and os stay empty when the user agent is missing or not
// recognizable. Non-numeric window sizes are treated as absent.
func BrowserDevice(userAgent, screenWidth, screenHeight string) Device {
	d := Device{
		UserAgent:    userAgent,
		Platform:     PlatformBrowser,
		ScreenWidth:  parseDimension(screenWidth),
		ScreenHeight: parseDimension(screenHeight),
	}
	if userAgent == "" {
		return d
	}
	d.Name, d.Version = detectBrowser(userAgent)
	d.OS = detectOS(userAgent)
	return d
}

// IsDetected reports whether any platform information was captured.
func (d Device) IsDetected() bool { return d.Platform != "" }

func parseDimension(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// browserMarkers are checked in order: derivative browsers first, since
// they all embed "Chrome/" or "Safari/" in their user agents.
var browserMarkers = []struct {
	token string
	name  string
}{
	{"Edg/", "edge"},
	{"OPR/", "opera"},
	{"SamsungBrowser/", "samsung"},
	{"Firefox/", "firefox"},
	{"Chrome/", "chrome"},
	{"CriOS/", "chrome"},
	{"FxiOS/", "firefox"},
	{"Version/", "safari"},
}

func detectBrowser(userAgent string) (name, version string) {
	for _, m := range browserMarkers {
		idx := strings.Index(userAgent, m.token)
		if idx < 0 {
			continue
		}
		rest := userAgent[idx+len(m.token):]
		if end := strings.IndexAny(rest, " ;)"); end >= 0 {
			rest = rest[:end]
		}
		return m.name, rest
	}
	return "", ""
}

var osMarkers = []struct {
	token string
	os    string
}{
	{"Windows NT", "Windows"},
	{"iPhone OS", "iOS"},
	{"iPad", "iOS"},
	{"Mac OS X", "Mac OS"},
	{"Android", "Android"},
	{"CrOS", "Chrome OS"},
	{"Linux", "Linux"},
}

func detectOS(userAgent string) string {
	for _, m := range osMarkers {
		if strings.Contains(userAgent, m.token) {
			return m.os
		}
	}
	return ""
}
