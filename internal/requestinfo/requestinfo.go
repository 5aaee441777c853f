// internal/requestinfo/requestinfo.go
//
// Per-request metadata: a parsed User-Agent fingerprint, the requested
// URL, and a timestamp.  The structs are inert—no handles, no large
// buffers—so they are safe to log or hand to templates.  The request
// logger and the admin view are the consumers.
package requestinfo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	surfer "github.com/avct/uasurfer"
)

// UA carries the User-Agent attributes shown on the admin view and
// attached to the request log.
//
// Device is one of "Desktop", "Mobile", "Tablet", or "Other".
type UA struct {
	Raw     string
	Browser string
	Version string
	OS      string
	Device  string
	IsBot   bool
}

// RequestInfo is stored in the request context by Enrich.
type RequestInfo struct {
	UA        UA
	URL       *url.URL
	Timestamp time.Time
}

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich, or nil
// when the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// ParseUA converts a raw header into a UA struct.  After the first
// call the underlying library reuses internal buffers, so parsing
// allocates only on rarely-seen strings.
func ParseUA(raw string) UA {
	ua := surfer.Parse(raw)

	info := UA{
		Raw:     raw,
		Browser: ua.Browser.Name.String(),
		Version: versionToString(ua.Browser.Version),
		OS:      ua.OS.Name.String(),
		IsBot:   ua.IsBot(),
	}

	switch ua.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}
	return info
}

// versionToString renders a semantic version in dotted form while
// trimming trailing zeros, e.g. 17.0.0 → "17", 17.3.1 → "17.3.1".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}
