package checkin

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Source tags where a resolved position came from. A network position is
// lower trust and must never be presented as gps.
type Source string

const (
	SourceGPS     Source = "gps"
	SourceNetwork Source = "network"
)

// Position is a resolved device position ready for display and submission.
type Position struct {
	Label     string   `json:"label"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"` // meters
	Source    Source   `json:"source"`
}

// Fix is a raw reading from the device location service.
type Fix struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64 // meters
}

// FixRequest configures one attempt against the device location service.
type FixRequest struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaxAge       time.Duration // 0 = always a fresh fix
}

// FixResult is one delivery from a continuous watch.
type FixResult struct {
	Fix Fix
	Err error
}

// FixWatch is a continuous stream of fixes. Cancel releases the underlying
// watch and must be called exactly once on every exit path.
type FixWatch interface {
	Results() <-chan FixResult
	Cancel()
}

// LocationService abstracts the device geolocation capability. Errors must
// carry a pipeline code (CodePermissionDenied, CodeUnavailable, CodeTimeout)
// so the ladder can decide escalation; the per-request timeout is enforced by
// the service itself, not by an external watchdog.
type LocationService interface {
	Supported() bool
	RequestFix(ctx context.Context, req FixRequest) (Fix, error)
	WatchFix(ctx context.Context, req FixRequest) (FixWatch, error)
}

// GeoIPResult is the answer from the server-side IP geolocation collaborator.
// Coordinates may be absent.
type GeoIPResult struct {
	Label     string   `json:"label"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// GeoIPService is the network-based coarse location collaborator, used only
// on explicit user request, never chained after the GPS ladder.
type GeoIPService interface {
	Lookup(ctx context.Context) (GeoIPResult, error)
}

// tier is one attempt configuration in the fallback ladder.
type tier struct {
	name         string
	highAccuracy bool
	timeout      time.Duration
	maxAge       time.Duration
	watch        bool // take the first fix of a continuous watch
}

// The ladder: precise single-shot, precise watch-first-fix, coarse
// single-shot. Tiers 1 and 2 never accept a cached fix.
var defaultTiers = []tier{
	{name: "precise single-shot", highAccuracy: true, timeout: 12 * time.Second, maxAge: 0},
	{name: "precise watch", highAccuracy: true, timeout: 20 * time.Second, maxAge: 0, watch: true},
	{name: "coarse single-shot", highAccuracy: false, timeout: 20 * time.Second, maxAge: 60 * time.Second},
}

// Acquirer resolves a device position through the tiered fallback ladder.
type Acquirer struct {
	svc   LocationService
	geoip GeoIPService
	// SecureContext mirrors the platform's secure-context check. It defaults
	// to true and is checked before any device call.
	SecureContext bool

	tiers []tier
}

func NewAcquirer(svc LocationService, geoip GeoIPService) *Acquirer {
	return &Acquirer{svc: svc, geoip: geoip, SecureContext: true, tiers: defaultTiers}
}

// Acquire runs the ladder. Retryable failures escalate tier by tier and are
// never surfaced individually; a permission denial at any tier aborts
// immediately. On success the position carries Source gps.
func (a *Acquirer) Acquire(ctx context.Context) (Position, error) {
	if !a.SecureContext {
		return Position{}, NewError(CodeInsecureContext, "location requires a secure (HTTPS) context")
	}
	if a.svc == nil || !a.svc.Supported() {
		return Position{}, NewError(CodeUnsupported, "location is not supported on this device")
	}

	var lastErr error
	for _, t := range a.tiers {
		fix, err := a.attempt(ctx, t)
		if err == nil {
			return gpsPosition(fix), nil
		}
		if !Retryable(err) {
			return Position{}, WrapError(CodePermissionDenied, "location permission denied", err)
		}
		lastErr = err
	}

	// Ladder exhausted: surface the last tier's mapped failure.
	code := CodeOf(lastErr)
	if code == CodeTimeout {
		return Position{}, WrapError(CodeTimeout, "location request timed out", lastErr)
	}
	return Position{}, WrapError(CodeUnavailable, "location is currently unavailable", lastErr)
}

func (a *Acquirer) attempt(ctx context.Context, t tier) (Fix, error) {
	req := FixRequest{HighAccuracy: t.highAccuracy, Timeout: t.timeout, MaxAge: t.maxAge}
	if !t.watch {
		return a.svc.RequestFix(ctx, req)
	}

	w, err := a.svc.WatchFix(ctx, req)
	if err != nil {
		return Fix{}, err
	}
	// Exactly one Cancel, on success, failure and abandonment alike.
	defer w.Cancel()

	select {
	case res, ok := <-w.Results():
		if !ok {
			return Fix{}, NewError(CodeUnavailable, "location watch closed without a fix")
		}
		if res.Err != nil {
			return Fix{}, res.Err
		}
		return res.Fix, nil
	case <-ctx.Done():
		return Fix{}, WrapError(CodeTimeout, "location request abandoned", ctx.Err())
	}
}

// AcquireNetwork asks the IP geolocation collaborator for a coarse position.
// It is a separate, user-triggered path; the result is always Source network.
func (a *Acquirer) AcquireNetwork(ctx context.Context) (Position, error) {
	if a.geoip == nil {
		return Position{}, NewError(CodeUnsupported, "network location is not available")
	}
	res, err := a.geoip.Lookup(ctx)
	if err != nil {
		return Position{}, WrapError(CodeUnavailable, "could not determine network location", err)
	}
	if res.Latitude == nil || res.Longitude == nil {
		return Position{}, NewError(CodeUnavailable, "no location")
	}

	label := res.Label
	if label == "" {
		label = fmt.Sprintf("Network %.5f, %.5f", *res.Latitude, *res.Longitude)
	}
	return Position{
		Label:     label,
		Latitude:  round5(*res.Latitude),
		Longitude: round5(*res.Longitude),
		Source:    SourceNetwork,
	}, nil
}

func gpsPosition(fix Fix) Position {
	lat := round5(fix.Latitude)
	lng := round5(fix.Longitude)
	acc := math.Round(fix.Accuracy)
	return Position{
		Label:     fmt.Sprintf("GPS %.5f, %.5f (+/-%.0fm)", lat, lng, acc),
		Latitude:  lat,
		Longitude: lng,
		Accuracy:  &acc,
		Source:    SourceGPS,
	}
}

// round5 rounds a coordinate to 5 decimal places for display.
func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
