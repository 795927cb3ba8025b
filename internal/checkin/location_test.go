package checkin

import (
	"context"
	"testing"
	"time"
)

type fixStep struct {
	fix Fix
	err error
}

type fakeWatch struct {
	results     chan FixResult
	cancelCount int
}

func newFakeWatch(res FixResult) *fakeWatch {
	w := &fakeWatch{results: make(chan FixResult, 1)}
	w.results <- res
	return w
}

func (w *fakeWatch) Results() <-chan FixResult { return w.results }
func (w *fakeWatch) Cancel()                   { w.cancelCount++ }

// fakeLocationService scripts one response per attempt and records every
// request so tier parameters can be asserted.
type fakeLocationService struct {
	supported bool
	single    []fixStep
	watch     *fakeWatch
	watchErr  error

	singleReqs []FixRequest
	watchReqs  []FixRequest
}

func (f *fakeLocationService) Supported() bool { return f.supported }

func (f *fakeLocationService) RequestFix(ctx context.Context, req FixRequest) (Fix, error) {
	f.singleReqs = append(f.singleReqs, req)
	if len(f.single) == 0 {
		return Fix{}, NewError(CodeUnavailable, "no scripted response")
	}
	step := f.single[0]
	f.single = f.single[1:]
	return step.fix, step.err
}

func (f *fakeLocationService) WatchFix(ctx context.Context, req FixRequest) (FixWatch, error) {
	f.watchReqs = append(f.watchReqs, req)
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	return f.watch, nil
}

type fakeGeoIP struct {
	result GeoIPResult
	err    error
	calls  int
}

func (f *fakeGeoIP) Lookup(ctx context.Context) (GeoIPResult, error) {
	f.calls++
	return f.result, f.err
}

func TestAcquireTier1Success(t *testing.T) {
	svc := &fakeLocationService{
		supported: true,
		single:    []fixStep{{fix: Fix{Latitude: 1.234567891, Longitude: -2.987654321, Accuracy: 7.6}}},
	}
	a := NewAcquirer(svc, nil)

	pos, err := a.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pos.Source != SourceGPS {
		t.Errorf("source = %s, want gps", pos.Source)
	}
	if pos.Latitude != 1.23457 || pos.Longitude != -2.98765 {
		t.Errorf("coordinates not rounded to 5 decimals: %v, %v", pos.Latitude, pos.Longitude)
	}
	if pos.Accuracy == nil || *pos.Accuracy != 8 {
		t.Errorf("accuracy not rounded to whole meters: %v", pos.Accuracy)
	}
	if pos.Label != "GPS 1.23457, -2.98765 (+/-8m)" {
		t.Errorf("unexpected label: %q", pos.Label)
	}

	// Tier 1 parameters: high accuracy, 12s, always fresh
	req := svc.singleReqs[0]
	if !req.HighAccuracy || req.Timeout != 12*time.Second || req.MaxAge != 0 {
		t.Errorf("tier 1 request = %+v", req)
	}
}

func TestAcquirePermissionDeniedShortCircuits(t *testing.T) {
	svc := &fakeLocationService{
		supported: true,
		single:    []fixStep{{err: NewError(CodePermissionDenied, "denied")}},
	}
	a := NewAcquirer(svc, nil)

	_, err := a.Acquire(context.Background())
	if CodeOf(err) != CodePermissionDenied {
		t.Fatalf("expected PermissionDenied, got %v", err)
	}
	if len(svc.singleReqs) != 1 || len(svc.watchReqs) != 0 {
		t.Errorf("denied at tier 1 must not touch later tiers: single=%d watch=%d", len(svc.singleReqs), len(svc.watchReqs))
	}
}

func TestAcquireEscalatesToWatch(t *testing.T) {
	watch := newFakeWatch(FixResult{Fix: Fix{Latitude: 10, Longitude: 20, Accuracy: 5}})
	svc := &fakeLocationService{
		supported: true,
		single:    []fixStep{{err: NewError(CodeTimeout, "timed out")}},
		watch:     watch,
	}
	a := NewAcquirer(svc, nil)

	pos, err := a.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Source != SourceGPS {
		t.Errorf("source = %s, want gps", pos.Source)
	}

	// Tier 2 parameters: high accuracy, 20s, always fresh
	if len(svc.watchReqs) != 1 {
		t.Fatalf("expected exactly one watch, got %d", len(svc.watchReqs))
	}
	req := svc.watchReqs[0]
	if !req.HighAccuracy || req.Timeout != 20*time.Second || req.MaxAge != 0 {
		t.Errorf("tier 2 request = %+v", req)
	}
	if watch.cancelCount != 1 {
		t.Errorf("watch cancelled %d times, want exactly 1", watch.cancelCount)
	}
}

func TestAcquireFullEscalation(t *testing.T) {
	watch := newFakeWatch(FixResult{Err: NewError(CodeUnavailable, "no fix")})
	svc := &fakeLocationService{
		supported: true,
		single: []fixStep{
			{err: NewError(CodeUnavailable, "no fix")},
			{fix: Fix{Latitude: 3, Longitude: 4, Accuracy: 100}},
		},
		watch: watch,
	}
	a := NewAcquirer(svc, nil)

	pos, err := a.Acquire(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Source != SourceGPS {
		t.Errorf("tier 3 success still carries source gps, got %s", pos.Source)
	}

	// Order: tier 1 single, tier 2 watch, tier 3 single
	if len(svc.singleReqs) != 2 || len(svc.watchReqs) != 1 {
		t.Fatalf("attempts: single=%d watch=%d", len(svc.singleReqs), len(svc.watchReqs))
	}

	// Tier 3 parameters: low accuracy, 20s, fixes up to 60s old
	req := svc.singleReqs[1]
	if req.HighAccuracy || req.Timeout != 20*time.Second || req.MaxAge != 60*time.Second {
		t.Errorf("tier 3 request = %+v", req)
	}
	if watch.cancelCount != 1 {
		t.Errorf("failed watch cancelled %d times, want exactly 1", watch.cancelCount)
	}
}

func TestAcquirePermissionDeniedDuringWatch(t *testing.T) {
	watch := newFakeWatch(FixResult{Err: NewError(CodePermissionDenied, "revoked")})
	svc := &fakeLocationService{
		supported: true,
		single:    []fixStep{{err: NewError(CodeTimeout, "timed out")}},
		watch:     watch,
	}
	a := NewAcquirer(svc, nil)

	_, err := a.Acquire(context.Background())
	if CodeOf(err) != CodePermissionDenied {
		t.Fatalf("expected PermissionDenied from the watch, got %v", err)
	}
	if len(svc.singleReqs) != 1 {
		t.Errorf("denied during the watch must not reach tier 3, singles=%d", len(svc.singleReqs))
	}
	if watch.cancelCount != 1 {
		t.Errorf("watch cancelled %d times, want exactly 1", watch.cancelCount)
	}
}

func TestAcquireExhaustionSurfacesLastError(t *testing.T) {
	watch := newFakeWatch(FixResult{Err: NewError(CodeTimeout, "timed out")})
	svc := &fakeLocationService{
		supported: true,
		single: []fixStep{
			{err: NewError(CodeTimeout, "timed out")},
			{err: NewError(CodeTimeout, "timed out")},
		},
		watch: watch,
	}
	a := NewAcquirer(svc, nil)

	_, err := a.Acquire(context.Background())
	if CodeOf(err) != CodeTimeout {
		t.Fatalf("exhausted ladder should surface the final timeout, got %v", err)
	}
}

func TestAcquirePreconditions(t *testing.T) {
	a := NewAcquirer(&fakeLocationService{supported: false}, nil)
	if _, err := a.Acquire(context.Background()); CodeOf(err) != CodeUnsupported {
		t.Errorf("unsupported device: got %v", err)
	}

	svc := &fakeLocationService{supported: true}
	a = NewAcquirer(svc, nil)
	a.SecureContext = false
	if _, err := a.Acquire(context.Background()); CodeOf(err) != CodeInsecureContext {
		t.Errorf("insecure context: got %v", err)
	}
	if len(svc.singleReqs) != 0 {
		t.Errorf("insecure context must precede any device call")
	}
}

func TestAcquireNetwork(t *testing.T) {
	lat, lng := 52.52, 13.405
	geo := &fakeGeoIP{result: GeoIPResult{Label: "Berlin, Germany", Latitude: &lat, Longitude: &lng}}
	a := NewAcquirer(&fakeLocationService{supported: true}, geo)

	pos, err := a.AcquireNetwork(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Source != SourceNetwork {
		t.Errorf("network result must carry source network, got %s", pos.Source)
	}
	if pos.Label != "Berlin, Germany" {
		t.Errorf("label = %q", pos.Label)
	}
}

func TestAcquireNetworkNoCoordinates(t *testing.T) {
	geo := &fakeGeoIP{result: GeoIPResult{Label: "Somewhere"}}
	a := NewAcquirer(&fakeLocationService{supported: true}, geo)

	_, err := a.AcquireNetwork(context.Background())
	if err == nil || err.Error() != "no location" {
		t.Fatalf("missing coordinates must report no location, got %v", err)
	}
}

func TestAcquireNeverChainsNetworkFallback(t *testing.T) {
	geo := &fakeGeoIP{result: GeoIPResult{}}
	watch := newFakeWatch(FixResult{Err: NewError(CodeUnavailable, "no fix")})
	svc := &fakeLocationService{
		supported: true,
		single: []fixStep{
			{err: NewError(CodeUnavailable, "no fix")},
			{err: NewError(CodeUnavailable, "no fix")},
		},
		watch: watch,
	}
	a := NewAcquirer(svc, geo)

	if _, err := a.Acquire(context.Background()); err == nil {
		t.Fatal("expected the ladder to fail")
	}
	if geo.calls != 0 {
		t.Errorf("exhausting the GPS ladder must not invoke the network fallback")
	}
}
