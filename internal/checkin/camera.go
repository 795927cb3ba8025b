package checkin

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"time"

	"golang.org/x/image/draw"
)

// CameraState is the capture lifecycle state.
type CameraState string

const (
	StateIdle      CameraState = "IDLE"
	StateOpening   CameraState = "OPENING"
	StateStreaming CameraState = "STREAMING"
	StateCaptured  CameraState = "CAPTURED"
)

// Default raster size when the stream reports zero dimensions.
const (
	defaultFrameWidth  = 640
	defaultFrameHeight = 480
	defaultJPEGQuality = 80
)

// CameraStream is a live video stream handle. Stop releases the hardware
// tracks and must be called on every exit from the streaming state.
type CameraStream interface {
	Frame() (image.Image, error)
	Size() (width, height int)
	Stop()
}

// CameraService abstracts the device camera. Errors must carry a pipeline
// code (CodeUnsupported, CodePermissionDenied).
type CameraService interface {
	OpenStream(ctx context.Context, facing string) (CameraStream, error)
}

// PhotoCapture drives the camera through Idle -> Opening -> Streaming ->
// Captured, holding the encoded still until a save succeeds. Not safe for
// concurrent use; one check-in attempt owns one instance.
type PhotoCapture struct {
	svc     CameraService
	gate    func() bool // reports whether a record already exists today
	quality int

	state      CameraState
	stream     CameraStream
	still      []byte
	capturedAt time.Time
}

func NewPhotoCapture(svc CameraService, gate func() bool) *PhotoCapture {
	return &PhotoCapture{svc: svc, gate: gate, quality: defaultJPEGQuality, state: StateIdle}
}

func (p *PhotoCapture) State() CameraState {
	return p.state
}

// Still returns the encoded image, or nil if none was captured yet.
func (p *PhotoCapture) Still() []byte {
	return p.still
}

// CapturedAt is the instant the held still was frozen, zero when none is
// held. A save retried later must submit this, not the retry time.
func (p *PhotoCapture) CapturedAt() time.Time {
	return p.capturedAt
}

// Open starts the front camera. The one-photo-per-day gate lives here: a day
// that already has a record never reaches the Opening state.
func (p *PhotoCapture) Open(ctx context.Context) error {
	if p.state != StateIdle {
		return NewError(CodeValidationFailed, "camera is already open")
	}
	if p.gate != nil && p.gate() {
		return NewError(CodeValidationFailed, "already checked in today")
	}
	if p.svc == nil {
		return NewError(CodeUnsupported, "camera is not supported on this device")
	}

	p.state = StateOpening
	stream, err := p.svc.OpenStream(ctx, "user")
	if err != nil {
		p.state = StateIdle
		return err
	}
	p.stream = stream
	p.state = StateStreaming
	return nil
}

// Capture renders one live frame to an offscreen raster, encodes a lossy
// still and releases the hardware tracks immediately.
func (p *PhotoCapture) Capture() error {
	if p.state != StateStreaming {
		return NewError(CodeValidationFailed, "camera is not streaming")
	}

	frame, err := p.stream.Frame()
	if err != nil {
		p.teardownStream()
		p.state = StateIdle
		return WrapError(CodeUnavailable, "could not read a camera frame", err)
	}

	w, h := p.stream.Size()
	if w <= 0 || h <= 0 {
		w, h = defaultFrameWidth, defaultFrameHeight
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), frame, frame.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: p.quality}); err != nil {
		p.teardownStream()
		p.state = StateIdle
		return WrapError(CodeUnavailable, "could not encode the photo", err)
	}

	// The camera must not stay active once a still exists.
	p.teardownStream()
	p.still = buf.Bytes()
	p.capturedAt = time.Now().UTC()
	p.state = StateCaptured
	return nil
}

// Retake discards the current still and reopens the stream.
func (p *PhotoCapture) Retake(ctx context.Context) error {
	if p.state != StateCaptured {
		return NewError(CodeValidationFailed, "nothing to retake")
	}
	p.still = nil
	p.capturedAt = time.Time{}
	p.state = StateIdle
	return p.Open(ctx)
}

// ClearStill drops the held image, after a successful save.
func (p *PhotoCapture) ClearStill() {
	p.still = nil
	p.capturedAt = time.Time{}
	if p.state == StateCaptured {
		p.state = StateIdle
	}
}

// Close tears the capture down from any state, stopping live tracks.
func (p *PhotoCapture) Close() {
	p.teardownStream()
	p.still = nil
	p.capturedAt = time.Time{}
	p.state = StateIdle
}

func (p *PhotoCapture) teardownStream() {
	if p.stream != nil {
		p.stream.Stop()
		p.stream = nil
	}
}
