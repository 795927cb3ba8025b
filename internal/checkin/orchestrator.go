package checkin

import (
	"context"
	"time"
)

// Record is the canonical attendance record as returned by the record
// storage collaborator.
type Record struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	UserName      string    `json:"user_name"`
	CapturedAt    time.Time `json:"captured_at"`
	Timezone      string    `json:"timezone"`
	LocationLabel string    `json:"location_label"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Accuracy      *float64  `json:"accuracy,omitempty"`
	PhotoURL      string    `json:"photo_url"`
	PhotoPublicID string    `json:"photo_public_id"`
	Status        Status    `json:"status"`
	FlagComment   string    `json:"flag_comment,omitempty"`
}

// NewRecord is the payload submitted to create a check-in.
type NewRecord struct {
	Position      Position  `json:"position"`
	PhotoURL      string    `json:"photo_url"`
	PhotoPublicID string    `json:"photo_public_id"`
	CapturedAt    time.Time `json:"captured_at"`
	Timezone      string    `json:"timezone"`
}

// UploadResult is the durable reference handed back by the upload
// collaborator.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// RecordService is the record-storage collaborator.
type RecordService interface {
	Today(ctx context.Context) (*Record, error) // nil when no record exists yet
	Create(ctx context.Context, rec NewRecord) (*Record, error)
	Delete(ctx context.Context, id uint) error
	Flag(ctx context.Context, id uint, comment string) error
}

// UploadService is the image upload collaborator.
type UploadService interface {
	Upload(ctx context.Context, image []byte) (UploadResult, error)
}

// Orchestrator sequences photo capture, location acquisition and submission
// into a single check-in attempt. Every remote step is awaited before the
// next begins; one instance serves one authenticated actor.
type Orchestrator struct {
	records  RecordService
	uploads  UploadService
	camera   *PhotoCapture
	location *Acquirer

	today    *Record
	position *Position
}

func NewOrchestrator(records RecordService, uploads UploadService, camera CameraService, location *Acquirer) *Orchestrator {
	o := &Orchestrator{records: records, uploads: uploads, location: location}
	o.camera = NewPhotoCapture(camera, func() bool { return o.today != nil })
	return o
}

// Camera exposes the capture state machine, gated on today's record.
func (o *Orchestrator) Camera() *PhotoCapture {
	return o.camera
}

// Today returns the locally known record for today, if any.
func (o *Orchestrator) Today() *Record {
	return o.today
}

// Position returns the position resolved in this session, if any.
func (o *Orchestrator) Position() *Position {
	return o.position
}

// Refresh loads today's record from storage, arming the daily gate.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	rec, err := o.records.Today(ctx)
	if err != nil {
		return WrapError(CodeUnavailable, "could not load today's check-in", err)
	}
	o.today = rec
	return nil
}

// AcquireLocation resolves a GPS position through the fallback ladder and
// keeps it for the current session.
func (o *Orchestrator) AcquireLocation(ctx context.Context) (Position, error) {
	pos, err := o.location.Acquire(ctx)
	if err != nil {
		return Position{}, err
	}
	o.position = &pos
	return pos, nil
}

// UseNetworkLocation is the explicit user-triggered coarse fallback. It is
// the only path that may replace an earlier GPS result with a network one.
func (o *Orchestrator) UseNetworkLocation(ctx context.Context) (Position, error) {
	pos, err := o.location.AcquireNetwork(ctx)
	if err != nil {
		return Position{}, err
	}
	o.position = &pos
	return pos, nil
}

// Submit runs the save sequence:
//  1. reject when today's record already exists
//  2. require a captured still
//  3. resolve a position, reusing the session's one when present
//  4. upload the still for a durable reference
//  5. create the record, receiving the canonical server copy
//  6. adopt the canonical record and clear the transient still
//
// The still survives upload/save failures so a retry does not need a new
// photo; a location failure leaves nothing cached and aborts the save.
func (o *Orchestrator) Submit(ctx context.Context) (*Record, error) {
	if o.today != nil {
		return nil, NewError(CodeValidationFailed, "already checked in today")
	}

	still := o.camera.Still()
	if len(still) == 0 {
		return nil, NewError(CodeValidationFailed, "a photo is required before checking in")
	}

	if o.position == nil {
		if _, err := o.AcquireLocation(ctx); err != nil {
			return nil, err
		}
	}

	up, err := o.uploads.Upload(ctx, still)
	if err != nil {
		return nil, WrapError(CodeUploadFailed, uploadMessage(err), err)
	}

	// The capture instant is when the frame froze, not when a (possibly
	// retried) save finally went through.
	capturedAt := o.camera.CapturedAt()
	if capturedAt.IsZero() {
		capturedAt = time.Now().UTC()
	}

	rec, err := o.records.Create(ctx, NewRecord{
		Position:      *o.position,
		PhotoURL:      up.URL,
		PhotoPublicID: up.PublicID,
		CapturedAt:    capturedAt,
		Timezone:      localZone(),
	})
	if err != nil {
		return nil, WrapError(CodeSaveFailed, saveMessage(err), err)
	}

	o.today = rec
	o.camera.ClearStill()
	return rec, nil
}

// DeleteToday removes the existing record and re-opens the daily gate.
func (o *Orchestrator) DeleteToday(ctx context.Context) error {
	if o.today == nil {
		return NewError(CodeValidationFailed, "no check-in to delete today")
	}
	if err := o.records.Delete(ctx, o.today.ID); err != nil {
		return WrapError(CodeSaveFailed, "could not delete the check-in", err)
	}
	o.today = nil
	return nil
}

// FlagToday attaches a flag comment to today's record.
func (o *Orchestrator) FlagToday(ctx context.Context, comment string) error {
	if o.today == nil {
		return NewError(CodeValidationFailed, "no check-in to flag today")
	}
	if err := o.records.Flag(ctx, o.today.ID, comment); err != nil {
		return WrapError(CodeSaveFailed, "could not flag the check-in", err)
	}
	o.today.FlagComment = comment
	return nil
}

// Close releases every live device handle held by the attempt.
func (o *Orchestrator) Close() {
	o.camera.Close()
}

// uploadMessage prefers the server-provided message when one exists.
func uploadMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "photo upload failed"
}

func saveMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "saving the check-in failed"
}

func localZone() string {
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	name, _ := time.Now().Zone()
	return name
}
