package media

import (
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
)

// MaxUploadSize is the general upload ceiling.
const MaxUploadSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// ValidationError marks a file rejected locally, before any network
// call was attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// IsValidationError reports whether err is a local pre-upload
// rejection.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// Adapter validates files and hands them to the upload service. It is
// the single owner of the persist-then-cleanup contract: replaced
// assets are released only after the new document state is safely
// persisted, which UploadImage and Cleanup keep as separate steps.
type Adapter struct {
	svc Service
	log *logrus.Logger
}

func NewAdapter(svc Service, log *logrus.Logger) *Adapter {
	if log == nil {
		log = logrus.New()
	}
	return &Adapter{svc: svc, log: log}
}

// UploadImage sniffs the real MIME type and enforces the size ceiling
// before touching the network; out-of-band files are rejected locally.
func (a *Adapter) UploadImage(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return UploadResult{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return UploadResult{}, &ValidationError{Reason: fmt.Sprintf("file exceeds the %dMB upload limit", MaxUploadSize>>20)}
	}

	mt := mimetype.Detect(data)
	if !allowedImageTypes[mt.String()] {
		return UploadResult{}, &ValidationError{Reason: fmt.Sprintf("unsupported image type %q, want PNG, JPEG or GIF", mt.String())}
	}

	return a.svc.Upload(ctx, filename, mt.String(), data)
}

// Cleanup releases a replaced asset. Removal is best-effort: failures
// are logged, never escalated to the user.
func (a *Adapter) Cleanup(ctx context.Context, handle string) {
	if handle == "" {
		return
	}
	if err := a.svc.Delete(ctx, handle); err != nil {
		a.log.WithError(err).WithField("handle", handle).Warn("media cleanup failed")
	}
}
