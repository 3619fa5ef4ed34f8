package media

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	mu        sync.Mutex
	uploads   int
	deletes   []string
	uploadErr error
	deleteErr error
	result    UploadResult
}

func (f *fakeService) Upload(ctx context.Context, filename, contentType string, data []byte) (UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	return f.result, f.uploadErr
}

func (f *fakeService) Delete(ctx context.Context, handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, handle)
	return f.deleteErr
}

// minimal valid PNG header; mimetype only needs the magic bytes
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadImageAccepted(t *testing.T) {
	svc := &fakeService{result: UploadResult{URL: "https://cdn.example.com/a.png", DeleteHandle: "h1"}}
	a := NewAdapter(svc, nil)

	result, err := a.UploadImage(context.Background(), "a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", result.URL)
	assert.Equal(t, "h1", result.DeleteHandle)
	assert.Equal(t, 1, svc.uploads)
}

func TestUploadImageRejectsOversize(t *testing.T) {
	svc := &fakeService{}
	a := NewAdapter(svc, nil)

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxUploadSize)...)
	_, err := a.UploadImage(context.Background(), "big.png", bytes.NewReader(big))

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "5MB")

	// rejected locally: the service was never called
	assert.Zero(t, svc.uploads)
}

func TestUploadImageRejectsWrongType(t *testing.T) {
	svc := &fakeService{}
	a := NewAdapter(svc, nil)

	_, err := a.UploadImage(context.Background(), "doc.pdf", bytes.NewReader([]byte("%PDF-1.4 not an image")))

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Zero(t, svc.uploads)
}

func TestUploadImageTrustsContentNotName(t *testing.T) {
	svc := &fakeService{}
	a := NewAdapter(svc, nil)

	// png extension, html payload: the sniffed type wins
	_, err := a.UploadImage(context.Background(), "fake.png", bytes.NewReader([]byte("<html><body>hi</body></html>")))

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Zero(t, svc.uploads)
}

func TestUploadImagePassesServiceError(t *testing.T) {
	svc := &fakeService{uploadErr: errors.New("service down")}
	a := NewAdapter(svc, nil)

	_, err := a.UploadImage(context.Background(), "a.png", bytes.NewReader(pngHeader))
	require.Error(t, err)
	assert.False(t, IsValidationError(err))
}

func TestCleanup(t *testing.T) {
	svc := &fakeService{}
	a := NewAdapter(svc, nil)

	a.Cleanup(context.Background(), "h1")
	assert.Equal(t, []string{"h1"}, svc.deletes)

	// empty handles are skipped entirely
	a.Cleanup(context.Background(), "")
	assert.Len(t, svc.deletes, 1)
}

func TestCleanupSwallowsErrors(t *testing.T) {
	svc := &fakeService{deleteErr: errors.New("gone already")}
	a := NewAdapter(svc, nil)

	// must not panic or propagate
	a.Cleanup(context.Background(), "h2")
	assert.Equal(t, []string{"h2"}, svc.deletes)
}
