package uploader

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "listing-frontdesk/internal/common/errors"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/common/metrics"
)

// MediaService uploads one file to remote storage.
type MediaService interface {
	UploadImage(ctx context.Context, fileName, contentType string, data []byte) (*UploadResult, error)
}

// UploadResult is what the media service returns for one accepted image.
type UploadResult struct {
	Key            string  `json:"key"`
	URL            string  `json:"url,omitempty"`
	Classification string  `json:"classification,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
}

// File is one local file handed to the uploader.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Config bounds the upload pipeline.
type Config struct {
	MaxConcurrent int
	MaxImageBytes int64
	MaxImages     int
	MaxRetries    int // rate-limit retries only
}

// Uploader validates and uploads image batches.
type Uploader struct {
	media MediaService
	cfg   Config
	log   logger.Logger
}

func New(media MediaService, cfg Config, log logger.Logger) *Uploader {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 3
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 10 << 20
	}
	if cfg.MaxImages <= 0 {
		cfg.MaxImages = 10
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &Uploader{media: media, cfg: cfg, log: log}
}

// UploadBatch uploads files concurrently, at most MaxConcurrent in flight.
// Each file gets its own Image entry; one failure never blocks the others.
// existingCount is the number of images already attached to the draft and
// counts against the MaxImages cap.
func (u *Uploader) UploadBatch(ctx context.Context, files []File, existingCount int) ([]Image, error) {
	if existingCount+len(files) > u.cfg.MaxImages {
		return nil, apperrors.NewTooManyImagesError(existingCount+len(files), u.cfg.MaxImages)
	}

	images := make([]Image, len(files))
	for i, f := range files {
		images[i] = Image{
			ID:          uuid.NewString(),
			FileName:    f.Name,
			ContentType: f.ContentType,
			Size:        int64(len(f.Data)),
			Status:      StatusPending,
		}
	}

	sem := make(chan struct{}, u.cfg.MaxConcurrent)
	var wg sync.WaitGroup

	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			u.uploadOne(ctx, &files[i], &images[i])
		}(i)
	}
	wg.Wait()

	return images, nil
}

func (u *Uploader) uploadOne(ctx context.Context, file *File, img *Image) {
	if err := u.validateFile(file); err != nil {
		img.Status = StatusFailed
		img.Err = err
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		return
	}

	img.Status = StatusUploading
	metrics.ImageUploadsActive.Inc()
	defer metrics.ImageUploadsActive.Dec()

	var result *UploadResult
	err := u.retryOnRateLimit(ctx, func() error {
		var uploadErr error
		result, uploadErr = u.media.UploadImage(ctx, file.Name, file.ContentType, file.Data)
		return uploadErr
	})

	if err != nil {
		img.Status = StatusFailed
		img.Err = err
		metrics.ImageUploadsTotal.WithLabelValues("failed").Inc()
		u.log.Warn("Image upload failed", map[string]interface{}{
			"file":  file.Name,
			"error": err.Error(),
		})
		return
	}

	img.Status = StatusUploaded
	img.RemoteKey = result.Key
	img.URL = result.URL
	img.Classification = result.Classification
	img.Confidence = result.Confidence
	metrics.ImageUploadsTotal.WithLabelValues("uploaded").Inc()
}

func (u *Uploader) validateFile(file *File) error {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return apperrors.NewUnsupportedImageTypeError(file.Name, file.ContentType)
	}
	if int64(len(file.Data)) > u.cfg.MaxImageBytes {
		return apperrors.NewImageTooLargeError(file.Name, int64(len(file.Data)), u.cfg.MaxImageBytes)
	}
	return nil
}

// retryOnRateLimit retries the operation with exponential backoff, but only
// when the media service reports rate limiting. Other failures surface
// immediately.
func (u *Uploader) retryOnRateLimit(ctx context.Context, operation func() error) error {
	delay := 500 * time.Millisecond

	var err error
	for attempt := 0; attempt <= u.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			u.log.Info("Retrying rate-limited upload", map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}

		err = operation()
		if err == nil {
			return nil
		}

		stdErr, ok := err.(*apperrors.StandardError)
		if !ok || stdErr.Code != apperrors.ErrCodeRateLimited {
			return err
		}
	}

	return err
}
