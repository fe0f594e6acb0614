package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	apperrors "listing-frontdesk/internal/common/errors"
	httpclient "listing-frontdesk/internal/common/http"
	"listing-frontdesk/internal/common/logger"
	"listing-frontdesk/internal/uploader"
)

// MediaClient uploads property images to the upstream media endpoint. It
// satisfies uploader.MediaService.
type MediaClient struct {
	base
}

// NewMediaClient creates a media upload client.
func NewMediaClient(cfg Config, client *httpclient.Client, log logger.Logger) *MediaClient {
	return &MediaClient{base: base{cfg: cfg, http: client, log: log}}
}

var _ uploader.MediaService = (*MediaClient)(nil)

var errMissingImageKey = errors.New("upload response missing image key")

// mediaUploadResponse is the upstream shape for a stored image. The server
// classifies each photo (exterior, bedroom, kitchen and so on) as it stores it.
type mediaUploadResponse struct {
	Data struct {
		Key            string  `json:"imageKey"`
		URL            string  `json:"url"`
		Classification string  `json:"classification"`
		Confidence     float64 `json:"confidence"`
	} `json:"data"`
}

// UploadImage posts one image as multipart form data and returns its stored
// key and classification.
func (c *MediaClient) UploadImage(ctx context.Context, fileName, contentType string, data []byte) (*uploader.UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		return nil, apperrors.NewUploadFailedError(fileName, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, apperrors.NewUploadFailedError(fileName, err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.NewUploadFailedError(fileName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		joinURL(c.cfg.BaseURL, "/api/v1/images/upload"), &buf)
	if err != nil {
		return nil, apperrors.NewUploadFailedError(fileName, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError("media", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUploadFailedError(fileName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapFailure("media", resp.StatusCode, body)
	}

	var decoded mediaUploadResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, apperrors.NewBadUpstreamResponseError("media", err)
	}
	if decoded.Data.Key == "" {
		return nil, apperrors.NewUploadFailedError(fileName,
			errMissingImageKey)
	}

	return &uploader.UploadResult{
		Key:            decoded.Data.Key,
		URL:            decoded.Data.URL,
		Classification: decoded.Data.Classification,
		Confidence:     decoded.Data.Confidence,
	}, nil
}
