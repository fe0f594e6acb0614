// Package uploader runs batched property-image uploads with bounded
// concurrency. The form engine only reads the finalized images.
package uploader

// ImageStatus tracks one image through its upload lifecycle.
type ImageStatus string

const (
	StatusPending   ImageStatus = "pending"
	StatusUploading ImageStatus = "uploading"
	StatusUploaded  ImageStatus = "uploaded"
	StatusFailed    ImageStatus = "failed"
)

// Image represents one image slot in a property draft.
type Image struct {
	ID          string      `json:"id"`
	FileName    string      `json:"fileName"`
	ContentType string      `json:"contentType"`
	Size        int64       `json:"size"`
	Status      ImageStatus `json:"status"`

	// Populated on successful upload.
	RemoteKey      string  `json:"remoteKey,omitempty"`
	URL            string  `json:"url,omitempty"`
	Classification string  `json:"classification,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`

	// Populated on failure.
	Err error `json:"-"`
}

// Uploaded reports whether the image finished uploading successfully.
func (img *Image) Uploaded() bool {
	return img.Status == StatusUploaded && img.RemoteKey != "" && img.Err == nil
}

// UploadedKeys extracts the remote keys of successfully uploaded images.
func UploadedKeys(images []Image) []string {
	keys := make([]string, 0, len(images))
	for i := range images {
		if images[i].Uploaded() {
			keys = append(keys, images[i].RemoteKey)
		}
	}
	return keys
}
