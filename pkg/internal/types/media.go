// Package types defines the request, response and domain types shared by the
// handlers and services.
package types

import "time"

// UploadCandidate describes one incoming file before it is admitted.
type UploadCandidate struct {
	FileName         string // original filename as sent by the client
	DeclaredMIMEType string // content type reported by the client, may be generic or wrong
	SizeBytes        int64
	Caption          string // optional guest message attached to the upload
}

// StoredObject is one persisted media object. CreatedAt comes from the blob
// store's own metadata, never from the client.
type StoredObject struct {
	Key         string    `json:"key"`
	CreatedAt   time.Time `json:"createdAt"`
	SizeBytes   int64     `json:"size"`
	ContentType string    `json:"type,omitempty"`
}

// UploadResponse is the success payload of the upload endpoint.
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
}

// GalleryItem is one entry of the gallery listing.
type GalleryItem struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int64     `json:"size"`
	Caption   string    `json:"message,omitempty"`
}

// GalleryResponse lists stored media, newest first.
type GalleryResponse struct {
	Files []GalleryItem `json:"files"`
	Total int           `json:"total"`
}

// PreviewResponse is the lightweight poll target for the landing page card:
// the first few items plus the total count.
type PreviewResponse struct {
	Files []GalleryItem `json:"files"`
	Total int           `json:"total"`
}

// DeleteRequest carries the optional credential for a delete attempt.
type DeleteRequest struct {
	Password string `json:"password"`
}

// DeleteResponse reports the outcome of a delete attempt.
type DeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Key     string `json:"key"`
}

// VerifyPasswordRequest is the body of the password pre-check endpoint.
type VerifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// VerifyPasswordResponse reports whether the supplied password matches.
type VerifyPasswordResponse struct {
	Valid bool `json:"valid"`
}

// LoginRequest is the body of the admin login endpoint.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// ExportFile is one entry of the export manifest, the caption joined in.
type ExportFile struct {
	FileName    string `json:"fileName"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url"`
	Message     string `json:"message"`
	UploadTime  string `json:"uploadTime"`
	Size        int64  `json:"size"`
}

// ExportResponse is the full export manifest.
type ExportResponse struct {
	Files      []ExportFile `json:"files"`
	TotalFiles int          `json:"totalFiles"`
	ExportTime string       `json:"exportTime"`
}

// UsageResponse sums stored bytes and object count.
type UsageResponse struct {
	Bytes int64 `json:"bytes"`
	Count int   `json:"count"`
}
