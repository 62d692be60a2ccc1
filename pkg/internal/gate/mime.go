package gate

import (
	"path/filepath"
	"strings"
)

// allowedMIMETypes is the fixed allow-list of admitted media kinds. Keep it
// static so the policy stays auditable in one place.
var allowedMIMETypes = map[string]struct{}{
	"image/jpeg":       {},
	"image/png":        {},
	"image/gif":        {},
	"image/webp":       {},
	"image/heic":       {},
	"image/heif":       {},
	"video/mp4":        {},
	"video/quicktime":  {},
	"video/webm":       {},
	"video/x-matroska": {},
	"video/x-msvideo":  {},
	"video/3gpp":       {},
}

// extensionMIMETypes maps file extensions to MIME types for clients that send
// generic or wrong content types. A compatibility shim, not a security
// boundary: persisted bytes are never sniffed.
var extensionMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".3gp":  "video/3gpp",
}

// normalizedExtension lowercases the extension of a filename, dot included.
func normalizedExtension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// resolveContentType returns the content type an upload will be stored under.
// The declared type wins when allow-listed; otherwise the extension mapping
// is the fallback. ok is false when neither resolves.
func resolveContentType(declared, fileName string) (string, bool) {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if _, ok := allowedMIMETypes[declared]; ok {
		return declared, true
	}

	if mapped, ok := extensionMIMETypes[normalizedExtension(fileName)]; ok {
		return mapped, true
	}

	return "", false
}
