package filestorage

import (
	"errors"
	"mime/multipart"
)

// Upload errors
var (
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedType    = errors.New("file type is not allowed")
	ErrInvalidStoragePath = errors.New("invalid storage path")
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores the upload under a subdirectory and returns its public URL
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file previously returned by SaveFileWithPath
	DeleteFile(fileURL string) error
}

// UploadRule restricts what an upload may contain
type UploadRule struct {
	MaxBytes     int64
	AllowedTypes []string
}

// ImageRule accepts the common web image formats
func ImageRule(maxBytes int64) UploadRule {
	return UploadRule{
		MaxBytes:     maxBytes,
		AllowedTypes: []string{"image/png", "image/jpeg", "image/gif", "image/webp"},
	}
}
