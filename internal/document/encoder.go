// Package document converts uploaded files into the transport-ready
// descriptor attached to chat requests. The payload is forwarded to the
// model as-is; no local parsing of PDF/CSV content happens here.
package document

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/financeai/financeai-backend/internal"
)

// MaxFileSize is the upload cap. Files above it are rejected before any
// descriptor is created.
const MaxFileSize = 20 * 1024 * 1024

var (
	ErrNoFileProvided = errors.New("no file provided")
	ErrFileTooLarge   = fmt.Errorf("file exceeds %d bytes", MaxFileSize)
)

// Encode builds a DocumentDescriptor from raw file bytes. declaredType is
// the content type reported by the uploader and may be empty.
func Encode(data []byte, filename, declaredType string) (internal.DocumentDescriptor, error) {
	if len(data) == 0 {
		return internal.DocumentDescriptor{}, ErrNoFileProvided
	}
	if len(data) > MaxFileSize {
		return internal.DocumentDescriptor{}, ErrFileTooLarge
	}
	return internal.DocumentDescriptor{
		FileID:        newFileID(),
		Name:          filename,
		SizeBytes:     int64(len(data)),
		MimeType:      ResolveMimeType(filename, declaredType),
		Base64Content: base64.StdEncoding.EncodeToString(data),
	}, nil
}

// ResolveMimeType keeps a usable declared type and otherwise falls back to
// the filename extension: .pdf, .txt, .csv, else octet-stream.
func ResolveMimeType(filename, declaredType string) string {
	if declaredType != "" && declaredType != "application/octet-stream" {
		return declaredType
	}
	switch {
	case strings.HasSuffix(filename, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	case strings.HasSuffix(filename, ".csv"):
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// newFileID mints an identifier unique within a session: creation time plus
// a random suffix.
func newFileID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())
}
