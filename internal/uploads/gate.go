package uploads

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize is the inclusive upper bound for receipt uploads: 5 MiB.
const MaxFileSize = 5 * 1024 * 1024

// Distinct rejection codes; handlers map each to its own user message.
type ErrorCode string

const (
	CodeFileMissing    ErrorCode = "file_missing"
	CodeTypeNotAllowed ErrorCode = "type_not_allowed"
	CodeSizeExceeded   ErrorCode = "size_exceeded"
)

var allowedMIMETypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// FileMeta describes an upload candidate before any bytes are committed.
type FileMeta struct {
	MIMEType string
	Size     int64
	Filename string
}

// ValidationResult is the outcome of the pre-upload check.
type ValidationResult struct {
	IsValid bool      `json:"is_valid"`
	Code    ErrorCode `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Validate decides whether an upload may be persisted. MIME type and
// extension are checked independently, not cross-checked against each
// other; a .jpg named file declaring image/png passes the MIME check and
// fails the extension check only if the extension itself is disallowed.
func Validate(meta FileMeta) ValidationResult {
	if meta.MIMEType == "" || meta.Filename == "" || meta.Size <= 0 {
		return ValidationResult{
			Code:    CodeFileMissing,
			Message: "file, type or size missing",
		}
	}

	if !allowedMIMETypes[meta.MIMEType] {
		return ValidationResult{
			Code:    CodeTypeNotAllowed,
			Message: fmt.Sprintf("file type %s is not allowed", meta.MIMEType),
		}
	}

	ext := strings.ToLower(filepath.Ext(meta.Filename))
	if !allowedExtensions[ext] {
		return ValidationResult{
			Code:    CodeTypeNotAllowed,
			Message: fmt.Sprintf("file extension %s is not allowed", ext),
		}
	}

	if meta.Size > MaxFileSize {
		return ValidationResult{
			Code:    CodeSizeExceeded,
			Message: "file exceeds the 5 MiB limit",
		}
	}

	return ValidationResult{IsValid: true}
}

// StoredName derives the on-disk name: {unixMillis}_{uuidV4}{ext}. The
// original filename, which may carry untrusted or PII-bearing text, never
// reaches storage; collision probability is the UUID's.
func StoredName(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
}

// StoredFile describes a committed upload.
type StoredFile struct {
	Filename   string `json:"filename"`
	StorageRef string `json:"storage_ref"`
}

// Gate validates and commits uploads to a local directory.
type Gate struct {
	dir    string
	logger *slog.Logger
}

func NewGate(dir string, logger *slog.Logger) *Gate {
	return &Gate{dir: dir, logger: logger}
}

// Store re-validates and commits the upload. Validation failures come back
// as a *RejectedError carrying the distinct code.
func (g *Gate) Store(meta FileMeta, r io.Reader) (*StoredFile, error) {
	if result := Validate(meta); !result.IsValid {
		return nil, &RejectedError{Code: result.Code, Message: result.Message}
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := StoredName(meta.Filename)
	path := filepath.Join(g.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if written > MaxFileSize {
		os.Remove(path)
		return nil, &RejectedError{Code: CodeSizeExceeded, Message: "file exceeds the 5 MiB limit"}
	}

	g.logger.Info("upload stored", "filename", name, "size", written)

	return &StoredFile{
		Filename:   name,
		StorageRef: path,
	}, nil
}

// RejectedError is a validation rejection from the upload gate.
type RejectedError struct {
	Code    ErrorCode
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("upload rejected (%s): %s", e.Code, e.Message)
}
