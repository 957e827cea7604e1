package upload

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MinFileSize rejects empty or near-empty payloads.
const MinFileSize = 100

// DefaultMaxSize is used when Options.MaxSize is not positive.
const DefaultMaxSize int64 = 10 << 20

// Category classifies a rejection for the security event log.
type Category string

const (
	CategoryValidationFailed Category = "validation_failed"
	CategorySuspiciousFile   Category = "suspicious_file"
)

// DefaultAllowedTypes are accepted when Options.AllowedTypes is empty.
var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"application/pdf",
}

var extensionTypes = map[string][]string{
	".jpg":  {"image/jpeg", "image/jpg"},
	".jpeg": {"image/jpeg", "image/jpg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
	".webp": {"image/webp"},
	".svg":  {"image/svg+xml"},
	".pdf":  {"application/pdf"},
	".tif":  {"image/tiff"},
	".tiff": {"image/tiff"},
	".ai":   {"application/postscript", "application/pdf"},
	".eps":  {"application/postscript"},
}

// textual formats are not sniffed in strict mode.
var textualTypes = map[string]bool{
	"image/svg+xml":          true,
	"application/postscript": true,
}

var defaultSuspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\.(exe|bat|cmd|com|scr|pif|vbs|vbe|js|jse|jar|msi|dll|sh|ps1|php\d?|phtml|asp|aspx|jsp|cgi|hta)$`),
	regexp.MustCompile(`(?i)\.(exe|bat|cmd|com|scr|php\d?|js|sh|jsp|asp)\.`),
	regexp.MustCompile(`(?i)(virus|malware|exploit|trojan|backdoor|ransomware|keylogger|payload)`),
	regexp.MustCompile(`\.\.`),
	regexp.MustCompile(`^\.`),
	regexp.MustCompile("\x00"),
}

// File is an upload attempt under inspection.
type File struct {
	Name     string
	Size     int64
	MimeType string
	Data     []byte
}

// Options tunes validation per call site.
type Options struct {
	MaxSize          int64
	AllowedTypes     []string
	StrictValidation bool
}

// Result is the verdict on a file. Reason and Category are set when Valid is false.
type Result struct {
	Valid             bool
	Category          Category
	Reason            string
	SanitizedFileName string
	DetectedType      string
}

// Validator classifies uploaded files as accepted or rejected.
type Validator struct {
	patterns []*regexp.Regexp
}

// NewValidator builds Validator with the built-in suspicious name patterns.
func NewValidator() *Validator {
	return &Validator{patterns: defaultSuspiciousPatterns}
}

// Validate runs the checks in order and stops at the first failure.
func (v *Validator) Validate(file File, opts Options) Result {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	allowed := opts.AllowedTypes
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}

	size := file.Size
	if len(file.Data) > 0 {
		size = int64(len(file.Data))
	}

	if size > maxSize {
		return reject(CategoryValidationFailed, fmt.Sprintf("File exceeds maximum size of %d bytes", maxSize))
	}
	if size < MinFileSize {
		return reject(CategoryValidationFailed, "File appears to be corrupted or invalid")
	}
	if format, ok := DetectExecutable(file.Data); ok {
		return reject(CategorySuspiciousFile, fmt.Sprintf("File content matches %s signature", format))
	}

	declared := normalizeType(file.MimeType)
	if !containsType(allowed, declared) {
		return reject(CategoryValidationFailed, fmt.Sprintf("File type %q is not allowed", declared))
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if expected, ok := extensionTypes[ext]; !ok || !slices.Contains(expected, declared) {
		return reject(CategoryValidationFailed, "File extension does not match type")
	}

	for _, p := range v.patterns {
		if p.MatchString(file.Name) {
			return reject(CategorySuspiciousFile, "File name contains suspicious patterns")
		}
	}

	var detected string
	if len(file.Data) > 0 {
		mt := mimetype.Detect(file.Data)
		detected = mt.String()
		if opts.StrictValidation && !textualTypes[declared] && !mt.Is(canonicalType(declared)) {
			return reject(CategorySuspiciousFile, "File content does not match declared type")
		}
	}

	return Result{
		Valid:             true,
		SanitizedFileName: SanitizeFileName(file.Name),
		DetectedType:      detected,
	}
}

func reject(category Category, reason string) Result {
	return Result{Category: category, Reason: reason}
}

func normalizeType(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}

func canonicalType(t string) string {
	if t == "image/jpg" {
		return "image/jpeg"
	}
	return t
}

func containsType(allowed []string, t string) bool {
	for _, a := range allowed {
		if normalizeType(a) == t {
			return true
		}
	}
	return false
}
