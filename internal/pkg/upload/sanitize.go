package upload

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxFileNameBytes bounds sanitized names to common filesystem limits.
const MaxFileNameBytes = 255

const fallbackFileName = "file"

var reservedReplacer = strings.NewReplacer(
	"/", "_", `\`, "_",
	"<", "_", ">", "_", ":", "_", `"`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeFileName makes a client supplied name safe to log and store.
// The result contains no path separators, control characters or <>:"|?*,
// is at most MaxFileNameBytes long and keeps the original extension.
// SanitizeFileName(SanitizeFileName(x)) == SanitizeFileName(x).
func SanitizeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < 32 || c == 127 {
			continue
		}
		b.WriteByte(c)
	}

	cleaned := reservedReplacer.Replace(b.String())
	if cleaned == "" {
		return fallbackFileName
	}
	if len(cleaned) <= MaxFileNameBytes {
		return cleaned
	}

	ext := filepath.Ext(cleaned)
	if len(ext) >= MaxFileNameBytes/2 {
		return truncateUTF8(cleaned, MaxFileNameBytes)
	}
	base := truncateUTF8(strings.TrimSuffix(cleaned, ext), MaxFileNameBytes-len(ext))
	return base + ext
}

// truncateUTF8 cuts s to at most n bytes without splitting a multi-byte rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
