package sniff

import (
	"github.com/gabriel-vasile/mimetype"
)

// sniffMime names the format of a binary sample that matched no signature and
// arrived without a declared type. Returns "" when nothing better than
// application/octet-stream is found.
func sniffMime(sample []byte) string {
	detected := mimetype.Detect(sample)
	if detected == nil || detected.Is("application/octet-stream") {
		return ""
	}

	return detected.String()
}
