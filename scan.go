package sniff

import (
	"bytes"
	"fmt"
)

// Analysis windows. Nothing past deepWindow is ever inspected.
const (
	quickWindow  = 1024
	deepWindow   = 8192
	decodeWindow = 2048
)

// Quick scan thresholds.
const (
	quickNonPrintableLimit = 0.10
	quickControlLimit      = 0.30
)

// window returns at most size bytes from the start of buf without copying.
func window(buf []byte, size int) []byte {
	return buf[:min(len(buf), size)]
}

// hasNullBytes reports whether a 0x00 byte appears in the first deepWindow bytes.
func hasNullBytes(buf []byte) bool {
	return bytes.IndexByte(window(buf, deepWindow), 0) != -1
}

// isWhitespaceControl reports tab, LF and CR, the control bytes text is allowed to contain.
func isWhitespaceControl(b byte) bool {
	return b == '\t' || b == '\n' || b == '\r'
}

// isControl reports C0 control bytes and DEL, excluding tab, LF and CR.
func isControl(b byte) bool {
	return (b < 0x20 || b == 0x7F) && !isWhitespaceControl(b)
}

// isNonPrintable reports control bytes outside the 0x09-0x0D whitespace range.
func isNonPrintable(b byte) bool {
	return b < 0x09 || (b > 0x0D && b < 0x20)
}

// quickResult is the output of quickScan.
type quickResult struct {
	likelyBinary bool
	reason       string
}

// quickScan is a cheap pass over the first quickWindow bytes.
// It is used to veto text priors from extensions and MIME types.
func quickScan(buf []byte) quickResult {
	sample := window(buf, quickWindow)
	if len(sample) == 0 {
		return quickResult{reason: "content looks text-like"}
	}

	var nonPrintable, control int

	for _, b := range sample {
		if !isControl(b) {
			continue
		}

		control++

		if isNonPrintable(b) {
			nonPrintable++
		}
	}

	nonPrintableRatio := float64(nonPrintable) / float64(len(sample))
	controlRatio := float64(control) / float64(len(sample))

	switch {
	case nonPrintableRatio > quickNonPrintableLimit:
		return quickResult{
			likelyBinary: true,
			reason:       fmt.Sprintf("high non-printable ratio: %s", percent(nonPrintableRatio)),
		}
	case controlRatio > quickControlLimit:
		return quickResult{
			likelyBinary: true,
			reason:       fmt.Sprintf("high control char ratio: %s", percent(controlRatio)),
		}
	default:
		return quickResult{reason: "content looks text-like"}
	}
}

// percent formats a ratio as a percentage with one decimal.
func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100) //nolint:mnd
}
