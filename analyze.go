package sniff

import (
	"unicode/utf8"
)

// analysis is the numeric profile of a sample. Computed fresh for every call.
type analysis struct {
	nullBytes         bool
	nonPrintableRatio float64
	asciiRatio        float64
	controlRatio      float64
	avgLineLength     float64
	maxLineLength     int
	utf8Valid         bool
	textPatterns      bool
	patternScore      float64
}

// analyze runs the deep statistical pass over the first deepWindow bytes of buf.
// buf must not be empty.
func analyze(buf []byte) *analysis {
	sample := window(buf, deepWindow)

	var ascii, control, nonPrintable, lineBreaks, lineLength, maxLineLength int

	for _, b := range sample {
		if b == '\n' || b == '\r' {
			lineBreaks++
			maxLineLength = max(maxLineLength, lineLength)
			lineLength = 0
		} else {
			lineLength++
		}

		switch {
		case b >= 0x20 && b <= 0x7E:
			ascii++
		case isControl(b):
			control++

			if isNonPrintable(b) {
				nonPrintable++
			}
		}
	}

	maxLineLength = max(maxLineLength, lineLength)
	total := float64(len(sample))

	avgLineLength := total
	if lineBreaks > 0 {
		avgLineLength = (total - float64(lineBreaks)) / float64(lineBreaks)
	}

	score := scoreText(decodeLenient(window(sample, decodeWindow)))

	return &analysis{
		nullBytes:         hasNullBytes(sample),
		nonPrintableRatio: float64(nonPrintable) / total,
		asciiRatio:        float64(ascii) / total,
		controlRatio:      float64(control) / total,
		avgLineLength:     avgLineLength,
		maxLineLength:     maxLineLength,
		utf8Valid:         validUTF8(sample, len(sample) == deepWindow),
		textPatterns:      score > patternThreshold,
		patternScore:      score,
	}
}

// validUTF8 strictly validates sample. When the sample fills the whole analysis
// window, a multi-byte rune split by the window edge is not counted as invalid,
// so a buffer and its 8KiB prefix always agree.
func validUTF8(sample []byte, truncated bool) bool {
	if utf8.Valid(sample) {
		return true
	}

	if !truncated {
		return false
	}

	// A rune is at most 4 bytes, so at most 3 trailing bytes can be an incomplete rune.
	for cut := 1; cut < utf8.UTFMax && cut < len(sample); cut++ {
		head, tail := sample[:len(sample)-cut], sample[len(sample)-cut:]
		if utf8.RuneStart(tail[0]) && !utf8.FullRune(tail) && utf8.Valid(head) {
			return true
		}
	}

	return false
}
