package sniff

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

/* Encoding detection only. Non-UTF-8 content is named, never converted. */

const encodingUTF8 = "utf-8"

// decodeLenient turns a sample into a string for pattern scoring. A leading BOM is
// dropped and invalid sequences become U+FFFD. It never fails.
func decodeLenient(sample []byte) string {
	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(sample)
	if err != nil {
		return strings.ToValidUTF8(string(sample), "�")
	}

	return string(decoded)
}

// detectEncoding names the character encoding of a text sample. UTF-8 is
// reported without further detection. Returns "" when nothing is confident.
func detectEncoding(sample []byte, utf8Valid bool) string {
	if utf8Valid {
		return encodingUTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil || result.Charset == "" {
		return ""
	}

	return canonicalCharset(result.Charset)
}

// canonicalCharset maps a detector charset name to its IANA name, lower-cased.
// Unknown names are passed through lower-cased.
func canonicalCharset(name string) string {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return strings.ToLower(name)
	}

	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return strings.ToLower(name)
	}

	return strings.ToLower(canonical)
}
