package sniff

import (
	"fmt"
)

// Confidence of quick verdicts that come from metadata.
const (
	confMime          = 0.85
	confExtension     = 0.8
	confExtensionVeto = 0.9
	confEmpty         = 0.3
)

// maxPeekDepth bounds how many containers deep Peek will look. Two is enough to
// reach the first member of a compressed tarball.
const maxPeekDepth = 2

// Classifier holds optional classification features. The zero value (or a nil
// pointer) is ready to use, behaves exactly like Classify(), and is safe for
// concurrent use.
type Classifier struct {
	// Logger receives a debug line for every verdict and for containers that
	// could not be read. A decoder that panics is reported with Printf.
	// Nil means no logging.
	Logger Logger
	// Peek opens compressed streams and archives found in binary buffers and
	// classifies their first member into Result.Inner.
	Peek bool
	// DetectLanguage fills Result.Language for text verdicts.
	DetectLanguage bool
}

// Classify decides whether buf is text or binary. filename and mimeType are optional;
// pass "" when unknown. Only the extension of filename is used.
func Classify(buf []byte, filename, mimeType string) *Result {
	return (&Classifier{}).Classify(buf, filename, mimeType)
}

// Classify decides whether buf is text or binary using the Classifier's options.
func (c *Classifier) Classify(buf []byte, filename, mimeType string) *Result {
	if c == nil {
		c = &Classifier{}
	}

	return c.classify(buf, filename, mimeType, maxPeekDepth)
}

func (c *Classifier) classify(buf []byte, filename, mimeType string, depth int) *Result {
	ext := Extension(filename)
	mimeType = normalizeMime(mimeType)

	result := quickDetection(buf, ext, mimeType)
	if result == nil {
		info := analyze(buf)
		result = decide(info, ext)
		c.debugf("deep analysis of %q: ascii=%s control=%s non-printable=%s avg-line=%.1f max-line=%d "+
			"utf8=%t patterns=%.3f", filename, percent(info.asciiRatio), percent(info.controlRatio),
			percent(info.nonPrintableRatio), info.avgLineLength, info.maxLineLength, info.utf8Valid, info.patternScore)
	}

	result.Extension = ext
	c.enrich(result, buf, filename, mimeType)
	c.debugf("classified %q as %s (rule: %s, confidence: %.2f): %s",
		filename, verdict(result), result.Rule, result.Confidence, result.Reason)

	if c.Peek && depth > 0 && result.IsBinary {
		result.Inner = c.peek(buf, filename, depth)
	}

	return result
}

// quickDetection runs the cheap checks: signatures, null bytes, MIME type and the
// definite extension sets. Returns nil when none of them is conclusive.
func quickDetection(buf []byte, ext, mimeType string) *Result {
	if len(buf) == 0 {
		return newResult(true, confEmpty, RuleEmpty, "empty")
	}

	if sig := matchSignature(buf); sig != nil {
		result := newResult(false, confSignature, RuleSignature, "detected "+sig.Description+" magic bytes")
		result.MimeType = sig.MimeType

		return result
	}

	if hasNullBytes(buf) {
		return newResult(false, confNullBytes, RuleNullBytes, "contains null bytes - definitely binary")
	}

	switch classifyMime(mimeType) {
	case mimeText:
		if quick := quickScan(buf); quick.likelyBinary {
			return newResult(false, confExtensionVeto, RuleMimeTextVeto,
				fmt.Sprintf("binary content despite text MIME type %s: %s", mimeType, quick.reason))
		}

		return newResult(true, confMime, RuleMimeText, "text MIME type: "+mimeType)
	case mimeBinary:
		return newResult(false, confMime, RuleMimeBinary, "binary MIME type: "+mimeType)
	case mimeUnknown:
	}

	switch {
	case ext == "":
		return nil
	case binaryExtensions[ext]:
		return newResult(false, confExtension, RuleBinaryExtension, "known binary extension: "+ext)
	case textExtensions[ext]:
		if quick := quickScan(buf); quick.likelyBinary {
			return newResult(false, confExtensionVeto, RuleTextExtensionVeto,
				fmt.Sprintf("binary content despite text extension %s: %s", ext, quick.reason))
		}

		return newResult(true, confExtension, RuleTextExtension, fmt.Sprintf("known text extension %s with valid content", ext))
	default:
		return nil
	}
}

// enrich fills the descriptive fields: MIME type, encoding and language.
func (c *Classifier) enrich(result *Result, buf []byte, filename, mimeType string) {
	if result.MimeType == "" {
		result.MimeType = mimeType
	}

	if result.IsBinary {
		if result.MimeType == "" && len(buf) > 0 {
			result.MimeType = sniffMime(window(buf, deepWindow))
		}

		return
	}

	sample := window(buf, deepWindow)
	result.Encoding = detectEncoding(sample, validUTF8(sample, len(sample) == deepWindow))

	if c.DetectLanguage {
		result.Language = detectLanguage(filename, sample)
	}
}

func (c *Classifier) debugf(msg string, v ...any) {
	if c.Logger != nil {
		c.Logger.Debugf(msg, v...)
	}
}

func (c *Classifier) printf(msg string, v ...any) {
	if c.Logger != nil {
		c.Logger.Printf(msg, v...)
	}
}

func verdict(result *Result) string {
	if result.IsText {
		return "text"
	}

	return "binary"
}
