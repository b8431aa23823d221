package sniff

import (
	"fmt"
)

// Confidence levels used by the decision engine.
const (
	confSignature    = 0.95
	confNullBytes    = 0.95
	confNonPrintable = 0.9
	confUTF8ASCII    = 0.8
	confPatterns     = 0.75
	confLowControl   = 0.7
	confLineLength   = 0.65
	confUncertain    = 0.5
	confFallback     = 0.65

	// Decisions at or above this are never adjusted by the extension.
	confStrong = 0.9
	// Below this the coarse fallback heuristic gets a say.
	confSettled = 0.6
)

// Decision thresholds.
const (
	nonPrintableLimit    = 0.3
	asciiTextLimit       = 0.7
	lowControlLimit      = 0.1
	lineLengthLimit      = 200
	lineASCIILimit       = 0.5
	fallbackASCII        = 0.8
	fallbackNonPrintable = 0.05
	fallbackBinaryNonPr  = 0.1
	fallbackBinaryCtrl   = 0.2
)

// decide merges a deep analysis and an optional extension into a verdict.
// The first conclusive rule wins; the extension only adjusts confidence.
func decide(info *analysis, ext string) *Result {
	if info.nullBytes {
		return newResult(false, confNullBytes, RuleNullBytes, "contains null bytes - definitely binary")
	}

	if info.nonPrintableRatio > nonPrintableLimit {
		return newResult(false, confNonPrintable, RuleNonPrintable,
			"high non-printable ratio: "+percent(info.nonPrintableRatio))
	}

	var result *Result

	switch {
	case info.utf8Valid && info.asciiRatio > asciiTextLimit:
		result = newResult(true, confUTF8ASCII, RuleUTF8ASCII,
			fmt.Sprintf("valid UTF-8 with %s ASCII", percent(info.asciiRatio)))
	case info.textPatterns:
		result = newResult(true, confPatterns, RuleTextPatterns, "contains common text patterns")
	case info.utf8Valid && info.controlRatio < lowControlLimit:
		result = newResult(true, confLowControl, RuleUTF8LowControl, "valid UTF-8 with low control characters")
	case info.avgLineLength < lineLengthLimit && info.asciiRatio > lineASCIILimit:
		result = newResult(true, confLineLength, RuleLineLength, "reasonable line length with decent ASCII ratio")
	default:
		result = newResult(false, confUncertain, RuleUncertain, "uncertain content analysis")
	}

	if ext != "" && result.Confidence < confStrong {
		adjustForExtension(result, ext)
	}

	if result.Confidence < confSettled {
		fallback(result, info)
	}

	return result
}

// adjustForExtension moves confidence toward or away from the extension's prior.
// It never flips the verdict; conflicts are recorded in the reason.
//
//nolint:mnd
func adjustForExtension(result *Result, ext string) {
	switch prior := ExtensionPrior(ext); {
	case prior == PriorText && result.IsText:
		result.Confidence = min(result.Confidence+0.15, 0.95)
		result.Reason += fmt.Sprintf(" (known text extension: %s)", ext)
	case prior == PriorText:
		result.Confidence = max(result.Confidence, 0.6)
		result.Reason += fmt.Sprintf(" (text extension %s but questionable content)", ext)
	case prior == PriorBinary && result.IsBinary:
		result.Confidence = min(result.Confidence+0.15, 0.95)
		result.Reason += fmt.Sprintf(" (known binary extension: %s)", ext)
	case prior == PriorBinary:
		result.Confidence = max(result.Confidence-0.2, 0.3)
		result.Reason += fmt.Sprintf(" (binary extension %s but text-like content - suspicious)", ext)
	case prior == PriorLikelyText && result.IsText:
		result.Confidence = min(result.Confidence+0.1, 0.9)
		result.Reason += fmt.Sprintf(" (likely text extension: %s)", ext)
	case prior == PriorLikelyBinary && result.IsBinary:
		result.Confidence = min(result.Confidence+0.1, 0.9)
		result.Reason += fmt.Sprintf(" (likely binary extension: %s)", ext)
	case prior == PriorLikelyBinary:
		result.Confidence = max(result.Confidence-0.1, 0.4)
		result.Reason += fmt.Sprintf(" (likely binary extension %s but text content)", ext)
	case prior == PriorUnknown:
		result.Reason += fmt.Sprintf(" (unknown extension: %s)", ext)
	}
}

// fallback is the coarse heuristic applied while confidence is still low.
func fallback(result *Result, info *analysis) {
	switch {
	case info.asciiRatio > fallbackASCII && info.nonPrintableRatio < fallbackNonPrintable:
		result.setText(true)
		result.Confidence = confFallback
		result.Rule = RuleFallbackText
		result.Reason = "high ASCII ratio with minimal non-printable chars"
	case info.nonPrintableRatio > fallbackBinaryNonPr || info.controlRatio > fallbackBinaryCtrl:
		result.setText(false)
		result.Confidence = confFallback
		result.Rule = RuleFallbackBinary
		result.Reason = "high ratio of problematic characters"
	}
}
