package sniff

// Rule names the rule that produced a verdict. Every Result carries one.
type Rule string

// Rules, in the order they are evaluated.
const (
	RuleEmpty             Rule = "empty"
	RuleSignature         Rule = "signature"
	RuleNullBytes         Rule = "null-bytes"
	RuleMimeText          Rule = "mime-text"
	RuleMimeTextVeto      Rule = "mime-text-veto"
	RuleMimeBinary        Rule = "mime-binary"
	RuleBinaryExtension   Rule = "binary-extension"
	RuleTextExtension     Rule = "text-extension"
	RuleTextExtensionVeto Rule = "text-extension-veto"
	RuleNonPrintable      Rule = "non-printable"
	RuleUTF8ASCII         Rule = "utf8-ascii"
	RuleTextPatterns      Rule = "text-patterns"
	RuleUTF8LowControl    Rule = "utf8-low-control"
	RuleLineLength        Rule = "line-length"
	RuleUncertain         Rule = "uncertain"
	RuleFallbackText      Rule = "fallback-text"
	RuleFallbackBinary    Rule = "fallback-binary"
)

// BinaryPlaceholder is what callers embed in place of binary content.
const BinaryPlaceholder = "Binary file"

// Result is the verdict for one buffer. IsText and IsBinary are always opposites.
type Result struct {
	IsText   bool `json:"isText"   yaml:"isText"`
	IsBinary bool `json:"isBinary" yaml:"isBinary"`
	// Encoding is set for text verdicts when the character set is known.
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	// MimeType is the declared MIME type, or one found by content.
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	// Extension is the lower-cased file name extension, including the dot.
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`
	// Language is only set when the Classifier has DetectLanguage enabled.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	// Confidence is a trust score between 0 and 1, useful for ranking, not a probability.
	Confidence float64 `json:"confidence" yaml:"confidence"`
	// Reason is a diagnostic message. Do not parse it; use Rule.
	Reason string `json:"reason" yaml:"reason"`
	Rule   Rule   `json:"rule"   yaml:"rule"`
	// Inner is the verdict for the first member of a container, when peeking is enabled.
	Inner *Result `json:"inner,omitempty" yaml:"inner,omitempty"`
}

// newResult is the only place a Result is built, which keeps IsText and IsBinary in step.
func newResult(isText bool, confidence float64, rule Rule, reason string) *Result {
	return &Result{
		IsText:     isText,
		IsBinary:   !isText,
		Confidence: confidence,
		Rule:       rule,
		Reason:     reason,
	}
}

// setText flips the verdict, keeping IsBinary in step.
func (r *Result) setText(isText bool) {
	r.IsText = isText
	r.IsBinary = !isText
}

// Placeholder returns BinaryPlaceholder for binary results and "" for text.
func (r *Result) Placeholder() string {
	if r == nil || r.IsText {
		return ""
	}

	return BinaryPlaceholder
}
