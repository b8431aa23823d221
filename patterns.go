package sniff

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// patternThreshold is deliberately low: hiding a readable file behind a binary
// placeholder is worse than embedding a marginal one.
const patternThreshold = 0.3

// Bonuses added to the matched weight only, never to the total.
const (
	naturalLanguageBonus = 0.5
	whitespaceBonus      = 0.3
	structureBonus       = 0.4
	minWordsForProse     = 10
	minWhitespaceRatio   = 0.1
	maxWhitespaceRatio   = 0.8
)

// patternRule is a weighted regular expression. Rules are independent; order does not matter.
type patternRule struct {
	re     *regexp.Regexp
	weight float64
	desc   string
}

func rule(pattern string, weight float64, desc string) patternRule {
	return patternRule{re: regexp.MustCompile(pattern), weight: weight, desc: desc}
}

// basicPatterns each weigh 1.0. Anchors apply to the whole sample, not each line.
//
//nolint:gochecknoglobals
var basicPatterns = []patternRule{
	rule(`^[\x20-\x7E\s]*$`, 1, "ASCII printable and whitespace"),
	rule(`^[\x00-\x7F]*$`, 1, "ASCII"),
	rule(`^\s*[\{\[<]`, 1, "starts with bracket"),
	rule(`^\s*#`, 1, "starts with hash comment"),
	rule(`^\s*//`, 1, "starts with line comment"),
	rule(`^\s*/\*`, 1, "starts with block comment"),
	rule(`^#!`, 1, "shebang"),
	rule(`^\s*<\?xml`, 1, "XML declaration"),
	rule(`^\s*<!DOCTYPE`, 1, "HTML doctype"),
	rule(`^\s*function\s+\w+`, 1, "function declaration"),
	rule(`^\s*class\s+\w+`, 1, "class declaration"),
	rule(`^\s*(import|export|require)\s+`, 1, "module import"),
	rule(`^\s*(def|function|func|proc)\s+\w+`, 1, "function definition"),
	rule(`^\s*(public|private|protected)\s+`, 1, "access modifier"),
	rule(`^\s*\w+\s*[:=]\s*`, 1, "assignment"),
	rule(`^\s*[A-Za-z_]\w*\s*\(`, 1, "function call"),
	rule(`\b(true|false|null|undefined|None|True|False)\b`, 1, "common literal"),
	rule(`\b(if|else|for|while|do|switch|case|try|catch|finally)\b`, 1, "control structure"),
	rule(`^\s*\d+\.\s+`, 1, "numbered list"),
	rule(`^\s*[-*+]\s+`, 1, "bullet list"),
	rule(`^\s*\|\s*.*\s*\|`, 1, "table row"),
}

// advancedPatterns carry their own weights.
//
//nolint:gochecknoglobals,mnd
var advancedPatterns = []patternRule{
	// Programming languages.
	rule(`\b(console\.log|print|echo|puts)\b`, 0.8, "output statement"),
	rule(`\b(return|yield|throw|raise)\b`, 0.7, "control flow"),
	rule(`\b(int|str|bool|float|double|char|void)\b`, 0.6, "data type"),
	rule(`[{}();,]`, 0.3, "code syntax"),
	// Markup languages.
	rule(`</?\w+[^>]*>`, 0.8, "HTML/XML tag"),
	rule(`&\w+;`, 0.5, "HTML entity"),
	// Data formats.
	rule(`"[^"]*":\s*[^,}]+`, 0.7, "JSON key-value"),
	rule(`^\s*\w+:\s*.*$`, 0.4, "YAML/config format"),
	rule(`^\s*\[\w+\]`, 0.5, "INI section"),
	// Documentation.
	rule(`^\s*#+\s+`, 0.6, "Markdown header"),
	rule(`\*\*[^*]+\*\*|\*[^*]+\*`, 0.4, "Markdown emphasis"),
	rule(`\[[^\]]*\]\([^)]*\)`, 0.5, "Markdown link"),
	// Common text.
	rule(`\b[A-Z][a-z]+\s+[A-Z][a-z]+`, 0.3, "proper nouns"),
	rule(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`, 0.2, "date"),
	rule(`\b\w+@\w+\.\w+\b`, 0.4, "email address"),
	rule(`https?://\S+`, 0.4, "URL"),
}

//nolint:gochecknoglobals
var (
	wordRe      = regexp.MustCompile(`\w+`)
	sentenceRe  = regexp.MustCompile(`[.!?]+`)
	codeRe      = regexp.MustCompile(`[\{\};\(\)\[\]]`)
	markupRe    = regexp.MustCompile(`<[^>]+>`)
	dataShapeRe = regexp.MustCompile(`[:"'\{\}\[\],]`)
)

// totalPatternWeight is the denominator of scoreText. Bonuses are not part of it.
//
//nolint:gochecknoglobals
var totalPatternWeight = func() float64 {
	total := 0.0
	for _, r := range basicPatterns {
		total += r.weight
	}

	for _, r := range advancedPatterns {
		total += r.weight
	}

	return total
}()

// scoreText returns the normalized weight of text indicators found in text.
// The result can exceed 1 because of the bonuses; only the threshold comparison matters.
func scoreText(text string) float64 {
	if text == "" {
		return 0
	}

	matched := 0.0

	for _, r := range basicPatterns {
		if r.re.MatchString(text) {
			matched += r.weight
		}
	}

	for _, r := range advancedPatterns {
		if r.re.MatchString(text) {
			matched += r.weight
		}
	}

	if len(wordRe.FindAllStringIndex(text, minWordsForProse+1)) > minWordsForProse && sentenceRe.MatchString(text) {
		matched += naturalLanguageBonus
	}

	if ratio := whitespaceRatio(text); ratio > minWhitespaceRatio && ratio < maxWhitespaceRatio {
		matched += whitespaceBonus
	}

	if codeRe.MatchString(text) || markupRe.MatchString(text) || dataShapeRe.MatchString(text) {
		matched += structureBonus
	}

	return matched / totalPatternWeight
}

// whitespaceRatio is the share of runes in text that are whitespace.
func whitespaceRatio(text string) float64 {
	var spaces int

	for _, r := range text {
		if unicode.IsSpace(r) {
			spaces++
		}
	}

	return float64(spaces) / float64(utf8.RuneCountInString(text))
}
