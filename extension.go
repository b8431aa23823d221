package sniff

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Prior is a belief about a file's content derived from its extension alone.
type Prior int

// Extension priors, from strongest to weakest.
const (
	PriorUnknown Prior = iota
	PriorText
	PriorBinary
	PriorLikelyText
	PriorLikelyBinary
)

// String returns the name of the prior.
func (p Prior) String() string {
	switch p {
	case PriorText:
		return "text"
	case PriorBinary:
		return "binary"
	case PriorLikelyText:
		return "likely-text"
	case PriorLikelyBinary:
		return "likely-binary"
	case PriorUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

// textExtensions holds extensions that are almost always text.
// A file with one of these still has to pass the quick content scan.
//
//nolint:gochecknoglobals
var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".json": true, ".xml": true, ".html": true,
	".htm": true, ".css": true, ".js": true, ".ts": true, ".jsx": true,
	".tsx": true, ".py": true, ".java": true, ".c": true, ".cpp": true,
	".h": true, ".hpp": true, ".cs": true, ".php": true, ".rb": true,
	".go": true, ".rs": true, ".sql": true, ".sh": true, ".bat": true,
	".ps1": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".cfg": true, ".conf": true, ".log": true, ".csv": true, ".tsv": true,
	".gitignore": true, ".gitattributes": true, ".dockerfile": true, ".env": true,
}

// binaryExtensions holds documents, archives, executables, media and fonts.
//
//nolint:gochecknoglobals
var binaryExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".zip": true, ".rar": true, ".7z": true,
	".tar": true, ".gz": true, ".bz2": true, ".exe": true, ".dll": true,
	".so": true, ".dylib": true, ".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".bmp": true, ".tiff": true, ".ico": true, ".svg": true,
	".mp3": true, ".wav": true, ".flac": true, ".ogg": true, ".mp4": true,
	".avi": true, ".mkv": true, ".mov": true, ".wmv": true, ".webm": true,
	".webp": true, ".ttf": true, ".otf": true, ".woff": true, ".woff2": true,
}

// The likely-* patterns overlap the definite sets above. They are only
// consulted for extensions missing from both sets and only bias confidence.
//
//nolint:gochecknoglobals
var (
	likelyTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\.(txt|text|md|markdown|readme)$`),
		regexp.MustCompile(`(?i)^\.(json|xml|yaml|yml|toml|ini|cfg|conf)$`),
		regexp.MustCompile(`(?i)^\.(html|htm|css|js|ts|jsx|tsx)$`),
		regexp.MustCompile(`(?i)^\.(py|java|c|cpp|h|hpp|cs|php|rb|go|rs|swift)$`),
		regexp.MustCompile(`(?i)^\.(sql|sh|bat|ps1|cmd|bash|zsh|fish)$`),
		regexp.MustCompile(`(?i)^\.(log|csv|tsv|dat|config)$`),
		regexp.MustCompile(`(?i)^\..*rc$`), // .bashrc, .vimrc, etc.
		regexp.MustCompile(`(?i)^\.(env|gitignore|gitattributes|dockerignore)$`),
	}
	likelyBinaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\.(exe|dll|so|dylib|lib|a|o)$`),
		regexp.MustCompile(`(?i)^\.(jpg|jpeg|png|gif|bmp|tiff|ico|webp|svg)$`),
		regexp.MustCompile(`(?i)^\.(mp3|wav|flac|ogg|aac|mp4|avi|mkv|mov|wmv|webm)$`),
		regexp.MustCompile(`(?i)^\.(pdf|doc|docx|xls|xlsx|ppt|pptx|odt|ods|odp)$`),
		regexp.MustCompile(`(?i)^\.(zip|rar|7z|tar|gz|bz2|xz|lzma)$`),
		regexp.MustCompile(`(?i)^\.(ttf|otf|woff|woff2|eot)$`),
		regexp.MustCompile(`(?i)^\.(bin|dat|db|sqlite|mdb)$`),
	}
)

// Extension returns the lower-cased extension of filename, including the dot.
// Only the base name is considered. Returns "" if there is no dot or the name ends in one.
func Extension(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}

	dot := strings.LastIndexByte(base, '.')
	if dot == -1 || dot == len(base)-1 {
		return ""
	}

	return strings.ToLower(base[dot:])
}

// ExtensionPrior returns the prior for an extension as returned by Extension().
// The definite sets are checked first, then the looser pattern predicates.
func ExtensionPrior(ext string) Prior {
	ext = strings.ToLower(ext)

	switch {
	case ext == "":
		return PriorUnknown
	case binaryExtensions[ext]:
		return PriorBinary
	case textExtensions[ext]:
		return PriorText
	case likelyText(ext):
		return PriorLikelyText
	case likelyBinary(ext):
		return PriorLikelyBinary
	default:
		return PriorUnknown
	}
}

func likelyText(ext string) bool {
	return matchAny(likelyTextPatterns, ext)
}

func likelyBinary(ext string) bool {
	return matchAny(likelyBinaryPatterns, ext)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}

	return false
}

// mimePrior is the verdict suggested by a declared MIME type.
type mimePrior int

const (
	mimeUnknown mimePrior = iota
	mimeText
	mimeBinary
)

// textMimeTypes are application types that carry text.
//
//nolint:gochecknoglobals
var textMimeTypes = map[string]bool{
	"application/json":       true,
	"application/xml":        true,
	"application/javascript": true,
	"application/x-sh":       true,
	"application/x-python":   true,
}

// normalizeMime lower-cases a MIME type and strips any parameters.
func normalizeMime(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// classifyMime returns the prior for an already normalized MIME type.
func classifyMime(mimeType string) mimePrior {
	switch {
	case mimeType == "":
		return mimeUnknown
	case strings.HasPrefix(mimeType, "text/") || textMimeTypes[mimeType]:
		return mimeText
	case strings.HasPrefix(mimeType, "image/"),
		strings.HasPrefix(mimeType, "video/"),
		strings.HasPrefix(mimeType, "audio/"):
		return mimeBinary
	case strings.HasPrefix(mimeType, "application/") &&
		!strings.Contains(mimeType, "json") &&
		!strings.Contains(mimeType, "xml") &&
		!strings.Contains(mimeType, "javascript"):
		return mimeBinary
	default:
		return mimeUnknown
	}
}
