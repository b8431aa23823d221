// Package staged collects the changes staged in a git repository and prepares them
// for embedding in a language-model prompt. Every staged file is run through the
// sniff classifier; binary files are replaced with a placeholder and text files
// carry a line diff between HEAD and the index.
package staged
