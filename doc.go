// Package sniff decides whether a byte buffer is text or binary. It can be
// used in two ways. The simplest method is to pass a buffer, and optionally a
// file name and a declared MIME type, to Classify(). This returns a Result with
// a verdict, a confidence score between 0 and 1, and the reason the verdict was
// reached.
//
// The other way is to fill out a Classifier. A Classifier can log every decision,
// detect the programming language of text content, and peek inside compressed
// streams and archives to report what they contain. A zero Classifier works the
// same as Classify() and is safe for concurrent use.
//
// Classification never fails. Malformed or adversarial input degrades the
// confidence score instead of returning an error, and only a bounded prefix of
// the buffer (8KiB) is ever inspected.
package sniff
