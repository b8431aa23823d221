package sniff

/* Code to detect binary formats by file signatures (magic numbers). */

import (
	"bytes"
)

// signature maps a byte pattern at the start of a buffer to a MIME type.
type signature struct {
	// Magic is the byte sequence to match at offset 0.
	Magic []byte
	// MimeType is reported in the Result when this signature matches.
	MimeType string
	// Description is the human readable format name used in the reason.
	Description string
}

// binarySignatures is checked before anything else. Order matters: the first match wins.
//
//nolint:gochecknoglobals
var binarySignatures = []signature{
	{Magic: []byte{0x25, 0x50, 0x44, 0x46}, MimeType: "application/pdf", Description: "PDF"},
	{Magic: []byte{0x50, 0x4B, 0x03, 0x04}, MimeType: "application/zip", Description: "ZIP/Office"},
	{Magic: []byte{0x50, 0x4B, 0x05, 0x06}, MimeType: "application/zip", Description: "ZIP/Office"},
	{Magic: []byte{0x50, 0x4B, 0x07, 0x08}, MimeType: "application/zip", Description: "ZIP/Office"},
	{Magic: []byte{0xFF, 0xD8, 0xFF}, MimeType: "image/jpeg", Description: "JPEG"},
	{Magic: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, MimeType: "image/png", Description: "PNG"},
	{Magic: []byte{0x47, 0x49, 0x46, 0x38}, MimeType: "image/gif", Description: "GIF"},
	{Magic: []byte{0x42, 0x4D}, MimeType: "image/bmp", Description: "BMP"},
	{Magic: []byte{0x7F, 0x45, 0x4C, 0x46}, MimeType: "application/octet-stream", Description: "ELF"},
	{Magic: []byte{0x4D, 0x5A}, MimeType: "application/octet-stream", Description: "EXE"},
	{Magic: []byte{0xCA, 0xFE, 0xBA, 0xBE}, MimeType: "application/octet-stream", Description: "Java Class"},
	{Magic: []byte{0xFE, 0xED, 0xFA, 0xCE}, MimeType: "application/octet-stream", Description: "Mach-O"},
	{Magic: []byte{0xFE, 0xED, 0xFA, 0xCF}, MimeType: "application/octet-stream", Description: "Mach-O"},
}

// matchSignature returns the first binary signature the buffer starts with, or nil.
func matchSignature(buf []byte) *signature {
	for i := range binarySignatures {
		if bytes.HasPrefix(buf, binarySignatures[i].Magic) {
			return &binarySignatures[i]
		}
	}

	return nil
}

// container maps a byte pattern at a specific offset to a peek function.
// Only consulted by a Classifier with Peek enabled, after a binary verdict.
type container struct {
	// Offset is the byte offset where the magic bytes are expected.
	Offset int
	// Magic is the byte sequence to match at Offset.
	Magic []byte
	// Name of the container format, used in logs and errors.
	Name string
	// Peek returns the first member of this container.
	Peek peekFunc
}

// containerSignatures maps container signatures to the functions that open them.
//
//nolint:gochecknoglobals
var containerSignatures = []container{
	// RAR v5 (longer match first).
	{Offset: 0, Magic: []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, Name: "rar", Peek: peekRAR},
	// RAR v4.
	{Offset: 0, Magic: []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00}, Name: "rar", Peek: peekRAR},
	// 7-Zip.
	{Offset: 0, Magic: []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, Name: "7z", Peek: peek7z},
	// ZIP (PK\x03\x04).
	{Offset: 0, Magic: []byte{0x50, 0x4B, 0x03, 0x04}, Name: "zip", Peek: peekZIP},
	// Gzip.
	{Offset: 0, Magic: []byte{0x1F, 0x8B}, Name: "gzip", Peek: peekGzip},
	// LZW (.Z).
	{Offset: 0, Magic: []byte{0x1F, 0x9D}, Name: "lzw", Peek: peekLZW},
	// Bzip2 (BZh).
	{Offset: 0, Magic: []byte{0x42, 0x5A, 0x68}, Name: "bzip2", Peek: peekBzip},
	// XZ.
	{Offset: 0, Magic: []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}, Name: "xz", Peek: peekXZ},
	// Zstandard.
	{Offset: 0, Magic: []byte{0x28, 0xB5, 0x2F, 0xFD}, Name: "zstd", Peek: peekZstandard},
	// LZ4.
	{Offset: 0, Magic: []byte{0x04, 0x22, 0x4D, 0x18}, Name: "lz4", Peek: peekLZ4},
	// LZMA.
	{Offset: 0, Magic: []byte{0x5D, 0x00, 0x00}, Name: "lzma", Peek: peekLZMA},
	// Brotli (framing format).
	{Offset: 0, Magic: []byte{0xCE, 0xB2, 0xCF, 0x81}, Name: "brotli", Peek: peekBrotli},
	// Snappy framing format stream identifier.
	{Offset: 0, Magic: []byte("\xff\x06\x00\x00sNaPpY"), Name: "snappy", Peek: peekSnappy},
	// S2 framing format stream identifier.
	{Offset: 0, Magic: []byte("\xff\x06\x00\x00S2sTwO"), Name: "s2", Peek: peekS2},
	// Zlib, default and best compression levels.
	{Offset: 0, Magic: []byte{0x78, 0x9C}, Name: "zlib", Peek: peekZlib},
	{Offset: 0, Magic: []byte{0x78, 0xDA}, Name: "zlib", Peek: peekZlib},
	{Offset: 0, Magic: []byte{0x78, 0x01}, Name: "zlib", Peek: peekZlib},
	{Offset: 0, Magic: []byte{0x78, 0x5E}, Name: "zlib", Peek: peekZlib},
	// AR / DEB ("!<arch>\n").
	{Offset: 0, Magic: []byte{0x21, 0x3C, 0x61, 0x72, 0x63, 0x68, 0x3E, 0x0A}, Name: "ar", Peek: peekAr},
	// RPM.
	{Offset: 0, Magic: []byte{0xED, 0xAB, 0xEE, 0xDB}, Name: "rpm", Peek: peekRPM},
	// CPIO, portable ASCII formats.
	{Offset: 0, Magic: []byte("070701"), Name: "cpio", Peek: peekCPIO},
	{Offset: 0, Magic: []byte("070702"), Name: "cpio", Peek: peekCPIO},
	{Offset: 0, Magic: []byte("070707"), Name: "cpio", Peek: peekCPIO},
	// POSIX and GNU tar ("ustar" at 257).
	{Offset: 257, Magic: []byte{0x75, 0x73, 0x74, 0x61, 0x72}, Name: "tar", Peek: peekTar}, //nolint:mnd
	// ISO9660 at offset 0x8001.
	{Offset: 0x8001, Magic: []byte{0x43, 0x44, 0x30, 0x30, 0x31}, Name: "iso", Peek: peekISO}, //nolint:mnd
	// ISO9660 at offset 0x8801.
	{Offset: 0x8801, Magic: []byte{0x43, 0x44, 0x30, 0x30, 0x31}, Name: "iso", Peek: peekISO}, //nolint:mnd
	// ISO9660 at offset 0x9001.
	{Offset: 0x9001, Magic: []byte{0x43, 0x44, 0x30, 0x30, 0x31}, Name: "iso", Peek: peekISO}, //nolint:mnd
}

// matchContainer returns the first container signature found in buf, or nil.
func matchContainer(buf []byte) *container {
	for i := range containerSignatures {
		sig := &containerSignatures[i]

		end := sig.Offset + len(sig.Magic)
		if end > len(buf) {
			continue
		}

		if bytes.Equal(buf[sig.Offset:end], sig.Magic) {
			return sig
		}
	}

	return nil
}
