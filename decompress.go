package sniff

import (
	"bytes"
	"fmt"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	lzw "github.com/sshaman1101/dcompress"
	"github.com/therootcompany/xz"
	"github.com/ulikunitz/xz/lzma"
)

// peekXZ samples an XZ-compressed stream.
func peekXZ(data []byte, name string) (*member, error) {
	zipReader, err := xz.NewReader(bytes.NewReader(data), 0)
	if err != nil {
		return nil, fmt.Errorf("xz.NewReader: %w", err)
	}

	return streamMember(zipReader, name, ".xz")
}

// peekZlib samples a zlib-compressed stream.
func peekZlib(data []byte, name string) (*member, error) {
	zipReader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib.NewReader: %w", err)
	}
	defer zipReader.Close()

	return streamMember(zipReader, name, ".zz", ".zlib")
}

// peekLZMA samples an lzma-compressed stream.
func peekLZMA(data []byte, name string) (*member, error) {
	zipReader, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("lzma.NewReader: %w", err)
	}

	return streamMember(zipReader, name, ".lzma", ".lz", ".lzip")
}

// peekZstandard samples a Zstandard-compressed stream.
func peekZstandard(data []byte, name string) (*member, error) {
	zipReader, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zstd.NewReader: %w", err)
	}
	defer zipReader.Close()

	return streamMember(zipReader, name, ".zstd", ".zst")
}

// peekLZW samples an LZW-compressed (.Z) stream.
func peekLZW(data []byte, name string) (*member, error) {
	zipReader, err := lzw.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("lzw.NewReader: %w", err)
	}

	return streamMember(zipReader, name, ".z")
}

// peekLZ4 samples an LZ4-compressed stream.
func peekLZ4(data []byte, name string) (*member, error) {
	return streamMember(lz4.NewReader(bytes.NewReader(data)), name, ".lz4")
}

// peekSnappy samples a snappy-compressed stream.
func peekSnappy(data []byte, name string) (*member, error) {
	return streamMember(snappy.NewReader(bytes.NewReader(data)), name, ".snappy", ".sz")
}

// peekS2 samples an S2-compressed stream.
func peekS2(data []byte, name string) (*member, error) {
	return streamMember(s2.NewReader(bytes.NewReader(data)), name, ".s2")
}

// peekBrotli samples a Brotli-compressed stream.
func peekBrotli(data []byte, name string) (*member, error) {
	return streamMember(brotli.NewReader(bytes.NewReader(data)), name, ".brotli", ".br")
}

// peekBzip samples a bzip2-compressed stream.
func peekBzip(data []byte, name string) (*member, error) {
	zipReader, err := bzip2.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("bzip2.NewReader: %w", err)
	}
	defer zipReader.Close()

	return streamMember(zipReader, name, ".bz", ".bz2")
}

// peekGzip samples a gzip-compressed stream. The name stored in the gzip header
// wins over the container's file name.
func peekGzip(data []byte, name string) (*member, error) {
	zipReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip.NewReader: %w", err)
	}
	defer zipReader.Close()

	if zipReader.Name != "" {
		name = zipReader.Name
	} else {
		name = trimSuffix(name, ".gz")
	}

	return streamMember(zipReader, name)
}
