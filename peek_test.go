package sniff_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/cavaliergopher/cpio"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
	"golift.io/sniff"
)

const octetStream = "application/octet-stream"

func compress(t *testing.T, data []byte, newWriter func(io.Writer) (io.WriteCloser, error)) []byte {
	t.Helper()

	var buf bytes.Buffer

	writer, err := newWriter(&buf)
	require.NoError(t, err)

	_, err = writer.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()

	return compress(t, data, func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil })
}

func TestPeekStreams(t *testing.T) {
	t.Parallel()

	content := []byte(strings.Repeat(prose, 10))

	tests := []struct {
		name      string
		filename  string
		newWriter func(io.Writer) (io.WriteCloser, error)
	}{
		{"gzip", "notes.txt.gz", func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil }},
		{"zlib", "notes.txt.zz", func(w io.Writer) (io.WriteCloser, error) { return zlib.NewWriter(w), nil }},
		{"xz", "notes.txt.xz", func(w io.Writer) (io.WriteCloser, error) { return xz.NewWriter(w) }},
		{"lzma", "notes.txt.lzma", func(w io.Writer) (io.WriteCloser, error) { return lzma.NewWriter(w) }},
		{"zstd", "notes.txt.zst", func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) }},
		{"lz4", "notes.txt.lz4", func(w io.Writer) (io.WriteCloser, error) { return lz4.NewWriter(w), nil }},
		{"s2", "notes.txt.s2", func(w io.Writer) (io.WriteCloser, error) { return s2.NewWriter(w), nil }},
		{"snappy", "notes.txt.sz", func(w io.Writer) (io.WriteCloser, error) {
			return s2.NewWriter(w, s2.WriterSnappyCompat()), nil
		}},
		{"bzip2", "notes.txt.bz2", func(w io.Writer) (io.WriteCloser, error) {
			return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
		}},
	}

	classifier := &sniff.Classifier{Peek: true}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			data := compress(t, content, test.newWriter)

			// The declared type forces a binary verdict; short compressed text can look like text.
			result := classifier.Classify(data, test.filename, octetStream)
			require.True(t, result.IsBinary)
			require.NotNil(t, result.Inner, "%s stream was not opened", test.name)
			assert.True(t, result.Inner.IsText, result.Inner.Reason)
			assert.Equal(t, ".txt", result.Inner.Extension)
			assert.Equal(t, sniff.Classify(content, "notes.txt", ""), result.Inner)

			assert.Nil(t, sniff.Classify(data, test.filename, octetStream).Inner, "peeking is opt-in")
		})
	}
}

func TestPeekGzipHeaderName(t *testing.T) {
	t.Parallel()

	data := compress(t, []byte(prose), func(w io.Writer) (io.WriteCloser, error) {
		writer := gzip.NewWriter(w)
		writer.Name = "story.md"

		return writer, nil
	})

	result := (&sniff.Classifier{Peek: true}).Classify(data, "download.gz", "")
	require.True(t, result.IsBinary)
	require.NotNil(t, result.Inner)
	assert.Equal(t, ".md", result.Inner.Extension)
}

func TestPeekCompressedTarball(t *testing.T) {
	t.Parallel()

	var tarball bytes.Buffer

	tarWriter := tar.NewWriter(&tarball)
	require.NoError(t, tarWriter.WriteHeader(&tar.Header{Name: "docs/", Typeflag: tar.TypeDir, Mode: 0o755}))
	require.NoError(t, tarWriter.WriteHeader(&tar.Header{
		Name: "docs/readme.md", Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(prose)),
	}))
	_, err := tarWriter.Write([]byte(prose))
	require.NoError(t, err)
	require.NoError(t, tarWriter.Close())

	result := (&sniff.Classifier{Peek: true}).Classify(gzipped(t, tarball.Bytes()), "bundle.tgz", "")
	require.True(t, result.IsBinary)
	require.NotNil(t, result.Inner, "gzip not opened")
	assert.True(t, result.Inner.IsBinary, "tar headers are full of null bytes")
	assert.Equal(t, ".tar", result.Inner.Extension)
	require.NotNil(t, result.Inner.Inner, "tar not opened")
	assert.True(t, result.Inner.Inner.IsText)
	assert.Equal(t, ".md", result.Inner.Inner.Extension)
}

func TestPeekDepthLimit(t *testing.T) {
	t.Parallel()

	data := []byte(prose)
	for range 3 {
		data = gzipped(t, data)
	}

	result := (&sniff.Classifier{Peek: true}).Classify(data, "a.txt.gz.gz.gz", "")
	require.NotNil(t, result.Inner)
	require.NotNil(t, result.Inner.Inner)
	assert.Equal(t, ".gz", result.Inner.Inner.Extension)
	assert.Nil(t, result.Inner.Inner.Inner)
}

func TestPeekZip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	zipWriter := zip.NewWriter(&buf)
	_, err := zipWriter.Create("empty/")
	require.NoError(t, err)

	file, err := zipWriter.Create("empty/config.yaml")
	require.NoError(t, err)
	_, err = file.Write([]byte("name: sniff\nenabled: true\n"))
	require.NoError(t, err)
	require.NoError(t, zipWriter.Close())

	result := (&sniff.Classifier{Peek: true}).Classify(buf.Bytes(), "archive.zip", "")
	assert.Equal(t, sniff.RuleSignature, result.Rule)
	require.NotNil(t, result.Inner)
	assert.True(t, result.Inner.IsText)
	assert.Equal(t, ".yaml", result.Inner.Extension)
}

func TestPeekAr(t *testing.T) {
	t.Parallel()

	body := "2.0\n"
	header := fmt.Sprintf("%-16s%-12d%-6d%-6d%-8s%-10d`\n", "debian-binary/", 0, 0, 0, "100644", len(body))
	archive := []byte("!<arch>\n" + header + body)

	result := (&sniff.Classifier{Peek: true}).Classify(archive, "package.deb", octetStream)
	require.NotNil(t, result.Inner)
	assert.True(t, result.Inner.IsText)
	assert.Empty(t, result.Inner.Extension)
}

func TestPeekCPIO(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	modTime := time.Unix(1700000000, 0)
	cpioWriter := cpio.NewWriter(&buf)
	require.NoError(t, cpioWriter.WriteHeader(&cpio.Header{Name: "etc", Mode: cpio.TypeDir | 0o755, ModTime: modTime}))
	require.NoError(t, cpioWriter.WriteHeader(&cpio.Header{
		Name: "etc/motd.txt", Mode: cpio.TypeReg | 0o644, Size: int64(len(prose)), ModTime: modTime,
	}))
	_, err := cpioWriter.Write([]byte(prose))
	require.NoError(t, err)
	require.NoError(t, cpioWriter.Close())

	result := (&sniff.Classifier{Peek: true}).Classify(buf.Bytes(), "initrd.cpio", octetStream)
	require.NotNil(t, result.Inner)
	assert.True(t, result.Inner.IsText)
	assert.Equal(t, ".txt", result.Inner.Extension)
}

func TestPeekBrokenContainer(t *testing.T) {
	t.Parallel()

	logs := &testLogger{}
	classifier := &sniff.Classifier{Peek: true, Logger: logs}

	result := classifier.Classify([]byte("\x1f\x8bnot really gzip"), "broken.gz", octetStream)
	assert.True(t, result.IsBinary)
	assert.Nil(t, result.Inner)
	assert.Contains(t, strings.Join(logs.lines, "\n"), "peeking into gzip")

	result = classifier.Classify(controlBytes(100), "", "")
	assert.True(t, result.IsBinary)
	assert.Nil(t, result.Inner, "not a container")
}

func TestPeekDecoderPanic(t *testing.T) {
	t.Parallel()

	// Random tail behind a RAR4 signature.
	random := rand.New(rand.NewPCG(1, 2)) //nolint:gosec
	rar := []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00}

	for range 512 {
		rar = append(rar, byte(random.UintN(256))) //nolint:mnd
	}

	tests := []struct {
		name string
		data []byte
		file string
	}{
		{"truncated lzw", []byte{0x1F, 0x9D}, "x.Z"},
		{"rar4 garbage", rar, "x.rar"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			classifier := &sniff.Classifier{Peek: true, Logger: &testLogger{}}

			var result *sniff.Result

			require.NotPanics(t, func() { result = classifier.Classify(test.data, test.file, octetStream) })
			assert.True(t, result.IsBinary)
			assert.False(t, result.IsText)
			assert.Nil(t, result.Inner)
		})
	}

	logs := &testLogger{}
	(&sniff.Classifier{Peek: true, Logger: logs}).Classify([]byte{0x1F, 0x9D}, "x.Z", octetStream)
	assert.Contains(t, strings.Join(logs.printed, "\n"), "peeking into lzw: decoder panicked")
}
