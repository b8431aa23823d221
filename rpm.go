package sniff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cavaliergopher/rpm"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/therootcompany/xz"
	"github.com/ulikunitz/xz/lzma"
)

// peekRPM samples the first regular file in an RPM payload. rpm.Read consumes the
// lead and headers, leaving the reader at the compressed payload.
func peekRPM(data []byte, _ string) (*member, error) {
	reader := bytes.NewReader(data)

	pkg, err := rpm.Read(reader)
	if err != nil {
		return nil, fmt.Errorf("rpm.Read: %w", err)
	}

	payload, err := rpmPayload(reader, pkg.PayloadCompression())
	if err != nil {
		return nil, err
	}
	defer payload.Close()

	switch format := pkg.PayloadFormat(); format {
	case "cpio":
		return firstCPIOMember(payload)
	case "tar":
		return firstTarMember(payload)
	case "ar":
		return firstArMember(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRPMArchiveFmt, format)
	}
}

// rpmPayload wraps the payload in the decompressor named by the package header.
func rpmPayload(reader io.Reader, compression string) (io.ReadCloser, error) {
	var (
		payload io.ReadCloser
		err     error
	)

	switch compression {
	case "xz":
		payload, err = nopCloser(xz.NewReader(reader, 0))
	case "lzma2":
		payload, err = nopCloser(lzma.NewReader2(reader))
	case "lzma", "lzip":
		payload, err = nopCloser(lzma.NewReader(reader))
	case "gz", "gzip":
		payload, err = gzip.NewReader(reader)
	case "bz2", "bzip2":
		payload, err = bzip2.NewReader(reader, nil)
	case "zstd", "zstandard", "zst", "Zstandard":
		var decoder *zstd.Decoder
		if decoder, err = zstd.NewReader(reader); err == nil {
			payload = decoder.IOReadCloser()
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRPMCompression, compression)
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s payload: %w", compression, err)
	}

	return payload, nil
}

// nopCloser adapts decompressors that hold nothing to release.
func nopCloser[R io.Reader](reader R, err error) (io.ReadCloser, error) {
	if err != nil {
		return nil, err
	}

	return io.NopCloser(reader), nil
}
