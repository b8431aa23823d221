package sniff

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// peekTar samples the first regular file in a raw (non-compressed) tar archive.
// Compressed tarballs reach this through a stream decompressor one level up.
func peekTar(data []byte, _ string) (*member, error) {
	return firstTarMember(bytes.NewReader(data))
}

func firstTarMember(reader io.Reader) (*member, error) {
	tarReader := tar.NewReader(reader)

	for {
		header, err := tarReader.Next()

		switch {
		case errors.Is(err, io.EOF):
			return nil, ErrNoMember
		case err != nil:
			return nil, fmt.Errorf("tarReader.Next: %w", err)
		case header.Typeflag != tar.TypeReg:
			continue
		}

		data, err := readSample(tarReader)
		if err != nil {
			return nil, newPeekError("tar", header.Name, err)
		}

		return &member{Name: header.Name, Data: data}, nil
	}
}
