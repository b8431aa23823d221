package sniff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/cavaliergopher/cpio"
)

// peekCPIO samples the first regular file in a .cpio archive.
func peekCPIO(data []byte, _ string) (*member, error) {
	return firstCPIOMember(bytes.NewReader(data))
}

func firstCPIOMember(reader io.Reader) (*member, error) {
	cpioReader := cpio.NewReader(reader)

	for {
		header, err := cpioReader.Next()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoMember
		} else if err != nil {
			return nil, fmt.Errorf("cpio Next() failed: %w", err)
		}

		if !header.FileInfo().Mode().IsRegular() {
			continue
		}

		data, err := readSample(cpioReader)
		if err != nil {
			return nil, newPeekError("cpio", header.Name, err)
		}

		return &member{Name: header.Name, Data: data}, nil
	}
}
