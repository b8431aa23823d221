package sniff

/* How to look inside a RAR file. */

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"
)

// peekRAR samples the first file in a RAR archive. Multi-volume and
// password-protected archives fail to open and are not peeked.
func peekRAR(data []byte, _ string) (*member, error) {
	rarReader, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rardecode.NewReader: %w", err)
	}

	for {
		header, err := rarReader.Next()

		switch {
		case errors.Is(err, io.EOF):
			return nil, ErrNoMember
		case err != nil:
			return nil, fmt.Errorf("rarReader.Next: %w", err)
		case header.IsDir:
			continue
		}

		sample, err := readSample(rarReader)
		if err != nil {
			return nil, newPeekError("rar", header.Name, err)
		}

		return &member{Name: header.Name, Data: sample}, nil
	}
}
