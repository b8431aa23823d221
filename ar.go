package sniff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterebden/ar"
)

// peekAr samples the first member of a raw ar archive. Used by debian (.deb)
// packages, whose first member is the debian-binary version file.
func peekAr(data []byte, _ string) (*member, error) {
	return firstArMember(bytes.NewReader(data))
}

func firstArMember(reader io.Reader) (*member, error) {
	arReader := ar.NewReader(reader)

	for {
		header, err := arReader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrNoMember
			}

			return nil, fmt.Errorf("arReader.Next: %w", err)
		}

		// Skip the GNU symbol and long-name tables.
		if name := strings.TrimSpace(header.Name); name == "/" || name == "//" || name == "" {
			continue
		}

		data, err := readSample(arReader)
		if err != nil {
			return nil, newPeekError("ar", header.Name, err)
		}

		return &member{Name: strings.TrimSuffix(strings.TrimSpace(header.Name), "/"), Data: data}, nil
	}
}
