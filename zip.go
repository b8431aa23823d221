package sniff

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// peekZIP samples the first regular file in a zip archive. The central directory
// sits at the end of the archive, so data must hold the whole file.
func peekZIP(data []byte, _ string) (*member, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zip.NewReader: %w", err)
	}

	for _, zipFile := range zipReader.File {
		if !zipFile.Mode().IsRegular() {
			continue
		}

		fileReader, err := zipFile.Open()
		if err != nil {
			return nil, newPeekError("zip", zipFile.Name, err)
		}

		sample, err := readSample(fileReader)
		fileReader.Close()

		if err != nil {
			return nil, newPeekError("zip", zipFile.Name, err)
		}

		return &member{Name: zipFile.Name, Data: sample}, nil
	}

	return nil, ErrNoMember
}
