package sniff

import (
	"bytes"
	"fmt"

	"github.com/bodgit/sevenzip"
)

// peek7z samples the first regular file in a 7-Zip archive. data must hold the whole archive.
func peek7z(data []byte, _ string) (*member, error) {
	sevenZip, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("sevenzip.NewReader: %w", err)
	}

	for _, zipFile := range sevenZip.File {
		if !zipFile.Mode().IsRegular() {
			continue
		}

		fileReader, err := zipFile.Open()
		if err != nil {
			return nil, newPeekError("7z", zipFile.Name, err)
		}

		sample, err := readSample(fileReader)
		fileReader.Close()

		if err != nil {
			return nil, newPeekError("7z", zipFile.Name, err)
		}

		return &member{Name: zipFile.Name, Data: sample}, nil
	}

	return nil, ErrNoMember
}
