package sniff

import (
	"bytes"
	"errors"
	"fmt"
	"path"

	"github.com/kdomanski/iso9660"
)

// peekISO samples the first regular file, depth first, in an ISO9660 image.
// data must hold the whole image.
func peekISO(data []byte, _ string) (*member, error) {
	iso, err := iso9660.OpenImage(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open iso image: %w", err)
	}

	root, err := iso.RootDir()
	if err != nil {
		return nil, fmt.Errorf("failed to open iso root: %w", err)
	}

	return firstISOFile(root, "")
}

func firstISOFile(isoFile *iso9660.File, parent string) (*member, error) {
	itemName := parent

	if name := isoFile.Name(); name != string([]byte{0}) { // root folder has a NUL name.
		itemName = path.Join(parent, name)
	}

	if !isoFile.IsDir() {
		data, err := readSample(isoFile.Reader())
		if err != nil {
			return nil, newPeekError("iso", itemName, err)
		}

		return &member{Name: itemName, Data: data}, nil
	}

	children, err := isoFile.GetChildren()
	if err != nil {
		return nil, fmt.Errorf("getting children for %s: %w", isoFile.Name(), err)
	}

	for _, child := range children {
		found, err := firstISOFile(child, itemName)
		if err == nil {
			return found, nil
		}

		if !errors.Is(err, ErrNoMember) {
			return nil, err
		}
	}

	return nil, ErrNoMember
}
