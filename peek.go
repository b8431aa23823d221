package sniff

/* Code to look inside compressed streams and archives found in binary buffers. */

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// member is the sampled head of one file inside a container.
type member struct {
	// Name of the member, used for its extension.
	Name string
	// Data is at most deepWindow bytes from the start of the member.
	Data []byte
}

// peekFunc opens a container held entirely in data and samples its first member.
// name is the container's own file name and may be empty.
type peekFunc func(data []byte, name string) (*member, error)

// peek classifies the first member of the container in buf. Returns nil when buf
// is not a known container or the container cannot be read.
// Containers that need random access (zip, 7z, iso) read the whole buffer, so the
// 8KiB bound only applies to what gets classified.
func (c *Classifier) peek(buf []byte, filename string, depth int) *Result {
	box := matchContainer(buf)
	if box == nil {
		return nil
	}

	found, err := openContainer(box, buf, filename)
	if errors.Is(err, errPeekPanic) {
		c.printf("[WARN] %v", newPeekError(box.Name, "", err))
		return nil
	} else if err != nil {
		c.debugf("%v", newPeekError(box.Name, "", err))
		return nil
	}

	c.debugf("peeked into %s container %q: member %q, sampled %d bytes", box.Name, filename, found.Name, len(found.Data))

	return c.classify(found.Data, found.Name, "", depth-1)
}

// openContainer runs the container's decoder on buf. Some decoders panic on
// malformed input; that panic becomes an error wrapping errPeekPanic.
func openContainer(box *container, buf []byte, filename string) (found *member, err error) {
	defer func() {
		if r := recover(); r != nil {
			found, err = nil, fmt.Errorf("%w: %v", errPeekPanic, r)
		}
	}()

	return box.Peek(buf, filename)
}

// readSample reads up to deepWindow bytes from a member. A stream that fails after
// producing data still yields what was decoded; the container may be truncated.
func readSample(reader io.Reader) ([]byte, error) {
	buf := make([]byte, deepWindow)

	n, err := io.ReadFull(reader, buf)
	if n > 0 || err == nil || errors.Is(err, io.EOF) {
		return buf[:n], nil
	}

	return nil, err //nolint:wrapcheck // callers wrap with the container name.
}

// streamMember samples a single-stream decompressor and names the result after the
// container with its compression suffix removed.
func streamMember(reader io.Reader, name string, suffixes ...string) (*member, error) {
	data, err := readSample(reader)
	if err != nil {
		return nil, err
	}

	return &member{Name: trimSuffix(name, suffixes...), Data: data}, nil
}

// trimSuffix strips the first matching suffix (case-insensitive) from the base of name.
// Compressed tarball short forms become .tar.
func trimSuffix(name string, suffixes ...string) string {
	if name == "" {
		return ""
	}

	name = filepath.Base(name)
	lower := strings.ToLower(name)

	for _, suffix := range []string{".tgz", ".tbz2", ".tbz", ".txz", ".tlz", ".tzst"} {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)] + ".tar"
		}
	}

	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}

	return name
}
