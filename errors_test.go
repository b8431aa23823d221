package sniff

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeekError(t *testing.T) {
	t.Parallel()

	require.NoError(t, newPeekError("tar", "", nil))

	err := newPeekError("tar", "docs/readme.md", io.ErrUnexpectedEOF)
	assert.Equal(t, "peeking into tar: unexpected EOF (member: docs/readme.md)", err.Error())
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var peekErr *PeekError
	require.ErrorAs(t, err, &peekErr)
	assert.Equal(t, "tar", peekErr.Container)

	// An inner container error is kept as is.
	assert.Same(t, err, newPeekError("gzip", "", err))
	assert.Equal(t, "peeking into zip: "+ErrNoMember.Error(), newPeekError("zip", "", ErrNoMember).Error())
	require.ErrorIs(t, newPeekError("zip", "", ErrNoMember), ErrNoMember)
}

func TestOpenContainerRecovers(t *testing.T) {
	t.Parallel()

	box := &container{Name: "test", Peek: func([]byte, string) (*member, error) {
		var names []string
		return &member{Name: names[1]}, nil
	}}

	found, err := openContainer(box, []byte{1}, "x")
	assert.Nil(t, found)
	require.ErrorIs(t, err, errPeekPanic)
	assert.Contains(t, err.Error(), "index out of range")

	box.Peek = func(data []byte, name string) (*member, error) { return &member{Name: name, Data: data}, nil }
	found, err = openContainer(box, []byte{1}, "x")
	require.NoError(t, err)
	assert.Equal(t, "x", found.Name)
}
