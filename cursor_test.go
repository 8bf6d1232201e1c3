package byteparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorFromBytes(t *testing.T) {
	data := []byte("Hello, World!")
	c := FromBytes(data)

	assert.True(t, c.HasMore())
	assert.Equal(t, 0, c.Begin())
	assert.Equal(t, 0, c.End())
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Content())
	assert.Equal(t, data[0], c.At())
}

func TestCursorAdvance(t *testing.T) {
	c := FromBytes([]byte("Hello, World!"))

	// advancing moves the read head only
	for _, n := range []int{0, 1, 2, 5} {
		d := c.Advance(n)
		assert.Equal(t, c.End()+n, d.End())
		assert.Equal(t, c.Begin(), d.Begin())
	}

	d := c.Advance(2)
	assert.Equal(t, []byte("He"), d.Content())
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, byte('l'), d.At())
}

func TestCursorFlush(t *testing.T) {
	d := FromBytes([]byte("Hello, World!")).Advance(2)

	f := d.Flush()
	assert.Equal(t, d.End(), f.End())
	assert.Equal(t, d.End(), f.Begin())
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, f, f.Flush(), "flush is idempotent")
	assert.Equal(t, d.At(), f.At())
}

func TestCursorExhaustion(t *testing.T) {
	data := []byte("Hello, World!")
	d := FromBytes(data)
	for d.HasMore() {
		d = d.Advance(1)
	}
	assert.False(t, d.HasMore())
	assert.Equal(t, len(data), d.Len())
	assert.Equal(t, data, d.Content())
}

func TestCursorLookAhead(t *testing.T) {
	c := FromBytes([]byte("abc"))
	assert.Equal(t, []byte("ab"), c.LookAhead(2))
	// clipped at end of buffer, no padding
	assert.Equal(t, []byte("abc"), c.LookAhead(7))
	assert.Equal(t, []byte("c"), c.Advance(2).LookAhead(7))
}

func TestCursorFind(t *testing.T) {
	c := FromBytes([]byte("key = value = rest"))

	d, ok := c.Find([]byte("="))
	require.True(t, ok)
	assert.Equal(t, 4, d.End())

	// the search starts at the read head, not the buffer start
	e, ok := d.Advance(1).Find([]byte("="))
	require.True(t, ok)
	assert.Equal(t, 12, e.End())

	_, ok = c.Find([]byte("missing"))
	assert.False(t, ok)
}

func TestCursorText(t *testing.T) {
	c := FromBytes([]byte("héllo")).Advance(6)
	s, err := c.Text()
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)

	bad := FromBytes([]byte{'a', 0xff, 'b'}).Advance(3)
	_, err = bad.Text()
	assert.Error(t, err)

	ascii := FromBytes([]byte("héllo")).WithEncoding(ASCII).Advance(6)
	_, err = ascii.Text()
	assert.Error(t, err)
}
