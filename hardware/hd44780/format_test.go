package hd44780

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLines(t *testing.T) {
	t.Parallel()

	type Case struct {
		name   string
		input  string
		geo    Geometry
		expect []string
	}
	cases := []Case{
		{"empty", "", Geometry{Width: 4, LineAddrs: []byte{0x80, 0xc0}},
			[]string{"    ", "    "}},
		{"pad", "ab", Geometry{Width: 4, LineAddrs: []byte{0x80, 0xc0}},
			[]string{"ab  ", "    "}},
		{"exact", "abcd\nefgh", Geometry{Width: 4, LineAddrs: []byte{0x80, 0xc0}},
			[]string{"abcd", "efgh"}},
		{"truncate", "abcdefgh", Geometry{Width: 4, LineAddrs: []byte{0x80, 0xc0}},
			[]string{"abcd", "    "}},
		{"drop-extra-lines", "a\nb\nc", Geometry{Width: 4, LineAddrs: []byte{0x80, 0xc0}},
			[]string{"a   ", "b   "}},
		{"four-lines", "one\ntwo", Geometry{Width: 6, LineAddrs: []byte{0x80, 0xc0, 0x94, 0xd4}},
			[]string{"one   ", "two   ", "      ", "      "}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			result := formatLines(strings.Split(c.input, "\n"), c.geo)
			require.Len(t, result, c.geo.Lines())
			for i, line := range result {
				assert.Len(t, line, c.geo.Width)
				assert.Equal(t, c.expect[i], string(line), "line=%d", i)
			}
		})
	}
}

func TestPadLineSharesNoStorage(t *testing.T) {
	t.Parallel()

	src := []byte("xy")
	padded := padLine(src, 4)
	padded[0] = '!'
	assert.Equal(t, []byte("xy"), src)
}
