package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/charlcd/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		sources   map[string]string
		check     func(testing.TB, *Config)
		expectErr string
	}
	cases := []Case{
		{"empty", map[string]string{"test": ""},
			func(t testing.TB, c *Config) {
				assert.False(t, c.Hardware.HD44780.Enable)
			}, ""},

		{"hd44780", map[string]string{"test": `
hardware { hd44780 {
	enable = true
	pin_chip = "/dev/gpiochip0"
	pinmap { rs = "7" e = "8" d4 = "25" d5 = "24" d6 = "23" d7 = "18" }
	width = 20
	line_addresses = [128, 192, 148, 212]
	codepage = "windows-1251"
	scroll_delay = 210
}}`},
			func(t testing.TB, c *Config) {
				h := &c.Hardware.HD44780
				assert.True(t, h.Enable)
				assert.Equal(t, "/dev/gpiochip0", h.PinChip)
				assert.Equal(t, "7", h.Pinmap.RS)
				assert.Equal(t, "18", h.Pinmap.D7)
				geo := c.Geometry()
				assert.Equal(t, 20, geo.Width)
				assert.Equal(t, []byte{0x80, 0xc0, 0x94, 0xd4}, geo.LineAddrs)
				require.NoError(t, geo.Validate())
			}, ""},

		{"include", map[string]string{
			"test":   `include "second" {} hardware { hd44780 { width = 16 } }`,
			"second": `hardware { hd44780 { line_addresses = [128, 192] } }`,
		},
			func(t testing.TB, c *Config) {
				assert.Equal(t, 16, c.Hardware.HD44780.Width)
				assert.Equal(t, []byte{0x80, 0xc0}, c.Geometry().LineAddrs)
			}, ""},

		{"include-optional-missing", map[string]string{
			"test": `include "nothing-here" { optional = true }`,
		},
			func(t testing.TB, c *Config) {}, ""},

		{"include-required-missing", map[string]string{
			"test": `include "nothing-here" {}`,
		},
			nil, "config required name=nothing-here"},

		{"malformed", map[string]string{"test": `hardware { hd44780 {`},
			nil, "config unmarshal source=test"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			log := log2.NewTest(t, log2.LDebug)
			fs := NewMockFullReader(c.sources)
			cfg, err := ReadConfig(log, fs, "test")
			if c.expectErr == "" {
				require.NoError(t, err)
				c.check(t, cfg)
			} else {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), c.expectErr),
					"error=%v expected substring=%s", err, c.expectErr)
			}
		})
	}
}
