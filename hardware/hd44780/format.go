package hd44780

import "bytes"

// DDRAM holds 40 characters per line.
const MaxWidth = 40

var spaceBytes = bytes.Repeat([]byte{' '}, MaxWidth)

// formatLines maps input lines onto exactly one fixed-width buffer per
// configured line address. Short lines are right-padded with spaces,
// long lines truncated at width, missing lines come out all-space,
// extra input lines are dropped.
func formatLines(input []string, geo Geometry) [][]byte {
	out := make([][]byte, geo.Lines())
	for i := range out {
		var line []byte
		if i < len(input) {
			line = []byte(input[i])
		}
		out[i] = padLine(line, geo.Width)
	}
	return out
}

func padLine(bs []byte, width int) []byte {
	if len(bs) >= width {
		return bs[:width]
	}
	buf := make([]byte, 0, width)
	return append(append(buf, bs...), spaceBytes[:width-len(bs)]...)
}
