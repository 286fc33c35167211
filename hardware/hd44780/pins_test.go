package hd44780

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/gpio-cdev-go"
	"github.com/temoto/gpio-cdev-go/mock"
)

func TestBindPins(t *testing.T) {
	t.Parallel()

	pinmap := PinAssignment{RS: "7", E: "8", D4: "25", D5: "24", D6: "23", D7: "18"}
	values := make(map[uint32]byte)
	setFunc := func(offset uint32) gpio.LineSetFunc {
		return func(v byte) { values[offset] = v }
	}

	lines := new(gpio_mock.MockLines)
	for _, offset := range []uint32{7, 8, 25, 24, 23, 18} {
		lines.On("SetFunc", offset).Return(setFunc(offset))
	}
	lines.On("Flush").Return(nil)
	lines.On("Close").Return(nil)

	chip := new(gpio_mock.MockChip)
	chip.On("OpenLines", gpio.GPIOHANDLE_REQUEST_OUTPUT, pinConsumer,
		uint32(7), uint32(8), uint32(25), uint32(24), uint32(23), uint32(18)).
		Return(gpio.Lineser(lines), nil)
	chip.On("Close").Return(nil)

	pins, err := bindPins(chip, pinmap)
	require.NoError(t, err)

	pins.RS(1)
	pins.E(1)
	pins.Data4(1, 0, 1, 0)
	require.NoError(t, pins.Flush())
	assert.Equal(t, map[uint32]byte{7: 1, 8: 1, 25: 1, 24: 0, 23: 1, 18: 0}, values)

	pins.Data4(0, 1, 0, 1)
	assert.Equal(t, byte(0), values[25])
	assert.Equal(t, byte(1), values[24])

	require.NoError(t, pins.Close())
	chip.AssertExpectations(t)
	lines.AssertExpectations(t)
}

func TestBindPinsBadPinmap(t *testing.T) {
	t.Parallel()

	chip := new(gpio_mock.MockChip)
	_, err := bindPins(chip, PinAssignment{RS: "rs?", E: "8", D4: "25", D5: "24", D6: "23", D7: "18"})
	require.Error(t, err)
	chip.AssertNotCalled(t, "OpenLines")
}
