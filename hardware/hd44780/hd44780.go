// Package hd44780 drives HD44780-family character LCD modules wired to
// GPIO in 4-bit bus mode: RS, E and data lines D4..D7. The device is
// write-only (R/W grounded), so all protocol timing is produced by
// fixed software delays, no busy-flag polling.
package hd44780

import (
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/charlcd/log2"
)

type Mode byte

const (
	ModeCommand Mode = 0 // RS low
	ModeData    Mode = 1 // RS high
)

type Command byte

const (
	CommandClear    Command = 0x01
	CommandControl  Command = 0x0c // display on, cursor off, blink off
	CommandFunction Command = 0x28 // 4-bit bus, two-line mode, display off
	CommandAddress  Command = 0x80
)

// Uniform settle/strobe-hold/recovery wait. Three per nibble, six per
// byte. HD44780 minimum pulse and setup/hold times are well under this.
const transferDelay = 50 * time.Microsecond

// Geometry describes the visible shape of the module: characters per
// line and the DDRAM base address of each physical line, top to bottom.
// Addresses carry the set-DDRAM bit, e.g. 4x20: 0x80, 0xc0, 0x94, 0xd4.
type Geometry struct {
	Width     int
	LineAddrs []byte
}

func (g Geometry) Lines() int { return len(g.LineAddrs) }

func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Width > MaxWidth {
		return errors.Errorf("hd44780 geometry width=%d not in 1..%d", g.Width, MaxWidth)
	}
	if len(g.LineAddrs) == 0 {
		return errors.Errorf("hd44780 geometry requires at least one line address")
	}
	return nil
}

// Device is the protocol driver. It holds only the immutable pin
// binding and geometry; the LCD itself is the only stateful entity and
// we cannot read it back.
type Device struct {
	Log   *log2.Log
	pins  Pinner
	geo   Geometry
	sleep func(time.Duration)
}

// New runs the fixed initialization sequence on already bound pins.
// Exactly one Device must ever be active per pin set.
func New(pins Pinner, geo Geometry) (*Device, error) {
	if err := geo.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	self := &Device{
		pins:  pins,
		geo:   geo,
		sleep: time.Sleep,
	}
	self.init()
	return self, nil
}

// Open binds pins on a GPIO character device (e.g. /dev/gpiochip0) and
// initializes the display.
func Open(chipName string, pinmap PinAssignment, geo Geometry) (*Device, error) {
	pins, err := openPins(chipName, pinmap)
	if err != nil {
		return nil, errors.Annotatef(err, "hd44780 chip=%s", chipName)
	}
	self, err := New(pins, geo)
	if err != nil {
		pins.Close()
		return nil, errors.Trace(err)
	}
	return self, nil
}

func (self *Device) Geometry() Geometry { return self.geo }

func (self *Device) Close() error { return self.pins.Close() }

func (self *Device) init() {
	self.Command(CommandFunction)
	self.Command(CommandControl)
	self.Command(CommandClear)
}

// Render maps an arbitrary text block onto the whole display: one
// input line per physical line, right-padded or truncated to width,
// missing lines blanked, extra lines dropped.
func (self *Device) Render(text string) {
	self.Log.Debugf("hd44780 render %q", text)
	lines := formatLines(strings.Split(text, "\n"), self.geo)
	for i, addr := range self.geo.LineAddrs {
		self.Command(Command(addr))
		self.Write(lines[i])
	}
}

func (self *Device) Clear() { self.Command(CommandClear) }

// CursorLine moves the cursor to the start of physical line i (0-based).
func (self *Device) CursorLine(i int) bool {
	if i < 0 || i >= len(self.geo.LineAddrs) {
		return false
	}
	self.Command(Command(self.geo.LineAddrs[i]))
	return true
}

func (self *Device) Command(c Command) { self.send(ModeCommand, byte(c)) }
func (self *Device) Data(b byte)       { self.send(ModeData, b) }

func (self *Device) Write(bs []byte) {
	for _, b := range bs {
		self.Data(b)
	}
}

// High nibble first, then low; the controller's 4-bit protocol fixes
// this order.
func (self *Device) send(mode Mode, b byte) {
	// self.Log.Debugf("snd %d %02x", mode, b)
	self.send4(mode, bb(b, 4), bb(b, 5), bb(b, 6), bb(b, 7))
	self.send4(mode, bb(b, 0), bb(b, 1), bb(b, 2), bb(b, 3))
}

// One nibble transfer: present RS and data, settle, strobe E high,
// hold, E low, recovery. A missed latch is undetectable here.
func (self *Device) send4(mode Mode, d0, d1, d2, d3 byte) {
	self.pins.RS(byte(mode))
	self.pins.Data4(d0, d1, d2, d3)
	self.pins.Flush() //nolint:errcheck
	self.sleep(transferDelay)
	self.pins.E(1)
	self.pins.Flush() //nolint:errcheck
	self.sleep(transferDelay)
	self.pins.E(0)
	self.pins.Flush() //nolint:errcheck
	self.sleep(transferDelay)
}

func bb(b byte, bit byte) byte {
	if b&(1<<bit) == 0 {
		return 0
	}
	return 1
}
