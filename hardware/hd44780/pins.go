package hd44780

import (
	"strconv"

	"github.com/juju/errors"
	"github.com/temoto/gpio-cdev-go"
)

const pinConsumer = "charlcd"

// PinAssignment maps logical lines to GPIO offsets. D4 is the least
// significant data line of each nibble. String values to load directly
// from hcl config.
type PinAssignment struct {
	RS string `hcl:"rs"`
	E  string `hcl:"e"`
	D4 string `hcl:"d4"`
	D5 string `hcl:"d5"`
	D6 string `hcl:"d6"`
	D7 string `hcl:"d7"`
}

type pinOffsets struct {
	rs   uint32
	e    uint32
	data [4]uint32
}

func (self PinAssignment) offsets() (pinOffsets, error) {
	var po pinOffsets
	var err error
	named := [6]struct {
		name  string
		value string
		dst   *uint32
	}{
		{"rs", self.RS, &po.rs},
		{"e", self.E, &po.e},
		{"d4", self.D4, &po.data[0]},
		{"d5", self.D5, &po.data[1]},
		{"d6", self.D6, &po.data[2]},
		{"d7", self.D7, &po.data[3]},
	}
	for _, p := range named {
		if *p.dst, err = atou32(p.value); err != nil {
			return po, errors.Annotatef(err, "pinmap %s=%s", p.name, p.value)
		}
	}
	return po, nil
}

func atou32(s string) (uint32, error) {
	x, err := strconv.ParseUint(s, 10, 32)
	return uint32(x), err
}

// Pinner is the boundary between the protocol driver and the actual
// output lines. Level setters change a buffer, Flush applies it to
// hardware in one ioctl.
type Pinner interface {
	RS(level byte)
	E(level byte)
	Data4(d0, d1, d2, d3 byte)
	Flush() error
	Close() error
}

type cdevPins struct {
	chip  gpio.Chiper
	lines gpio.Lineser
	rs    gpio.LineSetFunc
	e     gpio.LineSetFunc
	data  [4]gpio.LineSetFunc
}

func openPins(chipName string, pinmap PinAssignment) (*cdevPins, error) {
	chip, err := gpio.Open(chipName, pinConsumer)
	if err != nil {
		return nil, errors.Annotatef(err, "gpio.Open chip=%s", chipName)
	}
	self, err := bindPins(chip, pinmap)
	if err != nil {
		chip.Close()
		return nil, errors.Trace(err)
	}
	return self, nil
}

func bindPins(chip gpio.Chiper, pinmap PinAssignment) (*cdevPins, error) {
	po, err := pinmap.offsets()
	if err != nil {
		return nil, errors.Trace(err)
	}

	self := &cdevPins{chip: chip}
	self.lines, err = self.chip.OpenLines(
		gpio.GPIOHANDLE_REQUEST_OUTPUT, pinConsumer,
		po.rs, po.e, po.data[0], po.data[1], po.data[2], po.data[3],
	)
	if err != nil {
		return nil, errors.Annotatef(err, "gpio.OpenLines pinmap=%+v", pinmap)
	}
	self.rs = self.lines.SetFunc(po.rs)
	self.e = self.lines.SetFunc(po.e)
	for i, offset := range po.data {
		self.data[i] = self.lines.SetFunc(offset)
	}
	return self, nil
}

func (self *cdevPins) RS(level byte) { self.rs(level) }
func (self *cdevPins) E(level byte)  { self.e(level) }

func (self *cdevPins) Data4(d0, d1, d2, d3 byte) {
	self.data[0](d0)
	self.data[1](d1)
	self.data[2](d2)
	self.data[3](d3)
}

func (self *cdevPins) Flush() error { return self.lines.Flush() }

func (self *cdevPins) Close() error {
	err := self.lines.Close()
	if e := self.chip.Close(); err == nil {
		err = e
	}
	return err
}
