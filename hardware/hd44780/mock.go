package hd44780

import (
	"fmt"
	"sync"
	"time"
)

// MockPins records every line transition and flush for tests.
type MockPins struct {
	mu  sync.Mutex
	Ops []string
}

func (self *MockPins) Append(op string) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.Ops = append(self.Ops, op)
}

func (self *MockPins) Reset() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.Ops = nil
}

func (self *MockPins) RS(level byte) { self.Append(fmt.Sprintf("rs=%d", level)) }
func (self *MockPins) E(level byte)  { self.Append(fmt.Sprintf("e=%d", level)) }

// data bits are logged least significant first, matching pin order.
func (self *MockPins) Data4(d0, d1, d2, d3 byte) {
	self.Append(fmt.Sprintf("data=%d%d%d%d", d0, d1, d2, d3))
}

func (self *MockPins) Flush() error {
	self.Append("flush")
	return nil
}

func (self *MockPins) Close() error {
	self.Append("close")
	return nil
}

// NewMockDevice returns a Device over MockPins with sleeps recorded
// instead of slept, including the ones during initialization.
func NewMockDevice(geo Geometry) (*Device, *MockPins) {
	if err := geo.Validate(); err != nil {
		panic(err)
	}
	mock := new(MockPins)
	dev := &Device{
		pins:  mock,
		geo:   geo,
		sleep: func(time.Duration) { mock.Append("sleep") },
	}
	dev.init()
	return dev, mock
}
