package text_display

import "sync"

func NewMockTextDisplay(opt *TextDisplayConfig) *TextDisplay {
	dev := new(MockDevicer)
	display, err := NewTextDisplay(opt)
	if err != nil {
		panic(err)
	}
	display.dev = dev
	return display
}

// MockDevicer records the last content written per line.
type MockDevicer struct {
	mu    sync.Mutex
	cur   int
	max   int
	lines map[int][]byte
}

func (self *MockDevicer) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.lines = nil
}

func (self *MockDevicer) CursorLine(n int) bool {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.cur = n
	if n > self.max {
		self.max = n
	}
	return true
}

func (self *MockDevicer) Write(b []byte) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.lines == nil {
		self.lines = make(map[int][]byte)
	}
	self.lines[self.cur] = append([]byte(nil), b...)
}

func (self *MockDevicer) String() string {
	self.mu.Lock()
	defer self.mu.Unlock()
	s := ""
	for i := 0; i <= self.max; i++ {
		if i > 0 {
			s += "\n"
		}
		s += string(self.lines[i])
	}
	return s
}
