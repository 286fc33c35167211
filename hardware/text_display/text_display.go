// Package text_display keeps the logical content of a character LCD:
// current line per physical row, codepage translation, scrolling of
// overlong lines. The hardware protocol lives behind Devicer.
package text_display

import (
	"bytes"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/paulrosania/go-charset/charset"
	_ "github.com/paulrosania/go-charset/data"
	"github.com/temoto/alive/v2"
)

const MaxWidth = 40

var spaceBytes = bytes.Repeat([]byte{' '}, MaxWidth)

type TextDisplay struct { //nolint:maligned
	alive *alive.Alive
	mu    sync.Mutex
	dev   Devicer
	tr    atomic.Value
	width uint32
	state State

	tickd time.Duration
	tick  uint32
	upd   chan<- State
}

type TextDisplayConfig struct {
	Codepage    string
	ScrollDelay time.Duration
	Width       uint32
	Lines       int
}

// Devicer is implemented by hd44780.Device. Line numbers are 0-based
// top to bottom.
type Devicer interface {
	Clear()
	CursorLine(n int) bool
	Write(b []byte)
}

func NewTextDisplay(opt *TextDisplayConfig) (*TextDisplay, error) {
	if opt == nil {
		panic("code error nil TextDisplayConfig")
	}
	if opt.Width == 0 || opt.Width > MaxWidth {
		return nil, errors.Errorf("text_display width=%d not in 1..%d", opt.Width, MaxWidth)
	}
	lines := opt.Lines
	if lines == 0 {
		lines = 2
	}
	self := &TextDisplay{
		alive: alive.NewAlive(),
		tickd: opt.ScrollDelay,
		width: opt.Width,
		state: NewState(lines),
	}

	if opt.Codepage != "" {
		if err := self.SetCodepage(opt.Codepage); err != nil {
			return nil, errors.Trace(err)
		}
	}

	return self, nil
}

func (self *TextDisplay) SetCodepage(cp string) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	tr, err := charset.TranslatorTo(cp)
	if err != nil {
		return err
	}
	self.tr.Store(tr)
	return nil
}

func (self *TextDisplay) SetDevice(dev Devicer) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.dev = dev
}

func (self *TextDisplay) SetScrollDelay(d time.Duration) {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.tickd = d
}

func (self *TextDisplay) Clear() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.state.Clear()
	self.flush()
}

// Message shows `next` until wait returns, then restores previous
// content.
func (self *TextDisplay) Message(next []string, wait func()) {
	ns := NewState(self.state.Len())
	for i, s := range next {
		if i >= ns.Len() {
			break
		}
		ns.L[i] = self.Translate(s)
	}

	self.mu.Lock()
	prev := self.state
	self.state = ns
	self.flush()
	self.mu.Unlock()

	wait()

	self.mu.Lock()
	self.state = prev
	self.flush()
	self.mu.Unlock()
}

// nil: don't change
// len=0: set empty
func (self *TextDisplay) SetLinesBytes(bs ...[]byte) {
	self.mu.Lock()
	defer self.mu.Unlock()

	for i, b := range bs {
		if i >= self.state.Len() {
			break
		}
		if b != nil {
			self.state.L[i] = b
		}
	}
	atomic.StoreUint32(&self.tick, 0)
	self.flush()
}

func (self *TextDisplay) SetLine(i int, line string) {
	bs := make([][]byte, i+1)
	bs[i] = self.Translate(line)
	self.SetLinesBytes(bs...)
}

func (self *TextDisplay) SetLines(lines ...string) {
	bs := make([][]byte, len(lines))
	for i, s := range lines {
		bs[i] = self.Translate(s)
	}
	self.SetLinesBytes(bs...)
}

func (self *TextDisplay) Tick() {
	self.mu.Lock()
	defer self.mu.Unlock()

	atomic.AddUint32(&self.tick, 1)
	self.flush()
}

func (self *TextDisplay) Run() {
	self.mu.Lock()
	delay := self.tickd
	self.mu.Unlock()
	if delay == 0 {
		return
	}
	tmr := time.NewTicker(delay)
	stopch := self.alive.StopChan()

	for self.alive.IsRunning() {
		select {
		case <-tmr.C:
			self.Tick()
		case <-stopch:
			tmr.Stop()
			return
		}
	}
}

func (self *TextDisplay) Stop() { self.alive.Stop() }

// sometimes returns slice into shared spaceBytes
// sometimes returns `b` (len>=width-1)
// sometimes allocates new buffer
func (self *TextDisplay) JustCenter(b []byte) []byte {
	l := len(b)
	w := int(atomic.LoadUint32(&self.width))

	// optimize short paths
	if l == 0 {
		return spaceBytes[:w]
	}
	if l >= w-1 {
		return b
	}
	padtotal := w - l
	n := padtotal / 2
	padleft := spaceBytes[:n]
	padright := spaceBytes[:n+padtotal%2] // account for odd length
	buf := make([]byte, 0, w)
	buf = append(append(append(buf, padleft...), b...), padright...)
	return buf
}

// returns `b` when len>=width
// otherwise pads with spaces
func (self *TextDisplay) PadRight(b []byte) []byte {
	return PadSpace(b, atomic.LoadUint32(&self.width))
}

func PadSpace(b []byte, width uint32) []byte {
	l := uint32(len(b))
	if l == 0 {
		return spaceBytes[:width]
	}
	if l >= width {
		return b
	}
	buf := make([]byte, 0, width)
	return append(append(buf, b...), spaceBytes[:width-l]...)
}

func (self *TextDisplay) Translate(s string) []byte {
	if len(s) == 0 {
		return spaceBytes[:0]
	}

	// pad by default, \x00 marks place for cursor
	pad := true
	if s[len(s)-1] == '\x00' {
		pad = false
		s = s[:len(s)-1]
	}

	result := []byte(s)
	tr, ok := self.tr.Load().(charset.Translator)
	if ok && tr != nil {
		_, tb, err := tr.Translate(result, true)
		if err != nil {
			panic(err)
		}
		// translator reuses single internal buffer, make a copy
		result = append([]byte(nil), tb...)
	}

	if pad {
		result = self.PadRight(result)
	}
	return result
}

func (self *TextDisplay) SetUpdateChan(ch chan<- State) {
	self.upd = ch
}

func (self *TextDisplay) State() State { return self.state.Copy() }

// rewrite without clear, looks smoother than Clear+Write
func (self *TextDisplay) flush() {
	tick := atomic.LoadUint32(&self.tick)
	for i := 0; i < self.state.Len(); i++ {
		var buf [MaxWidth]byte
		b := buf[:self.width]
		n := scrollWrap(b, self.state.L[i], tick)

		// no padding: "erase" modified area, for now - whole line
		if n < self.width {
			self.dev.CursorLine(i)
			self.dev.Write(spaceBytes[:self.width])
		}
		if len(self.state.L[i]) > 0 {
			self.dev.CursorLine(i)
			self.dev.Write(b[:n])
		}
	}

	if self.upd != nil {
		self.upd <- self.state.Copy()
	}
}

// relies that len(buf) == display width
func scrollWrap(buf []byte, content []byte, tick uint32) uint32 {
	length := uint32(len(content))
	width := uint32(len(buf))
	gap := width / 2
	n := 0
	if length <= width {
		n = copy(buf, content)
		copy(buf[n:], spaceBytes)
		return uint32(n)
	}

	offset := tick % (length + gap)
	if offset < length {
		n = copy(buf, content[offset:])
	} else {
		gap = gap - (offset - length)
	}
	n += copy(buf[n:], spaceBytes[:gap])
	n += copy(buf[n:], content[0:])
	return uint32(n)
}
