package text_display

import "strings"

// State is a snapshot of display content, one slice per physical line.
type State struct {
	L [][]byte
}

func NewState(lines int) State {
	return State{L: make([][]byte, lines)}
}

func (s State) Len() int { return len(s.L) }

func (s *State) Clear() {
	for i := range s.L {
		s.L[i] = nil
	}
}

func (s State) Copy() State {
	n := State{L: make([][]byte, len(s.L))}
	for i, b := range s.L {
		n.L[i] = append([]byte(nil), b...)
	}
	return n
}

func (s State) String() string {
	ss := make([]string, len(s.L))
	for i, b := range s.L {
		ss[i] = string(b)
	}
	return strings.Join(ss, "\n")
}
