// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so a short window bridges the gaps.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Fire   bool
	Enter  bool
	Escape bool
	// Closed is set once the underlying reader has failed or hit EOF.
	Closed  bool
	Pressed []byte
}

// Intent returns the horizontal intent: -1 for left, +1 for right, 0 for
// none or both.
func (in Input) Intent() int {
	switch {
	case in.Left && !in.Right:
		return -1
	case in.Right && !in.Left:
		return 1
	default:
		return 0
	}
}

// Start reports whether the player asked to begin or continue.
func (in Input) Start() bool {
	return in.Fire || in.Enter
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	fire   time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state between frames.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
	now    func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream(time.Now)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(now func() time.Time) *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: now,
	}
}

// Read drains all available bytes from the stream without blocking and
// returns the resulting key state.
func (s *Stream) Read() Input {
	now := s.now()
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.state.apply(buf, now)

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Fire:    held(s.state.fire),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Closed:  s.closed,
		Pressed: buf,
	}
}

// Reset forgets every held key, so a key used to leave a screen does not
// carry into the next one.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// apply parses buf and updates the key timestamps. Arrow keys arrive as
// CSI sequences (ESC [ A..D).
func (k *keyState) apply(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				k.right = now
				i += 2
				continue
			case 'D':
				k.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}

		k.applyByte(b, now)
	}
}

func (k *keyState) applyByte(b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		k.quit = now
	case 'a', 'A', 'h', 'H':
		k.left = now
	case 'd', 'D', 'l', 'L':
		k.right = now
	case ' ', 'w', 'W', 'k', 'K':
		k.fire = now
	case '\n', '\r':
		k.enter = now
	case '\x1b':
		k.escape = now
	}
}
