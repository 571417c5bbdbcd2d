package board

// Key is one of the logical controls the board reacts to.
type Key uint8

const (
	KeyRotate Key = iota
	KeyLeft
	KeyRight
	KeyDown
	KeyHold
	KeyConfirm

	keyCount
)

var keyNames = [keyCount]string{"Rotate", "Left", "Right", "Down", "Hold", "Confirm"}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "Unknown"
}

// Keys lists every control in declaration order.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Input is what a frontend reports for one tick. JustPressed fires once per
// physical press; Held stays true for as long as the key is down.
type Input interface {
	JustPressed(Key) bool
	Held(Key) bool
}

// KeyState is a plain bitset Input. Frontends fill it once per frame and
// call EndFrame after the tick so edges do not repeat.
type KeyState struct {
	pressed uint8
	held    uint8
}

// Press records a press edge. A pressed key is also held.
func (s *KeyState) Press(keys ...Key) {
	for _, k := range keys {
		s.pressed |= 1 << k
		s.held |= 1 << k
	}
}

// SetHeld sets the level state of k.
func (s *KeyState) SetHeld(k Key, held bool) {
	if held {
		s.held |= 1 << k
	} else {
		s.held &^= 1 << k
	}
}

// EndFrame forgets this frame's press edges.
func (s *KeyState) EndFrame() {
	s.pressed = 0
}

// Reset releases every key.
func (s *KeyState) Reset() {
	s.pressed = 0
	s.held = 0
}

func (s KeyState) JustPressed(k Key) bool { return s.pressed&(1<<k) != 0 }

func (s KeyState) Held(k Key) bool { return s.held&(1<<k) != 0 }

// Any reports whether any key is pressed or held.
func (s KeyState) Any() bool { return s.pressed|s.held != 0 }

// NoInput is an Input with nothing pressed.
var NoInput Input = KeyState{}
