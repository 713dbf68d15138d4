package backend

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/inputcore/key"
)

// tcellKeyCodes maps tcell special keys to native codes. Rune keys are
// handled separately via runeCodes.
var tcellKeyCodes = map[tcell.Key]key.Code{
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyF1:         key.CodeF1,
	tcell.KeyF2:         key.CodeF2,
	tcell.KeyF3:         key.CodeF3,
	tcell.KeyF4:         key.CodeF4,
	tcell.KeyF5:         key.CodeF5,
	tcell.KeyF6:         key.CodeF6,
	tcell.KeyF7:         key.CodeF7,
	tcell.KeyF8:         key.CodeF8,
	tcell.KeyF9:         key.CodeF9,
	tcell.KeyF10:        key.CodeF10,
	tcell.KeyF11:        key.CodeF11,
	tcell.KeyF12:        key.CodeF12,
}

// codeTcellKeys is the reverse of tcellKeyCodes. Built once at init;
// KeyBackspace2 loses to KeyBackspace since both map to CodeBackspace.
var codeTcellKeys = func() map[key.Code]tcell.Key {
	m := make(map[key.Code]tcell.Key, len(tcellKeyCodes))
	for tk, c := range tcellKeyCodes {
		if tk == tcell.KeyBackspace2 {
			continue
		}
		m[c] = tk
	}
	return m
}()

// runeCodes maps printable runes to native codes. Letters are folded to
// their lower-case form before lookup.
var runeCodes = map[rune]key.Code{
	'a': key.CodeA, 'b': key.CodeB, 'c': key.CodeC, 'd': key.CodeD,
	'e': key.CodeE, 'f': key.CodeF, 'g': key.CodeG, 'h': key.CodeH,
	'i': key.CodeI, 'j': key.CodeJ, 'k': key.CodeK, 'l': key.CodeL,
	'm': key.CodeM, 'n': key.CodeN, 'o': key.CodeO, 'p': key.CodeP,
	'q': key.CodeQ, 'r': key.CodeR, 's': key.CodeS, 't': key.CodeT,
	'u': key.CodeU, 'v': key.CodeV, 'w': key.CodeW, 'x': key.CodeX,
	'y': key.CodeY, 'z': key.CodeZ,
	'0': key.Code0, '1': key.Code1, '2': key.Code2, '3': key.Code3,
	'4': key.Code4, '5': key.Code5, '6': key.Code6, '7': key.Code7,
	'8': key.Code8, '9': key.Code9,
	' ': key.CodeSpace,
}

var codeRunes = func() map[key.Code]rune {
	m := make(map[key.Code]rune, len(runeCodes))
	for r, c := range runeCodes {
		m[c] = r
	}
	return m
}()

// TcellTranslator converts between tcell key events and native codes.
// It implements key.Translator[*tcell.EventKey].
type TcellTranslator struct{}

// FromBackend reports the native code for a tcell key event, or false
// when the event has no native equivalent.
func (TcellTranslator) FromBackend(ev *tcell.EventKey) (key.Code, bool) {
	if ev == nil {
		return key.CodeNone, false
	}
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		c, ok := runeCodes[r]
		return c, ok
	}
	c, ok := tcellKeyCodes[ev.Key()]
	return c, ok
}

// ToBackend builds a tcell key event for a native code, or reports
// false for codes a terminal cannot produce (mouse, gamepad,
// modifiers).
func (TcellTranslator) ToBackend(c key.Code) (*tcell.EventKey, bool) {
	if tk, ok := codeTcellKeys[c]; ok {
		return tcell.NewEventKey(tk, 0, tcell.ModNone), true
	}
	if r, ok := codeRunes[c]; ok {
		return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), true
	}
	return nil, false
}

// DefaultDecay is how long a key stays pressed after its last terminal
// event before a synthetic release is emitted.
const DefaultDecay = 150 * time.Millisecond

// ScreenSource adapts a tcell screen's event stream into frame-polled
// key events. Terminals report key-down only, so a held key is modeled
// as pressed until no repeat event arrives for the decay window, at
// which point Poll emits a synthetic release.
type ScreenSource struct {
	events chan *tcell.EventKey
	done   chan struct{}
	trans  TcellTranslator
	decay  time.Duration
	clock  func() time.Time
	down   map[key.Code]time.Time
}

// ScreenOption configures a ScreenSource.
type ScreenOption func(*ScreenSource)

// WithDecay overrides the synthetic-release window.
func WithDecay(d time.Duration) ScreenOption {
	return func(s *ScreenSource) { s.decay = d }
}

// WithScreenClock overrides the time source used for decay checks.
func WithScreenClock(clock func() time.Time) ScreenOption {
	return func(s *ScreenSource) { s.clock = clock }
}

// NewScreenSource starts pumping key events from screen. Close must be
// called to stop the pump goroutine; the screen itself is not owned by
// the source and stays up after Close.
func NewScreenSource(screen tcell.Screen, opts ...ScreenOption) *ScreenSource {
	s := &ScreenSource{
		events: make(chan *tcell.EventKey, 256),
		done:   make(chan struct{}),
		decay:  DefaultDecay,
		clock:  time.Now,
		down:   make(map[key.Code]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.pump(screen)
	return s
}

func (s *ScreenSource) pump(screen tcell.Screen) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		kev, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		select {
		case s.events <- kev:
		case <-s.done:
			return
		default:
			// Channel full; drop rather than stall the terminal.
		}
	}
}

// Poll drains buffered terminal events into native press events and
// appends synthetic releases for keys whose decay window elapsed.
func (s *ScreenSource) Poll() []key.Event {
	var out []key.Event
	for {
		select {
		case ev := <-s.events:
			code, ok := s.trans.FromBackend(ev)
			if !ok {
				continue
			}
			if _, held := s.down[code]; !held {
				out = append(out, key.Event{
					Code:   code,
					State:  key.StatePressed,
					Device: key.DeviceKeyboard,
					Time:   ev.When(),
				})
			}
			s.down[code] = ev.When()
		default:
			now := s.clock()
			for code, last := range s.down {
				if now.Sub(last) < s.decay {
					continue
				}
				delete(s.down, code)
				out = append(out, key.Event{
					Code:   code,
					State:  key.StateReleased,
					Device: key.DeviceKeyboard,
					Time:   now,
				})
			}
			return out
		}
	}
}

// Close stops the pump goroutine and releases any keys still marked
// down on the next Poll.
func (s *ScreenSource) Close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}
