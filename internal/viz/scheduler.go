package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/projsim/internal/playback"
)

// TickMsg carries a playback tick back into the Bubble Tea update loop.
type TickMsg struct {
	Token playback.Token
	Time  time.Time
}

// TeaScheduler adapts the controller's tick requests to Bubble Tea.
// Requests are queued while the controller runs and turned into tea.Tick
// commands by Flush after each update.
type TeaScheduler struct {
	interval time.Duration
	pending  []playback.Token
}

func NewTeaScheduler(fps int) *TeaScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TeaScheduler{interval: time.Second / time.Duration(fps)}
}

func (s *TeaScheduler) Interval() time.Duration { return s.interval }

func (s *TeaScheduler) RequestTick(tok playback.Token) {
	s.pending = append(s.pending, tok)
}

// CancelTick drops a queued request. A tick already handed to Bubble Tea
// cannot be withdrawn; the controller ignores it by token.
func (s *TeaScheduler) CancelTick(tok playback.Token) {
	kept := s.pending[:0]
	for _, p := range s.pending {
		if p != tok {
			kept = append(kept, p)
		}
	}
	s.pending = kept
}

func (s *TeaScheduler) Pending() int { return len(s.pending) }

// Flush returns a command firing one TickMsg per queued request, or nil.
func (s *TeaScheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, tok := range s.pending {
		tok := tok
		cmds = append(cmds, tea.Tick(s.interval, func(t time.Time) tea.Msg {
			return TickMsg{Token: tok, Time: t}
		}))
	}
	s.pending = s.pending[:0]
	return tea.Batch(cmds...)
}
