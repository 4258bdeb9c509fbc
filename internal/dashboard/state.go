package dashboard

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/stats"
)

// Phase is the coarse state of the dashboard.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseError
	PhaseEmpty
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	case PhaseEmpty:
		return "empty"
	default:
		return "loading"
	}
}

// MarshalText encodes the phase name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Intro tracks the one-shot intro transition.
type Intro int

const (
	IntroPlaying Intro = iota
	IntroExiting
	IntroDone
)

// State is an immutable dashboard snapshot. Values are replaced, never
// edited; slices and the table are shared between snapshots and must be
// treated as read-only.
type State struct {
	Phase       Phase
	Stats       *leaders.CategoryTable
	Rows        []leaders.PlayerRow
	Diagnostics []leaders.Diagnostic
	Games       []games.Snapshot
	Message     string
	Err         error
	Intro       Intro
	Refreshing  bool
	Seq         uint64
	UpdatedAt   time.Time

	// started is the newest sequence handed to FetchStarted.
	started uint64
}

// Loading reports whether no result has settled yet.
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// Interactive reports whether the intro has finished and data has settled.
func (s State) Interactive() bool {
	return s.Intro == IntroDone && s.Phase != PhaseLoading
}

// ShowIntro reports whether the intro screen should be on screen.
func (s State) ShowIntro() bool {
	return !s.Interactive()
}

// AnyLive reports whether any known game is in progress.
func (s State) AnyLive() bool {
	return games.AnyLive(s.Games)
}

// MessageLoading is served while the first fetch is outstanding.
const MessageLoading = "Stats are loading."

// Payload renders the state back into the upstream wire shape: stats and
// games when ready, the message and games when empty, the error text and
// last known games otherwise.
func (s State) Payload() stats.Payload {
	switch s.Phase {
	case PhaseReady:
		return stats.Success(s.Stats, s.Games)
	case PhaseEmpty:
		return stats.Degraded(s.Message, s.Games)
	case PhaseError:
		return stats.Failure(s.Message, s.Games)
	default:
		return stats.Failure(MessageLoading, nil)
	}
}

// Event is an input to Update.
type Event interface {
	isEvent()
}

// FetchStarted marks the start of request Seq.
type FetchStarted struct {
	Seq uint64
}

// FetchSucceeded carries the decoded payload of request Seq.
type FetchSucceeded struct {
	Seq     uint64
	Payload stats.Payload
	At      time.Time
}

// FetchFailed carries the transport error of request Seq.
type FetchFailed struct {
	Seq uint64
	Err error
	At  time.Time
}

// IntroCompleted fires when the intro exit animation has finished. It is
// ignored unless the intro is exiting.
type IntroCompleted struct{}

func (FetchStarted) isEvent()   {}
func (FetchSucceeded) isEvent() {}
func (FetchFailed) isEvent()    {}
func (IntroCompleted) isEvent() {}

// Initial is the state before the first fetch.
func Initial() State {
	return State{Phase: PhaseLoading, Intro: IntroPlaying}
}

// Update is the single transition function. Results whose Seq is not newer
// than the last applied one are dropped.
func Update(s State, ev Event) State {
	switch e := ev.(type) {
	case FetchStarted:
		if e.Seq > s.started {
			s.started = e.Seq
		}
		if s.Phase != PhaseLoading {
			s.Refreshing = true
		}
		return s
	case FetchSucceeded:
		if e.Seq <= s.Seq {
			return s
		}
		if err := e.Payload.Empty(); err != nil {
			return settle(applyEmpty(s, e, err))
		}
		merged := leaders.Merge(e.Payload.Stats)
		s.Phase = PhaseReady
		s.Stats = e.Payload.Stats
		s.Rows = merged.Rows
		s.Diagnostics = merged.Diagnostics
		s.Games = e.Payload.Games
		s.Message = ""
		s.Err = nil
		s.Seq = e.Seq
		s.UpdatedAt = e.At
		return settle(s)
	case FetchFailed:
		if e.Seq <= s.Seq {
			return s
		}
		s.Phase = PhaseError
		s.Err = e.Err
		s.Message = MessageFor(e.Err, s.Games)
		s.Seq = e.Seq
		s.UpdatedAt = e.At
		return settle(s)
	case IntroCompleted:
		if s.Intro == IntroExiting {
			s.Intro = IntroDone
		}
		return s
	default:
		return s
	}
}

func applyEmpty(s State, e FetchSucceeded, err error) State {
	s.Phase = PhaseEmpty
	s.Stats = nil
	s.Rows = nil
	s.Diagnostics = nil
	if e.Payload.HasGames() {
		s.Games = e.Payload.Games
	}
	s.Err = err
	s.Message = MessageFor(err, s.Games)
	s.Seq = e.Seq
	s.UpdatedAt = e.At
	return s
}

// settle starts the intro exit once a result has landed. Refreshing stays
// set while a newer request is still in flight.
func settle(s State) State {
	if s.Seq >= s.started {
		s.Refreshing = false
	}
	if s.Intro == IntroPlaying {
		s.Intro = IntroExiting
	}
	return s
}

// User-facing messages.
const (
	MessageLivePending   = "Games are currently in progress, but statistics are not yet available. Please check back in a few minutes."
	MessageNoStats       = "No stats available yet. Please try again later."
	MessageFetchLive     = "Live games are in progress and stats are pending. Retrying shortly."
	MessageFetchTryLater = "Failed to fetch stats. Please try again later."
)

// MessageFor maps a failure to the text shown to the user. An upstream
// message wins; otherwise a live game switches to the "stats pending" wording.
func MessageFor(err error, snapshots []games.Snapshot) string {
	live := games.AnyLive(snapshots)

	var empty *stats.EmptyError
	if errors.As(err, &empty) {
		switch {
		case empty.Message != "":
			return empty.Message
		case live:
			return MessageLivePending
		default:
			return MessageNoStats
		}
	}
	if live {
		return MessageFetchLive
	}
	return MessageFetchTryLater
}
