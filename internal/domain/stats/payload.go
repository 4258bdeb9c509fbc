package stats

import (
	"github.com/cockroachdb/errors"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
)

// ErrUpstreamEmpty matches every EmptyError.
var ErrUpstreamEmpty = errors.New("upstream has no stats yet")

// EmptyError is a well-formed response that carries no player stats.
type EmptyError struct {
	Message string
}

func (e *EmptyError) Error() string {
	if e.Message == "" {
		return ErrUpstreamEmpty.Error()
	}
	return "upstream has no stats yet: " + e.Message
}

// Is lets errors.Is(err, ErrUpstreamEmpty) match.
func (e *EmptyError) Is(target error) bool {
	return target == ErrUpstreamEmpty
}

// Payload is the wire contract of the stats endpoint.
//
//	success:  {"stats": {...}, "games": [...]}
//	degraded: {"message": "...", "games": [...]}
//	failure:  {"error": "...", "games": []}
type Payload struct {
	Stats   *leaders.CategoryTable `json:"stats,omitempty"`
	Games   []games.Snapshot       `json:"games"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// Success builds a payload with stats and games.
func Success(table *leaders.CategoryTable, snapshots []games.Snapshot) Payload {
	return Payload{Stats: table, Games: normalizeGames(snapshots)}
}

// Degraded builds a "no stats yet" payload that still carries scores.
func Degraded(message string, snapshots []games.Snapshot) Payload {
	return Payload{Message: message, Games: normalizeGames(snapshots)}
}

// Failure builds an error payload.
func Failure(message string, snapshots []games.Snapshot) Payload {
	return Payload{Error: message, Games: normalizeGames(snapshots)}
}

// HasGames reports whether the payload carried a games array.
func (p Payload) HasGames() bool {
	return p.Games != nil
}

// Empty returns an *EmptyError when the payload is well formed but has no
// stats to show: an upstream message, or a missing or empty table.
func (p Payload) Empty() error {
	if p.Message != "" {
		return &EmptyError{Message: p.Message}
	}
	if p.Stats == nil || p.Stats.IsEmpty() {
		return &EmptyError{}
	}
	return nil
}

func normalizeGames(snapshots []games.Snapshot) []games.Snapshot {
	if snapshots == nil {
		return []games.Snapshot{}
	}
	return snapshots
}
