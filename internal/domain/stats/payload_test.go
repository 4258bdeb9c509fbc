package stats

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/games"
	"github.com/preston-bernstein/nba-leaders-dashboard/internal/domain/leaders"
)

func TestDecodeSuccessPayload(t *testing.T) {
	raw := `{"stats":{"Points":["A (X): 30 ||| "]},"games":[{"gameId":"1","gameStatus":3}]}`
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	require.NotNil(t, p.Stats)
	assert.Equal(t, []string{"Points"}, p.Stats.Categories())
	assert.Len(t, p.Games, 1)
	assert.NoError(t, p.Empty())
}

func TestDecodeDegradedPayload(t *testing.T) {
	raw := `{"message":"No player statistics available yet","games":[{"gameId":"1","gameStatus":2}]}`
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Nil(t, p.Stats)
	assert.True(t, p.HasGames())

	err := p.Empty()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamEmpty))
	var empty *EmptyError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "No player statistics available yet", empty.Message)
}

func TestDegradedWithoutGames(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"message":"later"}`), &p))
	assert.False(t, p.HasGames())
}

func TestEmptyTableIsUpstreamEmpty(t *testing.T) {
	p := Success(leaders.NewCategoryTable(), nil)
	err := p.Empty()
	require.Error(t, err)
	assert.Equal(t, ErrUpstreamEmpty.Error(), err.Error())
}

func TestEncodeKeepsContractShape(t *testing.T) {
	table := leaders.NewCategoryTable()
	table.Add("Rebounds", "B (Y): 12 ||| ")
	table.Add("Points", "A (X): 30 ||| ")

	out, err := json.Marshal(Success(table, nil))
	require.NoError(t, err)
	assert.Equal(t, `{"stats":{"Rebounds":["B (Y): 12 ||| "],"Points":["A (X): 30 ||| "]},"games":[]}`, string(out))

	out, err = json.Marshal(Degraded("wait", []games.Snapshot{{ID: "g"}}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"message":"wait"`)
	assert.NotContains(t, string(out), `"stats"`)
}
