package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	rec := Record{
		TableID:   "main",
		HandNo:    1,
		HandID:    "9b2f8c1e",
		Game:      "texas-holdem",
		Pot:       150,
		Carryover: 0,
		Result:    json.RawMessage(`{"pot":150,"winnings":{"2":150}}`),
		Players: []PlayerRecord{
			{Seat: 0, PlayerID: "alice", Folded: true, FoldPhase: "preflop-betting", Net: -10},
			{Seat: 2, PlayerID: "carol", ShowedDown: true, Net: 80, Cards: "A♠ A♥ K♦ 7♣ 2♠"},
		},
	}
	require.NoError(t, s.Record(rec))

	got, err := s.Hand("main", 1)
	require.NoError(t, err)
	assert.Equal(t, rec.TableID, got.TableID)
	assert.Equal(t, rec.HandNo, got.HandNo)
	assert.Equal(t, rec.HandID, got.HandID)
	assert.Equal(t, rec.Game, got.Game)
	assert.Equal(t, rec.Pot, got.Pot)
	assert.JSONEq(t, string(rec.Result), string(got.Result))
	assert.False(t, got.PlayedAt.IsZero())
	require.Len(t, got.Players, 2)
	assert.Equal(t, rec.Players[0], got.Players[0])
	assert.Equal(t, rec.Players[1], got.Players[1])
}

func TestStoreIdempotentWrites(t *testing.T) {
	s := openTestStore(t)

	first := Record{
		TableID: "main", HandNo: 1, HandID: "aaa",
		Game: "omaha", Pot: 40, Result: json.RawMessage(`{}`),
		Players: []PlayerRecord{{Seat: 1, PlayerID: "bob", Net: 40}},
	}
	require.NoError(t, s.Record(first))

	// Replaying the same hand number must not clobber the stored record.
	replay := first
	replay.HandID = "bbb"
	replay.Pot = 999
	replay.Players = []PlayerRecord{{Seat: 3, PlayerID: "mallory", Net: 999}}
	require.NoError(t, s.Record(replay))

	got, err := s.Hand("main", 1)
	require.NoError(t, err)
	assert.Equal(t, "aaa", got.HandID)
	assert.Equal(t, 40, got.Pot)
	require.Len(t, got.Players, 1)
	assert.Equal(t, "bob", got.Players[0].PlayerID)
}

func TestStoreRecent(t *testing.T) {
	s := openTestStore(t)

	for no := 1; no <= 5; no++ {
		require.NoError(t, s.Record(Record{
			TableID: "main", HandNo: no, HandID: "h",
			Game: "baseball", Pot: no * 10, Result: json.RawMessage(`{}`),
		}))
	}
	require.NoError(t, s.Record(Record{
		TableID: "side", HandNo: 1, HandID: "h",
		Game: "baseball", Pot: 7, Result: json.RawMessage(`{}`),
	}))

	recent, err := s.Recent("main", 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 5, recent[0].HandNo)
	assert.Equal(t, 4, recent[1].HandNo)
	assert.Equal(t, 3, recent[2].HandNo)

	none, err := s.Recent("empty", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreHandNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Hand("main", 42)
	assert.Error(t, err)
}
