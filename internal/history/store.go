package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record is one completed hand as persisted
type Record struct {
	TableID   string
	HandNo    int
	HandID    string
	Game      string
	Pot       int
	Carryover int
	Result    json.RawMessage
	Players   []PlayerRecord
	PlayedAt  time.Time
}

// PlayerRecord is one seat's outcome in a hand. Net is winnings minus
// contributions, so the column sums to zero across a hand unless chips
// carried over.
type PlayerRecord struct {
	Seat       int
	PlayerID   string
	Folded     bool
	FoldPhase  string
	ShowedDown bool
	Net        int
	Cards      string
}

// Store persists completed hands to SQLite. Writes are idempotent on
// (table_id, hand_no), so replaying a hand after a crash recovery is a
// no-op.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return &Store{db: db}, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS hands (
		table_id  TEXT    NOT NULL,
		hand_no   INTEGER NOT NULL,
		hand_id   TEXT    NOT NULL,
		game      TEXT    NOT NULL,
		pot       INTEGER NOT NULL,
		carryover INTEGER NOT NULL DEFAULT 0,
		result    TEXT    NOT NULL,
		played_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (table_id, hand_no)
	);
	CREATE TABLE IF NOT EXISTS hand_players (
		table_id    TEXT    NOT NULL,
		hand_no     INTEGER NOT NULL,
		seat        INTEGER NOT NULL,
		player_id   TEXT    NOT NULL,
		folded      INTEGER NOT NULL DEFAULT 0,
		fold_phase  TEXT    NOT NULL DEFAULT '',
		showed_down INTEGER NOT NULL DEFAULT 0,
		net         INTEGER NOT NULL,
		cards       TEXT    NOT NULL DEFAULT '',
		PRIMARY KEY (table_id, hand_no, seat)
	)
`

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record writes one hand and its per-seat outcomes. A record already present
// for the same table and hand number is left untouched.
func (s *Store) Record(rec Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("recording hand %s/%d: %w", rec.TableID, rec.HandNo, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT OR IGNORE INTO hands
			(table_id, hand_no, hand_id, game, pot, carryover, result)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.TableID, rec.HandNo, rec.HandID, rec.Game, rec.Pot, rec.Carryover, string(rec.Result))
	if err != nil {
		return fmt.Errorf("recording hand %s/%d: %w", rec.TableID, rec.HandNo, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Replay of an already recorded hand.
		return nil
	}

	for _, p := range rec.Players {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO hand_players
				(table_id, hand_no, seat, player_id, folded, fold_phase, showed_down, net, cards)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.TableID, rec.HandNo, p.Seat, p.PlayerID, p.Folded, p.FoldPhase, p.ShowedDown, p.Net, p.Cards)
		if err != nil {
			return fmt.Errorf("recording hand %s/%d seat %d: %w", rec.TableID, rec.HandNo, p.Seat, err)
		}
	}
	return tx.Commit()
}

// Hand loads one hand by table and hand number, per-seat outcomes included
func (s *Store) Hand(tableID string, handNo int) (Record, error) {
	row := s.db.QueryRow(`
		SELECT table_id, hand_no, hand_id, game, pot, carryover, result, played_at
		FROM hands WHERE table_id = ? AND hand_no = ?`, tableID, handNo)
	rec, err := scanRecord(row)
	if err != nil {
		return rec, err
	}

	rows, err := s.db.Query(`
		SELECT seat, player_id, folded, fold_phase, showed_down, net, cards
		FROM hand_players WHERE table_id = ? AND hand_no = ?
		ORDER BY seat`, tableID, handNo)
	if err != nil {
		return rec, fmt.Errorf("loading players for %s/%d: %w", tableID, handNo, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p PlayerRecord
		if err := rows.Scan(&p.Seat, &p.PlayerID, &p.Folded, &p.FoldPhase, &p.ShowedDown, &p.Net, &p.Cards); err != nil {
			return rec, fmt.Errorf("scanning player record: %w", err)
		}
		rec.Players = append(rec.Players, p)
	}
	return rec, rows.Err()
}

// Recent returns up to limit hands for a table, newest first. Per-seat rows
// are not loaded; use Hand for the full record.
func (s *Store) Recent(tableID string, limit int) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT table_id, hand_no, hand_id, game, pot, carryover, result, played_at
		FROM hands WHERE table_id = ?
		ORDER BY hand_no DESC LIMIT ?`, tableID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing hands for %s: %w", tableID, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var result string
	err := row.Scan(&rec.TableID, &rec.HandNo, &rec.HandID, &rec.Game,
		&rec.Pot, &rec.Carryover, &result, &rec.PlayedAt)
	if err == sql.ErrNoRows {
		return rec, fmt.Errorf("hand not found")
	}
	if err != nil {
		return rec, fmt.Errorf("scanning hand record: %w", err)
	}
	rec.Result = json.RawMessage(result)
	return rec, nil
}
