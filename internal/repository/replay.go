package repository

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/resolve"
)

// ReplayEntry is the persisted form of one execution-history entry.
type ReplayEntry struct {
	Sequence   int    `json:"sequence"`
	Kind       string `json:"kind"`
	Succeeded  bool   `json:"succeeded"`
	Code       string `json:"code,omitempty"`
	MessageKey string `json:"message_key,omitempty"`
}

// ReplayEntriesFromHistory converts a drained stack's history for storage.
func ReplayEntriesFromHistory(history []resolve.HistoryEntry) []ReplayEntry {
	entries := make([]ReplayEntry, len(history))
	for i, h := range history {
		entries[i] = ReplayEntry{
			Sequence:   h.Sequence,
			Kind:       string(h.Kind),
			Succeeded:  h.Result.Succeeded,
			Code:       string(h.Result.Code),
			MessageKey: h.Result.MessageKey,
		}
	}
	return entries
}

const replaySchema = `
CREATE TABLE IF NOT EXISTS replays (
	id          BIGSERIAL PRIMARY KEY,
	game_id     TEXT        NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	entries     JSONB       NOT NULL
);
CREATE INDEX IF NOT EXISTS replays_game_id_idx ON replays (game_id);
`

// ReplayRepository stores the execution history of resolved chains.
type ReplayRepository struct {
	db *DB
}

// NewReplayRepository creates a replay repository over the database.
func NewReplayRepository(db *DB) *ReplayRepository {
	return &ReplayRepository{db: db}
}

// EnsureSchema creates the replay table when missing.
func (r *ReplayRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool().Exec(ctx, replaySchema); err != nil {
		return fmt.Errorf("ensure replay schema: %w", err)
	}
	return nil
}

// SaveReplay persists one resolved chain's history for the game.
func (r *ReplayRepository) SaveReplay(ctx context.Context, gameID string, entries []ReplayEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal replay entries: %w", err)
	}
	if _, err := r.db.Pool().Exec(ctx,
		`INSERT INTO replays (game_id, entries) VALUES ($1, $2)`,
		gameID, payload,
	); err != nil {
		return fmt.Errorf("insert replay for game %s: %w", gameID, err)
	}
	return nil
}

// LoadReplays returns every stored chain history for the game, oldest
// first.
func (r *ReplayRepository) LoadReplays(ctx context.Context, gameID string) ([][]ReplayEntry, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT entries FROM replays WHERE game_id = $1 ORDER BY id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("query replays for game %s: %w", gameID, err)
	}
	defer rows.Close()

	var replays [][]ReplayEntry
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan replay row: %w", err)
		}
		var entries []ReplayEntry
		if err := json.Unmarshal(payload, &entries); err != nil {
			return nil, fmt.Errorf("unmarshal replay entries: %w", err)
		}
		replays = append(replays, entries)
	}
	return replays, rows.Err()
}
