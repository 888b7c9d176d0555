// internal/workers/data-access/record-turn/recorder.go
package recordturn

import (
	"context"
	"database/sql"
	"encoding/json"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/models"
)

const insertTurnQuery = `INSERT INTO sales_turns (id, shop_id, conversation_id, text, intent, action, ai_reason, recommended, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO NOTHING`

// Recorder appends turns to sales_turns. Re-recording an id is a no-op so
// retried jobs stay idempotent.
type Recorder struct {
	db *sql.DB
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(ctx context.Context, rec models.TurnRecord) error {
	recommended := rec.RecommendedIDs
	if recommended == nil {
		recommended = []string{}
	}
	payload, err := json.Marshal(recommended)
	if err != nil {
		return errors.NewTurnLogFailedError(err)
	}

	_, err = r.db.ExecContext(ctx, insertTurnQuery,
		rec.ID,
		rec.ShopID,
		nullable(rec.ConversationID),
		rec.Text,
		string(rec.Intent),
		rec.Action,
		nullable(rec.AIReason),
		string(payload),
		rec.CreatedAt,
	)
	if err != nil {
		return errors.NewTurnLogFailedError(err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
