package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/PhucNguyen204/LineCheck_V2/pkg/verify"
)

// RunRecord is one persisted verification run.
type RunRecord struct {
	ID         int64           `json:"id"`
	StartedAt  time.Time       `json:"started_at"`
	Name       string          `json:"name"`
	Passed     bool            `json:"passed"`
	Directives int             `json:"directives"`
	InputLines int             `json:"input_lines"`
	Diagnostic json.RawMessage `json:"diagnostic,omitempty"`
}

func (s *AppServer) insertRun(ctx context.Context, name string, v verify.Verdict) error {
	var diag any
	if v.Failure != nil {
		b, err := json.Marshal(v.Failure)
		if err != nil {
			return err
		}
		diag = string(b)
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO runs(started_at, name, passed, directives, input_lines, diagnostic)
        VALUES ($1,$2,$3,$4,$5,$6)`,
		time.Now().UTC(), name, v.Pass, v.DirectivesRun, v.InputLines, diag,
	)
	return err
}

func (s *AppServer) listRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, started_at, name, passed, directives, input_lines, diagnostic
        FROM runs ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RunRecord{}
	for rows.Next() {
		var rec RunRecord
		var diag sql.NullString
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.Name, &rec.Passed, &rec.Directives, &rec.InputLines, &diag); err != nil {
			return nil, err
		}
		if diag.Valid {
			rec.Diagnostic = json.RawMessage(diag.String)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
