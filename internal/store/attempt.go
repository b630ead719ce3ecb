package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// attemptRepo implements AttemptRepo with plain SQL and the global
// sequence counter.
type attemptRepo struct {
	db  *sql.DB
	dia dialect
	seq *sequenceCounter
}

func (r *attemptRepo) AppendEquationAttempt(ctx context.Context, data EquationAttemptData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	eqs, err := json.Marshal(data.Equations)
	if err != nil {
		return fmt.Errorf("marshal equations: %w", err)
	}
	matches, err := json.Marshal(data.Matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}

	_, err = r.db.ExecContext(ctx, r.dia.rebind(`INSERT INTO equation_attempts
		(id, sequence, timestamp_ms, set_id, name, comment, equations, matches, independent, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		data.ID, seqNum, timestampOf(data.Timestamp), data.SetID, data.Name, data.Comment,
		string(eqs), string(matches), data.Independent, data.Result,
	)
	if err != nil {
		return fmt.Errorf("save equation attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) AppendCurrentAttempt(ctx context.Context, data CurrentAttemptData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	verdicts, err := json.Marshal(data.Verdicts)
	if err != nil {
		return fmt.Errorf("marshal verdicts: %w", err)
	}

	_, err = r.db.ExecContext(ctx, r.dia.rebind(`INSERT INTO current_attempts
		(id, sequence, timestamp_ms, set_id, name, comment,
		 i1_ma, i2_ma, i3_ma, expected_i1_ma, expected_i2_ma, expected_i3_ma,
		 expected_source, tolerance_ma, verdicts, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		data.ID, seqNum, timestampOf(data.Timestamp), data.SetID, data.Name, data.Comment,
		data.Submitted[0], data.Submitted[1], data.Submitted[2],
		data.Expected[0], data.Expected[1], data.Expected[2],
		data.ExpectedSource, data.ToleranceMA, string(verdicts), data.Result,
	)
	if err != nil {
		return fmt.Errorf("save current attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) ListAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	var (
		parts []string
		args  []any
	)
	for _, k := range []Kind{KindEquations, KindCurrents} {
		if opts.Kind != "" && opts.Kind != k {
			continue
		}
		q := fmt.Sprintf(`SELECT id, '%s', sequence, timestamp_ms, set_id, name, result FROM %s WHERE sequence > ?`, k, tableFor(k))
		args = append(args, opts.After)
		if opts.SetID > 0 {
			q += ` AND set_id = ?`
			args = append(args, opts.SetID)
		}
		parts = append(parts, q)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("unknown attempt kind %q", opts.Kind)
	}

	query := strings.Join(parts, " UNION ALL ") + ` ORDER BY 3 DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.dia.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a  Attempt
			ts int64
		)
		if err := rows.Scan(&a.ID, &a.Kind, &a.Sequence, &ts, &a.SetID, &a.Name, &a.Result); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) SetSummary(ctx context.Context, setID int) (SetSummary, error) {
	sum := SetSummary{SetID: setID}
	var err error
	if sum.Equations, err = r.countByResult(ctx, KindEquations, setID); err != nil {
		return SetSummary{}, err
	}
	if sum.Currents, err = r.countByResult(ctx, KindCurrents, setID); err != nil {
		return SetSummary{}, err
	}
	return sum, nil
}

func (r *attemptRepo) countByResult(ctx context.Context, k Kind, setID int) (map[string]int, error) {
	q := fmt.Sprintf(`SELECT result, COUNT(*) FROM %s WHERE set_id = ? GROUP BY result`, tableFor(k))
	rows, err := r.db.QueryContext(ctx, r.dia.rebind(q), setID)
	if err != nil {
		return nil, fmt.Errorf("count %s attempts: %w", k, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			result string
			n      int
		)
		if err := rows.Scan(&result, &n); err != nil {
			return nil, fmt.Errorf("scan %s count: %w", k, err)
		}
		counts[result] = n
	}
	return counts, rows.Err()
}

// Total returns the number of attempts in counts.
func Total(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}

func tableFor(k Kind) string {
	if k == KindCurrents {
		return "current_attempts"
	}
	return "equation_attempts"
}

func timestampOf(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}
