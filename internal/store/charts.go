package store

import (
	"database/sql"
	"time"
)

// ChartRecord tracks one rendered chart and the source it came from
type ChartRecord struct {
	Score       string
	SourcePath  string
	SourceMtime time.Time
	Axis        string
	GlobalKey   string
	LastMN      int
	OutputPath  string
	RenderedAt  time.Time
}

// UpsertChart records a rendered chart, replacing any previous record
// for the same score
func (s *Store) UpsertChart(rec *ChartRecord) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO charts
		(score, source_path, source_mtime, axis, global_key, last_mn, output_path, rendered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'))
	`, rec.Score, rec.SourcePath, rec.SourceMtime.Unix(), rec.Axis, rec.GlobalKey,
		rec.LastMN, rec.OutputPath)
	return err
}

// GetChart retrieves the record for a score, or nil if never rendered
func (s *Store) GetChart(score string) (*ChartRecord, error) {
	var rec ChartRecord
	var mtime int64
	var renderedAt string
	err := s.db.QueryRow(`
		SELECT score, source_path, source_mtime, axis, global_key, last_mn, output_path, rendered_at
		FROM charts WHERE score = ?
	`, score).Scan(&rec.Score, &rec.SourcePath, &mtime, &rec.Axis, &rec.GlobalKey,
		&rec.LastMN, &rec.OutputPath, &renderedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.SourceMtime = time.Unix(mtime, 0)
	rec.RenderedAt, _ = time.Parse("2006-01-02 15:04:05", renderedAt)
	return &rec, nil
}

// ListCharts returns all chart records ordered by score name
func (s *Store) ListCharts() ([]*ChartRecord, error) {
	rows, err := s.db.Query(`
		SELECT score, source_path, source_mtime, axis, global_key, last_mn, output_path, rendered_at
		FROM charts ORDER BY score
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ChartRecord
	for rows.Next() {
		var rec ChartRecord
		var mtime int64
		var renderedAt string
		if err := rows.Scan(&rec.Score, &rec.SourcePath, &mtime, &rec.Axis, &rec.GlobalKey,
			&rec.LastMN, &rec.OutputPath, &renderedAt); err != nil {
			return nil, err
		}
		rec.SourceMtime = time.Unix(mtime, 0)
		rec.RenderedAt, _ = time.Parse("2006-01-02 15:04:05", renderedAt)
		out = append(out, &rec)
	}
	return out, rows.Err()
}

// NeedsRender reports whether a score must be (re-)rendered: it was never
// rendered, its source changed, or the axis changed since the last run
func (s *Store) NeedsRender(score string, sourceMtime time.Time, axis string) (bool, error) {
	rec, err := s.GetChart(score)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return true, nil
	}
	return rec.SourceMtime.Unix() != sourceMtime.Unix() || rec.Axis != axis, nil
}
