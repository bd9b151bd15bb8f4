package repository

import (
	"context"

	"pitchbridge/internal/database"
	"pitchbridge/internal/domain/match"

	"github.com/google/uuid"
)

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, investor_id, founder_id, pitch_id, match_score, match_reason, key_alignments,
	outreach_template, status, outreach_status, generated_by, outreach_sent_at, response_received_at,
	response_notes, created_at, updated_at`

// InsertIfAbsent relies on the unique constraint on (investor_id, founder_id):
// ON CONFLICT DO NOTHING makes concurrent generations race-safe, the loser
// simply observes zero rows affected.
func (r *PostgresMatchRepository) InsertIfAbsent(ctx context.Context, m match.Match) (bool, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = match.StatusSuggested
	}
	if m.OutreachStatus == "" {
		m.OutreachStatus = match.OutreachNotStarted
	}
	if m.KeyAlignments == nil {
		m.KeyAlignments = []string{}
	}

	n, err := r.db.Exec(ctx,
		`INSERT INTO investor_matches
			(id, investor_id, founder_id, pitch_id, match_score, match_reason, key_alignments,
			 outreach_template, status, outreach_status, generated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (investor_id, founder_id) DO NOTHING`,
		m.ID, m.InvestorID, m.FounderID, m.PitchID, m.MatchScore, m.MatchReason, m.KeyAlignments,
		m.OutreachTemplate, m.Status, string(m.OutreachStatus), m.GeneratedBy,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx, `SELECT `+matchColumns+` FROM investor_matches WHERE id = $1`, id)
	return scanMatch(row)
}

func (r *PostgresMatchRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]match.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+matchColumns+` FROM investor_matches
		 WHERE investor_id = $1 OR founder_id = $1
		 ORDER BY match_score DESC, created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []match.Match
	for rows.Next() {
		m, err := scanMatchFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *PostgresMatchRepository) UpdateOutreach(ctx context.Context, m match.Match) error {
	n, err := r.db.Exec(ctx,
		`UPDATE investor_matches SET
			outreach_status = $2, outreach_sent_at = $3, response_received_at = $4,
			response_notes = $5, updated_at = now()
		 WHERE id = $1`,
		m.ID, string(m.OutreachStatus), m.OutreachSentAt, m.ResponseReceivedAt, m.ResponseNotes,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return match.ErrNotFound
	}
	return nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var m match.Match
	var outreachStatus string
	err := row.Scan(&m.ID, &m.InvestorID, &m.FounderID, &m.PitchID, &m.MatchScore, &m.MatchReason,
		&m.KeyAlignments, &m.OutreachTemplate, &m.Status, &outreachStatus, &m.GeneratedBy,
		&m.OutreachSentAt, &m.ResponseReceivedAt, &m.ResponseNotes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return match.Match{}, match.ErrNotFound
		}
		return match.Match{}, err
	}
	m.OutreachStatus = match.OutreachStatus(outreachStatus)
	return m, nil
}

func scanMatchFromRows(rows database.Rows) (match.Match, error) {
	var m match.Match
	var outreachStatus string
	err := rows.Scan(&m.ID, &m.InvestorID, &m.FounderID, &m.PitchID, &m.MatchScore, &m.MatchReason,
		&m.KeyAlignments, &m.OutreachTemplate, &m.Status, &outreachStatus, &m.GeneratedBy,
		&m.OutreachSentAt, &m.ResponseReceivedAt, &m.ResponseNotes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return match.Match{}, err
	}
	m.OutreachStatus = match.OutreachStatus(outreachStatus)
	return m, nil
}
