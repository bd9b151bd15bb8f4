package repository

import (
	"context"

	"pitchbridge/internal/database"
	"pitchbridge/internal/domain/pitch"

	"github.com/google/uuid"
)

type PostgresPitchRepository struct {
	db database.DB
}

func NewPostgresPitchRepository(db database.DB) *PostgresPitchRepository {
	return &PostgresPitchRepository{db: db}
}

const pitchColumns = `id, founder_id, startup_name, category, product_stage, one_liner, problem,
	is_published, created_at, updated_at`

func (r *PostgresPitchRepository) Create(ctx context.Context, p pitch.Pitch) (pitch.Pitch, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO pitches (id, founder_id, startup_name, category, product_stage, one_liner, problem, is_published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+pitchColumns,
		p.ID, p.FounderID, p.StartupName, p.Category, p.ProductStage, p.OneLiner, p.Problem, p.IsPublished,
	)
	return scanPitch(row)
}

func (r *PostgresPitchRepository) Update(ctx context.Context, p pitch.Pitch) (pitch.Pitch, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE pitches SET
			startup_name = $2, category = $3, product_stage = $4,
			one_liner = $5, problem = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING `+pitchColumns,
		p.ID, p.StartupName, p.Category, p.ProductStage, p.OneLiner, p.Problem,
	)
	return scanPitch(row)
}

func (r *PostgresPitchRepository) GetByID(ctx context.Context, id uuid.UUID) (pitch.Pitch, error) {
	row := r.db.QueryRow(ctx, `SELECT `+pitchColumns+` FROM pitches WHERE id = $1`, id)
	return scanPitch(row)
}

func (r *PostgresPitchRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]pitch.Pitch, error) {
	out := make(map[uuid.UUID]pitch.Pitch, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+pitchColumns+` FROM pitches WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPitchFromRows(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *PostgresPitchRepository) ListByFounder(ctx context.Context, founderID uuid.UUID) ([]pitch.Pitch, error) {
	return r.list(ctx, `SELECT `+pitchColumns+` FROM pitches WHERE founder_id = $1 ORDER BY created_at`, founderID)
}

func (r *PostgresPitchRepository) ListPublished(ctx context.Context) ([]pitch.Pitch, error) {
	return r.list(ctx, `SELECT `+pitchColumns+` FROM pitches WHERE is_published = TRUE ORDER BY created_at`)
}

func (r *PostgresPitchRepository) ListPublishedByFounder(ctx context.Context, founderID uuid.UUID) ([]pitch.Pitch, error) {
	return r.list(ctx,
		`SELECT `+pitchColumns+` FROM pitches WHERE founder_id = $1 AND is_published = TRUE ORDER BY created_at`,
		founderID)
}

func (r *PostgresPitchRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	n, err := r.db.Exec(ctx,
		`UPDATE pitches SET is_published = $2, updated_at = now() WHERE id = $1`, id, published)
	if err != nil {
		return err
	}
	if n == 0 {
		return pitch.ErrNotFound
	}
	return nil
}

func (r *PostgresPitchRepository) list(ctx context.Context, query string, args ...any) ([]pitch.Pitch, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pitch.Pitch
	for rows.Next() {
		p, err := scanPitchFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPitch(row database.Row) (pitch.Pitch, error) {
	var p pitch.Pitch
	err := row.Scan(&p.ID, &p.FounderID, &p.StartupName, &p.Category, &p.ProductStage,
		&p.OneLiner, &p.Problem, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return pitch.Pitch{}, pitch.ErrNotFound
		}
		return pitch.Pitch{}, err
	}
	return p, nil
}

func scanPitchFromRows(rows database.Rows) (pitch.Pitch, error) {
	var p pitch.Pitch
	err := rows.Scan(&p.ID, &p.FounderID, &p.StartupName, &p.Category, &p.ProductStage,
		&p.OneLiner, &p.Problem, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
