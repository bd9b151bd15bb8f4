package repository

import (
	"context"

	"pitchbridge/internal/database"
	"pitchbridge/internal/domain/investor"

	"github.com/google/uuid"
)

type PostgresInvestorProfileRepository struct {
	db database.DB
}

func NewPostgresInvestorProfileRepository(db database.DB) *PostgresInvestorProfileRepository {
	return &PostgresInvestorProfileRepository{db: db}
}

const profileColumns = `id, user_id, investor_type, investment_thesis, preferred_categories,
	preferred_stages, ticket_size_min, ticket_size_max, looking_for, is_active, created_at, updated_at`

func (r *PostgresInvestorProfileRepository) Upsert(ctx context.Context, p investor.Profile) (investor.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO investor_profiles
			(id, user_id, investor_type, investment_thesis, preferred_categories,
			 preferred_stages, ticket_size_min, ticket_size_max, looking_for, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
			investor_type = EXCLUDED.investor_type,
			investment_thesis = EXCLUDED.investment_thesis,
			preferred_categories = EXCLUDED.preferred_categories,
			preferred_stages = EXCLUDED.preferred_stages,
			ticket_size_min = EXCLUDED.ticket_size_min,
			ticket_size_max = EXCLUDED.ticket_size_max,
			looking_for = EXCLUDED.looking_for,
			is_active = EXCLUDED.is_active,
			updated_at = now()
		 RETURNING `+profileColumns,
		p.ID, p.UserID, p.InvestorType, p.InvestmentThesis, p.PreferredCategories,
		p.PreferredStages, p.TicketSizeMin, p.TicketSizeMax, p.LookingFor, p.IsActive,
	)
	return scanProfile(row)
}

func (r *PostgresInvestorProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (investor.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM investor_profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (r *PostgresInvestorProfileRepository) GetByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]investor.Profile, error) {
	out := make(map[uuid.UUID]investor.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM investor_profiles WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfileFromRows(rows)
		if err != nil {
			return nil, err
		}
		out[p.UserID] = p
	}
	return out, rows.Err()
}

func (r *PostgresInvestorProfileRepository) ListActive(ctx context.Context) ([]investor.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM investor_profiles WHERE is_active = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []investor.Profile
	for rows.Next() {
		p, err := scanProfileFromRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresInvestorProfileRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	_, err := r.db.Exec(ctx,
		`UPDATE investor_profiles SET is_active = $2, updated_at = now() WHERE user_id = $1`,
		userID, active)
	return err
}

func scanProfile(row database.Row) (investor.Profile, error) {
	var p investor.Profile
	err := row.Scan(&p.ID, &p.UserID, &p.InvestorType, &p.InvestmentThesis, &p.PreferredCategories,
		&p.PreferredStages, &p.TicketSizeMin, &p.TicketSizeMax, &p.LookingFor, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return investor.Profile{}, investor.ErrNotFound
		}
		return investor.Profile{}, err
	}
	return p, nil
}

func scanProfileFromRows(rows database.Rows) (investor.Profile, error) {
	var p investor.Profile
	err := rows.Scan(&p.ID, &p.UserID, &p.InvestorType, &p.InvestmentThesis, &p.PreferredCategories,
		&p.PreferredStages, &p.TicketSizeMin, &p.TicketSizeMax, &p.LookingFor, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}
