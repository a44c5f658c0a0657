package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// AlertRepo defines the persistence operations backing the daily alert cycle.
type AlertRepo interface {
	// GetState retrieves the dedup state for ownerID.
	// Returns domain.ErrNotFound before the first alert was ever sent.
	GetState(ctx context.Context, ownerID string) (domain.AlertState, error)

	// UpsertState persists the dedup state as a single atomic statement
	// keyed by owner, so overlapping scheduler runs cannot corrupt it —
	// the last writer wins on the whole row.
	UpsertState(ctx context.Context, state domain.AlertState) (domain.AlertState, error)

	// ListCandidates returns every owner eligible for the daily cycle:
	// at least one trip recorded and email alerts enabled. Owners without a
	// settings row default to alerts enabled.
	ListCandidates(ctx context.Context) ([]domain.AlertCandidate, error)
}

// pgAlertRepo is the Postgres implementation of AlertRepo.
type pgAlertRepo struct {
	db db
}

// NewAlertRepo constructs an AlertRepo backed by the provided db connection.
func NewAlertRepo(db db) AlertRepo {
	return &pgAlertRepo{db: db}
}

// GetState retrieves one owner's alert dedup state.
func (r *pgAlertRepo) GetState(ctx context.Context, ownerID string) (domain.AlertState, error) {
	const q = `
		SELECT owner_id, last_level, last_sent_at, updated_at
		FROM alert_state
		WHERE owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	state, err := scanAlertState(row)
	if err != nil {
		return domain.AlertState{}, fmt.Errorf("repo.AlertRepo.GetState: %w", err)
	}
	return state, nil
}

// UpsertState writes the dedup state in one statement.
func (r *pgAlertRepo) UpsertState(ctx context.Context, state domain.AlertState) (domain.AlertState, error) {
	const q = `
		INSERT INTO alert_state (owner_id, last_level, last_sent_at)
		VALUES (@owner_id, @last_level, @last_sent_at)
		ON CONFLICT (owner_id) DO UPDATE SET
			last_level   = excluded.last_level,
			last_sent_at = excluded.last_sent_at,
			updated_at   = now()
		RETURNING owner_id, last_level, last_sent_at, updated_at`

	args := pgx.NamedArgs{
		"owner_id":     state.OwnerID,
		"last_level":   string(state.LastLevel),
		"last_sent_at": state.LastSentAt,
	}

	row := r.db.QueryRow(ctx, q, args)
	out, err := scanAlertState(row)
	if err != nil {
		return domain.AlertState{}, fmt.Errorf("repo.AlertRepo.UpsertState: %w", err)
	}
	return out, nil
}

// ListCandidates selects the owners the daily cycle should evaluate.
func (r *pgAlertRepo) ListCandidates(ctx context.Context) ([]domain.AlertCandidate, error) {
	// LEFT JOIN so owners who never saved settings keep the default of
	// email alerts enabled.
	const q = `
		SELECT t.owner_id, coalesce(s.alert_email, '')
		FROM trips t
		LEFT JOIN compliance_settings s ON s.owner_id = t.owner_id
		WHERE coalesce(s.email_alerts, true)
		GROUP BY t.owner_id, s.alert_email
		ORDER BY t.owner_id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AlertRepo.ListCandidates: %w", err)
	}
	defer rows.Close()

	var out []domain.AlertCandidate
	for rows.Next() {
		var c domain.AlertCandidate
		if err := rows.Scan(&c.OwnerID, &c.AlertEmail); err != nil {
			return nil, fmt.Errorf("repo.AlertRepo.ListCandidates: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AlertRepo.ListCandidates: rows: %w", err)
	}

	return out, nil
}

// scanAlertState maps a single database row into a domain.AlertState.
func scanAlertState(s scanner) (domain.AlertState, error) {
	var (
		out    domain.AlertState
		level  string
		sentAt *time.Time
	)

	err := s.Scan(&out.OwnerID, &level, &sentAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AlertState{}, domain.ErrNotFound
		}
		return domain.AlertState{}, err
	}

	out.LastLevel = domain.AlertLevel(level)
	out.LastSentAt = sentAt

	return out, nil
}
