package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Relo2France/france-relocation-assistant-sub001/internal/domain"
)

// SettingsRepo defines the persistence operations for ComplianceSettings.
type SettingsRepo interface {
	// Get retrieves the settings row for ownerID.
	// Returns domain.ErrNotFound when the owner has never saved settings;
	// callers fall back to domain.DefaultSettings.
	Get(ctx context.Context, ownerID string) (domain.ComplianceSettings, error)

	// Upsert inserts or overwrites the owner's settings in a single
	// statement and returns the persisted record. Threshold validation is
	// the service layer's job; this only stores.
	Upsert(ctx context.Context, s domain.ComplianceSettings) (domain.ComplianceSettings, error)
}

// pgSettingsRepo is the Postgres implementation of SettingsRepo.
type pgSettingsRepo struct {
	db db
}

// NewSettingsRepo constructs a SettingsRepo backed by the provided db connection.
func NewSettingsRepo(db db) SettingsRepo {
	return &pgSettingsRepo{db: db}
}

const settingsColumns = `owner_id, yellow_threshold, red_threshold, email_alerts, upcoming_trip_reminders, alert_email, premium, updated_at`

// Get retrieves one owner's settings.
func (r *pgSettingsRepo) Get(ctx context.Context, ownerID string) (domain.ComplianceSettings, error) {
	const q = `
		SELECT ` + settingsColumns + `
		FROM compliance_settings
		WHERE owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	result, err := scanSettings(row)
	if err != nil {
		return domain.ComplianceSettings{}, fmt.Errorf("repo.SettingsRepo.Get: %w", err)
	}
	return result, nil
}

// Upsert writes the owner's settings as a single atomic statement.
func (r *pgSettingsRepo) Upsert(ctx context.Context, s domain.ComplianceSettings) (domain.ComplianceSettings, error) {
	const q = `
		INSERT INTO compliance_settings
			(owner_id, yellow_threshold, red_threshold, email_alerts, upcoming_trip_reminders, alert_email, premium)
		VALUES
			(@owner_id, @yellow, @red, @email_alerts, @reminders, @alert_email, @premium)
		ON CONFLICT (owner_id) DO UPDATE SET
			yellow_threshold        = excluded.yellow_threshold,
			red_threshold           = excluded.red_threshold,
			email_alerts            = excluded.email_alerts,
			upcoming_trip_reminders = excluded.upcoming_trip_reminders,
			alert_email             = excluded.alert_email,
			premium                 = excluded.premium,
			updated_at              = now()
		RETURNING ` + settingsColumns

	args := pgx.NamedArgs{
		"owner_id":     s.OwnerID,
		"yellow":       s.YellowThreshold,
		"red":          s.RedThreshold,
		"email_alerts": s.EmailAlerts,
		"reminders":    s.UpcomingTripReminders,
		"alert_email":  s.AlertEmail,
		"premium":      s.Premium,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSettings(row)
	if err != nil {
		return domain.ComplianceSettings{}, fmt.Errorf("repo.SettingsRepo.Upsert: %w", err)
	}
	return result, nil
}

// scanSettings maps a single database row into a domain.ComplianceSettings.
func scanSettings(s scanner) (domain.ComplianceSettings, error) {
	var out domain.ComplianceSettings

	err := s.Scan(
		&out.OwnerID,
		&out.YellowThreshold,
		&out.RedThreshold,
		&out.EmailAlerts,
		&out.UpcomingTripReminders,
		&out.AlertEmail,
		&out.Premium,
		&out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ComplianceSettings{}, domain.ErrNotFound
		}
		return domain.ComplianceSettings{}, err
	}

	return out, nil
}
