package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/models"
)

func (db *DB) UpsertProfile(ctx context.Context, name string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("upserting profile: %s", name)

	var p models.Profile
	err := db.QueryRowContext(ctx, `
INSERT INTO profiles (name)
VALUES (?)
ON CONFLICT(name) DO UPDATE SET name = excluded.name
RETURNING id, name, created_at
`, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		log.Error("failed to upsert profile: %v", err)
		return nil, err
	}
	log.Debug("profile upserted: id=%d", p.ID)
	return &p, nil
}

func (db *DB) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching profile: id=%d", id)

	var p models.Profile
	err := db.QueryRowContext(ctx, `SELECT id, name, created_at FROM profiles WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, err
	}
	return &p, nil
}

func (db *DB) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing profiles")

	rows, err := db.QueryContext(ctx, `SELECT id, name, created_at FROM profiles ORDER BY name`)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			log.Error("failed to scan profile row: %v", err)
			return nil, err
		}
		profiles = append(profiles, p)
	}
	log.Debug("found %d profiles", len(profiles))
	return profiles, rows.Err()
}
