package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"summit-ticketing/internal/auth"
	"summit-ticketing/internal/config"
	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
)

// Migrate creates tables in code, the same way the schema has always been
// managed here: CreateTable IfNotExists per model, then seed rows the front
// end depends on.
func Migrate(ctx context.Context, db *bun.DB, cfg *config.Config, log *logger.Logger) error {
	tables := []interface{}{
		(*models.Order)(nil),
		(*models.Package)(nil),
		(*models.Speaker)(nil),
		(*models.Stat)(nil),
		(*models.SiteContent)(nil),
		(*models.ContactForm)(nil),
		(*models.ContactInfo)(nil),
		(*models.Event)(nil),
		(*models.Admin)(nil),
	}

	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}
	log.LogDatabase("MIGRATE", "all", "Tables ready")

	if err := seedAdmin(ctx, db, cfg, log); err != nil {
		return err
	}
	return seedDefaults(ctx, db, log)
}

// seedAdmin inserts the initial admin credential once. There is no
// self-service rotation; the row is only written when the table is empty.
func seedAdmin(ctx context.Context, db *bun.DB, cfg *config.Config, log *logger.Logger) error {
	count, err := db.NewSelect().Model((*models.Admin)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.Admin{Email: cfg.Auth.AdminEmail, PasswordHash: hash}
	if _, err := db.NewInsert().Model(&admin).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	log.LogDatabase("SEED", "admins", fmt.Sprintf("Seeded default admin %s", cfg.Auth.AdminEmail))
	return nil
}

func seedDefaults(ctx context.Context, db *bun.DB, log *logger.Logger) error {
	count, err := db.NewSelect().Model((*models.Event)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count events: %w", err)
	}
	if count > 0 {
		return nil
	}

	event := models.DefaultEvent()
	if _, err := db.NewInsert().Model(&event).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed event: %w", err)
	}

	info := models.DefaultContactInfo()
	if _, err := db.NewInsert().Model(&info).Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed contact info: %w", err)
	}

	log.LogDatabase("SEED", "events", "Seeded placeholder event and contact info")
	return nil
}
