package auth

import (
	"context"

	"github.com/uptrace/bun"

	"summit-ticketing/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := d.Bun.NewSelect().
		Model(&admin).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
