package contact

import (
	"context"

	"github.com/uptrace/bun"

	"summit-ticketing/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateContactForm(ctx context.Context, form *models.ContactForm) error {
	_, err := d.Bun.NewInsert().Model(form).Returning("id").Exec(ctx)
	return err
}

func (d *DB) ListContactForms(ctx context.Context) ([]models.ContactForm, error) {
	var forms []models.ContactForm
	err := d.Bun.NewSelect().
		Model(&forms).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if forms == nil {
		forms = []models.ContactForm{}
	}
	return forms, nil
}

// DeleteContactForm is the one hard delete in the system: submissions carry
// personal data and admins can purge them.
func (d *DB) DeleteContactForm(ctx context.Context, id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.ContactForm)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
