package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"summit-ticketing/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- PACKAGES ----------------

// ListPackages returns packages ordered by (display_order, id). Public reads
// pass activeOnly; the admin panel sees soft-deleted rows too.
func (d *DB) ListPackages(ctx context.Context, activeOnly bool) ([]models.Package, error) {
	var packages []models.Package
	q := d.Bun.NewSelect().Model(&packages)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("display_order ASC", "id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []models.Package{}
	}
	return packages, nil
}

func (d *DB) GetPackageByID(ctx context.Context, id int64) (*models.Package, error) {
	var pkg models.Package
	err := d.Bun.NewSelect().Model(&pkg).Where("id = ?", id).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// CreatePackage appends at the end of the display order (max + 1).
func (d *DB) CreatePackage(ctx context.Context, pkg *models.Package) error {
	next, err := d.nextDisplayOrder(ctx, (*models.Package)(nil))
	if err != nil {
		return err
	}
	pkg.DisplayOrder = next
	pkg.Active = true
	_, err = d.Bun.NewInsert().Model(pkg).Returning("id").Exec(ctx)
	return err
}

func (d *DB) UpdatePackage(ctx context.Context, pkg *models.Package) error {
	pkg.UpdatedAt = time.Now()
	_, err := d.Bun.NewUpdate().
		Model(pkg).
		Column("name", "price", "tagline", "features", "updated_at").
		Where("id = ?", pkg.ID).
		Exec(ctx)
	return err
}

// SoftDeletePackage flips the active flag; the row never leaves the table.
func (d *DB) SoftDeletePackage(ctx context.Context, id int64) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Package)(nil)).
		Set("active = ?", false).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- SPEAKERS ----------------

func (d *DB) ListSpeakers(ctx context.Context, activeOnly bool) ([]models.Speaker, error) {
	var speakers []models.Speaker
	q := d.Bun.NewSelect().Model(&speakers)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("display_order ASC", "id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	if speakers == nil {
		speakers = []models.Speaker{}
	}
	return speakers, nil
}

func (d *DB) CreateSpeaker(ctx context.Context, speaker *models.Speaker) error {
	next, err := d.nextDisplayOrder(ctx, (*models.Speaker)(nil))
	if err != nil {
		return err
	}
	speaker.DisplayOrder = next
	speaker.Active = true
	_, err = d.Bun.NewInsert().Model(speaker).Returning("id").Exec(ctx)
	return err
}

func (d *DB) UpdateSpeaker(ctx context.Context, speaker *models.Speaker) error {
	speaker.UpdatedAt = time.Now()
	_, err := d.Bun.NewUpdate().
		Model(speaker).
		Column("name", "title", "company", "bio", "image_url", "updated_at").
		Where("id = ?", speaker.ID).
		Exec(ctx)
	return err
}

func (d *DB) SoftDeleteSpeaker(ctx context.Context, id int64) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Speaker)(nil)).
		Set("active = ?", false).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- STATS ----------------

func (d *DB) ListStats(ctx context.Context, activeOnly bool) ([]models.Stat, error) {
	var stats []models.Stat
	q := d.Bun.NewSelect().Model(&stats)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Order("display_order ASC", "id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []models.Stat{}
	}
	return stats, nil
}

func (d *DB) CreateStat(ctx context.Context, stat *models.Stat) error {
	next, err := d.nextDisplayOrder(ctx, (*models.Stat)(nil))
	if err != nil {
		return err
	}
	stat.DisplayOrder = next
	stat.Active = true
	_, err = d.Bun.NewInsert().Model(stat).Returning("id").Exec(ctx)
	return err
}

func (d *DB) UpdateStat(ctx context.Context, stat *models.Stat) error {
	_, err := d.Bun.NewUpdate().
		Model(stat).
		Column("label", "value", "icon").
		Where("id = ?", stat.ID).
		Exec(ctx)
	return err
}

func (d *DB) SoftDeleteStat(ctx context.Context, id int64) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Stat)(nil)).
		Set("active = ?", false).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// ---------------- SITE CONTENT ----------------

func (d *DB) ListContent(ctx context.Context) ([]models.SiteContent, error) {
	var content []models.SiteContent
	err := d.Bun.NewSelect().Model(&content).Order("section ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = []models.SiteContent{}
	}
	return content, nil
}

func (d *DB) GetContentBySection(ctx context.Context, section string) (*models.SiteContent, error) {
	var content models.SiteContent
	err := d.Bun.NewSelect().Model(&content).Where("section = ?", section).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// UpsertContent inserts the section or replaces its fields when it exists.
// Sections are never deleted.
func (d *DB) UpsertContent(ctx context.Context, content *models.SiteContent) error {
	content.UpdatedAt = time.Now()
	_, err := d.Bun.NewInsert().
		Model(content).
		On("CONFLICT (section) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("subtitle = EXCLUDED.subtitle").
		Set("description = EXCLUDED.description").
		Set("content_data = EXCLUDED.content_data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// ---------------- CONTACT INFO ----------------

func (d *DB) GetContactInfo(ctx context.Context, section string) (*models.ContactInfo, error) {
	var info models.ContactInfo
	err := d.Bun.NewSelect().Model(&info).Where("section = ?", section).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) UpsertContactInfo(ctx context.Context, info *models.ContactInfo) error {
	_, err := d.Bun.NewInsert().
		Model(info).
		On("CONFLICT (section) DO UPDATE").
		Set("phones = EXCLUDED.phones").
		Set("email = EXCLUDED.email").
		Set("location = EXCLUDED.location").
		Exec(ctx)
	return err
}

// ---------------- EVENT ----------------

func (d *DB) GetEvent(ctx context.Context, section string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().Model(&event).Where("section = ?", section).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (d *DB) UpsertEvent(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now()
	_, err := d.Bun.NewInsert().
		Model(event).
		On("CONFLICT (section) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("subtitle = EXCLUDED.subtitle").
		Set("event_date = EXCLUDED.event_date").
		Set("venue = EXCLUDED.venue").
		Set("city = EXCLUDED.city").
		Set("description = EXCLUDED.description").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// nextDisplayOrder computes max(display_order) + 1 for append-on-create.
func (d *DB) nextDisplayOrder(ctx context.Context, model interface{}) (int, error) {
	var max int
	err := d.Bun.NewSelect().
		Model(model).
		ColumnExpr("COALESCE(MAX(display_order), 0)").
		Scan(ctx, &max)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
