package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
)

type DBLayer interface {
	ListPackages(ctx context.Context, activeOnly bool) ([]models.Package, error)
	GetPackageByID(ctx context.Context, id int64) (*models.Package, error)
	CreatePackage(ctx context.Context, pkg *models.Package) error
	UpdatePackage(ctx context.Context, pkg *models.Package) error
	SoftDeletePackage(ctx context.Context, id int64) error

	ListSpeakers(ctx context.Context, activeOnly bool) ([]models.Speaker, error)
	CreateSpeaker(ctx context.Context, speaker *models.Speaker) error
	UpdateSpeaker(ctx context.Context, speaker *models.Speaker) error
	SoftDeleteSpeaker(ctx context.Context, id int64) error

	ListStats(ctx context.Context, activeOnly bool) ([]models.Stat, error)
	CreateStat(ctx context.Context, stat *models.Stat) error
	UpdateStat(ctx context.Context, stat *models.Stat) error
	SoftDeleteStat(ctx context.Context, id int64) error

	ListContent(ctx context.Context) ([]models.SiteContent, error)
	GetContentBySection(ctx context.Context, section string) (*models.SiteContent, error)
	UpsertContent(ctx context.Context, content *models.SiteContent) error

	GetContactInfo(ctx context.Context, section string) (*models.ContactInfo, error)
	UpsertContactInfo(ctx context.Context, info *models.ContactInfo) error

	GetEvent(ctx context.Context, section string) (*models.Event, error)
	UpsertEvent(ctx context.Context, event *models.Event) error
}

// ContentService fronts all catalog and page-content reads/writes. Public
// reads degrade to default values instead of erroring so the front end always
// has renderable data.
type ContentService struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewContentService(db DBLayer, log *logger.Logger) *ContentService {
	return &ContentService{DB: db, Logger: log}
}

// ---------------- PACKAGES ----------------

func (s *ContentService) ListPackages(ctx context.Context, activeOnly bool) ([]models.Package, error) {
	return s.DB.ListPackages(ctx, activeOnly)
}

func (s *ContentService) CreatePackage(ctx context.Context, req models.PackageRequest) (*models.Package, error) {
	pkg := &models.Package{
		Name:     req.Name,
		Price:    req.Price,
		Tagline:  req.Tagline,
		Features: req.Features,
	}
	if pkg.Features == nil {
		pkg.Features = []string{}
	}
	if err := s.DB.CreatePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	s.Logger.LogDatabase("INSERT", "packages", fmt.Sprintf("Created package %q (id %d)", pkg.Name, pkg.ID))
	return pkg, nil
}

func (s *ContentService) UpdatePackage(ctx context.Context, id int64, req models.PackageRequest) (*models.Package, error) {
	pkg, err := s.DB.GetPackageByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("package %d not found: %w", id, err)
	}

	pkg.Name = req.Name
	pkg.Price = req.Price
	pkg.Tagline = req.Tagline
	pkg.Features = req.Features
	if pkg.Features == nil {
		pkg.Features = []string{}
	}

	if err := s.DB.UpdatePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to update package %d: %w", id, err)
	}
	return pkg, nil
}

func (s *ContentService) DeletePackage(ctx context.Context, id int64) error {
	if err := s.DB.SoftDeletePackage(ctx, id); err != nil {
		return fmt.Errorf("failed to delete package %d: %w", id, err)
	}
	s.Logger.LogDatabase("UPDATE", "packages", fmt.Sprintf("Soft-deleted package %d", id))
	return nil
}

// ---------------- SPEAKERS ----------------

func (s *ContentService) ListSpeakers(ctx context.Context, activeOnly bool) ([]models.Speaker, error) {
	return s.DB.ListSpeakers(ctx, activeOnly)
}

func (s *ContentService) CreateSpeaker(ctx context.Context, req models.SpeakerRequest) (*models.Speaker, error) {
	speaker := &models.Speaker{
		Name:     req.Name,
		Title:    req.Title,
		Company:  req.Company,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
	}
	if err := s.DB.CreateSpeaker(ctx, speaker); err != nil {
		return nil, fmt.Errorf("failed to create speaker: %w", err)
	}
	return speaker, nil
}

func (s *ContentService) UpdateSpeaker(ctx context.Context, id int64, req models.SpeakerRequest) (*models.Speaker, error) {
	speaker := &models.Speaker{
		ID:       id,
		Name:     req.Name,
		Title:    req.Title,
		Company:  req.Company,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
	}
	if err := s.DB.UpdateSpeaker(ctx, speaker); err != nil {
		return nil, fmt.Errorf("failed to update speaker %d: %w", id, err)
	}
	return speaker, nil
}

func (s *ContentService) DeleteSpeaker(ctx context.Context, id int64) error {
	if err := s.DB.SoftDeleteSpeaker(ctx, id); err != nil {
		return fmt.Errorf("failed to delete speaker %d: %w", id, err)
	}
	return nil
}

// ---------------- STATS ----------------

func (s *ContentService) ListStats(ctx context.Context, activeOnly bool) ([]models.Stat, error) {
	return s.DB.ListStats(ctx, activeOnly)
}

func (s *ContentService) CreateStat(ctx context.Context, req models.StatRequest) (*models.Stat, error) {
	stat := &models.Stat{Label: req.Label, Value: req.Value, Icon: req.Icon}
	if err := s.DB.CreateStat(ctx, stat); err != nil {
		return nil, fmt.Errorf("failed to create stat: %w", err)
	}
	return stat, nil
}

func (s *ContentService) UpdateStat(ctx context.Context, id int64, req models.StatRequest) (*models.Stat, error) {
	stat := &models.Stat{ID: id, Label: req.Label, Value: req.Value, Icon: req.Icon}
	if err := s.DB.UpdateStat(ctx, stat); err != nil {
		return nil, fmt.Errorf("failed to update stat %d: %w", id, err)
	}
	return stat, nil
}

func (s *ContentService) DeleteStat(ctx context.Context, id int64) error {
	return s.DB.SoftDeleteStat(ctx, id)
}

// ---------------- SITE CONTENT ----------------

func (s *ContentService) ListContent(ctx context.Context) ([]models.SiteContent, error) {
	return s.DB.ListContent(ctx)
}

// GetContent returns the stored section, or an empty section shell when
// nothing has been saved yet.
func (s *ContentService) GetContent(ctx context.Context, section string) (*models.SiteContent, error) {
	content, err := s.DB.GetContentBySection(ctx, section)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.SiteContent{Section: section, ContentData: map[string]interface{}{}}, nil
		}
		return nil, err
	}
	return content, nil
}

func (s *ContentService) SaveContent(ctx context.Context, req models.SiteContentRequest) (*models.SiteContent, error) {
	content := &models.SiteContent{
		Section:     req.Section,
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		ContentData: req.ContentData,
	}
	if content.ContentData == nil {
		content.ContentData = map[string]interface{}{}
	}
	if err := s.DB.UpsertContent(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to save content section %q: %w", req.Section, err)
	}
	return content, nil
}

// ---------------- CONTACT INFO ----------------

func (s *ContentService) GetContactInfo(ctx context.Context) (*models.ContactInfo, error) {
	info, err := s.DB.GetContactInfo(ctx, "main")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fallback := models.DefaultContactInfo()
			return &fallback, nil
		}
		return nil, err
	}
	return info, nil
}

func (s *ContentService) SaveContactInfo(ctx context.Context, req models.ContactInfoRequest) (*models.ContactInfo, error) {
	info := &models.ContactInfo{
		Section:  "main",
		Phones:   req.Phones,
		Email:    req.Email,
		Location: req.Location,
	}
	if info.Phones == nil {
		info.Phones = []string{}
	}
	if info.Location == nil {
		info.Location = map[string]interface{}{}
	}
	if err := s.DB.UpsertContactInfo(ctx, info); err != nil {
		return nil, fmt.Errorf("failed to save contact info: %w", err)
	}
	return info, nil
}

// ---------------- EVENT ----------------

// GetEvent falls back to the placeholder event when the table is empty.
func (s *ContentService) GetEvent(ctx context.Context) (*models.Event, error) {
	event, err := s.DB.GetEvent(ctx, "main")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fallback := models.DefaultEvent()
			return &fallback, nil
		}
		return nil, err
	}
	return event, nil
}

func (s *ContentService) SaveEvent(ctx context.Context, req models.EventRequest) (*models.Event, error) {
	event := &models.Event{
		Section:     "main",
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		EventDate:   req.EventDate,
		Venue:       req.Venue,
		City:        req.City,
		Description: req.Description,
	}
	if err := s.DB.UpsertEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	return event, nil
}
