package contact

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
)

type DBLayer interface {
	CreateContactForm(ctx context.Context, form *models.ContactForm) error
	ListContactForms(ctx context.Context) ([]models.ContactForm, error)
	DeleteContactForm(ctx context.Context, id int64) error
}

type ContactService struct {
	DB     DBLayer
	Logger *logger.Logger
}

func NewContactService(db DBLayer, log *logger.Logger) *ContactService {
	return &ContactService{DB: db, Logger: log}
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactFormRequest) (*models.ContactForm, error) {
	form := &models.ContactForm{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.DB.CreateContactForm(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to store contact form: %w", err)
	}
	s.Logger.Info("CONTACT", fmt.Sprintf("Stored contact form %d from %s", form.ID, form.Email))
	return form, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.ContactForm, error) {
	return s.DB.ListContactForms(ctx)
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	if err := s.DB.DeleteContactForm(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact form %d: %w", id, err)
	}
	return nil
}

// ExportCSV streams all submissions as CSV for the admin export.
func (s *ContactService) ExportCSV(ctx context.Context, w io.Writer) error {
	forms, err := s.DB.ListContactForms(ctx)
	if err != nil {
		return fmt.Errorf("failed to load contact forms: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "phone", "email", "message", "created_at"}); err != nil {
		return err
	}
	for _, form := range forms {
		record := []string{
			strconv.FormatInt(form.ID, 10),
			form.Name,
			form.Phone,
			form.Email,
			form.Message,
			form.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
