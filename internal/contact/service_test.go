package contact

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
)

type MockContactDB struct {
	forms        []models.ContactForm
	nextID       int64
	shouldFailOn string
	errorMsg     string
}

func NewMockContactDB() *MockContactDB {
	return &MockContactDB{nextID: 1}
}

func (m *MockContactDB) CreateContactForm(ctx context.Context, form *models.ContactForm) error {
	if m.shouldFailOn == "CreateContactForm" {
		return errors.New(m.errorMsg)
	}
	form.ID = m.nextID
	m.nextID++
	m.forms = append(m.forms, *form)
	return nil
}

func (m *MockContactDB) ListContactForms(ctx context.Context) ([]models.ContactForm, error) {
	if m.shouldFailOn == "ListContactForms" {
		return nil, errors.New(m.errorMsg)
	}
	return m.forms, nil
}

func (m *MockContactDB) DeleteContactForm(ctx context.Context, id int64) error {
	if m.shouldFailOn == "DeleteContactForm" {
		return errors.New(m.errorMsg)
	}
	kept := m.forms[:0]
	for _, form := range m.forms {
		if form.ID != id {
			kept = append(kept, form)
		}
	}
	m.forms = kept
	return nil
}

func TestSubmitStoresForm(t *testing.T) {
	db := NewMockContactDB()
	s := NewContactService(db, logger.NewTestLogger())

	form, err := s.Submit(context.Background(), models.ContactFormRequest{
		Name:    "Jane Doe",
		Phone:   "+919999999999",
		Email:   "jane@x.com",
		Message: "Do you have group discounts?",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), form.ID)
	assert.Len(t, db.forms, 1)
}

func TestSubmitPropagatesStoreError(t *testing.T) {
	db := NewMockContactDB()
	db.shouldFailOn = "CreateContactForm"
	db.errorMsg = "disk full"
	s := NewContactService(db, logger.NewTestLogger())

	_, err := s.Submit(context.Background(), models.ContactFormRequest{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Message: "hello",
	})
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	db := NewMockContactDB()
	db.forms = []models.ContactForm{
		{
			ID:        1,
			Name:      "Jane Doe",
			Phone:     "+919999999999",
			Email:     "jane@x.com",
			Message:   "Question about, commas \"and quotes\"",
			CreatedAt: time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Name:      "John Roe",
			Email:     "john@x.com",
			Message:   "Multi\nline message",
			CreatedAt: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
		},
	}
	s := NewContactService(db, logger.NewTestLogger())

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"id", "name", "phone", "email", "message", "created_at"}, records[0])
	assert.Equal(t, []string{"1", "Jane Doe", "+919999999999", "jane@x.com",
		"Question about, commas \"and quotes\"", "2026-08-30 10:30:00"}, records[1])
	assert.Equal(t, "Multi\nline message", records[2][4])
}

func TestExportCSVEmpty(t *testing.T) {
	s := NewContactService(NewMockContactDB(), logger.NewTestLogger())

	var buf bytes.Buffer
	require.NoError(t, s.ExportCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "only the header row")
}

func TestDeleteRemovesForm(t *testing.T) {
	db := NewMockContactDB()
	s := NewContactService(db, logger.NewTestLogger())

	form, err := s.Submit(context.Background(), models.ContactFormRequest{
		Name: "Jane Doe", Email: "jane@x.com", Message: "hi",
	})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), form.ID))
	assert.Empty(t, db.forms)
}
