package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventx/namecard-services/internal/cardsvc/models"
	"github.com/eventx/namecard-services/internal/cardsvc/store"
)

// CardService holds the business rules over the user-cards table:
// validation, id generation, password handling, patch application.
type CardService struct {
	cards *store.CardStore
	now   func() time.Time
	genID func() string
}

func NewCardService(cards *store.CardStore) *CardService {
	return &CardService{
		cards: cards,
		now:   time.Now,
		genID: shortID,
	}
}

// shortID is the first segment of a random UUID, 8 hex chars. Short enough
// for an NFC tag URL; uniqueness is probabilistic and not re-checked.
func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// Create validates the input, appends one row and returns the new card id.
func (s *CardService) Create(ctx context.Context, input models.CardInput) (string, error) {
	var missing []string
	for _, req := range []struct {
		field string
		value string
	}{
		{models.FieldName, input.Name},
		{models.FieldTitle, input.Title},
		{models.FieldCompany, input.Company},
		{models.FieldPhone, input.Phone},
		{models.FieldEmail, input.Email},
	} {
		if strings.TrimSpace(req.value) == "" {
			missing = append(missing, req.field)
		}
	}
	if len(missing) > 0 {
		return "", &ValidationError{Missing: missing}
	}

	id := s.genID()

	password, err := hashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	fields := map[string]string{
		models.FieldID:         id,
		models.FieldName:       input.Name,
		models.FieldTitle:      input.Title,
		models.FieldCompany:    input.Company,
		models.FieldAreaCode:   input.AreaCode,
		models.FieldPhone:      input.Phone,
		models.FieldIsWhatsapp: models.FormatBool(input.IsWhatsapp),
		models.FieldEmail:      input.Email,
		models.FieldLinkedin:   input.Linkedin,
		models.FieldOthers:     input.Others,
		models.FieldBio:        input.Bio,
		models.FieldAvatar:     input.Avatar,
		models.FieldPassword:   password,
		models.FieldCreatedAt:  s.now().UTC().Format(time.RFC3339),
		models.FieldReferredBy: input.ReferredBy,
	}

	if err := s.cards.Append(ctx, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Verify authenticates a card owner and returns the card's display fields.
// Read-only; used by the edit page to pre-fill the form.
func (s *CardService) Verify(ctx context.Context, id, password string) (*models.CardView, error) {
	row, err := s.cards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !matchPassword(row.Get(models.FieldPassword), password) {
		return nil, ErrWrongPassword
	}
	view := cardView(row)
	return &view, nil
}

// Update authenticates and applies the patch, then persists the row.
// Fields absent from the patch stay untouched; explicitly empty ones are
// cleared.
func (s *CardService) Update(ctx context.Context, id, password string, patch models.CardPatch) error {
	row, err := s.cards.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !matchPassword(row.Get(models.FieldPassword), password) {
		return ErrWrongPassword
	}
	for field, value := range patch.Changes() {
		row.Set(field, value)
	}
	return row.Save(ctx)
}

// Public returns a card for the public page. No password involved.
func (s *CardService) Public(ctx context.Context, id string) (*models.CardView, error) {
	row, err := s.cards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := cardView(row)
	return &view, nil
}

// cardView maps a row onto its display shape. linkedin tolerates tables
// that carry the column as "LinkedIn URL" instead.
func cardView(row store.Row) models.CardView {
	linkedin := row.Get(models.FieldLinkedin)
	if linkedin == "" {
		linkedin = row.Get("linkedin_url")
	}
	return models.CardView{
		ID:         row.Get(models.FieldID),
		Name:       row.Get(models.FieldName),
		Title:      row.Get(models.FieldTitle),
		Company:    row.Get(models.FieldCompany),
		AreaCode:   strings.TrimSpace(row.Get(models.FieldAreaCode)),
		Phone:      strings.TrimSpace(row.Get(models.FieldPhone)),
		IsWhatsapp: parseFlag(row.Get(models.FieldIsWhatsapp)),
		Email:      row.Get(models.FieldEmail),
		Linkedin:   linkedin,
		Others:     row.Get(models.FieldOthers),
		Bio:        row.Get(models.FieldBio),
		Avatar:     row.Get(models.FieldAvatar),
	}
}

func parseFlag(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}
