package service

import (
	"context"

	"github.com/eventx/namecard-services/internal/cardsvc/models"
	"github.com/eventx/namecard-services/internal/cardsvc/store"
)

// SalesService reads the internal sales-team table. Those rows are
// maintained by hand in the spreadsheet; there is no write path here.
type SalesService struct {
	cards *store.CardStore
}

func NewSalesService(cards *store.CardStore) *SalesService {
	return &SalesService{cards: cards}
}

func (s *SalesService) Get(ctx context.Context, id string) (*models.CardView, error) {
	row, err := s.cards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := cardView(row)
	return &view, nil
}

func (s *SalesService) List(ctx context.Context) ([]models.CardView, error) {
	rows, err := s.cards.All(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.CardView, len(rows))
	for i, row := range rows {
		views[i] = cardView(row)
	}
	return views, nil
}
