package service

import (
	"context"

	"github.com/iliyamo/cinema-tickets/internal/model"
)

type HallStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	List(ctx context.Context) ([]model.Hall, error)
}

type HallService struct {
	halls HallStore
}

func NewHallService(halls HallStore) *HallService { return &HallService{halls: halls} }

func (s *HallService) FindByID(ctx context.Context, id uint64) (*model.Hall, error) {
	return s.halls.GetByID(ctx, id)
}

func (s *HallService) FindAll(ctx context.Context) ([]model.Hall, error) {
	return s.halls.List(ctx)
}
