package service

import (
	"context"
	"time"

	"stationops/internal/dto"
	"stationops/internal/repository"
)

type ActiviteService interface {
	List(ctx context.Context, entite string, page, limit int) (*dto.ActiviteListResponse, error)
}

type activiteService struct {
	repo repository.ActiviteRepository
}

func NewActiviteService(repo repository.ActiviteRepository) ActiviteService {
	return &activiteService{repo: repo}
}

func (s *activiteService) List(ctx context.Context, entite string, page, limit int) (*dto.ActiviteListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	activites, total, err := s.repo.List(ctx, entite, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ActiviteResponse, 0, len(activites))
	for _, a := range activites {
		item := dto.ActiviteResponse{
			ID:        a.ID.String(),
			Action:    a.Action,
			Entite:    a.Entite,
			Detail:    a.Detail,
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		}
		if a.EntiteID != nil {
			id := a.EntiteID.String()
			item.EntiteID = &id
		}
		data = append(data, item)
	}
	return &dto.ActiviteListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}
