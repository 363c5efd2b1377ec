package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// prixCacheTTL bounds staleness of the price lookup used at the pumps.
const prixCacheTTL = 5 * time.Minute

type CatalogueService interface {
	Creer(ctx context.Context, req dto.CreerProduitRequest) (*dto.ProduitResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProduitResponse, error)
	List(ctx context.Context, categorie string) ([]dto.ProduitResponse, error)
	Modifier(ctx context.Context, id uuid.UUID, req dto.CreerProduitRequest) (*dto.ProduitResponse, error)
	Desactiver(ctx context.Context, id uuid.UUID) error
	// ConsulterPrix is the hot path hit by every pump display refresh; it is
	// served from Redis and falls back to the database on a miss.
	ConsulterPrix(ctx context.Context, sku string) (*dto.ConsultePrixResponse, error)
}

type catalogueService struct {
	repo repository.ProduitRepository
	rdb  *redis.Client
}

func NewCatalogueService(repo repository.ProduitRepository, rdb *redis.Client) CatalogueService {
	return &catalogueService{repo: repo, rdb: rdb}
}

func (s *catalogueService) Creer(ctx context.Context, req dto.CreerProduitRequest) (*dto.ProduitResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, errors.New("un produit existe déjà avec ce SKU")
	}

	produit := model.Produit{
		SKU:          req.SKU,
		Nom:          req.Nom,
		Description:  req.Description,
		Categorie:    req.Categorie,
		Unite:        req.Unite,
		PrixHT:       req.PrixHT,
		PrixTTC:      req.PrixTTC,
		StockMinimum: req.StockMinimum,
		Actif:        true,
	}
	if req.FournisseurID != nil {
		fid, err := uuid.Parse(*req.FournisseurID)
		if err != nil {
			return nil, errors.New("fournisseur_id : identifiant invalide")
		}
		produit.FournisseurID = &fid
	}
	if err := s.repo.Create(ctx, &produit); err != nil {
		return nil, err
	}
	return produitToResponse(&produit), nil
}

func (s *catalogueService) Get(ctx context.Context, id uuid.UUID) (*dto.ProduitResponse, error) {
	produit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produit introuvable")
	}
	return produitToResponse(produit), nil
}

func (s *catalogueService) List(ctx context.Context, categorie string) ([]dto.ProduitResponse, error) {
	produits, err := s.repo.List(ctx, categorie)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProduitResponse, 0, len(produits))
	for i := range produits {
		resp = append(resp, *produitToResponse(&produits[i]))
	}
	return resp, nil
}

func (s *catalogueService) Modifier(ctx context.Context, id uuid.UUID, req dto.CreerProduitRequest) (*dto.ProduitResponse, error) {
	produit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produit introuvable")
	}

	produit.Nom = req.Nom
	produit.Description = req.Description
	produit.Categorie = req.Categorie
	produit.Unite = req.Unite
	produit.PrixHT = req.PrixHT
	produit.PrixTTC = req.PrixTTC
	produit.StockMinimum = req.StockMinimum
	if err := s.repo.Update(ctx, produit); err != nil {
		return nil, err
	}

	// A price change must not serve stale from the cache.
	s.invaliderPrix(ctx, produit.SKU)
	return produitToResponse(produit), nil
}

func (s *catalogueService) Desactiver(ctx context.Context, id uuid.UUID) error {
	produit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("produit introuvable")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invaliderPrix(ctx, produit.SKU)
	return nil
}

func (s *catalogueService) ConsulterPrix(ctx context.Context, sku string) (*dto.ConsultePrixResponse, error) {
	key := "prix:" + sku

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp dto.ConsultePrixResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	produit, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, errors.New("produit introuvable")
	}
	resp := &dto.ConsultePrixResponse{
		Nom:       produit.Nom,
		Categorie: produit.Categorie,
		Unite:     produit.Unite,
		PrixTTC:   produit.PrixTTC,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, key, data, prixCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *catalogueService) invaliderPrix(ctx context.Context, sku string) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, "prix:"+sku).Err()
	}
}

func produitToResponse(p *model.Produit) *dto.ProduitResponse {
	return &dto.ProduitResponse{
		ID:           p.ID.String(),
		SKU:          p.SKU,
		Nom:          p.Nom,
		Description:  p.Description,
		Categorie:    p.Categorie,
		Unite:        p.Unite,
		PrixHT:       p.PrixHT,
		PrixTTC:      p.PrixTTC,
		StockActuel:  p.StockActuel,
		StockMinimum: p.StockMinimum,
		Actif:        p.Actif,
	}
}
