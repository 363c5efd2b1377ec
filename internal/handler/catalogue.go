package handler

import (
	"net/http"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogueHandler struct {
	svc service.CatalogueService
}

func NewCatalogueHandler(svc service.CatalogueService) *CatalogueHandler {
	return &CatalogueHandler{svc: svc}
}

// Creer godoc
// @Summary Crée un produit au catalogue
// @Tags catalogue
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreerProduitRequest true "Produit"
// @Success 201 {object} dto.ProduitResponse
// @Router /v1/produits [post]
func (h *CatalogueHandler) Creer(c *gin.Context) {
	var req dto.CreerProduitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Creer(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogueHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogueHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("categorie"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogueHandler) Modifier(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.CreerProduitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Modifier(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogueHandler) Desactiver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	if err := h.svc.Desactiver(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ConsulterPrix godoc
// @Summary Prix courant d'un produit par SKU
// @Description Endpoint public servi depuis le cache Redis pour les afficheurs de pompe.
// @Tags catalogue
// @Produce json
// @Param sku path string true "SKU"
// @Success 200 {object} dto.ConsultePrixResponse
// @Router /v1/prix/{sku} [get]
func (h *CatalogueHandler) ConsulterPrix(c *gin.Context) {
	resp, err := h.svc.ConsulterPrix(c.Request.Context(), c.Param("sku"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
