package handler

import (
	"net/http"
	"strconv"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/model"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommandeHandler struct {
	svc service.CommandeService
}

func NewCommandeHandler(svc service.CommandeService) *CommandeHandler {
	return &CommandeHandler{svc: svc}
}

// Creer godoc
// @Summary Crée un bon de commande fournisseur (brouillon)
// @Tags commandes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreerCommandeRequest true "Commande"
// @Success 201 {object} dto.CommandeResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/commandes [post]
func (h *CommandeHandler) Creer(c *gin.Context) {
	var req dto.CreerCommandeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Creer(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary Détail d'un bon de commande avec ses lignes
// @Tags commandes
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID commande"
// @Success 200 {object} dto.CommandeResponse
// @Router /v1/commandes/{id} [get]
func (h *CommandeHandler) Get(c *gin.Context) {
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

// List godoc
// @Summary Liste paginée des bons de commande
// @Tags commandes
// @Security BearerAuth
// @Produce json
// @Param statut query string false "Filtre statut"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Taille de page" default(20)
// @Success 200 {object} dto.CommandeListResponse
// @Router /v1/commandes [get]
func (h *CommandeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.List(c.Request.Context(), c.Query("statut"), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Soumettre godoc
// @Summary Soumet un brouillon au fournisseur
// @Tags commandes
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID commande"
// @Success 200 {object} dto.CommandeResponse
// @Router /v1/commandes/{id}/soumettre [post]
func (h *CommandeHandler) Soumettre(c *gin.Context) {
	h.changerStatut(c, model.StatutSoumis)
}

// Annuler godoc
// @Summary Annule une commande sans réception
// @Tags commandes
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID commande"
// @Success 200 {object} dto.CommandeResponse
// @Router /v1/commandes/{id}/annuler [post]
func (h *CommandeHandler) Annuler(c *gin.Context) {
	h.changerStatut(c, model.StatutAnnule)
}

// Litige godoc
// @Summary Passe une commande en litige fournisseur
// @Tags commandes
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID commande"
// @Success 200 {object} dto.CommandeResponse
// @Router /v1/commandes/{id}/litige [post]
func (h *CommandeHandler) Litige(c *gin.Context) {
	h.changerStatut(c, model.StatutLitige)
}

func (h *CommandeHandler) changerStatut(c *gin.Context, cible model.StatutCommande) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.ChangerStatut(c.Request.Context(), id, currentUserID(c), cible)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
