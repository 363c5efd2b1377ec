package handler

import (
	"net/http"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReceptionHandler struct {
	svc service.ReceptionService
}

func NewReceptionHandler(svc service.ReceptionService) *ReceptionHandler {
	return &ReceptionHandler{svc: svc}
}

// Recevoir godoc
// @Summary Enregistre la réception d'une livraison sur une commande
// @Description Met à jour les cumuls reçus, le stock, et recalcule le statut de la commande.
// @Tags receptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID commande"
// @Param request body dto.RecevoirLivraisonRequest true "Lignes reçues"
// @Success 201 {object} dto.RecevoirLivraisonResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/commandes/{id}/receptions [post]
func (h *ReceptionHandler) Recevoir(c *gin.Context) {
	commandeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.RecevoirLivraisonRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Recevoir(c.Request.Context(), commandeID, currentUserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListByCommande godoc
// @Summary Historique des réceptions d'une commande
// @Tags receptions
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID commande"
// @Success 200 {array} dto.RecevoirLivraisonResponse
// @Router /v1/commandes/{id}/receptions [get]
func (h *ReceptionHandler) ListByCommande(c *gin.Context) {
	commandeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.ListByCommande(c.Request.Context(), commandeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
