package handler

import (
	"net/http"
	"strconv"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FactureHandler struct {
	svc service.FactureService
}

func NewFactureHandler(svc service.FactureService) *FactureHandler {
	return &FactureHandler{svc: svc}
}

// Creer godoc
// @Summary Crée une facture client en brouillon
// @Description Avec envoyer_email=true la facture est émise immédiatement et
// @Description le PDF est envoyé au client en tâche de fond.
// @Tags factures
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreerFactureRequest true "Facture"
// @Success 201 {object} dto.FactureResponse
// @Router /v1/factures [post]
func (h *FactureHandler) Creer(c *gin.Context) {
	var req dto.CreerFactureRequest
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

func (h *FactureHandler) Get(c *gin.Context) {
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

func (h *FactureHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	factures, total, err := h.svc.List(c.Request.Context(), c.Query("statut"), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"factures": factures, "total": total, "page": page, "limit": limit})
}

// Emettre godoc
// @Summary Émet une facture brouillon
// @Tags factures
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID facture"
// @Success 200 {object} dto.FactureResponse
// @Router /v1/factures/{id}/emettre [post]
func (h *FactureHandler) Emettre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.Emettre(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FactureHandler) MarquerPayee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.MarquerPayee(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FactureHandler) Annuler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.Annuler(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
