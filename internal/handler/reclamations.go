package handler

import (
	"net/http"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReclamationHandler struct {
	svc service.ReclamationService
}

func NewReclamationHandler(svc service.ReclamationService) *ReclamationHandler {
	return &ReclamationHandler{svc: svc}
}

func (h *ReclamationHandler) Creer(c *gin.Context) {
	var req dto.CreerReclamationRequest
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

func (h *ReclamationHandler) Get(c *gin.Context) {
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

func (h *ReclamationHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("statut"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Traiter godoc
// @Summary Fait avancer une réclamation dans son traitement
// @Tags reclamations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID réclamation"
// @Param request body dto.TraiterReclamationRequest true "Nouveau statut"
// @Success 200 {object} dto.ReclamationResponse
// @Router /v1/reclamations/{id}/traiter [post]
func (h *ReclamationHandler) Traiter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.TraiterReclamationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Traiter(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
