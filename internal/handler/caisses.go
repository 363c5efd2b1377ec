package handler

import (
	"net/http"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaisseHandler struct {
	svc service.CaisseService
}

func NewCaisseHandler(svc service.CaisseService) *CaisseHandler {
	return &CaisseHandler{svc: svc}
}

// Creer godoc
// @Summary Déclare une caisse
// @Tags caisses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreerCaisseRequest true "Caisse"
// @Success 201 {object} dto.CaisseResponse
// @Router /v1/caisses [post]
func (h *CaisseHandler) Creer(c *gin.Context) {
	var req dto.CreerCaisseRequest
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

func (h *CaisseHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSession godoc
// @Summary Détail d'une session de caisse
// @Tags caisses
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID session"
// @Success 200 {object} dto.SessionCaisseResponse
// @Router /v1/sessions/{id} [get]
func (h *CaisseHandler) GetSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.GetSession(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CloturerSession godoc
// @Summary Clôture une session avec le montant compté
// @Description Classe l'écart entre théorique et compté; une note est
// @Description demandée (jamais exigée) sur tout écart non négligeable.
// @Tags caisses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "ID session"
// @Param request body dto.CloturerSessionRequest true "Montant compté"
// @Success 200 {object} dto.CloturerSessionResponse
// @Router /v1/sessions/{id}/cloturer [post]
func (h *CaisseHandler) CloturerSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.CloturerSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cloturer(c.Request.Context(), id, currentUserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
