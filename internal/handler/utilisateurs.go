package handler

import (
	"net/http"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UtilisateurHandler struct {
	svc service.AuthService
}

func NewUtilisateurHandler(svc service.AuthService) *UtilisateurHandler {
	return &UtilisateurHandler{svc: svc}
}

// Creer godoc
// @Summary Crée un utilisateur
// @Tags utilisateurs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreerUtilisateurRequest true "Utilisateur"
// @Success 201 {object} dto.UtilisateurResponse
// @Router /v1/utilisateurs [post]
func (h *UtilisateurHandler) Creer(c *gin.Context) {
	var req dto.CreerUtilisateurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreerUtilisateur(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UtilisateurHandler) List(c *gin.Context) {
	resp, err := h.svc.ListUtilisateurs(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UtilisateurHandler) Modifier(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.ModifierUtilisateurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ModifierUtilisateur(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UtilisateurHandler) Desactiver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	if err := h.svc.DesactiverUtilisateur(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UtilisateurHandler) Reactiver(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	if err := h.svc.ReactiverUtilisateur(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
