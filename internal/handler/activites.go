package handler

import (
	"net/http"
	"strconv"

	"stationops/internal/service"

	"github.com/gin-gonic/gin"
)

type ActiviteHandler struct {
	svc service.ActiviteService
}

func NewActiviteHandler(svc service.ActiviteService) *ActiviteHandler {
	return &ActiviteHandler{svc: svc}
}

// List godoc
// @Summary Journal d'activité paginé
// @Tags activites
// @Security BearerAuth
// @Produce json
// @Param entite query string false "Filtre entité (commande, releve, session...)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Taille de page" default(50)
// @Success 200 {object} dto.ActiviteListResponse
// @Router /v1/activites [get]
func (h *ActiviteHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.List(c.Request.Context(), c.Query("entite"), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
