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

type QuartHandler struct {
	svc service.QuartService
}

func NewQuartHandler(svc service.QuartService) *QuartHandler {
	return &QuartHandler{svc: svc}
}

// Ouvrir godoc
// @Summary Ouvre un quart de travail
// @Description Fige les index théoriques depuis le contrôleur de piste et
// @Description ouvre un relevé par citerne et une session par caisse.
// @Tags quarts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.OuvrirQuartRequest true "Quart"
// @Success 201 {object} dto.QuartResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/quarts [post]
func (h *QuartHandler) Ouvrir(c *gin.Context) {
	var req dto.OuvrirQuartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Ouvrir(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *QuartHandler) Get(c *gin.Context) {
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

func (h *QuartHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	quarts, total, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quarts": quarts, "total": total, "page": page, "limit": limit})
}

// Summary godoc
// @Summary Bilan de rapprochement d'un quart
// @Tags quarts
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID quart"
// @Success 200 {object} dto.QuartSummaryResponse
// @Router /v1/quarts/{id}/summary [get]
func (h *QuartHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cloturer godoc
// @Summary Clôt un quart une fois tout rapproché
// @Tags quarts
// @Security BearerAuth
// @Produce json
// @Param id path string true "ID quart"
// @Success 200 {object} dto.QuartResponse
// @Router /v1/quarts/{id}/cloturer [post]
func (h *QuartHandler) Cloturer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	resp, err := h.svc.Cloturer(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary Exporte le bilan du quart en XLSX
// @Tags quarts
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "ID quart"
// @Success 200 {file} binary
// @Router /v1/quarts/{id}/export [get]
func (h *QuartHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	data, filename, err := h.svc.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
