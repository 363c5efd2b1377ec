package handler

import (
	"net/http"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DepenseHandler struct {
	svc service.DepenseService
}

func NewDepenseHandler(svc service.DepenseService) *DepenseHandler {
	return &DepenseHandler{svc: svc}
}

func (h *DepenseHandler) Creer(c *gin.Context) {
	var req dto.CreerDepenseRequest
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

func (h *DepenseHandler) Get(c *gin.Context) {
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
// @Summary Liste les dépenses sur une période
// @Tags depenses
// @Security BearerAuth
// @Produce json
// @Param depuis query string false "Date début AAAA-MM-JJ"
// @Param jusqu query string false "Date fin AAAA-MM-JJ"
// @Param categorie query string false "Catégorie"
// @Success 200 {array} dto.DepenseResponse
// @Router /v1/depenses [get]
func (h *DepenseHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("depuis"), c.Query("jusqu"), c.Query("categorie"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DepenseHandler) Modifier(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	var req dto.CreerDepenseRequest
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

func (h *DepenseHandler) Supprimer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	if err := h.svc.Supprimer(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
