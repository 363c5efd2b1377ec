package handler

import (
	"net/http"

	"stationops/internal/apierror"
	"stationops/internal/dto"
	"stationops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientHandler struct {
	svc service.ClientService
}

func NewClientHandler(svc service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// Creer godoc
// @Summary Crée un client (particulier ou professionnel)
// @Tags clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreerClientRequest true "Client"
// @Success 201 {object} dto.ClientResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/clients [post]
func (h *ClientHandler) Creer(c *gin.Context) {
	var req dto.CreerClientRequest
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

func (h *ClientHandler) Get(c *gin.Context) {
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

func (h *ClientHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientHandler) Desactiver(c *gin.Context) {
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
