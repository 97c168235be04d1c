package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/internal/modules/project/dto"
	project "infuct.com/seguimiento/internal/modules/project/service"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/response"
	"infuct.com/seguimiento/pkg/validator"
)

type ProjectHandler struct {
	service project.ProjectService
}

func NewProjectHandler(service project.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound("Proyecto no encontrado")
	}
	return uint(id), nil
}

func (h *ProjectHandler) ListPending(c *gin.Context) {
	rows, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"data": rows})
}

func (h *ProjectHandler) ListFinalized(c *gin.Context) {
	rows, err := h.service.ListFinalized(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"data": rows})
}

func (h *ProjectHandler) Search(c *gin.Context) {
	hits, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"data": hits})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"proyecto": found})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var input dto.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.BindError(err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":  "Proyecto creado exitosamente",
		"proyecto": created,
	})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.BindError(err))
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Proyecto actualizado exitosamente")
}

func (h *ProjectHandler) Finalize(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.FinalizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.BindError(err))
		return
	}

	finalized, err := h.service.Finalize(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Proyecto finalizado exitosamente",
		"nota":    finalized.Grade,
		"estado":  finalized.Status,
	})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Proyecto eliminado exitosamente")
}
