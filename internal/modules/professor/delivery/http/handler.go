package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/internal/modules/professor/dto"
	professor "infuct.com/seguimiento/internal/modules/professor/service"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/response"
	"infuct.com/seguimiento/pkg/validator"
)

type ProfessorHandler struct {
	service professor.ProfessorService
}

func NewProfessorHandler(service professor.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{service: service}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound("Profesor no encontrado")
	}
	return uint(id), nil
}

func (h *ProfessorHandler) List(c *gin.Context) {
	professors, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"data": professors})
}

func (h *ProfessorHandler) Create(c *gin.Context) {
	var input dto.ProfessorInput
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
		"message":  "Profesor creado exitosamente",
		"profesor": created,
	})
}

func (h *ProfessorHandler) Get(c *gin.Context) {
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

	response.Success(c, http.StatusOK, gin.H{"profesor": found})
}

func (h *ProfessorHandler) Detail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profesor": detail})
}

func (h *ProfessorHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ProfessorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.BindError(err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Profesor actualizado exitosamente",
		"profesor": updated,
	})
}

func (h *ProfessorHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Profesor eliminado exitosamente")
}
