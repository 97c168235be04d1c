package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/internship/dto"
	internship "infuct.com/seguimiento/internal/modules/internship/service"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/response"
	"infuct.com/seguimiento/pkg/validator"
)

type InternshipHandler struct {
	service internship.InternshipService
}

func NewInternshipHandler(service internship.InternshipService) *InternshipHandler {
	return &InternshipHandler{service: service}
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound("Práctica no encontrada")
	}
	return uint(id), nil
}

// List returns a handler listing internships of a fixed type.
func (h *InternshipHandler) List(internshipType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.service.ListByType(c.Request.Context(), internshipType)
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		response.Success(c, http.StatusOK, gin.H{"data": rows})
	}
}

// Create returns a handler creating internships of a fixed type.
func (h *InternshipHandler) Create(internshipType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input dto.CreateInternshipInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.ResponseError(c, validator.BindError(err))
			return
		}

		created, err := h.service.Create(c.Request.Context(), internshipType, input)
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		message := "Práctica inicial creada exitosamente"
		if created.Type == entity.InternshipProfessional {
			message = "Práctica profesional creada exitosamente"
		}
		response.Success(c, http.StatusCreated, gin.H{
			"message":  message,
			"practica": created,
		})
	}
}

func (h *InternshipHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateInternshipInput
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
		"message":  "Práctica actualizada exitosamente",
		"practica": updated,
	})
}

func (h *InternshipHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Práctica eliminada exitosamente")
}
