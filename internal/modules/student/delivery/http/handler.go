package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	student "infuct.com/seguimiento/internal/modules/student/service"
	"infuct.com/seguimiento/pkg/response"
)

type StudentHandler struct {
	service student.StudentService
}

func NewStudentHandler(service student.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"data": students})
}
