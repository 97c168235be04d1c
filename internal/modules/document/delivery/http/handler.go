package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"infuct.com/seguimiento/internal/entity"
	document "infuct.com/seguimiento/internal/modules/document/service"
	"infuct.com/seguimiento/pkg/apperror"
	"infuct.com/seguimiento/pkg/response"
)

type DocumentHandler struct {
	service document.DocumentService
}

func NewDocumentHandler(service document.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

func parseInternshipID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("practica_id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound("Práctica no encontrada")
	}
	return uint(id), nil
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	id, err := parseInternshipID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if _, ok := entity.ParseDocumentKind(c.Param("tipo")); !ok {
		response.ResponseError(c, apperror.Validation("Tipo de documento no válido"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ResponseError(c, apperror.New(http.StatusRequestEntityTooLarge, "El archivo excede el tamaño máximo permitido", err))
			return
		}
		response.ResponseError(c, apperror.Validation("No se ha enviado ningún archivo"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, apperror.Internal(err))
		return
	}
	defer file.Close()

	result, err := h.service.Upload(c.Request.Context(), c.Param("tipo"), id, fileHeader.Filename, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":     "Documento subido exitosamente",
		"filepath":    result.Path,
		"tipo":        result.Kind,
		"practica_id": result.InternshipID,
	})
}

func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := parseInternshipID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	doc, err := h.service.Download(c.Request.Context(), c.Param("tipo"), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer doc.Content.Close()

	c.DataFromReader(http.StatusOK, doc.Size, "application/pdf", doc.Content, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", doc.FileName),
		"Cache-Control":       "no-cache, no-store, must-revalidate",
		"Pragma":              "no-cache",
		"Expires":             "0",
	})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := parseInternshipID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("tipo"), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Documento eliminado exitosamente")
}
