package dto

import commonDto "infuct.com/seguimiento/pkg/dto"

type ProjectInput struct {
	Title                string `json:"titulo" binding:"required,max=200"`
	Description          string `json:"descripcion" binding:"required"`
	StudentID            uint   `json:"estudiante_id" binding:"required"`
	GuidingProfessorID   uint   `json:"profesor_guia_id" binding:"required"`
	InformingProfessorID uint   `json:"profesor_informante_id" binding:"required"`
}

type FinalizeInput struct {
	Grade commonDto.Grade `json:"nota"`
}

// ProjectRow is a project with its student and professors flattened for
// listings. Grade and Status are only present for finalized projects.
type ProjectRow struct {
	ID                      uint     `json:"id"`
	Student                 string   `json:"estudiante"`
	StudentEmail            string   `json:"correo"`
	Title                   string   `json:"proyecto_titulo"`
	GuidingProfessor        string   `json:"profesor_guia"`
	GuidingProfessorEmail   string   `json:"profesor_guia_email"`
	InformingProfessor      string   `json:"profesor_informante"`
	InformingProfessorEmail string   `json:"profesor_informante_email"`
	Grade                   *float64 `json:"nota,omitempty"`
	Status                  *string  `json:"estado,omitempty"`
}
