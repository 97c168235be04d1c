package dto

import commonDto "infuct.com/seguimiento/pkg/dto"

type CreateInternshipInput struct {
	StudentID         uint   `json:"estudiante_id" binding:"required"`
	Company           string `json:"empresa" binding:"required,max=200"`
	StartDate         string `json:"fecha_inicio" binding:"required"`
	EndDate           string `json:"fecha_termino" binding:"required"`
	Supervisor        string `json:"supervisor" binding:"required,max=200"`
	SupervisorContact string `json:"contacto_supervisor" binding:"required,max=200"`
}

// UpdateInternshipInput is a partial update; nil fields are left untouched.
type UpdateInternshipInput struct {
	Grade             commonDto.Grade `json:"nota"`
	Company           *string         `json:"empresa" binding:"omitempty,max=200"`
	StartDate         *string         `json:"fecha_inicio"`
	EndDate           *string         `json:"fecha_termino"`
	Supervisor        *string         `json:"supervisor" binding:"omitempty,max=200"`
	SupervisorContact *string         `json:"contacto_supervisor" binding:"omitempty,max=200"`
}

type InternshipRow struct {
	ID                uint     `json:"id"`
	Student           string   `json:"estudiante"`
	StudentEmail      string   `json:"estudiante_email"`
	Company           string   `json:"empresa"`
	StartDate         string   `json:"fecha_inicio"`
	EndDate           string   `json:"fecha_termino"`
	Supervisor        string   `json:"supervisor"`
	SupervisorContact string   `json:"contacto_supervisor"`
	Grade             *float64 `json:"nota"`
}
