package entity

const (
	ProjectApproved = "Aprobado"
	ProjectFailed   = "Reprobado"

	PassingGrade = 4.0
)

// Project is a thesis or capstone. A nil Grade means the project is pending.
type Project struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Title                string    `gorm:"size:200;not null" json:"titulo"`
	Description          string    `gorm:"type:text" json:"descripcion"`
	StudentID            uint      `gorm:"not null;index" json:"estudiante_id"`
	Student              Student   `json:"-"`
	GuidingProfessorID   uint      `gorm:"not null;index" json:"profesor_guia_id"`
	GuidingProfessor     Professor `gorm:"foreignKey:GuidingProfessorID" json:"-"`
	InformingProfessorID uint      `gorm:"not null;index" json:"profesor_informante_id"`
	InformingProfessor   Professor `gorm:"foreignKey:InformingProfessorID" json:"-"`
	Grade                *float64  `json:"nota"`
	Status               *string   `gorm:"size:20" json:"estado"`
}

// StatusForGrade derives the pass/fail status of a finalized project.
func StatusForGrade(grade float64) string {
	if grade >= PassingGrade {
		return ProjectApproved
	}
	return ProjectFailed
}

// Finalize sets the grade and the derived status.
func (p *Project) Finalize(grade float64) {
	status := StatusForGrade(grade)
	p.Grade = &grade
	p.Status = &status
}

func (p *Project) Pending() bool {
	return p.Grade == nil
}
