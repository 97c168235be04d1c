package entity

type Professor struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"nombre"`
	Surname string `gorm:"size:100;not null" json:"apellido"`
	Email   string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Active  bool   `gorm:"not null;default:true" json:"-"`
}

func (p Professor) FullName() string {
	return p.Name + " " + p.Surname
}

// ProfessorParticipation records a professor's role in a project. It has no
// endpoint of its own and is maintained administratively.
type ProfessorParticipation struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProfessorID       uint      `gorm:"not null;index" json:"profesor_id"`
	Professor         Professor `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ProjectID         uint      `gorm:"not null;index" json:"proyecto_id"`
	Project           Project   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Role              string    `gorm:"size:100;not null" json:"rol"`
	ParticipationDate Date      `gorm:"type:date;not null" json:"fecha_participacion"`
}
