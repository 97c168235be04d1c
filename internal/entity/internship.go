package entity

import "strings"

const (
	InternshipInitial      = "Inicial"
	InternshipProfessional = "Profesional"

	MinGrade = 1.0
	MaxGrade = 7.0
)

// NormalizeInternshipType maps any casing of a type to its stored form.
func NormalizeInternshipType(t string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "inicial":
		return InternshipInitial, true
	case "profesional":
		return InternshipProfessional, true
	}
	return "", false
}

// ValidGrade reports whether g is inside the 1.0 to 7.0 scale.
func ValidGrade(g float64) bool {
	return g >= MinGrade && g <= MaxGrade
}

// Internship is a company placement. A student has at most one per type.
type Internship struct {
	ID                       uint     `gorm:"primaryKey" json:"id"`
	StudentID                uint     `gorm:"not null;uniqueIndex:idx_internship_student_type" json:"estudiante_id"`
	Student                  Student  `json:"-"`
	Type                     string   `gorm:"size:100;not null;uniqueIndex:idx_internship_student_type" json:"tipo_practica"`
	Company                  string   `gorm:"size:200;not null" json:"empresa"`
	StartDate                Date     `gorm:"type:date;not null" json:"fecha_inicio"`
	EndDate                  Date     `gorm:"type:date;not null" json:"fecha_termino"`
	Supervisor               string   `gorm:"size:200;not null" json:"supervisor"`
	SupervisorContact        string   `gorm:"size:200;not null" json:"contacto_supervisor"`
	Grade                    *float64 `json:"nota"`
	SupervisorLetterPath     *string  `gorm:"size:500" json:"-"`
	StudentCertificatePath   *string  `gorm:"size:500" json:"-"`
	EnrollmentFormPath       *string  `gorm:"size:500" json:"-"`
	CompanyAuthorizationPath *string  `gorm:"size:500" json:"-"`
}

// DocumentPaths returns every stored document path of the internship.
func (i *Internship) DocumentPaths() []string {
	var paths []string
	for _, p := range []*string{i.SupervisorLetterPath, i.StudentCertificatePath, i.EnrollmentFormPath, i.CompanyAuthorizationPath} {
		if p != nil && *p != "" {
			paths = append(paths, *p)
		}
	}
	return paths
}
