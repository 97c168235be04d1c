package dto

type ProfessorInput struct {
	Name    string `json:"nombre" binding:"required,max=100"`
	Surname string `json:"apellido" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=120"`
}

// ProfessorSummary is a row of the active professor list with the number of
// pending projects the professor guides and informs.
type ProfessorSummary struct {
	ID            uint   `json:"id"`
	Name          string `json:"nombre"`
	Surname       string `json:"apellido"`
	Email         string `json:"email"`
	GuidedCount   int64  `json:"proyectos_guiados"`
	InformedCount int64  `json:"proyectos_informados"`
}

type PendingProject struct {
	ID           uint   `json:"id"`
	Title        string `json:"titulo"`
	Description  string `json:"descripcion"`
	Student      string `json:"estudiante"`
	StudentEmail string `json:"estudiante_email"`
}

type ProfessorDetail struct {
	ID               uint             `json:"id"`
	Name             string           `json:"nombre"`
	Surname          string           `json:"apellido"`
	Email            string           `json:"email"`
	GuidedProjects   []PendingProject `json:"proyectos_guiados"`
	InformedProjects []PendingProject `json:"proyectos_informados"`
	TotalGuided      int              `json:"total_proyectos_guiados"`
	TotalInformed    int              `json:"total_proyectos_informados"`
}
