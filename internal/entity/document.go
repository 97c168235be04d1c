package entity

// DocumentKind is one of the four documents that can be attached to an
// internship.
type DocumentKind string

const (
	SupervisorLetter     DocumentKind = "carta_supervisor"
	StudentCertificate   DocumentKind = "certificado_alumno"
	EnrollmentForm       DocumentKind = "formulario_inscripcion"
	CompanyAuthorization DocumentKind = "autorizacion_empresa"
)

// DocumentKinds lists every kind in a stable order.
var DocumentKinds = []DocumentKind{SupervisorLetter, StudentCertificate, EnrollmentForm, CompanyAuthorization}

func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch k := DocumentKind(s); k {
	case SupervisorLetter, StudentCertificate, EnrollmentForm, CompanyAuthorization:
		return k, true
	}
	return "", false
}

// SubDir is the storage directory holding documents of this kind.
func (k DocumentKind) SubDir() string {
	switch k {
	case SupervisorLetter:
		return "cartas_supervisor"
	case StudentCertificate:
		return "certificados_alumno"
	case EnrollmentForm:
		return "formularios_inscripcion"
	case CompanyAuthorization:
		return "autorizaciones_empresa"
	}
	return ""
}

// Column is the internships column storing the path of this kind.
func (k DocumentKind) Column() string {
	switch k {
	case SupervisorLetter:
		return "supervisor_letter_path"
	case StudentCertificate:
		return "student_certificate_path"
	case EnrollmentForm:
		return "enrollment_form_path"
	case CompanyAuthorization:
		return "company_authorization_path"
	}
	return ""
}

// DocumentSubDirs returns the storage directories of all kinds.
func DocumentSubDirs() []string {
	dirs := make([]string, 0, len(DocumentKinds))
	for _, k := range DocumentKinds {
		dirs = append(dirs, k.SubDir())
	}
	return dirs
}

// DocumentPath returns the stored path of kind, or "" when none is recorded.
func (i *Internship) DocumentPath(kind DocumentKind) string {
	var p *string
	switch kind {
	case SupervisorLetter:
		p = i.SupervisorLetterPath
	case StudentCertificate:
		p = i.StudentCertificatePath
	case EnrollmentForm:
		p = i.EnrollmentFormPath
	case CompanyAuthorization:
		p = i.CompanyAuthorizationPath
	}
	if p == nil {
		return ""
	}
	return *p
}

// SetDocumentPath records path for kind. An empty path clears it.
func (i *Internship) SetDocumentPath(kind DocumentKind, path string) {
	var p *string
	if path != "" {
		p = &path
	}
	switch kind {
	case SupervisorLetter:
		i.SupervisorLetterPath = p
	case StudentCertificate:
		i.StudentCertificatePath = p
	case EnrollmentForm:
		i.EnrollmentFormPath = p
	case CompanyAuthorization:
		i.CompanyAuthorizationPath = p
	}
}
