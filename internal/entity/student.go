package entity

type Student struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"nombre"`
	Surname string `gorm:"size:100;not null" json:"apellido"`
	Email   string `gorm:"size:120;not null" json:"email"`
}

func (s Student) FullName() string {
	return s.Name + " " + s.Surname
}
