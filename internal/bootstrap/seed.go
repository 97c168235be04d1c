package bootstrap

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/pkg/logger"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Secretary{},
		&entity.Student{},
		&entity.Professor{},
		&entity.Project{},
		&entity.Internship{},
		&entity.ProfessorParticipation{},
	)
}

// SeedStudents inserts a few students when the table is empty. Students have
// no endpoint of their own, so development databases need some.
func SeedStudents(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Student{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	students := []entity.Student{
		{Name: "Camila", Surname: "Fuentes", Email: "camila.fuentes@alumnos.uct.cl"},
		{Name: "Diego", Surname: "Muñoz", Email: "diego.munoz@alumnos.uct.cl"},
		{Name: "Valentina", Surname: "Rojas", Email: "valentina.rojas@alumnos.uct.cl"},
		{Name: "Matías", Surname: "Sepúlveda", Email: "matias.sepulveda@alumnos.uct.cl"},
	}
	if err := db.Create(&students).Error; err != nil {
		return err
	}

	logger.Info().Int("count", len(students)).Msg("students seeded")
	return nil
}

// SeedSecretary creates a secretary account unless one with email exists.
// Nothing is seeded when email or password is empty.
func SeedSecretary(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.Secretary{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Debug().Str("email", email).Msg("secretary already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	secretary := entity.Secretary{
		Name:         "Secretaría",
		Surname:      "Académica",
		Email:        email,
		PasswordHash: string(hashedPasswordBytes),
	}
	if err := db.Create(&secretary).Error; err != nil {
		return err
	}

	logger.Info().Str("email", email).Msg("secretary seeded")
	return nil
}
