//go:build testutil
// +build testutil

package repository

import (
	"context"
	"os"
	"testing"

	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/testutil/testdb"
)

var handle *testdb.DBHandle

func TestMain(m *testing.M) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		panic(err)
	}
	handle = h
	code := m.Run()
	h.Close()
	os.Exit(code)
}

func seed(t *testing.T) (entity.Student, entity.Professor, entity.Professor) {
	t.Helper()
	if err := handle.Reset(); err != nil {
		t.Fatal(err)
	}

	student := entity.Student{Name: "Ana", Surname: "Rojas", Email: "ana@alumnos.cl"}
	guide := entity.Professor{Name: "Luis", Surname: "Soto", Email: "lsoto@uni.cl", Active: true}
	informer := entity.Professor{Name: "Marta", Surname: "Vera", Email: "mvera@uni.cl", Active: true}
	for _, v := range []any{&student, &guide, &informer} {
		if err := handle.DB.Create(v).Error; err != nil {
			t.Fatal(err)
		}
	}
	return student, guide, informer
}

func TestFindActiveWithCounts(t *testing.T) {
	ctx := context.Background()
	student, guide, informer := seed(t)

	grade := 6.0
	projects := []entity.Project{
		{Title: "A", StudentID: student.ID, GuidingProfessorID: guide.ID, InformingProfessorID: informer.ID},
		{Title: "B", StudentID: student.ID, GuidingProfessorID: guide.ID, InformingProfessorID: informer.ID},
		{Title: "C", StudentID: student.ID, GuidingProfessorID: informer.ID, InformingProfessorID: guide.ID, Grade: &grade},
	}
	if err := handle.DB.Create(&projects).Error; err != nil {
		t.Fatal(err)
	}

	repo := NewProfessorRepository(handle.DB)
	rows, err := repo.FindActiveWithCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d professors, want 2", len(rows))
	}
	if rows[0].ID != guide.ID || rows[0].GuidedCount != 2 || rows[0].InformedCount != 0 {
		t.Fatalf("unexpected guide row %+v", rows[0])
	}
	if rows[1].InformedCount != 2 || rows[1].GuidedCount != 0 {
		t.Fatalf("unexpected informer row %+v", rows[1])
	}

	pending, err := repo.FindPendingGuided(ctx, guide.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 || pending[0].Student.Email != student.Email {
		t.Fatalf("pending guided = %+v", pending)
	}
}

func TestDeactivateBlockedByPendingProjects(t *testing.T) {
	ctx := context.Background()
	student, guide, informer := seed(t)

	project := entity.Project{Title: "A", StudentID: student.ID, GuidingProfessorID: guide.ID, InformingProfessorID: informer.ID}
	if err := handle.DB.Create(&project).Error; err != nil {
		t.Fatal(err)
	}

	repo := NewProfessorRepository(handle.DB)
	pending, err := repo.Deactivate(ctx, guide.ID)
	if err != nil {
		t.Fatal(err)
	}
	if pending != 1 {
		t.Fatalf("pending = %d, want 1", pending)
	}

	found, err := repo.FindByID(ctx, guide.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !found.Active {
		t.Fatal("professor with pending projects must stay active")
	}

	if err := handle.DB.Model(&project).Update("grade", 5.5).Error; err != nil {
		t.Fatal(err)
	}
	pending, err = repo.Deactivate(ctx, guide.ID)
	if err != nil || pending != 0 {
		t.Fatalf("Deactivate = %d, %v", pending, err)
	}

	rows, err := repo.FindActiveWithCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range rows {
		if row.ID == guide.ID {
			t.Fatal("deactivated professor is still listed")
		}
	}
}

func TestFindByEmailIgnoresCase(t *testing.T) {
	_, guide, _ := seed(t)

	found, err := NewProfessorRepository(handle.DB).FindByEmail(context.Background(), "LSOTO@UNI.CL")
	if err != nil {
		t.Fatal(err)
	}
	if found.ID != guide.ID {
		t.Fatalf("found %d, want %d", found.ID, guide.ID)
	}
}
