package project

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/modules/project/dto"
	search "infuct.com/seguimiento/internal/modules/search/service"
	"infuct.com/seguimiento/pkg/apperror"
)

type memoryRepo struct {
	projects map[uint]*entity.Project
	nextID   uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{projects: map[uint]*entity.Project{}, nextID: 1}
}

func (r *memoryRepo) Create(_ context.Context, p *entity.Project) error {
	p.ID = r.nextID
	r.nextID++
	copied := *p
	r.projects[p.ID] = &copied
	return nil
}

func (r *memoryRepo) Update(_ context.Context, p *entity.Project) error {
	copied := *p
	r.projects[p.ID] = &copied
	return nil
}

func (r *memoryRepo) SaveGrade(ctx context.Context, p *entity.Project) error {
	return r.Update(ctx, p)
}

func (r *memoryRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id uint) (*entity.Project, error) {
	if p, ok := r.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memoryRepo) FindDetailedByID(ctx context.Context, id uint) (*entity.Project, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryRepo) filter(pending bool) []entity.Project {
	var out []entity.Project
	for id := uint(1); id < r.nextID; id++ {
		if p, ok := r.projects[id]; ok && p.Pending() == pending {
			out = append(out, *p)
		}
	}
	return out
}

func (r *memoryRepo) FindPending(context.Context) ([]entity.Project, error) {
	return r.filter(true), nil
}

func (r *memoryRepo) FindFinalized(context.Context) ([]entity.Project, error) {
	return r.filter(false), nil
}

type fakeSearcher struct {
	indexed []uint
	deleted []uint
	failing bool
}

func (f *fakeSearcher) IndexProject(p *entity.Project) error {
	f.indexed = append(f.indexed, p.ID)
	if f.failing {
		return errors.New("meilisearch down")
	}
	return nil
}

func (f *fakeSearcher) DeleteProject(id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSearcher) SearchProjects(query string) ([]search.ProjectDocument, error) {
	return []search.ProjectDocument{{ID: "1", Title: query}}, nil
}

func sampleInput() dto.ProjectInput {
	return dto.ProjectInput{Title: "Tesis", Description: "Desc", StudentID: 1, GuidingProfessorID: 1, InformingProfessorID: 2}
}

func grade(t *testing.T, raw string) dto.FinalizeInput {
	t.Helper()
	var input dto.FinalizeInput
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return input
}

func TestFinalizeDerivesStatus(t *testing.T) {
	svc := NewProjectService(newMemoryRepo(), nil)
	ctx := context.Background()

	cases := []struct {
		body string
		want string
	}{
		{`{"nota": 4.0}`, entity.ProjectApproved},
		{`{"nota": 3.99}`, entity.ProjectFailed},
		{`{"nota": "5.5"}`, entity.ProjectApproved},
	}
	for _, tc := range cases {
		created, err := svc.Create(ctx, sampleInput())
		if err != nil {
			t.Fatal(err)
		}
		finalized, err := svc.Finalize(ctx, created.ID, grade(t, tc.body))
		if err != nil {
			t.Fatalf("%s: %v", tc.body, err)
		}
		if finalized.Status == nil || *finalized.Status != tc.want {
			t.Fatalf("%s: status = %v, want %s", tc.body, finalized.Status, tc.want)
		}

		stored, _ := svc.Get(ctx, created.ID)
		if stored.Grade == nil || *stored.Status != tc.want {
			t.Fatalf("%s: finalize not persisted", tc.body)
		}
	}
}

func TestFinalizeRequiresGrade(t *testing.T) {
	svc := NewProjectService(newMemoryRepo(), nil)
	ctx := context.Background()
	created, _ := svc.Create(ctx, sampleInput())

	for _, body := range []string{`{}`, `{"nota": null}`, `{"nota": ""}`, `{"nota": "abc"}`} {
		_, err := svc.Finalize(ctx, created.ID, grade(t, body))
		if !errors.Is(err, apperror.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", body, err)
		}
	}

	stored, _ := svc.Get(ctx, created.ID)
	if !stored.Pending() {
		t.Fatal("project must stay pending after rejected finalize")
	}
}

func TestFinalizeUnknownProject(t *testing.T) {
	svc := NewProjectService(newMemoryRepo(), nil)
	_, err := svc.Finalize(context.Background(), 9, grade(t, `{"nota": 5}`))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPendingAndFinalizedPartitionProjects(t *testing.T) {
	svc := NewProjectService(newMemoryRepo(), nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		p, _ := svc.Create(ctx, sampleInput())
		if i%2 == 0 {
			if _, err := svc.Finalize(ctx, p.ID, grade(t, `{"nota": 6}`)); err != nil {
				t.Fatal(err)
			}
		}
	}

	pending, _ := svc.ListPending(ctx)
	finalized, _ := svc.ListFinalized(ctx)
	if len(pending)+len(finalized) != 5 {
		t.Fatalf("lists cover %d projects, want 5", len(pending)+len(finalized))
	}

	seen := map[uint]bool{}
	for _, row := range pending {
		if row.Grade != nil {
			t.Fatalf("pending row %d has a grade", row.ID)
		}
		seen[row.ID] = true
	}
	for _, row := range finalized {
		if row.Grade == nil || row.Status == nil {
			t.Fatalf("finalized row %d lacks grade or status", row.ID)
		}
		if seen[row.ID] {
			t.Fatalf("project %d listed twice", row.ID)
		}
	}
}

func TestIndexingFailuresAreNotReturned(t *testing.T) {
	searcher := &fakeSearcher{failing: true}
	svc := NewProjectService(newMemoryRepo(), searcher)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create must succeed when indexing fails: %v", err)
	}
	if len(searcher.indexed) != 1 || searcher.indexed[0] != created.ID {
		t.Fatalf("indexed = %v", searcher.indexed)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if len(searcher.deleted) != 1 {
		t.Fatalf("deleted = %v", searcher.deleted)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	_, err := NewProjectService(newMemoryRepo(), nil).Search(ctx, "tesis")
	if apperror.MapErrorToStatus(err) != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without search backend, got %v", err)
	}

	svc := NewProjectService(newMemoryRepo(), &fakeSearcher{})
	if _, err := svc.Search(ctx, "  "); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error for empty query, got %v", err)
	}
	hits, err := svc.Search(ctx, "tesis")
	if err != nil || len(hits) != 1 || hits[0].Title != "tesis" {
		t.Fatalf("hits = %v, err = %v", hits, err)
	}
}

func TestCreateRejectsMarkupOnlyTitle(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewProjectService(repo, nil)

	input := sampleInput()
	input.Title = "<script>alert(1)</script>"
	_, err := svc.Create(context.Background(), input)
	if !errors.Is(err, apperror.ErrValidation) || apperror.PublicMessage(err) != "El campo titulo es requerido" {
		t.Fatalf("expected titulo required, got %v", err)
	}
	if len(repo.projects) != 0 {
		t.Fatal("project stored with an empty title")
	}
}
