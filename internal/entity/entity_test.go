package entity

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStatusForGrade(t *testing.T) {
	cases := []struct {
		grade float64
		want  string
	}{
		{7.0, ProjectApproved},
		{4.0, ProjectApproved},
		{3.9, ProjectFailed},
		{1.0, ProjectFailed},
	}
	for _, tc := range cases {
		if got := StatusForGrade(tc.grade); got != tc.want {
			t.Errorf("StatusForGrade(%v) = %s, want %s", tc.grade, got, tc.want)
		}
	}

	var p Project
	if !p.Pending() {
		t.Fatal("project without grade should be pending")
	}
	p.Finalize(5.5)
	if p.Pending() || *p.Status != ProjectApproved || *p.Grade != 5.5 {
		t.Fatalf("unexpected finalized project %+v", p)
	}
}

func TestNormalizeInternshipType(t *testing.T) {
	for _, in := range []string{"inicial", "INICIAL", "Inicial"} {
		if got, ok := NormalizeInternshipType(in); !ok || got != InternshipInitial {
			t.Errorf("NormalizeInternshipType(%q) = %q, %v", in, got, ok)
		}
	}
	if got, ok := NormalizeInternshipType("profesional"); !ok || got != InternshipProfessional {
		t.Errorf("profesional normalized to %q, %v", got, ok)
	}
	if _, ok := NormalizeInternshipType("avanzada"); ok {
		t.Error("unknown type accepted")
	}
}

func TestValidGrade(t *testing.T) {
	if !ValidGrade(1.0) || !ValidGrade(7.0) {
		t.Fatal("bounds must be valid")
	}
	if ValidGrade(0.9) || ValidGrade(7.1) {
		t.Fatal("out of range grade accepted")
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2024-03-15"` {
		t.Fatalf("marshal = %s", b)
	}

	if _, err := ParseDate("15/03/2024"); err == nil {
		t.Fatal("expected parse error")
	}

	var scanned Date
	if err := scanned.Scan(time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if scanned.String() != "2024-03-15" {
		t.Fatalf("scanned time = %s", scanned)
	}
	if err := scanned.Scan("2024-03-16T00:00:00Z"); err != nil || scanned.String() != "2024-03-16" {
		t.Fatalf("scanned string = %s, %v", scanned, err)
	}
	if err := scanned.Scan(42); err == nil {
		t.Fatal("expected error scanning int")
	}
}

func TestDocumentKinds(t *testing.T) {
	if _, ok := ParseDocumentKind("curriculum"); ok {
		t.Fatal("unknown kind accepted")
	}

	var internship Internship
	seenDirs := map[string]bool{}
	for _, kind := range DocumentKinds {
		parsed, ok := ParseDocumentKind(string(kind))
		if !ok || parsed != kind {
			t.Fatalf("ParseDocumentKind(%s) = %s, %v", kind, parsed, ok)
		}
		if kind.SubDir() == "" || kind.Column() == "" {
			t.Fatalf("kind %s has no storage mapping", kind)
		}
		seenDirs[kind.SubDir()] = true

		path := kind.SubDir() + "/doc.pdf"
		internship.SetDocumentPath(kind, path)
		if internship.DocumentPath(kind) != path {
			t.Fatalf("path of %s not stored", kind)
		}
	}
	if len(seenDirs) != len(DocumentKinds) {
		t.Fatal("kinds must map to distinct directories")
	}
	if len(internship.DocumentPaths()) != len(DocumentKinds) {
		t.Fatalf("DocumentPaths = %v", internship.DocumentPaths())
	}

	internship.SetDocumentPath(SupervisorLetter, "")
	if internship.DocumentPath(SupervisorLetter) != "" || internship.SupervisorLetterPath != nil {
		t.Fatal("empty path should clear the document")
	}
}
