package sanitize

import (
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	cases := map[string]string{
		"  Empresa SpA  ":                  "Empresa SpA",
		"<b>Tesis</b> de grado":            "Tesis de grado",
		"<script>alert(1)</script>Informe": "Informe",
		"Pérez & Cía":                      "Pérez & Cía",
		"<b></b>":                          "",
		"&lt;b&gt;Tesis&lt;/b&gt;":         "Tesis",
		"&amp;lt;i&amp;gt;Informe":         "Informe",
	}

	for in, want := range cases {
		if got := Text(in); got != want {
			t.Errorf("Text(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTextNeverReturnsEscapedMarkup(t *testing.T) {
	for _, in := range []string{"&lt;script&gt;x", "&lt;script&gt;alert(1)&lt;/script&gt;", "&#60;img src=x&#62;"} {
		if got := Text(in); strings.Contains(got, "<script") || strings.Contains(got, "<img") {
			t.Errorf("Text(%q) = %q still carries markup", in, got)
		}
	}
}
