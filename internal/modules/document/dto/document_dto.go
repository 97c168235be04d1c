package dto

import "io"

type UploadResult struct {
	Path         string `json:"filepath"`
	Kind         string `json:"tipo"`
	InternshipID uint   `json:"practica_id"`
}

// Download is an open stored document. The caller closes Content.
type Download struct {
	Content  io.ReadCloser
	Size     int64
	FileName string
}
