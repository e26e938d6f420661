package model

import (
	"io"
	"os"
)

const (
	PERSON_ROLE = "person"
	CLOTH_ROLE  = "cloth"
)

type ImgUpload struct {
	Bytes       io.Reader
	Role        string // "person" or "cloth"
	FileName    string
	ContentType string
}

// Scratch copy of one ImgUpload, owned by a single request
type StagedUpload struct {
	Role string
	Path string
	File *os.File
}
