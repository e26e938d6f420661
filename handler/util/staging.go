package handler

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	e "github.com/julianlk522/tryon/error"
	"github.com/julianlk522/tryon/model"
)

// Staging holds the scratch files of one request's uploads.
type Staging struct {
	files []*model.StagedUpload
}

// StageUploads writes each upload to a uniquely named file in dir and
// reopens it for reading. If any upload fails, whatever was already
// staged is cleaned up before returning.
func StageUploads(dir string, uploads ...*model.ImgUpload) (*Staging, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, e.ErrNoUploadDir
	}

	s := &Staging{}
	for _, upload := range uploads {
		staged, err := stageUpload(dir, upload)
		if staged != nil {
			s.files = append(s.files, staged)
		}
		if err != nil {
			s.Cleanup()
			return nil, e.ErrCouldNotStageUpload(upload.Role, err)
		}
	}

	return s, nil
}

// Returned upload is non-nil whenever a file was created, so the
// caller can clean it up even on error.
func stageUpload(dir string, upload *model.ImgUpload) (*model.StagedUpload, error) {
	path := filepath.Join(dir, uuid.New().String()+STAGED_FILE_EXT)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	staged := &model.StagedUpload{Role: upload.Role, Path: path}

	if _, err = io.Copy(dst, upload.Bytes); err != nil {
		dst.Close()
		return staged, err
	}
	if err = dst.Close(); err != nil {
		return staged, err
	}

	staged.File, err = os.Open(path)
	if err != nil {
		return staged, err
	}

	return staged, nil
}

func (s *Staging) Files() []*model.StagedUpload {
	if s == nil {
		return nil
	}
	return s.files
}

// Cleanup closes and deletes every staged file. Errors are swallowed
// and repeated calls are no-ops.
func (s *Staging) Cleanup() {
	if s == nil {
		return
	}

	for _, f := range s.files {
		if f.File != nil {
			f.File.Close()
			f.File = nil
		}

		if f.Path != "" {
			if _, err := os.Stat(f.Path); err == nil {
				if err := os.Remove(f.Path); err != nil {
					log.Printf("could not remove staged file %s: %s", f.Path, err)
				}
			}
		}
	}
}

// DescribeImage is only used for logging: undecodable files are
// described as "unknown" rather than rejected.
func DescribeImage(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return "unknown"
	}

	return fmt.Sprintf("%s %dx%d", format, cfg.Width, cfg.Height)
}
