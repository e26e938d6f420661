package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"

	e "github.com/julianlk522/tryon/error"
	util "github.com/julianlk522/tryon/handler/util"
	"github.com/julianlk522/tryon/model"
)

// TryOnClient is the third-party try-on API as seen by TryOn.
type TryOnClient interface {
	Submit(ctx context.Context, person, cloth io.Reader) (*model.UpstreamResponse, error)
	FetchImage(ctx context.Context, img_url string) (int, []byte, error)
}

// TryOn accepts person_image and cloth_image, forwards them to the
// try-on API and responds with the result image base64-encoded.
// Staged files are removed on every path.
func TryOn(client TryOnClient, upload_dir string, max_upload_bytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var staging *util.Staging
		defer func() {
			staging.Cleanup()
		}()
		defer func() {
			if rec := recover(); rec != nil {
				renderInternalErr(w, r, fmt.Errorf("%v", rec))
			}
		}()

		if err := r.ParseMultipartForm(max_upload_bytes); err != nil {
			var max_bytes_err *http.MaxBytesError
			if errors.As(err, &max_bytes_err) {
				render.Render(w, r, e.ErrContentTooLarge(e.ErrUploadTooLarge))
				return
			}
			// not multipart: reported as missing files below
		}

		person_file, person_header, err := r.FormFile("person_image")
		if err != nil {
			render.Render(w, r, e.ErrInvalidRequest(e.ErrMissingRequiredFiles))
			return
		}
		defer person_file.Close()

		cloth_file, cloth_header, err := r.FormFile("cloth_image")
		if err != nil {
			render.Render(w, r, e.ErrInvalidRequest(e.ErrMissingRequiredFiles))
			return
		}
		defer cloth_file.Close()

		staging, err = util.StageUploads(
			upload_dir,
			newImgUpload(person_file, person_header, model.PERSON_ROLE),
			newImgUpload(cloth_file, cloth_header, model.CLOTH_ROLE),
		)
		if err != nil {
			renderInternalErr(w, r, err)
			return
		}

		staged := staging.Files()
		for _, s := range staged {
			log.Printf("staged %s image at %s (%s)", s.Role, s.Path, util.DescribeImage(s.Path))
		}

		resp, err := client.Submit(r.Context(), staged[0].File, staged[1].File)
		if err != nil {
			renderInternalErr(w, r, err)
			return
		}
		log.Printf("try-on API status code: %d", resp.StatusCode)
		log.Printf("try-on API response: %s", resp.Body)

		if resp.StatusCode != http.StatusOK {
			render.Render(w, r, e.ErrUpstreamStatus(resp.StatusCode, resp.Body))
			return
		}

		img_url, ok := util.ExtractImageURL(resp.Body)
		if !ok {
			render.Render(w, r, e.ErrUpstreamShape(e.ErrNoImageURL, resp.Body))
			return
		}
		log.Printf("found image URL: %s", img_url)

		status_code, img, err := client.FetchImage(r.Context(), img_url)
		if err != nil {
			renderInternalErr(w, r, err)
			return
		} else if status_code != http.StatusOK {
			render.Render(w, r, e.ErrResultFetch(status_code, img_url))
			return
		}

		render.Render(w, r, model.NewTryOnResult(img, img_url))
	}
}

func newImgUpload(file multipart.File, header *multipart.FileHeader, role string) *model.ImgUpload {
	return &model.ImgUpload{
		Bytes:       file,
		Role:        role,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}
}

// Full trace stays in the server log; the client only gets the message.
func renderInternalErr(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("try-on failed: %s\n%s", err, debug.Stack())
	render.Render(w, r, e.Err500(err))
}
