package error

import (
	"log"
	"net/http"

	"github.com/go-chi/render"
)

type ErrResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"-"`
	ErrorText      string `json:"error"`
	RawResponse    string `json:"raw_response,omitempty"`
	Details        string `json:"details,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
}

func (er *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	log.Printf("%s: %s", er.StatusText, er.ErrorText)
	render.Status(r, er.HTTPStatusCode)
	return nil
}

// e.g., missing multipart file
func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest, // 400
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrContentTooLarge(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusRequestEntityTooLarge, // 413
		StatusText:     "Content too large.",
		ErrorText:      err.Error(),
	}
}

func ErrTooManyRequests(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusTooManyRequests, // 429
		StatusText:     "Too many requests.",
		ErrorText:      err.Error(),
	}
}

func Err500(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError, // 500
		StatusText:     "Server failed to process request.",
		ErrorText:      err.Error(),
	}
}

// Upstream answered with something other than 200; its status code is
// passed through. Codes that cannot carry a body (1xx, 204, 304) or
// are out of range become 500.
func ErrUpstreamStatus(status_code int, body string) render.Renderer {
	http_status := status_code
	if !canCarryBody(http_status) {
		http_status = http.StatusInternalServerError
	}

	err := UpstreamRequestFail(status_code)
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http_status,
		StatusText:     "Upstream request failed.",
		ErrorText:      err.Error(),
		Details:        body,
	}
}

// Upstream answered 200 but no image URL could be found in its body.
func ErrUpstreamShape(err error, raw_response string) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError, // 500
		StatusText:     "Unexpected upstream response.",
		ErrorText:      err.Error(),
		RawResponse:    raw_response,
	}
}

// Partial success: the URL is still returned so the client can fetch it.
func ErrResultFetch(status_code int, img_url string) render.Renderer {
	err := ResultImageDownloadFail(status_code)
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError, // 500
		StatusText:     "Result image download failed.",
		ErrorText:      err.Error(),
		ImageURL:       img_url,
	}
}

func canCarryBody(status_code int) bool {
	switch {
	case status_code < 200 || status_code > 599:
		return false
	case status_code == http.StatusNoContent || status_code == http.StatusNotModified:
		return false
	}
	return true
}
