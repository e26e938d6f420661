package model

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/render"
)

// Raw reply from the try-on API; shape not guaranteed
type UpstreamResponse struct {
	StatusCode int
	Body       string
}

type TryOnResult struct {
	ResultImage string `json:"result_image"`
	ImageURL    string `json:"image_url"`
}

func NewTryOnResult(img []byte, img_url string) *TryOnResult {
	return &TryOnResult{
		ResultImage: base64.StdEncoding.EncodeToString(img),
		ImageURL:    img_url,
	}
}

func (tr *TryOnResult) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusOK)
	return nil
}
