package handler

const (
	// Staging
	STAGED_FILE_EXT = ".jpg"

	// Extraction
	URL_PREFIX          = "http"
	AT_URL_PREFIX       = "@http"
	TOKEN_STRIP_CHARS   = "\"'.,;:)"
	NESTED_RESPONSE_KEY = "response"
)

// Tried in order; "ouput_path_img" is misspelled upstream
var image_url_keys = []string{
	"url",
	"image_url",
	"result",
	"output_url",
	"link",
	"image_link",
	"img",
	"image",
	"output_image",
	"output_path_img",
	"ouput_path_img",
}

var image_url_exts = []string{".jpg", ".png", ".jpeg"}
