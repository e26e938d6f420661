package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/julianlk522/tryon/model"
)

const (
	API_KEY_HEADER  = "X-RapidAPI-Key"
	API_HOST_HEADER = "X-RapidAPI-Host"

	PERSON_PART      = "personImage"
	CLOTH_PART       = "clothImage"
	PERSON_FILE_NAME = "model.jpg"
	CLOTH_FILE_NAME  = "shirt.jpg"
	PART_MIME_TYPE   = "image/jpeg"
)

// Client talks to the third-party try-on API.
// No retries and no timeout beyond the transport default.
type Client struct {
	HTTPClient *http.Client
	APIURL     string
	APIKey     string
	APIHost    string
}

func New(api_url, api_key, api_host string) *Client {
	return &Client{
		HTTPClient: &http.Client{},
		APIURL:     api_url,
		APIKey:     api_key,
		APIHost:    api_host,
	}
}

// Submit POSTs both images in a single multipart request and returns
// whatever the API answered, whatever its status.
func (cl *Client) Submit(ctx context.Context, person, cloth io.Reader) (*model.UpstreamResponse, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	if err := writeImagePart(writer, PERSON_PART, PERSON_FILE_NAME, person); err != nil {
		return nil, err
	}
	if err := writeImagePart(writer, CLOTH_PART, CLOTH_FILE_NAME, cloth); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cl.APIURL, buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(API_KEY_HEADER, cl.APIKey)
	req.Header.Set(API_HOST_HEADER, cl.APIHost)

	resp, err := cl.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &model.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

// FetchImage GETs the result image. A non-200 answer is reported via
// the returned status, not as an error.
func (cl *Client) FetchImage(ctx context.Context, img_url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img_url, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := cl.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, nil
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, img, nil
}

// multipart.Writer.CreateFormFile always sets application/octet-stream
func writeImagePart(writer *multipart.Writer, field_name, file_name string, src io.Reader) error {
	header := make(textproto.MIMEHeader)
	header.Set(
		"Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field_name, file_name),
	)
	header.Set("Content-Type", PART_MIME_TYPE)

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, src)
	return err
}
