package moondream

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
)

// client talks to a local moondream inference server. Both calls block for
// the duration of the model work and are only ever invoked from inside the
// inference pool.
type client struct {
	baseURL string
	model   string
	hc      *http.Client
}

func NewClient(baseURL string) *client {
	return &client{
		baseURL: baseURL,
		model:   "vikhyatk/moondream2",
		hc:      &http.Client{},
	}
}

func (c *client) Model() string { return c.model }

// Encode uploads the preprocessed image and returns the server-side handle
// to its encoded representation.
func (c *client) Encode(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return "", fmt.Errorf("encoding image to jpeg: %w", err)
	}

	req := encodeRequest{ImageB64: base64.StdEncoding.EncodeToString(buf.Bytes())}

	var resp encodeResponse
	if err := c.post("/encode", req, &resp); err != nil {
		return "", err
	}
	if resp.EncodingID == "" {
		return "", fmt.Errorf("no encoding ID in response")
	}

	return resp.EncodingID, nil
}

// Answer asks the model a question about a previously encoded image.
func (c *client) Answer(encodingID, prompt string) (string, error) {
	req := queryRequest{EncodingID: encodingID, Question: prompt}

	var resp queryResponse
	if err := c.post("/query", req, &resp); err != nil {
		return "", err
	}
	if resp.Answer == "" {
		return "", fmt.Errorf("no answer in response")
	}

	return resp.Answer, nil
}

func (c *client) post(path string, request, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("executing HTTP request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}

	return nil
}

type encodeRequest struct {
	ImageB64 string `json:"image_b64"`
}

type encodeResponse struct {
	EncodingID string `json:"encoding_id"`
}

type queryRequest struct {
	EncodingID string `json:"encoding_id"`
	Question   string `json:"question"`
}

type queryResponse struct {
	Answer string `json:"answer"`
}
