// Package client provides an HTTP client for the redpen REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/tcravens/redpen/internal/comment"
	"github.com/tcravens/redpen/internal/draft"
	"github.com/tcravens/redpen/internal/report"
)

// Client is an HTTP client for the redpen API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ShowResponse is the response from GET /api/drafts/{id}.
type ShowResponse struct {
	Draft    *draft.Draft       `json:"draft"`
	Comments []*comment.Comment `json:"comments"`
}

// CreateDraft uploads a new draft body. The server summarizes it to
// produce the draft title.
func (c *Client) CreateDraft(body string) (*draft.Draft, error) {
	payload := map[string]string{"body": body}
	var d draft.Draft
	if err := c.post("/api/drafts", payload, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDrafts returns the caller's drafts, newest first.
func (c *Client) ListDrafts() ([]*draft.Draft, error) {
	var drafts []*draft.Draft
	if err := c.get("/api/drafts", &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

// GetDraft returns a draft with its comments.
func (c *Client) GetDraft(id string) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.get("/api/drafts/"+id, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteDraft removes a draft and its comments.
func (c *Client) DeleteDraft(id string) error {
	return c.doDelete("/api/drafts/" + id)
}

// AddComment submits a single comment on a draft. The server annotates
// it before storing.
func (c *Client) AddComment(id, text string) (*comment.Comment, error) {
	payload := map[string]string{"text": text}
	var comm comment.Comment
	if err := c.post("/api/drafts/"+id+"/comments", payload, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// ListComments returns up to limit comments for a draft, newest first.
func (c *Client) ListComments(id string, limit int) ([]*comment.Comment, error) {
	path := "/api/drafts/" + id + "/comments"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var comments []*comment.Comment
	if err := c.get(path, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// UploadComments submits a CSV of comments for bulk annotation. It
// returns the stored comments in file order.
func (c *Client) UploadComments(id, filename string, file io.Reader) ([]*comment.Comment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing upload: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/api/drafts/"+id+"/comments/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var comments []*comment.Comment
	if err := c.do(req, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// GetReport returns the aggregate feedback report for a draft.
func (c *Client) GetReport(id string) (*report.Report, error) {
	var rep report.Report
	if err := c.get("/api/drafts/"+id+"/report", &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// DownloadReport returns the rendered report in the given format
// (html or pdf) as raw bytes.
func (c *Client) DownloadReport(id, format string) ([]byte, error) {
	req, err := http.NewRequest("GET", c.baseURL+"/api/drafts/"+id+"/report?format="+format, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.doRaw(req)
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request with auth header and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	respBody, err := c.doRaw(req)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// doRaw executes an HTTP request and returns the raw response body.
func (c *Client) doRaw(req *http.Request) ([]byte, error) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s", errResp.Error)
		}
		return nil, fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	return respBody, nil
}
