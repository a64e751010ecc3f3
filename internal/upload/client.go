// Package upload submits selected PDF files to the conversion backend and
// saves the spreadsheet it returns.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cvanwyk/finconvert/internal/config"
	"github.com/cvanwyk/finconvert/internal/selection"
)

// Multipart field names expected by the backend's upload route.
const (
	fieldFiles      = "files"
	fieldClientName = "client_name"
	fieldPrompt     = "prompt"
)

// outputSuffix is appended to the trimmed client name to form the filename of
// the saved workbook.
const outputSuffix = "_consolidated_financial_statements_position.xlsx"

// Request is one conversion submission. It exists only for the duration of a
// single Convert call and is never persisted.
type Request struct {
	ClientName string
	Prompt     string
	Files      []selection.File
}

// Validate checks the submission preconditions in order: at least one file,
// then a non-blank client name. Both are user-correctable input problems, not
// transport failures, and no request is sent when either fails.
func (r Request) Validate() error {
	if len(r.Files) == 0 {
		return ErrNoFiles
	}
	if strings.TrimSpace(r.ClientName) == "" {
		return ErrClientNameRequired
	}
	return nil
}

// Result describes a successfully saved workbook.
type Result struct {
	Filename string
	Path     string
	Size     int64
}

// Client performs one-shot conversion requests against a fixed endpoint.
// There is no retry and no cancellation affordance: once sent, a request runs
// to completion or failure under the injected HTTP client's own behavior.
type Client struct {
	endpoint  string
	outputDir string
	userAgent string
	http      *http.Client
}

// New builds a Client from resolved configuration.
func New(cfg config.Config) *Client {
	return &Client{
		endpoint:  cfg.Endpoint,
		outputDir: cfg.OutputDir,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// Endpoint returns the backend URL this client submits to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Convert validates req, POSTs it as a single multipart request, and handles
// the outcome: a 2xx response body is treated as opaque workbook bytes and
// saved under OutputName(req.ClientName); a non-2xx response becomes a
// *ServerError; a request that never produced a response becomes a
// *TransportError.
func (c *Client) Convert(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, contentType, err := buildMultipart(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeServerError(resp)
	}

	filename := OutputName(req.ClientName)
	dest := filepath.Join(c.outputDir, filename)
	size, err := saveAtomic(dest, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("saving workbook: %w", err)
	}

	return &Result{Filename: filename, Path: dest, Size: size}, nil
}

// OutputName derives the saved workbook's filename from the client name.
// Path separators in the name are replaced so the file always lands in the
// output directory.
func OutputName(clientName string) string {
	name := strings.TrimSpace(clientName)
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, string(filepath.Separator), "-")
	return name + outputSuffix
}

// buildMultipart assembles the request body: every file under the repeated
// "files" field, the trimmed client name under "client_name", and the prompt
// under "prompt" only when non-empty after trimming.
func buildMultipart(req Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range req.Files {
		part, err := w.CreateFormFile(fieldFiles, f.Name)
		if err != nil {
			return nil, "", err
		}
		src, err := os.Open(f.Path)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", f.Name, err)
		}
		_, copyErr := io.Copy(part, src)
		src.Close()
		if copyErr != nil {
			return nil, "", fmt.Errorf("reading %s: %w", f.Name, copyErr)
		}
	}

	if err := w.WriteField(fieldClientName, strings.TrimSpace(req.ClientName)); err != nil {
		return nil, "", err
	}
	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		if err := w.WriteField(fieldPrompt, prompt); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// decodeServerError reads an error body of the form {"error": "..."}, falling
// back to the HTTP status text when the body cannot be interpreted as such.
func decodeServerError(resp *http.Response) *ServerError {
	serr := &ServerError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    resp.Status,
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return serr
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		serr.Message = body.Error
	}
	return serr
}

// saveAtomic writes r to dest via a temp file in the same directory, renaming
// on success so a failed download never leaves a partial workbook behind.
func saveAtomic(dest string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".convert-*.tmp")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()

	size, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, copyErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, closeErr
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}
	return size, nil
}
