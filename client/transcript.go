package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// Word is a recognized word with optional timing in seconds
type Word struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
}

// Transcript represents a stored transcript
type Transcript struct {
	ID        string `json:"id"`
	UID       string `json:"uid,omitempty"`
	Text      string `json:"text"`
	Words     []Word `json:"words,omitempty"`
	Filename  string `json:"filename,omitempty"`
	Model     string `json:"model,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// TranscriptInput represents transcript create request
type TranscriptInput struct {
	Text     string `json:"text"`
	Words    []Word `json:"words"`
	Filename string `json:"filename,omitempty"`
}

// TranscriptUpdate represents partial transcript update, nil fields are left unchanged
type TranscriptUpdate struct {
	Text     *string `json:"text,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Audio represents audio submitted for transcription
type Audio struct {
	Name        string
	ContentType string
	Data        []byte
	// Language is an optional hint, e.g. "en"
	Language string
	// TranscriptID re-transcribes an existing transcript instead of creating a new one
	TranscriptID string
}

type okResponse struct {
	OK bool `json:"ok"`
}

func transcriptPath(id string) string {
	return "/transcripts/" + url.PathEscape(id)
}

// ListTranscripts returns transcripts of the authenticated user, newest first
func (c *Client) ListTranscripts(ctx context.Context) ([]*Transcript, error) {
	var ret []*Transcript
	err := c.call(ctx, "list", http.MethodGet, "/transcripts", nil, "Failed to list transcripts", &ret)
	return ret, err
}

// GetTranscript returns transcript by id
func (c *Client) GetTranscript(ctx context.Context, id string) (*Transcript, error) {
	ret := &Transcript{}
	if err := c.call(ctx, "get", http.MethodGet, transcriptPath(id), nil, "Transcript not found", ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// CreateTranscript stores a transcript
func (c *Client) CreateTranscript(ctx context.Context, input *TranscriptInput) (*Transcript, error) {
	if input == nil {
		return nil, errors.New("transcript input was empty")
	}
	payload := *input
	if payload.Words == nil {
		payload.Words = []Word{}
	}
	ret := &Transcript{}
	if err := c.call(ctx, "create", http.MethodPost, "/transcripts", &payload, "Failed to create transcript", ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// UpdateTranscript updates transcript text and/or filename
func (c *Client) UpdateTranscript(ctx context.Context, id string, update *TranscriptUpdate) error {
	if update == nil {
		return errors.New("transcript update was empty")
	}
	return c.call(ctx, "update", http.MethodPatch, transcriptPath(id), update, "Failed to update transcript", &okResponse{})
}

// DeleteTranscript deletes transcript, deleting a missing transcript succeeds
func (c *Client) DeleteTranscript(ctx context.Context, id string) error {
	status, body, err := c.send(ctx, http.MethodDelete, transcriptPath(id), nil)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return newServerError("delete", status, body, "Failed to delete transcript")
	}
	return nil
}

// Transcribe uploads audio for transcription and returns the resulting transcript
func (c *Client) Transcribe(ctx context.Context, audio *Audio) (*Transcript, error) {
	if audio == nil {
		return nil, errors.New("audio was empty")
	}
	body, contentType, err := audio.multipart()
	if err != nil {
		return nil, err
	}
	status, data, err := c.send(ctx, http.MethodPost, "/transcripts/transcribe", body, WithContentType(contentType))
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, newServerError("transcribe", status, data, "Transcription failed")
	}
	ret := &Transcript{}
	if err = decodeResponse("transcribe", data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (a *Audio) multipart() (*bytes.Buffer, string, error) {
	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)
	header := make(textproto.MIMEHeader)
	name := a.Name
	if name == "" {
		name = "audio.wav"
	}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio"; filename=%q`, name))
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(a.Data); err != nil {
		return nil, "", err
	}
	if a.Language != "" {
		if err = writer.WriteField("language", a.Language); err != nil {
			return nil, "", err
		}
	}
	if a.TranscriptID != "" {
		if err = writer.WriteField("tid", a.TranscriptID); err != nil {
			return nil, "", err
		}
	}
	if err = writer.Close(); err != nil {
		return nil, "", err
	}
	return buffer, writer.FormDataContentType(), nil
}

// call sends JSON payload (if any) and decodes successful JSON response into result
func (c *Client) call(ctx context.Context, op, method, path string, payload interface{}, fallback string, result interface{}) error {
	var options []RequestOption
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
		options = append(options, WithContentType("application/json"))
	}
	status, data, err := c.send(ctx, method, path, body, options...)
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return newServerError(op, status, data, fallback)
	}
	return decodeResponse(op, data, result)
}
