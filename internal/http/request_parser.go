// Package http provides HTTP server and handler implementations.
//
// This file implements parsing of the contribution form. The same handler
// accepts form posts from the page and JSON bodies from scripts.

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tracker/internal/core"
	"tracker/internal/services"
)

// maxBodyBytes caps a submission body. Notes are free-form but short.
const maxBodyBytes = 64 << 10

var errBodyTooLarge = errors.New("request body too large")

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body == nil {
		return p
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if p.err == nil && len(p.body) > maxBodyBytes {
		p.err = errBodyTooLarge
	}
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if strings.HasPrefix(p.contentType, "application/json") || p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.jsonData = nil
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a trimmed, sanitized value from the parsed data.
func (p *RequestBodyParser) Get(key string) string {
	return strings.TrimSpace(sanitizeInput(p.Raw(key)))
}

// Raw returns a value exactly as submitted.
func (p *RequestBodyParser) Raw(key string) string {
	if p.jsonData != nil {
		return stringValue(p.jsonData[key])
	}
	if p.formData != nil {
		return p.formData.Get(key)
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// stringValue converts a decoded JSON value to string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// ParseSubmission reads a contribution from the request body.
//
// The name and notes are kept exactly as typed; whether the name is blank is
// for the submitter to decide. An amount that is missing or does not parse
// becomes 0 so it fails validation like any other non-positive amount.
func ParseSubmission(r *http.Request) (services.Submission, error) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return services.Submission{}, err
	}

	amount, err := core.ParseAmount(p.Get("amount"))
	if err != nil {
		amount = 0
	}
	return services.Submission{
		Name:   p.Raw("name"),
		Type:   core.ContributionType(p.Get("type")),
		Amount: amount,
		Notes:  sanitizeInput(p.Raw("notes")),
	}, nil
}

// sanitizeInput drops control characters other than tab and newlines.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
