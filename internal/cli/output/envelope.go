package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"
)

// SchemaVersion versions the envelope and the data models in this package.
const SchemaVersion = "1.0.0"

// Meta describes the run that produced an envelope.
type Meta struct {
	Command       string    `json:"command"`
	SchemaVersion string    `json:"schema_version"`
	Version       string    `json:"version,omitempty"`
	DurationMS    float64   `json:"duration_ms,omitempty"`
	TS            time.Time `json:"ts"`
}

type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Envelope is the single JSON line every --json command writes. Exactly one
// of Data and Error is set, and Ok reports which.
type Envelope struct {
	Ok    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
	Meta  Meta       `json:"meta"`
}

func NewMeta(command, version string) Meta {
	return Meta{
		Command:       command,
		SchemaVersion: SchemaVersion,
		Version:       version,
		TS:            time.Now().UTC(),
	}
}

// WithDuration records the time since start, in milliseconds to 0.01.
func WithDuration(meta Meta, start time.Time) Meta {
	ms := float64(time.Since(start)) / float64(time.Millisecond)
	meta.DurationMS = math.Round(ms*100) / 100
	return meta
}

// WriteSuccess writes {"ok":true,"data":...,"meta":...}.
func WriteSuccess(w io.Writer, meta Meta, data any) error {
	return write(w, Envelope{Ok: true, Data: data, Meta: meta})
}

// WriteError writes {"ok":false,"error":{...},"meta":...}. Empty code and
// message fall back to "unknown".
func WriteError(w io.Writer, meta Meta, code, message string, details map[string]any) error {
	body := &ErrorBody{Code: code, Message: message, Details: details}
	if body.Code == "" {
		body.Code = "unknown"
	}
	if body.Message == "" {
		body.Message = "unknown error"
	}
	return write(w, Envelope{Error: body, Meta: meta})
}

// Decode reads one envelope. Data is left as generic JSON.
func Decode(r io.Reader) (Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Envelope{}, fmt.Errorf("output: decode envelope: %w", err)
	}
	return env, nil
}

func write(w io.Writer, env Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("output: encode envelope: %w", err)
	}
	return nil
}
