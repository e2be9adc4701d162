package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// maxBodyBytes bounds request bodies; chat messages are short.
const maxBodyBytes = 1 << 20

var chatRequestSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"properties": {
		"message":    {"type": "string", "minLength": 1},
		"session_id": {"type": "string", "minLength": 1}
	},
	"required": ["message"],
	"additionalProperties": false
}`)

var clearRequestSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"properties": {
		"session_id": {"type": "string", "minLength": 1}
	},
	"additionalProperties": false
}`)

var exportRequestSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"properties": {
		"text": {"type": "string", "minLength": 1},
		"cards": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"label": {"type": "string"},
					"front": {"type": "string", "minLength": 1},
					"back":  {"type": "string", "minLength": 1}
				},
				"required": ["front", "back"]
			}
		}
	},
	"anyOf": [
		{"required": ["cards"]},
		{"required": ["text"]}
	]
}`)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type clearRequest struct {
	SessionID string `json:"session_id"`
}

type exportRequest struct {
	Cards []exportCard `json:"cards"`
	Text  string       `json:"text"`
}

type exportCard struct {
	Label string `json:"label"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

func decodeChatRequest(r *http.Request) (chatRequest, error) {
	var req chatRequest
	if err := decodeValidated(r, chatRequestSchema, &req); err != nil {
		return req, err
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}
	return req, nil
}

func decodeClearRequest(r *http.Request) (clearRequest, error) {
	var req clearRequest
	if err := decodeValidated(r, clearRequestSchema, &req); err != nil {
		return req, err
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}
	return req, nil
}

func decodeExportRequest(r *http.Request) (exportRequest, error) {
	var req exportRequest
	err := decodeValidated(r, exportRequestSchema, &req)
	return req, err
}

// decodeValidated reads the body once, validates it against the schema,
// and unmarshals it into dst.
func decodeValidated(r *http.Request, schema gojsonschema.JSONLoader, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("request body is required")
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("invalid request: %s", strings.Join(problems, "; "))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return nil
}
