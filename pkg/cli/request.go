package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"gopkg.in/yaml.v3"
)

// LoadRequest loads a request from a YAML or JSON file into the provided struct
func LoadRequest(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return ParseRequest(data, path, v)
}

// ParseRequest parses data as YAML or JSON depending on the extension of
// filename. Files without a known extension are tried as YAML, then JSON.
func ParseRequest(data []byte, filename string, v any) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := unmarshalJSON(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, v); err != nil {
			if err2 := unmarshalJSON(data, v); err2 != nil {
				return fmt.Errorf("failed to parse file (tried YAML and JSON)")
			}
		}
	}
	return nil
}

// LoadPayload loads a raw request body from a YAML or JSON file. The result
// is suitable for veo.Request.Data.
func LoadPayload(path string) (map[string]any, error) {
	var payload map[string]any
	if err := LoadRequest(path, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("payload file %s is empty", path)
	}
	return payload, nil
}

// LoadRequestFromReader loads a request from r, trying JSON first.
func LoadRequestFromReader(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if err := unmarshalJSON(data, v); err != nil {
		if err2 := yaml.Unmarshal(data, v); err2 != nil {
			return fmt.Errorf("failed to parse input (tried JSON and YAML)")
		}
	}
	return nil
}

// unmarshalJSON decodes data into v, repairing it with jsonrepair first
// when it is not valid JSON (trailing commas, single quotes, unquoted keys).
// Numbers are kept as json.Number so payloads re-encode byte-exact.
func unmarshalJSON(data []byte, v any) error {
	if !json.Valid(data) {
		fixed, err := jsonrepair.JSONRepair(string(data))
		if err != nil {
			// Report the original syntax error.
			return json.Unmarshal(data, v)
		}
		data = []byte(fixed)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
