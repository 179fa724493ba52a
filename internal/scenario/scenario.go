package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fair-mcs/internal/simulation"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for scenario files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported scenario format")

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	resolved   *jsonschema.Resolved
	schemaErr  error
)

// Schema returns the JSON schema inferred from simulation.Input.
func Schema() (*jsonschema.Schema, error) {
	loadSchema()
	return schema, schemaErr
}

func loadSchema() {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.For[simulation.Input](nil)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("infer scenario schema: %w", schemaErr)
			return
		}
		resolved, schemaErr = schema.Resolve(nil)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("resolve scenario schema: %w", schemaErr)
		}
	})
}

// Load reads a scenario file, picking the decoder from its extension.
func Load(path string) (simulation.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return simulation.Input{}, fmt.Errorf("read scenario: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	log.Debug().Str("path", path).Str("format", ext).Msg("Loading scenario")

	switch ext {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return simulation.Input{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// DecodeYAML decodes a YAML scenario, rejecting unknown keys.
func DecodeYAML(data []byte) (simulation.Input, error) {
	var in simulation.Input
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return in, errors.New("decode yaml scenario: empty document")
		}
		return in, fmt.Errorf("decode yaml scenario: %w", err)
	}
	return in, nil
}

// DecodeJSON validates a JSON scenario against Schema and decodes it strictly.
func DecodeJSON(data []byte) (simulation.Input, error) {
	var in simulation.Input

	loadSchema()
	if schemaErr != nil {
		return in, schemaErr
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return in, fmt.Errorf("decode json scenario: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return in, fmt.Errorf("scenario does not match schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("decode json scenario: %w", err)
	}
	return in, nil
}
