package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"horse.fit/subplot/internal/translation"
)

//go:embed providers.schema.json
var providersSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error

	envReference = regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)\}`)
)

type providersFile struct {
	Providers []translation.ProviderSpec `json:"providers"`
}

// LoadProviders reads the ordered provider list from path. ${VAR} references
// are substituted from the environment before parsing, so credentials can
// stay out of the file itself. The payload is validated against the embedded
// schema.
func LoadProviders(path string) ([]translation.ProviderSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}

	expanded := expandEnvReferences(string(raw))

	value, err := decodeStrictJSON([]byte(expanded))
	if err != nil {
		return nil, fmt.Errorf("decode providers file %s: %w", path, err)
	}

	schema, err := loadProvidersSchema()
	if err != nil {
		return nil, fmt.Errorf("load providers schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("providers file %s failed validation: %w", path, err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("normalize providers file: %w", err)
	}

	var parsed providersFile
	if err := json.Unmarshal(normalized, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal providers file: %w", err)
	}

	for i, spec := range parsed.Providers {
		if strings.TrimSpace(spec.BaseURL) == "" {
			return nil, fmt.Errorf("providers[%d]: base_url must not be empty", i)
		}
		if strings.TrimSpace(spec.Model) == "" {
			return nil, fmt.Errorf("providers[%d]: model must not be empty", i)
		}
	}

	return parsed.Providers, nil
}

// expandEnvReferences replaces ${VAR_NAME} with the environment value.
// Unset variables are kept as-is so validation can point at them.
func expandEnvReferences(content string) string {
	return envReference.ReplaceAllStringFunc(content, func(match string) string {
		name := envReference.FindStringSubmatch(match)[1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return match
	})
}

func loadProvidersSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		if err := compiler.AddResource("providers.schema.json", strings.NewReader(providersSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("providers.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}
		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("file contains trailing content")
	}
	return value, nil
}
