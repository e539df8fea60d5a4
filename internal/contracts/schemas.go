package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

// Contract keys, as produced by generateKeyFromPath.
const (
	ModelColumnsV1      = "ModelColumns/1.0.0"
	LinearModelV1       = "LinearModel/1.0.0"
	PredictionCreatedV1 = "PredictionCreated/1.0.0"
)

var (
	compileOnce     sync.Once
	compiledSchemas map[string]*jsonschema.Schema
	compileErr      error
)

func compileAll() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string

	// Every schema is added as a resource first so they may $ref each other.
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		compileErr = fmt.Errorf("error walking schema resources: %w", err)
		return
	}

	compiled := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			compileErr = fmt.Errorf("could not compile schema %s: %w", path, err)
			return
		}
		compiled[generateKeyFromPath(path)] = schema
	}
	compiledSchemas = compiled
}

// generateKeyFromPath turns "schemas/model-columns/v1.json" into "ModelColumns/1.0.0".
func generateKeyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, "schemas/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}

	version := strings.TrimPrefix(parts[1], "v") + ".0.0"
	return fmt.Sprintf("%s/%s", name.String(), version)
}

// Validate checks a raw JSON document against the contract registered under key.
func Validate(key string, body []byte) error {
	compileOnce.Do(compileAll)
	if compileErr != nil {
		return compileErr
	}

	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("contract %q not found", key)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
