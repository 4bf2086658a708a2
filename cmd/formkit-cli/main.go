// Command formkit-cli validates a JSON state document against a schema
// supplied as declared validator rules, an OpenAPI schema, or a CUE
// definition, printing one line per field error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/internal/logger"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func main() {
	statePath := flag.String("state", "", "JSON document holding the form state")
	rulesPath := flag.String("rules", "", "YAML document with declared validator rules")
	openapiPath := flag.String("openapi", "", "JSON document with an OpenAPI schema")
	cuePath := flag.String("cue", "", "CUE source with the schema definition")
	logLevel := flag.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	human := flag.Bool("human", true, "human readable log output")
	flag.Parse()

	if *statePath == "" {
		log.Fatalf("a -state document is required")
	}

	state, err := loadState(*statePath)
	if err != nil {
		log.Fatalf("load state: %v", err)
	}

	schema, err := loadSchema(*rulesPath, *openapiPath, *cuePath)
	if err != nil {
		log.Fatalf("load schema: %v", err)
	}

	logr, err := logger.New(logger.Options{Level: *logLevel, HumanReadable: *human})
	if err != nil {
		log.Fatalf("configure logging: %v", err)
	}

	o := orchestrator.New(
		orchestrator.WithSchema(schema),
		orchestrator.WithLogger(logr),
	)
	if _, err := o.ValidateAll(context.Background(), state); err != nil {
		errs, ok := validation.AsErrors(err)
		if !ok {
			log.Fatalf("validation aborted: %v", err)
		}
		for _, fe := range errs {
			path := fe.Path
			if path == "" {
				path = "(root)"
			}
			fmt.Printf("%s: %s\n", path, fe.Message)
		}
		os.Exit(1)
	}

	fmt.Println("valid")
}

func loadState(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var state map[string]any
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return state, nil
}

func loadSchema(rulesPath, openapiPath, cuePath string) (any, error) {
	supplied := 0
	for _, path := range []string{rulesPath, openapiPath, cuePath} {
		if path != "" {
			supplied++
		}
	}
	if supplied != 1 {
		return nil, fmt.Errorf("exactly one of -rules, -openapi, or -cue is required")
	}

	switch {
	case rulesPath != "":
		raw, err := os.ReadFile(rulesPath)
		if err != nil {
			return nil, err
		}
		var rules validation.RuleSet
		if err := yaml.Unmarshal(raw, &rules); err != nil {
			return nil, fmt.Errorf("parse %s: %w", rulesPath, err)
		}
		return rules, nil

	case openapiPath != "":
		raw, err := os.ReadFile(openapiPath)
		if err != nil {
			return nil, err
		}
		schema := &openapi3.Schema{}
		if err := schema.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", openapiPath, err)
		}
		return schema, nil

	default:
		raw, err := os.ReadFile(cuePath)
		if err != nil {
			return nil, err
		}
		value := cuecontext.New().CompileBytes(raw)
		if err := value.Err(); err != nil {
			return nil, fmt.Errorf("compile %s: %w", cuePath, err)
		}
		return value, nil
	}
}
