package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	elicit "github.com/goliatone/go-elicit"
	"github.com/goliatone/go-elicit/pkg/openapi"
	"github.com/goliatone/go-elicit/pkg/schema"
)

func main() {
	schemaPath := flag.String("schema", "", "JSON or YAML object schema path")
	openapiPath := flag.String("openapi", "", "OpenAPI document path (requires -operation)")
	operation := flag.String("operation", "", "operation ID when using -openapi")
	message := flag.String("message", "Please provide the requested information", "prompt shown above the form")
	agent := flag.String("agent", "", "requesting agent name")
	server := flag.String("server", "", "requesting server name")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	fields, err := loadFields(ctx, *schemaPath, *openapiPath, *operation)
	if err != nil {
		log.Fatalf("Failed to load fields: %v", err)
	}

	e := elicit.New()
	res, err := e.Elicit(ctx, elicit.Request{
		Message:    *message,
		AgentName:  *agent,
		ServerName: *server,
		Fields:     fields,
	})
	if err != nil {
		log.Fatalf("Elicitation failed: %v", err)
	}

	payload, err := marshalResult(res)
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Result written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func loadFields(ctx context.Context, schemaPath, openapiPath, operation string) ([]schema.FieldSpec, error) {
	switch {
	case schemaPath != "" && openapiPath != "":
		return nil, fmt.Errorf("use either -schema or -openapi, not both")
	case openapiPath != "":
		if operation == "" {
			return nil, fmt.Errorf("-openapi requires -operation")
		}
		raw, err := os.ReadFile(openapiPath)
		if err != nil {
			return nil, err
		}
		return openapi.New(openapi.Options{}).Fields(ctx, raw, operation)
	case schemaPath != "":
		raw, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, err
		}
		var obj schema.Object
		switch strings.ToLower(filepath.Ext(schemaPath)) {
		case ".yaml", ".yml":
			obj, err = schema.ParseObjectYAML(raw)
		default:
			obj, err = schema.ParseObject(raw)
		}
		if err != nil {
			return nil, err
		}
		return obj.Fields()
	default:
		return nil, fmt.Errorf("one of -schema or -openapi is required")
	}
}

// marshalResult emits the elicitation envelope. Content marshals in field
// order because the ordered map serializes pairs as declared.
func marshalResult(res elicit.Result) ([]byte, error) {
	envelope := struct {
		Action  string          `json:"action"`
		Content json.RawMessage `json:"content,omitempty"`
	}{Action: string(res.Action)}

	if res.Content != nil {
		content, err := json.Marshal(res.Content)
		if err != nil {
			return nil, err
		}
		envelope.Content = content
	}
	return json.MarshalIndent(envelope, "", "  ")
}
