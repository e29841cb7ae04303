package openapi

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-elicit/pkg/schema"
)

const taskDoc = `{
	"openapi": "3.0.3",
	"info": {"title": "Tasks", "version": "1.0.0"},
	"paths": {
		"/tasks": {
			"post": {
				"operationId": "createTask",
				"requestBody": {
					"required": true,
					"content": {
						"application/json": {
							"schema": {
								"type": "object",
								"required": ["title"],
								"properties": {
									"title": {"type": "string", "minLength": 3},
									"priority": {"type": "integer", "minimum": 1, "maximum": 5, "default": 3},
									"done": {"type": "boolean"},
									"state": {"type": "string", "enum": ["open", "closed"]}
								}
							}
						}
					}
				},
				"responses": {
					"201": {"description": "created"}
				}
			}
		}
	}
}`

func TestAdapter_Fields(t *testing.T) {
	fields, err := New(Options{}).Fields(context.Background(), []byte(taskDoc), "createTask")
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}

	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"title", "priority", "done", "state"}, names); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	byName := make(map[string]schema.FieldSpec, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
	}

	title := byName["title"]
	if !title.Required || title.Kind != schema.KindString {
		t.Errorf("title = %+v, want required string", title)
	}
	if title.Constraints.MinLength == nil || *title.Constraints.MinLength != 3 {
		t.Errorf("title minLength = %+v", title.Constraints)
	}

	priority := byName["priority"]
	if priority.Kind != schema.KindInteger || priority.Default != int64(3) {
		t.Errorf("priority = %+v, want integer default 3", priority)
	}
	if priority.Constraints.Maximum == nil || *priority.Constraints.Maximum != 5 {
		t.Errorf("priority maximum = %+v", priority.Constraints)
	}

	state := byName["state"]
	if state.Kind != schema.KindEnum {
		t.Errorf("state kind = %q, want enum", state.Kind)
	}
	if diff := cmp.Diff([]string{"open", "closed"}, state.Constraints.Choices); diff != "" {
		t.Errorf("state choices mismatch (-want +got):\n%s", diff)
	}
}

func TestAdapter_Errors(t *testing.T) {
	adapter := New(Options{})

	if _, err := adapter.Fields(context.Background(), nil, "createTask"); err == nil {
		t.Error("empty payload should fail")
	}
	if _, err := adapter.Fields(context.Background(), []byte(taskDoc), "missingOp"); err == nil {
		t.Error("unknown operation should fail")
	}
	if _, err := adapter.Fields(context.Background(), []byte(`{"openapi": "3.0.3"`), "x"); err == nil {
		t.Error("malformed document should fail")
	}
}
