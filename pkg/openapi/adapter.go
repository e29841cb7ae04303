// Package openapi sources form fields from the request body of an OpenAPI
// operation, so a server's documented input contract can be elicited
// interactively.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-elicit/pkg/schema"
)

// Options configure document loading.
type Options struct {
	// ResolveReferences validates the document after load so external and
	// internal refs are fully resolved.
	ResolveReferences bool
}

// Adapter extracts request-body fields from an OpenAPI document.
type Adapter struct {
	options Options
}

// New constructs an Adapter with the given options.
func New(options Options) *Adapter {
	return &Adapter{options: options}
}

// Fields loads the document and returns field specs for the JSON request
// body of the operation. The document model is map-based, so declaration
// order is recovered by scanning the raw payload for each property name;
// names that cannot be located fall back to alphabetical order at the end.
func (a *Adapter) Fields(ctx context.Context, raw []byte, operationID string) ([]schema.FieldSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: a.options.ResolveReferences,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if a.options.ResolveReferences {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}
	body := requestSchema(op.RequestBody)
	if body == nil {
		return nil, fmt.Errorf("openapi: operation %q has no request body schema", operationID)
	}

	props, required := convertObject(body, raw)
	return schema.Build(props, required)
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		candidates := []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		}
		for _, op := range candidates {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func convertObject(src *openapi3.Schema, raw []byte) (*orderedmap.OrderedMap[string, schema.Property], []string) {
	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sortByAppearance(names, raw)

	props := orderedmap.New[string, schema.Property]()
	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		props.Set(name, convertProperty(ref.Value))
	}
	return props, append([]string(nil), src.Required...)
}

// sortByAppearance orders property names by their first occurrence in the
// raw document. Both JSON ("name":) and YAML (name:) spellings are probed.
func sortByAppearance(names []string, raw []byte) {
	text := string(raw)
	pos := make(map[string]int, len(names))
	for _, name := range names {
		pos[name] = firstKeyIndex(text, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		pi, pj := pos[names[i]], pos[names[j]]
		if pi == pj {
			return names[i] < names[j]
		}
		if pi < 0 {
			return false
		}
		if pj < 0 {
			return true
		}
		return pi < pj
	})
}

func firstKeyIndex(text, name string) int {
	if i := strings.Index(text, `"`+name+`"`); i >= 0 {
		return i
	}
	if i := strings.Index(text, name+":"); i >= 0 {
		return i
	}
	return -1
}

func convertProperty(src *openapi3.Schema) schema.Property {
	p := schema.Property{
		Type:        firstSchemaType(src.Type),
		Title:       src.Title,
		Description: src.Description,
		Format:      src.Format,
		Default:     src.Default,
		Pattern:     src.Pattern,
	}
	if len(src.Enum) > 0 {
		p.Enum = append([]any(nil), src.Enum...)
	}
	if src.Min != nil {
		value := *src.Min
		p.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		p.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		p.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		p.MaxLength = &value
	}
	return p
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "" {
			return t
		}
	}
	return ""
}
