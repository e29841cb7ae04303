// Package reflectschema derives form fields from Go struct types and decodes
// accepted results back into them, so callers can elicit straight into a
// typed value.
package reflectschema

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	js "github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-elicit/pkg/schema"
)

// Fields derives field specs from v's struct type. Field order follows
// struct declaration order. Pointer fields are optional; everything else is
// required unless its schema says otherwise.
func Fields(v any) ([]schema.FieldSpec, error) {
	t, err := structType(v)
	if err != nil {
		return nil, err
	}

	r := &js.Reflector{DoNotReference: true, ExpandedStruct: true}
	root := r.Reflect(reflect.New(t).Interface())
	if root == nil || root.Type != "object" {
		return nil, errors.New("reflectschema: projected root is not an object")
	}

	fields := structFields(t)
	props := orderedmap.New[string, schema.Property]()
	if root.Properties != nil {
		for el := root.Properties.Oldest(); el != nil; el = el.Next() {
			prop, err := convertProperty(el.Key, el.Value)
			if err != nil {
				return nil, err
			}
			props.Set(el.Key, prop)
		}
	}

	var required []string
	for _, name := range root.Required {
		if sf, ok := lookupField(fields, name); ok && sf.Type.Kind() == reflect.Pointer {
			continue
		}
		required = append(required, name)
	}
	return schema.Build(props, required)
}

// Decode copies an accepted result into ptr, which must be a non-nil
// pointer to a struct of the shape Fields was derived from. Assignment runs
// against a fresh value so a failed decode never partially mutates ptr.
func Decode(content *orderedmap.OrderedMap[string, any], ptr any) error {
	if ptr == nil {
		return errors.New("reflectschema: decode target is nil")
	}
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errors.New("reflectschema: decode target must be a non-nil struct pointer")
	}
	if content == nil {
		return errors.New("reflectschema: content is nil")
	}

	t := rv.Elem().Type()
	fields := structFields(t)
	fresh := reflect.New(t).Elem()

	for pair := content.Oldest(); pair != nil; pair = pair.Next() {
		sf, ok := lookupField(fields, pair.Key)
		if !ok {
			continue
		}
		dst := fresh.FieldByIndex(sf.Index)
		if dst.Kind() == reflect.Pointer {
			dst.Set(reflect.New(dst.Type().Elem()))
			dst = dst.Elem()
		}
		if err := assign(dst, pair.Value); err != nil {
			return fmt.Errorf("reflectschema: field %s: %w", pair.Key, err)
		}
	}

	rv.Elem().Set(fresh)
	return nil
}

func structType(v any) (reflect.Type, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, errors.New("reflectschema: nil value")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("reflectschema: want struct, got %s", t.Kind())
	}
	return t, nil
}

func structFields(t reflect.Type) map[string]reflect.StructField {
	out := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Name
		if tag := f.Tag.Get("json"); tag != "" {
			tagName := strings.Split(tag, ",")[0]
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out[name] = f
	}
	return out
}

// lookupField matches a schema property name to a struct field, falling back
// to a case-insensitive match for untagged fields.
func lookupField(fields map[string]reflect.StructField, name string) (reflect.StructField, bool) {
	if sf, ok := fields[name]; ok {
		return sf, true
	}
	for key, sf := range fields {
		if strings.EqualFold(key, name) {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

func convertProperty(name string, v *js.Schema) (schema.Property, error) {
	if v == nil {
		return schema.Property{}, fmt.Errorf("reflectschema: nil property schema for %s", name)
	}
	if v.Ref != "" || v.Items != nil || len(v.AllOf) > 0 || len(v.OneOf) > 0 || v.Not != nil {
		return schema.Property{}, fmt.Errorf("%w: field %q uses a nested construct", schema.ErrUnsupportedType, name)
	}

	p := schema.Property{
		Type:        v.Type,
		Title:       v.Title,
		Description: v.Description,
		Format:      v.Format,
		Default:     v.Default,
		Pattern:     v.Pattern,
	}
	if len(v.Enum) > 0 {
		p.Enum = append([]any(nil), v.Enum...)
	}
	if v.MinLength != nil {
		n := int(*v.MinLength)
		p.MinLength = &n
	}
	if v.MaxLength != nil {
		n := int(*v.MaxLength)
		p.MaxLength = &n
	}
	if v.Minimum != "" {
		if f, err := strconv.ParseFloat(string(v.Minimum), 64); err == nil {
			p.Minimum = &f
		}
	}
	if v.Maximum != "" {
		if f, err := strconv.ParseFloat(string(v.Maximum), 64); err == nil {
			p.Maximum = &f
		}
	}
	return p, nil
}

func assign(dst reflect.Value, val any) error {
	switch v := val.(type) {
	case string:
		if dst.Kind() != reflect.String {
			return fmt.Errorf("expected %s, got string", dst.Kind())
		}
		dst.SetString(v)
	case bool:
		if dst.Kind() != reflect.Bool {
			return fmt.Errorf("expected %s, got bool", dst.Kind())
		}
		dst.SetBool(v)
	case int64:
		return assignNumber(dst, float64(v))
	case float64:
		return assignNumber(dst, v)
	default:
		return fmt.Errorf("unsupported value type %T", val)
	}
	return nil
}

func assignNumber(dst reflect.Value, f float64) error {
	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(f)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f < 0 {
			return fmt.Errorf("negative value for %s", dst.Kind())
		}
		dst.SetUint(uint64(f))
	default:
		return fmt.Errorf("expected %s, got number", dst.Kind())
	}
	return nil
}
