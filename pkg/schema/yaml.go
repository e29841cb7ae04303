package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseObjectYAML decodes a YAML schema document. The YAML node tree is
// rewritten as JSON before parsing so property order survives the trip,
// which a plain map decode would destroy.
func ParseObjectYAML(raw []byte) (Object, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Object{}, fmt.Errorf("schema: empty document")
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Object{}, fmt.Errorf("schema: parse yaml: %w", err)
	}
	node := &doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Object{}, fmt.Errorf("schema: empty document")
		}
		node = node.Content[0]
	}
	var buf bytes.Buffer
	if err := writeJSON(&buf, node); err != nil {
		return Object{}, fmt.Errorf("schema: %w", err)
	}
	return ParseObject(buf.Bytes())
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.AliasNode:
		return writeJSON(buf, n.Alias)
	case yaml.ScalarNode:
		return writeScalar(buf, n)
	default:
		return fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Tag {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return fmt.Errorf("bad bool %q: %w", n.Value, err)
		}
		buf.WriteString(strconv.FormatBool(b))
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("bad integer %q: %w", n.Value, err)
		}
		buf.WriteString(strconv.FormatInt(i, 10))
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return fmt.Errorf("bad number %q: %w", n.Value, err)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		quoted, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(quoted)
	}
	return nil
}
