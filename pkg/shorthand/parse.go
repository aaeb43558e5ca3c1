package shorthand

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// parseDocument parses rewritten text as YAML and builds the root mapping.
func parseDocument(text string) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, ErrNotMapping
		}
		root = root.Content[0]
	}
	value, err := convertNode(root)
	if err != nil {
		return nil, err
	}
	m, ok := value.AsMapping()
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, value.Kind())
	}
	return m, nil
}

func convertNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return convertNode(node.Alias)
	case yaml.ScalarNode:
		return convertScalar(node)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := convertNode(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Sequence(items...), nil
	case yaml.MappingNode:
		m, err := convertMapping(node)
		if err != nil {
			return Value{}, err
		}
		return Map(m), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return convertNode(node.Content[0])
	default:
		return Value{}, fmt.Errorf("%w: line %d: unexpected node kind %d", ErrParse, node.Line, node.Kind)
	}
}

// convertMapping builds an ordered mapping. Entries pulled in through merge
// keys come first and explicit keys override them; earlier merge sources win
// over later ones.
func convertMapping(node *yaml.Node) (*Mapping, error) {
	merged := NewMapping()
	own := NewMapping()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == mergeTag {
			if err := mergeInto(merged, valueNode); err != nil {
				return nil, err
			}
			continue
		}
		key, err := mappingKey(keyNode)
		if err != nil {
			return nil, err
		}
		value, err := convertNode(valueNode)
		if err != nil {
			return nil, err
		}
		own.Set(key, value)
	}
	if merged.Len() == 0 {
		return own, nil
	}
	for _, e := range own.Entries() {
		merged.Set(e.Key, e.Value)
	}
	return merged, nil
}

func mergeInto(dst *Mapping, node *yaml.Node) error {
	source, err := convertNode(node)
	if err != nil {
		return err
	}
	var sources []*Mapping
	switch source.Kind() {
	case KindMapping:
		m, _ := source.AsMapping()
		sources = append(sources, m)
	case KindSequence:
		items, _ := source.Items()
		for _, item := range items {
			m, ok := item.AsMapping()
			if !ok {
				return fmt.Errorf("%w: line %d: merge source must be a mapping", ErrParse, node.Line)
			}
			sources = append(sources, m)
		}
	default:
		return fmt.Errorf("%w: line %d: merge source must be a mapping", ErrParse, node.Line)
	}
	for _, m := range sources {
		for _, e := range m.Entries() {
			if !dst.Has(e.Key) {
				dst.Set(e.Key, e.Value)
			}
		}
	}
	return nil
}

// mappingKey stringifies scalar keys the way JSON encoders do for
// non-string dictionary keys.
func mappingKey(node *yaml.Node) (string, error) {
	key, err := convertNode(node)
	if err != nil {
		return "", err
	}
	switch key.Kind() {
	case KindString:
		s, _ := key.AsString()
		return s, nil
	case KindNull:
		return "null", nil
	case KindBool:
		if b, _ := key.AsBool(); b {
			return "true", nil
		}
		return "false", nil
	case KindInt:
		n, _ := key.AsInt()
		return n.String(), nil
	case KindFloat:
		f, _ := key.AsFloat()
		return formatFloat(f), nil
	default:
		return "", fmt.Errorf("%w: line %d: %s", ErrUnsupportedKey, node.Line, key.Kind())
	}
}

func convertScalar(node *yaml.Node) (Value, error) {
	if node.Style&yaml.TaggedStyle != 0 {
		return convertTagged(node)
	}
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return String(node.Value), nil
	}
	return Resolve(node.Value), nil
}

func convertTagged(node *yaml.Node) (Value, error) {
	tag := node.ShortTag()
	switch tag {
	case "!!str":
		return String(node.Value), nil
	case "!!null":
		return Null(), nil
	case "!!bool":
		if v := Resolve(node.Value); v.Kind() == KindBool {
			return v, nil
		}
	case "!!int":
		if intPattern.MatchString(node.Value) {
			if n, ok := parseInt(node.Value); ok {
				return Int(n), nil
			}
		}
	case "!!float":
		if f, ok := parseFloat(node.Value); ok {
			return Float(f), nil
		}
	default:
		return Value{}, fmt.Errorf("%w: line %d: unsupported tag %s", ErrParse, node.Line, tag)
	}
	return Value{}, fmt.Errorf("%w: line %d: cannot read %q as %s", ErrParse, node.Line, node.Value, tag)
}
