// Package yamlconv converts YAML documents into jdoc documents. Mapping order
// is preserved, so the converted objects list their names as the YAML source
// does.
package yamlconv

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/calumari/jdoc"
)

const maxDepth = 1000

// ErrEmpty is returned when the input holds no YAML document.
var ErrEmpty = errors.New("no YAML document")

// Decode reads the first YAML document from r.
func Decode(r io.Reader) (jdoc.Member, error) {
	var n yaml.Node
	if err := yaml.NewDecoder(r).Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return Convert(&n)
}

// Convert converts a YAML node tree. Tagged scalars keep their resolved type:
// integers stay integers, timestamps become dates, and quoted strings that look
// like dates are recognised the way the jdoc reader recognises them.
func Convert(n *yaml.Node) (jdoc.Member, error) {
	return convert(n, 0)
}

func convert(n *yaml.Node, depth int) (jdoc.Member, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("line %d: nesting deeper than %d", n.Line, maxDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jdoc.Null(), nil
		}
		return convert(n.Content[0], depth)
	case yaml.AliasNode:
		return convert(n.Alias, depth+1)
	case yaml.MappingNode:
		return convertMapping(n, depth)
	case yaml.SequenceNode:
		a := make(jdoc.Array, 0, len(n.Content))
		for _, c := range n.Content {
			m, err := convert(c, depth+1)
			if err != nil {
				return nil, err
			}
			a.Add(m)
		}
		return a, nil
	case yaml.ScalarNode:
		return convertScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}

func convertMapping(n *yaml.Node, depth int) (*jdoc.Object, error) {
	o := jdoc.NewObject()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			if err := merge(o, v, depth); err != nil {
				return nil, err
			}
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		m, err := convert(v, depth+1)
		if err != nil {
			return nil, err
		}
		o.Set(k.Value, m)
	}
	return o, nil
}

// merge applies a "<<" merge key. Names already present are not replaced.
func merge(o *jdoc.Object, v *yaml.Node, depth int) error {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	for _, src := range sources {
		m, err := convert(src, depth+1)
		if err != nil {
			return err
		}
		from, ok := m.(*jdoc.Object)
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		for name, member := range from.All() {
			if _, exists := o.Get(name); !exists {
				o.Set(name, member)
			}
		}
	}
	return nil
}

func convertScalar(n *yaml.Node) (jdoc.Member, error) {
	switch n.ShortTag() {
	case "!!null":
		return jdoc.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return jdoc.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return jdoc.Int(i), nil
		}
		// out of int64 range
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return jdoc.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return jdoc.Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return jdoc.Date(t), nil
	case "!!str":
		return jdoc.ParseString(n.Value), nil
	}
	return jdoc.String(n.Value), nil
}
