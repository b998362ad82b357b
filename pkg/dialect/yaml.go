package dialect

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/dictus/pkg/tree"
)

func decodeYAML(data []byte) (*tree.Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return tree.NewMap(), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return tree.NewMap(), nil
	}

	v, err := yamlValue(root)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return tree.NewMap(), nil
	case *tree.Map:
		return t, nil
	}
	return nil, fmt.Errorf("line %d: top level must be a mapping", root.Line)
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		return yamlMapping(n)
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func yamlMapping(n *yaml.Node) (*tree.Map, error) {
	m := tree.NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.ShortTag() == "!!merge" {
			if err := yamlMerge(m, v); err != nil {
				return nil, err
			}
			continue
		}

		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		value, err := yamlValue(v)
		if err != nil {
			return nil, err
		}
		m.Set(k.Value, value)
	}
	return m, nil
}

// yamlMerge applies a "<<" merge key; explicit keys win over merged ones.
func yamlMerge(m *tree.Map, v *yaml.Node) error {
	sources := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	for _, src := range sources {
		merged, err := yamlValue(src)
		if err != nil {
			return err
		}
		table, ok := merged.(*tree.Map)
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		table.Each(func(key string, value any) bool {
			if !m.Has(key) {
				m.Set(key, value)
			}
			return true
		})
	}
	return nil
}

func yamlScalar(n *yaml.Node) (any, error) {
	var out any
	if err := n.Decode(&out); err != nil {
		return nil, err
	}
	switch t := out.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case uint64:
		return float64(t), nil
	case time.Time:
		return n.Value, nil
	}
	return out, nil
}
