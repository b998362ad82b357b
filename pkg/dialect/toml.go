package dialect

import (
	"fmt"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/arthur-debert/dictus/pkg/tree"
)

// decodeTOML validates the document with the regular decoder, which reports
// positions and semantic errors such as redefined tables, then walks the
// expression stream of the unstable parser to keep key order.
func decodeTOML(data []byte) (*tree.Map, error) {
	var check map[string]any
	if err := toml.Unmarshal(data, &check); err != nil {
		return nil, err
	}

	root := tree.NewMap()
	current := root

	p := unstable.Parser{}
	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.KeyValue:
			if err := setTOMLKeyValue(current, expr); err != nil {
				return nil, err
			}
		case unstable.Table:
			table, err := tomlTable(root, tomlKey(expr.Key()))
			if err != nil {
				return nil, err
			}
			current = table
		case unstable.ArrayTable:
			table, err := tomlArrayTable(root, tomlKey(expr.Key()))
			if err != nil {
				return nil, err
			}
			current = table
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}

	return root, nil
}

func tomlKey(it unstable.Iterator) []string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}

// descend returns the table stored under key in m, creating it when missing.
// Arrays of tables resolve to their last element.
func descend(m *tree.Map, key string) (*tree.Map, error) {
	v, ok := m.Get(key)
	if !ok {
		child := tree.NewMap()
		m.Set(key, child)
		return child, nil
	}
	switch t := v.(type) {
	case *tree.Map:
		return t, nil
	case []any:
		if len(t) > 0 {
			if last, ok := t[len(t)-1].(*tree.Map); ok {
				return last, nil
			}
		}
	}
	return nil, fmt.Errorf("key %q is not a table", key)
}

func tomlTable(root *tree.Map, parts []string) (*tree.Map, error) {
	current := root
	for _, part := range parts {
		next, err := descend(current, part)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func tomlArrayTable(root *tree.Map, parts []string) (*tree.Map, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty array table key")
	}
	parent, err := tomlTable(root, parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}

	last := parts[len(parts)-1]
	entry := tree.NewMap()
	existing, ok := parent.Get(last)
	if !ok {
		parent.Set(last, []any{entry})
		return entry, nil
	}
	list, isList := existing.([]any)
	if !isList {
		return nil, fmt.Errorf("key %q is not an array of tables", last)
	}
	parent.Set(last, append(list, entry))
	return entry, nil
}

func setTOMLKeyValue(m *tree.Map, kv *unstable.Node) error {
	parts := tomlKey(kv.Key())
	if len(parts) == 0 {
		return fmt.Errorf("empty key")
	}
	target, err := tomlTable(m, parts[:len(parts)-1])
	if err != nil {
		return err
	}
	value, err := tomlValue(kv.Value())
	if err != nil {
		return err
	}
	target.Set(parts[len(parts)-1], value)
	return nil
}

func tomlValue(n *unstable.Node) (any, error) {
	switch n.Kind {
	case unstable.String:
		return string(n.Data), nil
	case unstable.Bool:
		return string(n.Data) == "true", nil
	case unstable.Integer:
		return strconv.ParseInt(string(n.Data), 0, 64)
	case unstable.Float:
		return strconv.ParseFloat(strings.ReplaceAll(string(n.Data), "_", ""), 64)
	case unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		return string(n.Data), nil
	case unstable.Array:
		list := []any{}
		it := n.Children()
		for it.Next() {
			v, err := tomlValue(it.Node())
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case unstable.InlineTable:
		table := tree.NewMap()
		it := n.Children()
		for it.Next() {
			if err := setTOMLKeyValue(table, it.Node()); err != nil {
				return nil, err
			}
		}
		return table, nil
	}
	return nil, fmt.Errorf("unsupported TOML value kind %s", n.Kind)
}
