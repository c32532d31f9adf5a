package schema

import (
	"fmt"
	"strings"
)

var primitives = map[string]bool{
	"null":    true,
	"boolean": true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"bytes":   true,
	"string":  true,
}

// resolver turns catalog definitions that reference each other by name into
// self-contained schemas. goavro cannot share named types between codecs, so
// each named type is inlined the first time it appears in a tree and referred
// to by its full name afterwards.
type resolver struct {
	defs map[string]map[string]any
}

func newResolver() *resolver {
	return &resolver{defs: make(map[string]map[string]any)}
}

// fullName qualifies name against the enclosing namespace.
func fullName(name, namespace string) string {
	if strings.Contains(name, ".") || namespace == "" {
		return name
	}
	return namespace + "." + name
}

// splitName returns the namespace and short name of a full name.
func splitName(full string) (string, string) {
	i := strings.LastIndex(full, ".")
	if i < 0 {
		return "", full
	}
	return full[:i], full[i+1:]
}

// definitionName returns the full name and namespace declared by a named
// definition (record, enum, fixed).
func definitionName(def map[string]any, enclosing string) (string, string, error) {
	name, _ := def["name"].(string)
	if name == "" {
		return "", "", fmt.Errorf("%v definition without a name", def["type"])
	}
	ns := enclosing
	if v, ok := def["namespace"].(string); ok {
		ns = v
	}
	full := fullName(name, ns)
	ns, _ = splitName(full)
	return full, ns, nil
}

// define expands def against the names known so far and, on success,
// registers it. The expanded tree is returned.
func (r *resolver) define(def map[string]any) (string, any, error) {
	full, _, err := definitionName(def, "")
	if err != nil {
		return "", nil, err
	}
	if _, dup := r.defs[full]; dup {
		return "", nil, fmt.Errorf("%s defined twice", full)
	}
	expanded, err := r.expand(def, "", make(map[string]bool))
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", full, err)
	}
	r.defs[full] = def
	return full, expanded, nil
}

func (r *resolver) expand(node any, namespace string, seen map[string]bool) (any, error) {
	switch n := node.(type) {
	case string:
		if primitives[n] {
			return n, nil
		}
		full := fullName(n, namespace)
		if seen[full] {
			return full, nil
		}
		def, ok := r.defs[full]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", full)
		}
		return r.expand(def, "", seen)

	case []any:
		branches := make([]any, len(n))
		for i, b := range n {
			v, err := r.expand(b, namespace, seen)
			if err != nil {
				return nil, err
			}
			branches[i] = v
		}
		return branches, nil

	case map[string]any:
		return r.expandObject(n, namespace, seen)

	default:
		return nil, fmt.Errorf("unexpected schema node %T", node)
	}
}

func (r *resolver) expandObject(n map[string]any, namespace string, seen map[string]bool) (any, error) {
	out := make(map[string]any, len(n))
	for k, v := range n {
		out[k] = v
	}

	switch n["type"] {
	case "record", "error", "enum", "fixed":
		full, ns, err := definitionName(n, namespace)
		if err != nil {
			return nil, err
		}
		if seen[full] {
			return full, nil
		}
		seen[full] = true
		_, short := splitName(full)
		out["name"] = short
		out["namespace"] = ns

		if n["type"] != "record" && n["type"] != "error" {
			return out, nil
		}

		fields, _ := n["fields"].([]any)
		expanded := make([]any, len(fields))
		for i, f := range fields {
			field, ok := f.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: field %d is not an object", full, i)
			}
			fc := make(map[string]any, len(field))
			for k, v := range field {
				fc[k] = v
			}
			t, err := r.expand(field["type"], ns, seen)
			if err != nil {
				return nil, fmt.Errorf("%s.%v: %w", full, field["name"], err)
			}
			fc["type"] = t
			expanded[i] = fc
		}
		out["fields"] = expanded
		return out, nil

	case "array":
		items, err := r.expand(n["items"], namespace, seen)
		if err != nil {
			return nil, err
		}
		out["items"] = items
		return out, nil

	case "map":
		values, err := r.expand(n["values"], namespace, seen)
		if err != nil {
			return nil, err
		}
		out["values"] = values
		return out, nil

	default:
		// {"type": "long"} and friends.
		t, err := r.expand(n["type"], namespace, seen)
		if err != nil {
			return nil, err
		}
		out["type"] = t
		return out, nil
	}
}
