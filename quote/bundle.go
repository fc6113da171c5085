package quote

import "sort"

// Bundle is the canonical structure of a selected extras package.
// The human-facing code is derived from it by catalog reverse lookup.
type Bundle struct {
	Code       string   `json:"Code" yaml:"Code"`
	BaseBundle *string  `json:"BaseBundle" yaml:"BaseBundle"`
	Bundles    []string `json:"Bundles" yaml:"Bundles"`
}

// NoneBundle is the fixed structure for no extras cover
func NoneBundle() Bundle {
	return Bundle{Code: ExtrasNone, BaseBundle: nil, Bundles: []string{}}
}

// Equal compares every field; Bundles is order-sensitive
func (b Bundle) Equal(other Bundle) bool {
	if b.Code != other.Code {
		return false
	}
	if (b.BaseBundle == nil) != (other.BaseBundle == nil) {
		return false
	}
	if b.BaseBundle != nil && *b.BaseBundle != *other.BaseBundle {
		return false
	}
	if len(b.Bundles) != len(other.Bundles) {
		return false
	}
	for i := range b.Bundles {
		if b.Bundles[i] != other.Bundles[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy sharing no memory with b
func (b Bundle) Clone() Bundle {
	out := Bundle{Code: b.Code, Bundles: make([]string, len(b.Bundles))}
	copy(out.Bundles, b.Bundles)
	if b.BaseBundle != nil {
		base := *b.BaseBundle
		out.BaseBundle = &base
	}
	return out
}

// CloneValue lets the attribute store keep a private copy
func (b Bundle) CloneValue() any {
	return b.Clone()
}

// Catalog maps extras codes to their pre-bundled structures
type Catalog map[string]Bundle

// Lookup returns a copy of the structure for code
func (c Catalog) Lookup(code string) (Bundle, bool) {
	b, ok := c[code]
	if !ok {
		return Bundle{}, false
	}
	return b.Clone(), true
}

// CodeFor returns the first code, in ascending key order, whose structure equals b
func (c Catalog) CodeFor(b Bundle) (string, bool) {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if c[code].Equal(b) {
			return code, true
		}
	}
	return "", false
}

// AsBundle normalises a stored value into a Bundle.
// Accepts Bundle, *Bundle and the map form produced by JSON or YAML decoding.
// A map with keys other than Code, BaseBundle and Bundles is not a bundle.
func AsBundle(v any) (Bundle, bool) {
	switch val := v.(type) {
	case Bundle:
		return val, true
	case *Bundle:
		if val == nil {
			return Bundle{}, false
		}
		return *val, true
	case map[string]any:
		return bundleFromMap(val)
	default:
		return Bundle{}, false
	}
}

func bundleFromMap(m map[string]any) (Bundle, bool) {
	var b Bundle
	for key, raw := range m {
		switch key {
		case "Code":
			code, ok := raw.(string)
			if !ok {
				return Bundle{}, false
			}
			b.Code = code
		case "BaseBundle":
			if raw == nil {
				continue
			}
			base, ok := raw.(string)
			if !ok {
				return Bundle{}, false
			}
			b.BaseBundle = &base
		case "Bundles":
			items, ok := stringSlice(raw)
			if !ok {
				return Bundle{}, false
			}
			b.Bundles = items
		default:
			return Bundle{}, false
		}
	}
	if b.Bundles == nil {
		b.Bundles = []string{}
	}
	return b, true
}

func stringSlice(raw any) ([]string, bool) {
	switch items := raw.(type) {
	case nil:
		return []string{}, true
	case []string:
		out := make([]string, len(items))
		copy(out, items)
		return out, true
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
