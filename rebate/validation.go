package rebate

import (
	"fmt"
	"regexp"
	"strings"
)

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateTierDefinition checks a definition before it is compiled
func ValidateTierDefinition(def *TierDefinition) error {
	if def == nil {
		return fmt.Errorf("tier definition cannot be nil")
	}

	if err := validateIdentifier(def.Key); err != nil {
		return fmt.Errorf("invalid tier key %q: %w", def.Key, err)
	}

	if strings.TrimSpace(def.Expression) == "" {
		return fmt.Errorf("tier %q has an empty expression", def.Key)
	}

	if len(def.Expression) > 4096 {
		return fmt.Errorf("tier %q expression length %d exceeds maximum of 4096 characters", def.Key, len(def.Expression))
	}

	return nil
}

// ValidateTierDefinitions validates every definition and rejects duplicate keys
func ValidateTierDefinitions(defs []*TierDefinition) error {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if err := ValidateTierDefinition(def); err != nil {
			return err
		}
		if seen[def.Key] {
			return fmt.Errorf("duplicate tier key %q", def.Key)
		}
		seen[def.Key] = true
	}
	return nil
}

// validateIdentifier requires 1-100 characters matching ^[a-zA-Z_][a-zA-Z0-9_]*$
// that are not CEL reserved words
func validateIdentifier(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("identifier cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("identifier length %d exceeds maximum of 100 characters", len(name))
	}

	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$ (start with letter or underscore, followed by letters, digits, or underscores)")
	}

	if isReservedKeyword(name) {
		return fmt.Errorf("cannot use reserved keyword %q as identifier", name)
	}

	return nil
}

func isReservedKeyword(name string) bool {
	reservedKeywords := map[string]bool{
		"true":      true,
		"false":     true,
		"null":      true,
		"in":        true,
		"as":        true,
		"break":     true,
		"const":     true,
		"continue":  true,
		"else":      true,
		"for":       true,
		"function":  true,
		"if":        true,
		"import":    true,
		"let":       true,
		"loop":      true,
		"package":   true,
		"namespace": true,
		"return":    true,
		"var":       true,
		"void":      true,
		"while":     true,
	}

	return reservedKeywords[name]
}
