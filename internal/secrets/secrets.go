// Package secrets resolves credentials that may be given inline or as a file path.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source names where a secret comes from. File takes precedence over Value.
type Source struct {
	// Name appears in error messages
	Name  string
	Value string
	File  string
}

// Load returns the trimmed secret or an error naming the missing secret
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	value := src.Value
	path := strings.TrimSpace(src.File)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s from %q: %w", name, path, err)
		}
		value = string(data)
	}

	secret := strings.TrimSpace(value)
	if secret != "" {
		return secret, nil
	}
	if path != "" {
		return "", fmt.Errorf("%s file %q is empty", name, path)
	}
	return "", fmt.Errorf("%s is not configured", name)
}
