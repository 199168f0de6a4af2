package repository

import (
	"fmt"
	"strings"
)

// PlanExtension is the suffix every stored plan carries.
const PlanExtension = ".json"

// NormalizeFilename appends ".json" when missing and rejects names that
// would escape the store.
func NormalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidFilename)
	}
	if !strings.HasSuffix(name, PlanExtension) {
		name += PlanExtension
	}
	if name == PlanExtension || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return name, nil
}

// Identifier strips the store extension from a filename.
func Identifier(filename string) string {
	return strings.TrimSuffix(filename, PlanExtension)
}
