package configuration

import (
	"strings"

	"github.com/thoreinstein/confcheck/internal/errors"
)

// Type identifies a configuration category. Each type is governed by its own schemas.
type Type string

// Configuration types.
const (
	Caches   Type = "Caches"
	Objects  Type = "Objects"
	Policy   Type = "Policy"
	Routes   Type = "Routes"
	Settings Type = "Settings"
)

// Types returns every configuration type in canonical order.
func Types() []Type {
	return []Type{Caches, Objects, Policy, Routes, Settings}
}

// ParseType accepts a canonical type name or its lowercase form.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if string(t) == s || strings.ToLower(string(t)) == s {
			return t, nil
		}
	}
	return "", errors.Wrapf(errors.ErrUnknownType, "%q (valid: %s)", s, strings.Join(TypeNames(), ", "))
}

// TypeNames returns the canonical names of all types.
func TypeNames() []string {
	types := Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	switch t {
	case Caches, Objects, Policy, Routes, Settings:
		return true
	}
	return false
}

// IsList reports whether documents of this type are lists rather than mappings.
func (t Type) IsList() bool {
	return t == Routes
}

// FileName returns the YAML file name holding this type.
func (t Type) FileName() string {
	return string(t) + ".yaml"
}

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// empty returns the zero document value for the type.
func (t Type) empty() any {
	if t.IsList() {
		return []any{}
	}
	return map[string]any{}
}
