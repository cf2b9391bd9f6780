// Package id generates the string identifiers of users and sessions.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes of the generated identifiers.
const (
	PrefixUser    = "usr"
	PrefixSession = "ses"
)

// Generate creates a prefixed NanoID, e.g. "usr-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if the system has no entropy.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// User returns a new user id.
func User() (string, error) {
	return Generate(PrefixUser)
}

// Session returns a new session id.
func Session() (string, error) {
	return Generate(PrefixSession)
}
