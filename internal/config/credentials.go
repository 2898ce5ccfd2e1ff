// SteamPulse - Game Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steampulse

package config

import (
	"os"
	"strings"

	"google.golang.org/api/option"
)

// CredentialEnvVars are checked in order for a service account payload
// (inline JSON) or a path to a key file.
var CredentialEnvVars = []string{
	"GCP_CREDENTIALS",
	"GOOGLE_APPLICATION_CREDENTIALS_JSON",
}

// Credentials is the resolved Google Cloud credential source. The zero
// value means Application Default Credentials.
type Credentials struct {
	JSON   []byte
	File   string
	Source string
}

// IsZero reports whether no explicit credential was found.
func (c Credentials) IsZero() bool {
	return len(c.JSON) == 0 && c.File == ""
}

// ClientOptions converts the credentials into Google API client options.
func (c Credentials) ClientOptions() []option.ClientOption {
	switch {
	case len(c.JSON) > 0:
		return []option.ClientOption{option.WithCredentialsJSON(c.JSON)}
	case c.File != "":
		return []option.ClientOption{option.WithCredentialsFile(c.File)}
	default:
		return nil
	}
}

// ResolveCredentials picks the warehouse credentials: the first non-empty
// variable in CredentialEnvVars (inline JSON when it starts with "{",
// otherwise a key file path), else fallbackFile when it exists on disk.
func ResolveCredentials(getenv func(string) string, fallbackFile string) Credentials {
	for _, name := range CredentialEnvVars {
		v := strings.TrimSpace(getenv(name))
		if v == "" {
			continue
		}
		if strings.HasPrefix(v, "{") {
			return Credentials{JSON: []byte(v), Source: name}
		}
		return Credentials{File: v, Source: name}
	}

	if fallbackFile != "" {
		if _, err := os.Stat(fallbackFile); err == nil {
			return Credentials{File: fallbackFile, Source: "file"}
		}
	}
	return Credentials{Source: "default"}
}

// Credentials resolves credentials from the process environment.
func (c *Config) Credentials() Credentials {
	return ResolveCredentials(os.Getenv, c.Warehouse.CredentialsFile)
}
