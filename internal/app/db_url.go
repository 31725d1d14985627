package app

import (
	"fmt"
	"net/url"
	"strings"
)

// resolveDBURL enforces TLS on externally supplied connection strings.
// The built-in localhost fallback is exempt so local development keeps
// working without certificates.
func resolveDBURL(raw string, fromEnv bool) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("db url cannot be empty")
	}
	if !fromEnv {
		return trimmed, nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse db url: %w", err)
	}

	query := parsed.Query()
	switch query.Get("sslmode") {
	case "":
		query.Set("sslmode", "require")
		parsed.RawQuery = query.Encode()
	case "disable":
		return "", fmt.Errorf("externally supplied db url must not set sslmode=disable")
	}

	return parsed.String(), nil
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}
