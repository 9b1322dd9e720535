// Package prefs persists small user preferences outside the database.
package prefs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const routesFile = "routes.json"

func routesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "almacen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, routesFile), nil
}

// SaveRoutes stores the last visited route of every navigation property.
func SaveRoutes(routes map[string]string) error {
	path, err := routesPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadRoutes returns the saved routes, or nil when none were saved.
func LoadRoutes() (map[string]string, error) {
	path, err := routesPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var routes map[string]string
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// ClearRoutes removes the saved routes. Clearing nothing is not an error.
func ClearRoutes() error {
	path, err := routesPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Restore overlays saved routes on initial, keeping only known properties
// with non-empty values.
func Restore(initial, saved map[string]string) map[string]string {
	out := make(map[string]string, len(initial))
	for k, v := range initial {
		out[k] = v
	}
	for k, v := range saved {
		if _, known := initial[k]; known && v != "" {
			out[k] = v
		}
	}
	return out
}
