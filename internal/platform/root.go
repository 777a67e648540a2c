package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFile is the workspace configuration file name.
const ConfigFile = "roster.yaml"

// FindRoot recursively looks upwards for a workspace root indicator.
// Indicators are: a .roster directory or a roster.yaml file.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ".roster") || hasFile(dir, ConfigFile) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("workspace root not found from %s", abs)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
