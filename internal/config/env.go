package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// findFileUpward returns the first directory at or above the working
// directory that contains filename.
func findFileUpward(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, filename)); err == nil {
			return dir, nil
		}
		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}
	return "", os.ErrNotExist
}

// LoadEnv sets environment variables from a KEY=VALUE file. If filename is
// not found as given it is searched for in the parent directories. Variables
// already set in the environment are left alone.
func LoadEnv(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		if filepath.IsAbs(filename) {
			return err
		}
		rootDir, rootErr := findFileUpward(filename)
		if rootErr != nil {
			return rootErr
		}
		f, err = os.Open(filepath.Join(rootDir, filename))
		if err != nil {
			return err
		}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}
