// Package scaffold writes the starting files of a new site: a vefur.yaml,
// a content directory with a sample post and the public directory.
package scaffold

import (
	"crypto/rand"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Templates contains the scaffold files. Files ending in .tmpl are
// executed as text/template with Data and written without the suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data is passed to every template.
type Data struct {
	SiteName      string
	URL           string
	SessionSecret string
	Date          string // date of the sample post, 2006-01-02
}

// ErrExists is returned when a scaffold file is already present.
var ErrExists = errors.New("scaffold: file already exists")

// Write renders the templates into dir and returns the created paths.
// Existing files are never overwritten.
func Write(dir string, data Data) ([]string, error) {
	if data.SessionSecret == "" {
		secret, err := NewSecret()
		if err != nil {
			return nil, err
		}
		data.SessionSecret = secret
	}

	const root = "templates"
	var created []string
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dir, strings.TrimSuffix(rel, ".tmpl"))
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}
		if filepath.Base(out) == ".keep" {
			return nil
		}
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, out)
		}

		content, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := writeFile(out, path, content, data); err != nil {
			return err
		}
		created = append(created, out)
		return nil
	})
	return created, err
}

func writeFile(out, name string, content []byte, data Data) error {
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if !strings.HasSuffix(name, ".tmpl") {
		return os.WriteFile(out, content, 0o644)
	}
	tmpl, err := template.New(filepath.Base(name)).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return f.Close()
}

// NewSecret returns 32 random bytes, hex encoded.
func NewSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
