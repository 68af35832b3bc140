package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"
)

const (
	DefaultStem = "generated-code"
	ReadmeName  = "README.md"
)

var extensions = map[string]string{
	"javascript": "js",
	"typescript": "ts",
	"react":      "jsx",
	"python":     "py",
	"html":       "html",
	"css":        "css",
}

const readmeTemplate = `# Generated Code

This code was generated using CodeWeaver.

## Usage
1. Install dependencies if needed
2. Import the code into your project
3. Follow the comments in the code for implementation details

Generated on: %s
`

// file extension for a language, js when unknown
func Extension(language string) string {
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(language))]; ok {
		return ext
	}

	return "js"
}

// strips directories and traversal from a requested file stem
func SanitizeStem(stem string) string {
	stem = strings.ReplaceAll(stem, "\\", "/")
	stem = path.Base(strings.TrimSpace(stem))
	stem = strings.ReplaceAll(stem, "..", "")
	stem = strings.Trim(stem, ". ")

	if stem == "" || stem == "/" {
		return DefaultStem
	}

	return stem
}

// README body stamped with the build time
func Readme(at time.Time) string {
	return fmt.Sprintf(readmeTemplate, at.UTC().Format(time.RFC3339))
}

// zips the code entry followed by the README
func Build(code, stem, language string, at time.Time) ([]byte, error) {
	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	entries := []struct {
		name string
		body string
	}{
		{SanitizeStem(stem) + "." + Extension(language), code},
		{ReadmeName, Readme(at)},
	}

	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: at,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", e.name, err)
		}

		if _, err := w.Write([]byte(e.body)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}

	return buf.Bytes(), nil
}
