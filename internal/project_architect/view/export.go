package view

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/GoSim-25-26J-441/ece-project-architect/internal/project_architect/domain"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Export encodes rec as a downloadable document. It returns the body, its
// content type and a file name derived from the title.
func Export(rec domain.ProjectRecord, format string) ([]byte, string, string, error) {
	var (
		body []byte
		ct   string
		ext  string
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		body, err = json.MarshalIndent(rec, "", "  ")
		ct, ext = "application/json", "json"
	case "yaml", "yml":
		body, err = yaml.Marshal(rec)
		ct, ext = "application/yaml", "yaml"
	default:
		return nil, "", "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to encode project: %w", err)
	}
	return body, ct, FileName(rec.Title) + "." + ext, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// FileName turns a title into a lowercase slug.
func FileName(title string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "project"
	}
	return s
}
