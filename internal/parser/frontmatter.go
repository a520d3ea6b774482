package parser

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML header of a post.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Slug        string   `yaml:"slug"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Description string   `yaml:"description"`
	Layout      string   `yaml:"layout"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsedDate returns the front matter date, or the zero time if it is
// missing or in an unknown layout.
func (fm FrontMatter) ParsedDate() time.Time {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, fm.Date); err == nil {
			return d
		}
	}
	return time.Time{}
}

var fence = []byte("---")

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// rest of src. Sources without one are returned unchanged.
func SplitFrontMatter(src []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	trimmed := bytes.TrimPrefix(src, []byte("\ufeff"))
	if !bytes.HasPrefix(trimmed, fence) {
		return fm, src, nil
	}
	rest := trimmed[len(fence):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return fm, src, nil
	}
	rest = rest[nl+1:]

	end := -1
	for off := 0; off < len(rest); {
		lineEnd := bytes.IndexByte(rest[off:], '\n')
		var line []byte
		if lineEnd < 0 {
			line = rest[off:]
		} else {
			line = rest[off : off+lineEnd]
		}
		if bytes.Equal(bytes.TrimRight(line, " \r"), fence) {
			end = off
			off += len(line)
			if lineEnd >= 0 {
				off++
			}
			if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
				return FrontMatter{}, nil, fmt.Errorf("parse front matter: %w", err)
			}
			return fm, rest[off:], nil
		}
		if lineEnd < 0 {
			break
		}
		off += lineEnd + 1
	}
	return fm, src, nil
}
