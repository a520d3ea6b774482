package parser

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/dgallion1/inkpost/internal/doctree"
)

// Parser converts a post source file into a Post with a rendered HTML body.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.Post, error)
}

// Options are shared by all parsers.
type Options struct {
	HighlightStyle string // Chroma style for fenced code. Empty disables highlighting.
	AutoHeadingID  bool   // Let goldmark generate heading ids.
	Sanitize       bool   // Run rendered bodies through the HTML sanitizer.
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".txt":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return NewMarkdownParser(opts), nil
	case ".html", ".htm":
		return &HTMLParser{opts: opts}, nil
	case ".txt":
		return &TextParser{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// datePrefix matches Jekyll-style post filenames: 2024-03-01-some-title.md
var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// SlugFromFilename derives a slug and an optional date from a post filename.
func SlugFromFilename(filename string) (string, time.Time) {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var date time.Time
	if m := datePrefix.FindStringSubmatch(base); m != nil {
		if d, err := time.Parse("2006-01-02", m[1]); err == nil {
			date = d
			base = m[2]
		}
	}
	return Slugify(base), date
}

// Slugify lowercases s and joins its runs of letters and digits with dashes.
// Letters and digits of any script are kept.
func Slugify(s string) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteRune(r)
	}
	return b.String()
}

// fallbackSlug names a post whose title and file name yield no slug.
func fallbackSlug(filename string) string {
	sum := sha256.Sum256([]byte(filename))
	return "post-" + hex.EncodeToString(sum[:6])
}

// newPost fills in the fields every parser derives the same way.
func newPost(filename string, fm FrontMatter) *doctree.Post {
	slug, date := SlugFromFilename(filename)
	post := &doctree.Post{
		Slug:    slug,
		Title:   strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		Date:    date,
		Source:  filename,
		Tags:    fm.Tags,
		Draft:   fm.Draft,
		Summary: fm.Description,
	}
	if fm.Slug != "" {
		post.Slug = Slugify(fm.Slug)
	}
	if fm.Title != "" {
		post.Title = fm.Title
	}
	if d := fm.ParsedDate(); !d.IsZero() {
		post.Date = d
	}
	if post.Slug == "" {
		post.Slug = fallbackSlug(filename)
	}
	return post
}
