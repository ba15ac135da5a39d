package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// dateFormats are tried in order when coercing publishedAt. The portfolio
// convention is plain YYYY-MM-DD but timestamped variants are accepted.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type postFrontMatter struct {
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	PublishedAt string   `yaml:"publishedAt"`
	Image       string   `yaml:"image"`
	Images      []string `yaml:"images"`
	Tag         string   `yaml:"tag"`
}

type projectFrontMatter struct {
	Title       string       `yaml:"title"`
	Summary     string       `yaml:"summary"`
	PublishedAt string       `yaml:"publishedAt"`
	Image       string       `yaml:"image"`
	Images      []string     `yaml:"images"`
	Team        []TeamMember `yaml:"team"`
}

// Parse splits raw into a front matter header and body and returns a Document
// with validated metadata for the given collection. Slug and SourcePath are
// left for the caller to fill in. Parse is pure: it never touches the
// filesystem and never mutates its input.
func Parse(collection Collection, raw []byte) (*Document, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	doc := &Document{Collection: collection}
	var (
		body []byte
		err  error
	)

	switch collection {
	case Posts:
		var fm postFrontMatter
		body, err = frontmatter.MustParse(bytes.NewReader(raw), &fm)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
		}
		doc.Title = fm.Title
		doc.Summary = fm.Summary
		doc.Images = normalizeImages(fm.Image, fm.Images)
		doc.Tag = strings.TrimSpace(fm.Tag)
		doc.PublishedAt, err = parseDate(fm.PublishedAt)
	case Projects:
		var fm projectFrontMatter
		body, err = frontmatter.MustParse(bytes.NewReader(raw), &fm)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
		}
		doc.Title = fm.Title
		doc.Summary = fm.Summary
		doc.Images = normalizeImages(fm.Image, fm.Images)
		doc.Team = fm.Team
		doc.PublishedAt, err = parseDate(fm.PublishedAt)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(doc.Title) == "" {
		return nil, &MissingFieldError{Field: "title"}
	}
	if strings.TrimSpace(doc.Summary) == "" {
		return nil, &MissingFieldError{Field: "summary"}
	}

	doc.Body = string(body)
	return doc, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, &MissingFieldError{Field: "publishedAt"}
	}
	for _, format := range dateFormats {
		if ts, err := time.Parse(format, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: publishedAt %q is not a valid date", ErrMalformedMetadata, raw)
}

// normalizeImages folds the singular image key and the images list into one
// slice, singular first.
func normalizeImages(image string, images []string) []string {
	var out []string
	if image = strings.TrimSpace(image); image != "" {
		out = append(out, image)
	}
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
