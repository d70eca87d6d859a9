package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultTitle is used when a prompt is saved without a title
const DefaultTitle = "Untitled Prompt"

// TimestampLayout matches JavaScript's Date.toISOString output
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SavedPrompt is a persisted, named, tagged snapshot of a shot
type SavedPrompt struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Tags      []string   `json:"tags"`
	FormData  ShotFields `json:"formData"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// FormatTimestamp renders t as an ISO-8601 UTC timestamp
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// ValidateTitle checks if a title can be stored
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidTitle)
	}

	if len(title) > 200 {
		return fmt.Errorf("%w: title too long (max 200 characters)", ErrInvalidTitle)
	}

	return nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug creates a filename-friendly slug from a title
// "Alley Chase v2" -> "alley-chase-v2"
func GenerateSlug(title string) string {
	slug := slugInvalid.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}

// ParseTags splits comma-separated input, trimming and dropping blanks
// "cyberpunk, action,, urban" -> ["cyberpunk", "action", "urban"]
func ParseTags(input string) []string {
	tags := []string{}
	for _, part := range strings.Split(input, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// HasTag reports exact tag membership
func (p *SavedPrompt) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Created returns the creation time, or the zero time if unparseable
func (p *SavedPrompt) Created() time.Time {
	t, _ := ParseTimestamp(p.CreatedAt)
	return t
}

// Updated returns the last update time, or the zero time if unparseable
func (p *SavedPrompt) Updated() time.Time {
	t, _ := ParseTimestamp(p.UpdatedAt)
	return t
}

// GetDisplayDate formats the creation date with the given layout
func (p *SavedPrompt) GetDisplayDate(layout string) string {
	t, err := ParseTimestamp(p.CreatedAt)
	if err != nil {
		return p.CreatedAt
	}
	if layout == "" {
		layout = "Jan 02, 2006"
	}
	return t.Local().Format(layout)
}

// GetTagsString returns tags as a comma-separated string
func (p *SavedPrompt) GetTagsString() string {
	if len(p.Tags) == 0 {
		return "-"
	}
	return strings.Join(p.Tags, ", ")
}

// Prompt returns the generated prompt text of the stored form
func (p *SavedPrompt) Prompt() string {
	return GeneratePrompt(p.FormData)
}

// Clone returns a deep copy
func (p SavedPrompt) Clone() SavedPrompt {
	clone := p
	if p.Tags != nil {
		clone.Tags = make([]string, len(p.Tags))
		copy(clone.Tags, p.Tags)
	}
	clone.FormData = p.FormData.Clone()
	return clone
}
