package services

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/kamal-hamza/shot-cli/internal/core/domain"
)

// DefaultPreviewLength is how many characters of the scene description a
// listing shows
const DefaultPreviewLength = 100

// PromptSource is anything that can hand out the full archive
type PromptSource interface {
	GetAll(ctx context.Context) []domain.SavedPrompt
}

// ListService handles listing, filtering and searching saved prompts
type ListService struct {
	source        PromptSource
	previewLength int
}

// NewListService creates a new list service
func NewListService(source PromptSource) *ListService {
	return &ListService{
		source:        source,
		previewLength: DefaultPreviewLength,
	}
}

// WithPreviewLength overrides the preview cut-off
func (s *ListService) WithPreviewLength(n int) *ListService {
	if n > 0 {
		s.previewLength = n
	}
	return s
}

// ListRequest represents a request to list prompts
type ListRequest struct {
	Search  string // Case-insensitive substring of title or scene description
	Tag     string // Exact tag (optional)
	SortBy  string // "date", "updated", "title"; empty keeps archive order
	Reverse bool   // Reverse sort order
}

// ListResponse represents the response from listing prompts
type ListResponse struct {
	Prompts []domain.SavedPrompt
	Total   int // size of the archive before filtering
}

// Execute lists prompts with optional filtering and sorting
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := s.source.GetAll(ctx)

	prompts := make([]domain.SavedPrompt, 0, len(all))
	for _, p := range all {
		if matchesSearch(p, req.Search) && (req.Tag == "" || p.HasTag(req.Tag)) {
			prompts = append(prompts, p)
		}
	}

	prompts = s.sortPrompts(prompts, req.SortBy, req.Reverse)

	return &ListResponse{
		Prompts: prompts,
		Total:   len(all),
	}, nil
}

func matchesSearch(p domain.SavedPrompt, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.FormData.SceneDescription), needle)
}

func (s *ListService) sortPrompts(prompts []domain.SavedPrompt, sortBy string, reverse bool) []domain.SavedPrompt {
	if sortBy == "" {
		if reverse {
			for i, j := 0, len(prompts)-1; i < j; i, j = i+1, j-1 {
				prompts[i], prompts[j] = prompts[j], prompts[i]
			}
		}
		return prompts
	}

	sort.SliceStable(prompts, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "title":
			less = strings.ToLower(prompts[i].Title) < strings.ToLower(prompts[j].Title)
		case "updated":
			less = prompts[i].Updated().Before(prompts[j].Updated())
		default: // "date"
			less = prompts[i].Created().Before(prompts[j].Created())
		}
		if reverse {
			return !less
		}
		return less
	})
	return prompts
}

// TagCount is one distinct tag and how many prompts carry it
type TagCount struct {
	Tag   string
	Count int
}

// Tags returns the distinct tags in first-appearance order
func (s *ListService) Tags(ctx context.Context) []TagCount {
	var counts []TagCount
	index := make(map[string]int)

	for _, p := range s.source.GetAll(ctx) {
		for _, tag := range p.Tags {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, TagCount{Tag: tag, Count: 1})
		}
	}
	return counts
}

// Preview summarises a form for listings
func (s *ListService) Preview(fields domain.ShotFields) string {
	return fields.Preview(s.previewLength)
}

// SearchRequest represents a search query
type SearchRequest struct {
	Query string
}

// SearchResponse represents search results, best match first
type SearchResponse struct {
	Prompts []domain.SavedPrompt
	Total   int
}

// Search performs fuzzy search on prompts
func (s *ListService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prompts := s.source.GetAll(ctx)

	// If no query, return all
	if strings.TrimSpace(req.Query) == "" {
		return &SearchResponse{
			Prompts: prompts,
			Total:   len(prompts),
		}, nil
	}

	matches := fuzzySearch(prompts, req.Query)

	return &SearchResponse{
		Prompts: matches,
		Total:   len(matches),
	}, nil
}

// fuzzyMatch represents a scored match
type fuzzyMatch struct {
	prompt domain.SavedPrompt
	score  int
}

// fuzzySearch scores titles, ids and tags against the query
func fuzzySearch(prompts []domain.SavedPrompt, query string) []domain.SavedPrompt {
	query = strings.TrimSpace(query)

	var matches []fuzzyMatch
	for _, p := range prompts {
		// A full id always wins
		if p.ID == query {
			matches = append(matches, fuzzyMatch{prompt: p, score: 100000})
			continue
		}

		if score := fuzzyMatchScore(p.Title, query); score > 0 {
			matches = append(matches, fuzzyMatch{prompt: p, score: score + 1000})
			continue
		}

		// id prefixes, as printed by `shot list`
		if len(query) >= 4 && strings.HasPrefix(p.ID, query) {
			matches = append(matches, fuzzyMatch{prompt: p, score: 8000})
			continue
		}

		for _, tag := range p.Tags {
			if score := fuzzyMatchScore(tag, query); score > 0 {
				matches = append(matches, fuzzyMatch{prompt: p, score: score + 200})
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]domain.SavedPrompt, len(matches))
	for i, m := range matches {
		result[i] = m.prompt
	}
	return result
}

// fuzzyMatchScore calculates a score for fuzzy matching query against text
// Returns 0 if no match, higher scores for better matches
func fuzzyMatchScore(text, query string) int {
	if text == "" || query == "" {
		return 0
	}

	if text == query {
		return 10000
	}

	textLower := strings.ToLower(text)
	queryLower := strings.ToLower(query)

	if textLower == queryLower {
		return 9000
	}

	if strings.Contains(textLower, queryLower) {
		score := 5000
		if strings.HasPrefix(textLower, queryLower) {
			score += 2000
		}
		return score
	}

	// Character-by-character subsequence match
	score := 0
	textRunes := []rune(textLower)
	queryRunes := []rune(queryLower)

	queryIdx := 0
	consecutive := 0
	lastMatchIdx := -1

	for textIdx := 0; textIdx < len(textRunes) && queryIdx < len(queryRunes); textIdx++ {
		if textRunes[textIdx] != queryRunes[queryIdx] {
			continue
		}

		score += 100

		if textIdx == lastMatchIdx+1 {
			consecutive++
			score += consecutive * 50
		} else {
			consecutive = 0
		}

		if textIdx == 0 || isWordBoundary(textRunes[textIdx-1]) {
			score += 200
		}
		if textIdx == 0 {
			score += 300
		}

		lastMatchIdx = textIdx
		queryIdx++
	}

	if queryIdx != len(queryRunes) {
		return 0
	}

	// Penalty for gaps between matches
	span := lastMatchIdx + 1
	score -= (span - len(queryRunes)) * 10
	if score < 1 {
		score = 1
	}
	return score
}

func isWordBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_'
}
