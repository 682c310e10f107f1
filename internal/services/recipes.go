package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/shared"
)

// RecipeClient is the backend surface used by the UI and commands.
type RecipeClient interface {
	// Summarize requests the summary for url. titleHint may be empty.
	Summarize(ctx context.Context, url, titleHint string) (*models.SummaryResult, error)
	// List fetches the bookmark listing at an /api path built by
	// [RecentsPath], [FavoritesPath] or [SearchPath].
	List(ctx context.Context, path string) ([]models.BookmarkEntry, error)
	// Hit records that the user opened url.
	Hit(ctx context.Context, url string) error
}

// RecentsPath is the listing of the count most recently summarized entries.
func RecentsPath(count int) string {
	return "/api/recents?count=" + strconv.Itoa(count)
}

// FavoritesPath is the listing of the count most visited entries.
func FavoritesPath(count int) string {
	return "/api/favorites?count=" + strconv.Itoa(count)
}

// SearchPath is the listing of entries matching term.
func SearchPath(term string) string {
	return "/api/search?" + url.Values{"q": {term}}.Encode()
}

// RecipeService implements [RecipeClient] with an [APIService].
type RecipeService struct {
	api *APIService
}

// NewRecipeService creates a new [RecipeService].
func NewRecipeService(api *APIService) *RecipeService {
	return &RecipeService{api: api}
}

// Summarize posts {url, titleHint} to /api/summarize. A 2xx response whose
// body is not a recipe yields a result with a nil Summary.
func (s *RecipeService) Summarize(ctx context.Context, target, titleHint string) (*models.SummaryResult, error) {
	if strings.TrimSpace(target) == "" {
		return nil, fmt.Errorf("%w: empty url", shared.ErrInvalidURL)
	}

	data, err := json.Marshal(models.SummarizeRequest{URL: target, TitleHint: titleHint})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.api.Post(ctx, "/api/summarize", data)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return models.DecodeSummaryResult(resp.Body), nil
}

// List fetches the entries served at path. A null body is an empty list.
func (s *RecipeService) List(ctx context.Context, path string) ([]models.BookmarkEntry, error) {
	if !strings.HasPrefix(path, "/api/") {
		return nil, fmt.Errorf("%w: list path %q", shared.ErrInvalidInput, path)
	}

	var entries []models.BookmarkEntry
	if err := s.api.GetJSON(ctx, path, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.BookmarkEntry{}
	}
	return entries, nil
}

// Recents lists the count most recent entries.
func (s *RecipeService) Recents(ctx context.Context, count int) ([]models.BookmarkEntry, error) {
	return s.List(ctx, RecentsPath(count))
}

// Favorites lists the count most visited entries.
func (s *RecipeService) Favorites(ctx context.Context, count int) ([]models.BookmarkEntry, error) {
	return s.List(ctx, FavoritesPath(count))
}

// Search lists entries matching term.
func (s *RecipeService) Search(ctx context.Context, term string) ([]models.BookmarkEntry, error) {
	return s.List(ctx, SearchPath(term))
}

// Hit records a click on target.
func (s *RecipeService) Hit(ctx context.Context, target string) error {
	path := "/api/hit?" + url.Values{"url": {target}}.Encode()
	resp, err := s.api.Post(ctx, path, nil)
	if err != nil {
		return err
	}
	return resp.Err()
}
