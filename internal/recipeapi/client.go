// Package recipeapi talks to the Chuckle & Chow recipe endpoint. It sends
// the selected ingredients, decodes the answer and coerces it into a
// domain.Recipe, turning every failure into one of the typed errors in
// the domain package.
package recipeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hammamikhairi/chucklechow/internal/domain"
	"github.com/hammamikhairi/chucklechow/internal/logger"
	"github.com/hammamikhairi/chucklechow/internal/metrics"
)

// Compile-time interface checks.
var (
	_ domain.RecipeGenerator = (*Client)(nil)
	_ domain.CatalogSource   = (*Client)(nil)
)

// ── Wire types ───────────────────────────────────────────────────

// generateRequest is the body of POST /generate_recipe.
type generateRequest struct {
	Ingredients []string    `json:"ingredients"`
	Preferences preferences `json:"preferences"`
}

// preferences always carries isRandom; the rest are omitted when empty.
type preferences struct {
	IsRandom bool `json:"isRandom"`
	domain.Preferences
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 1 << 20

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithHTTPTimeout sets the HTTP client timeout. The default is none.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithCache keeps up to size non-random recipes for ttl, keyed the same
// way the backend keys its own cache. size <= 0 disables caching.
func WithCache(size int, ttl time.Duration) ClientOption {
	return func(c *Client) {
		if size <= 0 {
			c.cache = nil
			return
		}
		c.cache = expirable.NewLRU[string, domain.Recipe](size, nil, ttl)
	}
}

// Client talks to the recipe endpoint.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    *expirable.LRU[string, domain.Recipe]
	validate *validator.Validate
	log      *logger.Logger
}

// NewClient creates a recipe client for baseURL (e.g. "http://localhost:5000").
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		validate: validator.New(),
		log:      log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate asks the endpoint for a recipe built from ingredients. It does
// not retry and enforces no deadline of its own; ctx bounds the call.
func (c *Client) Generate(ctx context.Context, ingredients []string, randomize bool, prefs domain.Preferences) (*domain.Recipe, error) {
	if ingredients == nil {
		ingredients = []string{}
	}

	key := cacheKey(ingredients, randomize, prefs)
	if c.cache != nil && !randomize {
		if r, ok := c.cache.Get(key); ok {
			c.log.Debug("recipeapi: cache hit %s", key)
			metrics.GenerateRequests.WithLabelValues(metrics.OutcomeCached).Inc()
			out := r.Clone()
			return &out, nil
		}
	}

	body := generateRequest{
		Ingredients: ingredients,
		Preferences: preferences{IsRandom: randomize, Preferences: prefs},
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("recipeapi: marshal payload: %w", err)
	}

	start := time.Now()
	recipe, err := c.doGenerate(ctx, jsonData)
	metrics.GenerateDuration.Observe(time.Since(start).Seconds())
	metrics.GenerateRequests.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	if c.cache != nil && !randomize {
		c.cache.Add(key, recipe.Clone())
	}
	return recipe, nil
}

func (c *Client) doGenerate(ctx context.Context, jsonData []byte) (*domain.Recipe, error) {
	url := c.baseURL + "/generate_recipe"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("recipeapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("recipeapi: POST %s (%d bytes)", url, len(jsonData))

	respBody, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		msg := errorMessage(respBody)
		c.log.Warn("recipeapi: generate failed: %d %s", status, msg)
		return nil, &domain.ServerError{Status: status, Message: msg}
	}

	recipe, err := c.decodeRecipe(respBody)
	if err != nil {
		c.log.Warn("recipeapi: %v", err)
		return nil, err
	}
	c.log.Debug("recipeapi: got recipe %q (%d steps)", recipe.Title, len(recipe.Steps))
	return recipe, nil
}

// Ingredients fetches GET /ingredients. The endpoint may list items as
// {name, emoji} objects or as bare names.
func (c *Client) Ingredients(ctx context.Context) (domain.Catalog, error) {
	url := c.baseURL + "/ingredients"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("recipeapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("recipeapi: GET %s", url)

	respBody, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &domain.ServerError{Status: status, Message: errorMessage(respBody)}
	}
	return decodeCatalog(respBody)
}

// do performs req and returns the (bounded) body and status. Transport
// failures become NetworkError.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &domain.NetworkError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, 0, &domain.NetworkError{Op: "read " + req.URL.Path, Err: err}
	}
	return body, resp.StatusCode, nil
}

// decodeRecipe validates and coerces a 2xx body into a Recipe.
func (c *Client) decodeRecipe(body []byte) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := json.Unmarshal(body, &recipe); err != nil {
		return nil, &domain.MalformedResponseError{Reason: "decode recipe", Err: err}
	}
	if err := c.validate.Struct(recipe); err != nil {
		return nil, &domain.MalformedResponseError{Reason: "missing title", Err: err}
	}
	if domain.IsSentinelTitle(recipe.Title) {
		reason := "server returned failure recipe " + recipe.Title
		if len(recipe.Steps) > 0 {
			reason += ": " + recipe.Steps[0]
		}
		return nil, &domain.MalformedResponseError{Reason: reason}
	}
	recipe.Normalize()
	return &recipe, nil
}

func decodeCatalog(body []byte) (domain.Catalog, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &domain.MalformedResponseError{Reason: "decode catalog", Err: err}
	}

	out := make(domain.Catalog, len(raw))
	for key, list := range raw {
		cat, ok := domain.CategoryFromString(key)
		if !ok {
			continue
		}

		var objs []domain.Ingredient
		if err := json.Unmarshal(list, &objs); err == nil {
			out[cat] = append(out[cat], objs...)
			continue
		}
		var names []string
		if err := json.Unmarshal(list, &names); err != nil {
			return nil, &domain.MalformedResponseError{Reason: "decode catalog category " + key, Err: err}
		}
		for _, n := range names {
			out[cat] = append(out[cat], domain.Ingredient{Name: n})
		}
	}
	return out, nil
}

// cacheKey mirrors the backend's key: recipe_<isRandom>_<sorted ingredients>,
// extended with every preference so differently hinted requests don't
// collide.
func cacheKey(ingredients []string, randomize bool, prefs domain.Preferences) string {
	sorted := append([]string(nil), ingredients...)
	sort.Strings(sorted)
	return fmt.Sprintf("recipe_%t_%s_%q_%q_%q_%q_%q", randomize, strings.Join(sorted, ","),
		prefs.Diet, prefs.Time, prefs.Style, prefs.Category, prefs.Language)
}

func outcome(err error) string {
	var (
		netErr *domain.NetworkError
		srvErr *domain.ServerError
	)
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &netErr):
		return metrics.OutcomeNetwork
	case errors.As(err, &srvErr):
		return metrics.OutcomeServer
	default:
		return metrics.OutcomeMalformed
	}
}
