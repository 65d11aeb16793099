package wiki

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultUserAgent mirrors a desktop browser. Wiki endpoints answer 403
// to requests that identify as scripts.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const defaultLanguage = "en"

// Article is a fetched wiki page reduced to plain text.
type Article struct {
	// Title is the page title with underscores replaced by spaces.
	Title string

	// URL is the address the article was fetched from.
	URL string

	// Text holds the cleaned paragraphs joined by blank lines.
	Text string
}

// Client fetches articles from a Wikipedia-style wiki.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLanguage selects the wiki language edition, e.g. "en" or "pt".
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.baseURL = languageBaseURL(lang)
	}
}

// WithBaseURL overrides the wiki base URL. Intended for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With("component", "wiki")
	}
}

// NewClient creates a wiki client for the English edition by default.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    languageBaseURL(defaultLanguage),
		userAgent:  defaultUserAgent,
		logger:     slog.Default().With("component", "wiki"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func languageBaseURL(lang string) string {
	return "https://" + lang + ".wikipedia.org/wiki/"
}

// FetchArticle retrieves a wiki page by title and reduces it to plain text.
// Returns ErrArticleNotFound for missing pages, ErrFetchFailed for other
// transport failures, and ErrEmptyArticle when cleaning leaves no text.
func (c *Client) FetchArticle(ctx context.Context, title string) (*Article, error) {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	pageURL := c.baseURL + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("fetching article", "url", pageURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrArticleNotFound, title)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	paragraphs := extractParagraphs(string(body))
	if len(paragraphs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyArticle, title)
	}

	article := &Article{
		Title: strings.ReplaceAll(name, "_", " "),
		URL:   pageURL,
		Text:  strings.Join(paragraphs, "\n\n"),
	}

	c.logger.Info("fetched article",
		"title", article.Title,
		"paragraphs", len(paragraphs),
		"chars", len(article.Text))

	return article, nil
}
