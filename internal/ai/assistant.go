package ai

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

const (
	EmptyReply    = "I'm having trouble connecting to my brain modules right now."
	FailedReply   = "The kernel panicked while processing your request. Please try again."
	MaxResults    = 3
	FeedSize      = 5
	assistantRole = "You are an AI assistant integrated into HybridOS Chimera. Keep responses helpful, slightly techy, and in the persona of a sleek system assistant."
	searchRole    = "You are the HybridOS Spotlight search engine. Return concise, relevant search results."
	browserRole   = "You are a web rendering engine for HybridOS. Create realistic, helpful, and visually interesting 'simulated' webpage data."
)

// Request kinds used as metric labels.
const (
	KindAsk    = "ask"
	KindSearch = "search"
	KindPage   = "page"
	KindFeed   = "feed"
)

// SearchResult is one spotlight hit.
type SearchResult struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Page is a simulated webpage.
type Page struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Sidebar     []string `json:"sidebar"`
	AccentColor string   `json:"accentColor"`
}

// Post is one entry of a simulated social feed.
type Post struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	AuthorHandle string    `json:"authorHandle"`
	Text         string    `json:"text"`
	Stats        PostStats `json:"stats"`
	Timestamp    string    `json:"timestamp"`
}

type PostStats struct {
	Likes    string `json:"likes"`
	Comments string `json:"comments"`
}

// NotFoundPage is returned when a page cannot be simulated.
func NotFoundPage() Page {
	return Page{
		Title:       "Error 404",
		Content:     "The Hybrid-Link could not establish a connection to this domain. The AI kernel suggests checking your syntax.",
		Sidebar:     []string{},
		AccentColor: "#ef4444",
	}
}

// Assistant turns Generator output into domain payloads. Its methods never
// fail; errors are logged and replaced by fallbacks.
type Assistant struct {
	gen     Generator
	logger  *logging.Logger
	metrics *monitoring.Metrics
	strict  *bluemonday.Policy
	ugc     *bluemonday.Policy
}

// NewAssistant wraps gen. A nil gen yields fallbacks for every call.
func NewAssistant(gen Generator, logger *logging.Logger, metrics *monitoring.Metrics) *Assistant {
	return &Assistant{
		gen:     gen,
		logger:  logging.OrNop(logger).Named("assistant"),
		metrics: metrics,
		strict:  bluemonday.StrictPolicy(),
		ugc:     bluemonday.UGCPolicy(),
	}
}

// Available reports whether a generator is configured.
func (a *Assistant) Available() bool {
	return a.gen != nil
}

// Ask answers a free-form question. context describes where it was asked
// from, e.g. the terminal's working directory.
func (a *Assistant) Ask(ctx context.Context, prompt, where string) string {
	timer := monitoring.NewTimer(a.metrics, KindAsk)
	if a.gen == nil {
		timer.Stop("unavailable")
		return FailedReply
	}

	full := fmt.Sprintf("You are an AI assistant integrated into \"HybridOS Chimera\".\nContext: %s\nUser Query: %s", where, prompt)
	reply, err := a.gen.Generate(ctx, full, assistantRole)
	switch {
	case errors.Is(err, ErrEmptyResponse) || (err == nil && strings.TrimSpace(reply) == ""):
		timer.Stop("empty")
		return EmptyReply
	case err != nil:
		timer.Stop("error")
		a.logger.Warn("Ask failed", zap.Error(err))
		return FailedReply
	}

	timer.Stop("ok")
	return a.plain(reply)
}

// Search returns at most MaxResults spotlight hits for query.
func (a *Assistant) Search(ctx context.Context, query string) []SearchResult {
	prompt := fmt.Sprintf("Perform a global system search for: %q.\nReturn a JSON array of max 3 items with: { \"type\": \"app\" | \"web\" | \"file\", \"title\": \"string\", \"description\": \"string\" }", query)

	var results []SearchResult
	if !a.generateJSON(ctx, KindSearch, prompt, searchRole, &results) {
		return []SearchResult{}
	}
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	for i := range results {
		results[i].Title = a.plain(results[i].Title)
		results[i].Description = a.plain(results[i].Description)
	}
	return results
}

// SimulatePage renders a fake webpage for a URL or search query.
func (a *Assistant) SimulatePage(ctx context.Context, urlOrQuery string) Page {
	prompt := fmt.Sprintf("Generate the content for a simulated webpage based on this request: %q.\nFormat the output as a structured JSON object with:\n{\n  \"title\": \"Page Title\",\n  \"description\": \"Brief description\",\n  \"content\": \"Rich markdown content with headers and lists\",\n  \"sidebar\": [\"link 1\", \"link 2\"],\n  \"accentColor\": \"hex code\"\n}", urlOrQuery)

	var page Page
	if !a.generateJSON(ctx, KindPage, prompt, browserRole, &page) || page.Title == "" {
		return NotFoundPage()
	}
	page.Title = a.plain(page.Title)
	page.Description = a.plain(page.Description)
	page.Content = a.ugc.Sanitize(page.Content)
	if page.Sidebar == nil {
		page.Sidebar = []string{}
	}
	for i, link := range page.Sidebar {
		page.Sidebar[i] = a.plain(link)
	}
	return page
}

// SocialFeed generates FeedSize posts for a social app such as "reddit".
func (a *Assistant) SocialFeed(ctx context.Context, app string) []Post {
	prompt := fmt.Sprintf("You are an AI assistant integrated into \"HybridOS Chimera\".\nContext: Social Media Simulator for %s\nUser Query: Generate %d simulated %s posts/videos. Return a JSON array of objects with keys: { \"id\": \"string\", \"author\": \"string\", \"authorHandle\": \"string\", \"text\": \"string\", \"stats\": { \"likes\": \"string\", \"comments\": \"string\" }, \"timestamp\": \"string\" }", app, FeedSize, app)

	var posts []Post
	if !a.generateJSON(ctx, KindFeed, prompt, assistantRole, &posts) {
		return []Post{}
	}
	for i := range posts {
		posts[i].Text = a.plain(posts[i].Text)
		posts[i].Author = a.plain(posts[i].Author)
	}
	return posts
}

// plain strips all markup and leaves the text unescaped.
func (a *Assistant) plain(s string) string {
	return html.UnescapeString(a.strict.Sanitize(s))
}

func (a *Assistant) generateJSON(ctx context.Context, kind, prompt, system string, out interface{}) bool {
	timer := monitoring.NewTimer(a.metrics, kind)
	if a.gen == nil {
		timer.Stop("unavailable")
		return false
	}

	raw, err := a.gen.GenerateJSON(ctx, prompt, system)
	if err != nil {
		timer.Stop("error")
		a.logger.Warn("Generation failed", zap.String("kind", kind), zap.Error(err))
		return false
	}
	if err := sonic.Unmarshal(ExtractJSON(string(raw)), out); err != nil {
		timer.Stop("decode_error")
		a.logger.Warn("Failed to decode model output", zap.String("kind", kind), zap.Error(err))
		return false
	}

	timer.Stop("ok")
	return true
}
