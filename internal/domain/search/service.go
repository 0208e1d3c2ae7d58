// Package search implements spotlight: installed apps and files matched
// locally, plus up to three suggestions from the assistant.
package search

import (
	"context"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/ai"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
)

// MaxFiles caps the local file hits.
const MaxFiles = 20

// Searcher returns assistant suggestions for a query.
type Searcher interface {
	Search(ctx context.Context, query string) []ai.SearchResult
}

// Results groups spotlight hits by source.
type Results struct {
	Query string            `json:"query"`
	Apps  []apps.Info       `json:"apps"`
	Files []vfs.Entry       `json:"files"`
	AI    []ai.SearchResult `json:"ai"`
}

// Service runs spotlight queries.
type Service struct {
	catalog  *apps.Catalog
	fs       *vfs.FS
	searcher Searcher
	logger   *logging.Logger
}

// NewService creates a spotlight service. searcher may be nil, in which
// case only local results are returned.
func NewService(catalog *apps.Catalog, fs *vfs.FS, searcher Searcher, logger *logging.Logger) *Service {
	return &Service{
		catalog:  catalog,
		fs:       fs,
		searcher: searcher,
		logger:   logging.OrNop(logger).Named("search"),
	}
}

// Local matches apps and files without asking the assistant.
func (s *Service) Local(query string) Results {
	query = strings.TrimSpace(query)
	res := Results{Query: query, Apps: []apps.Info{}, Files: []vfs.Entry{}, AI: []ai.SearchResult{}}
	if query == "" {
		return res
	}

	if found := s.catalog.Search(query); found != nil {
		res.Apps = found
	}

	pattern := "**/*" + escape(query) + "*"
	files, err := s.fs.FindFold(pattern)
	if err != nil {
		s.logger.Debug("Skipping file search", zap.String("query", query), zap.Error(err))
		return res
	}
	for _, f := range files {
		if f.Type != vfs.TypeFile {
			continue
		}
		res.Files = append(res.Files, f)
		if len(res.Files) == MaxFiles {
			break
		}
	}
	return res
}

// Search returns local hits plus assistant suggestions.
func (s *Service) Search(ctx context.Context, query string) Results {
	res := s.Local(query)
	if res.Query == "" || s.searcher == nil {
		return res
	}
	res.AI = s.searcher.Search(ctx, res.Query)
	if len(res.AI) > ai.MaxResults {
		res.AI = res.AI[:ai.MaxResults]
	}
	return res
}

// escape quotes glob metacharacters so the query matches literally.
func escape(q string) string {
	var sb strings.Builder
	for _, r := range q {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	out := sb.String()
	if !doublestar.ValidatePattern(out) {
		return ""
	}
	return out
}
