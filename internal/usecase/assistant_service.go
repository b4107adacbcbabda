package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rooted/backend/internal/domain"
	"github.com/rooted/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// Reply sources
const (
	SourceAssistant = "Assistant"
	SourceCache     = "Cache"
)

// AssistantServiceConfig holds configuration for the assistant service
type AssistantServiceConfig struct {
	CacheTTL      time.Duration
	ResponseDelay time.Duration
	Currency      string
	Vocabulary    []string
}

// AssistantService answers chat messages with farm recommendations
type AssistantService struct {
	cache         domain.CacheRepository
	catalog       domain.CatalogRepository
	parser        *RequestParser
	matcher       *FarmMatcher
	cacheTTL      time.Duration
	responseDelay time.Duration
	logger        *zap.Logger
}

// cachedReply is the cache representation of a reply.
// Farms are stored by ID and resolved against the catalog on read.
type cachedReply struct {
	Text        string               `json:"text"`
	FarmIDs     []string             `json:"farmIds"`
	SearchQuery string               `json:"searchQuery,omitempty"`
	Parsed      domain.ParsedRequest `json:"parsed"`
	Outcome     domain.ReplyOutcome  `json:"outcome"`
}

// NewAssistantService creates a new assistant service with dependencies.
// cache may be nil to disable reply caching.
func NewAssistantService(
	cache domain.CacheRepository,
	catalog domain.CatalogRepository,
	config AssistantServiceConfig,
	logger *zap.Logger,
) *AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	return &AssistantService{
		cache:         cache,
		catalog:       catalog,
		parser:        NewRequestParser(config.Vocabulary, logger),
		matcher:       NewFarmMatcher(NewResponseWriter(config.Currency), logger),
		cacheTTL:      cacheTTL,
		responseDelay: config.ResponseDelay,
		logger:        logger,
	}
}

// Parse exposes the request parser
func (s *AssistantService) Parse(message string) domain.ParsedRequest {
	return s.parser.Parse(message)
}

// Respond answers one chat turn.
// Flow: check cache -> parse -> match against catalog -> cache -> return
func (s *AssistantService) Respond(ctx context.Context, request *domain.ChatRequest) (*domain.AssistantReply, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	if err := s.pace(ctx); err != nil {
		return nil, err
	}

	farms, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	cacheKey := generateCacheKey(request.Message)

	if reply, ok := s.getFromCache(ctx, cacheKey, farms); ok {
		reply.Sequence = request.Sequence
		s.record(reply)
		return reply, nil
	}

	parsed := s.parser.Parse(request.Message)
	result := s.matcher.Match(parsed, farms)

	reply := &domain.AssistantReply{
		Text:           result.ResponseText,
		SuggestedFarms: farmIDs(result.Farms),
		Farms:          result.Farms,
		SearchQuery:    result.SearchTerms,
		Parsed:         parsed,
		Outcome:        outcomeOf(parsed, result),
		Sequence:       request.Sequence,
		Source:         SourceAssistant,
	}

	if err := s.setInCache(ctx, cacheKey, reply); err != nil {
		s.logger.Warn("failed to cache assistant reply", zap.String("key", cacheKey), zap.Error(err))
	}

	s.record(reply)
	return reply, nil
}

// pace waits for the configured response delay unless the context ends first
func (s *AssistantService) pace(ctx context.Context) error {
	if s.responseDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.responseDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *AssistantService) record(reply *domain.AssistantReply) {
	metrics.AssistantReplies.WithLabelValues(string(reply.Outcome)).Inc()
	metrics.AssistantFarmsSuggested.Observe(float64(len(reply.Farms)))

	s.logger.Info("assistant reply",
		zap.String("outcome", string(reply.Outcome)),
		zap.Strings("farms", reply.SuggestedFarms),
		zap.String("source", reply.Source),
		zap.Int64("sequence", reply.Sequence),
	)
}

// generateCacheKey creates a cache key for a message.
// Format: "assistant:{lower-cased message}". Whitespace is kept as is because
// keywords such as "pick up" depend on it.
func generateCacheKey(message string) string {
	return "assistant:" + strings.ToLower(message)
}

// getFromCache retrieves a cached reply and resolves its farms against the catalog
func (s *AssistantService) getFromCache(ctx context.Context, key string, catalog []domain.Farm) (*domain.AssistantReply, bool) {
	if s.cache == nil {
		return nil, false
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
		} else {
			metrics.CacheLookups.WithLabelValues(metrics.CacheError).Inc()
			s.logger.Warn("reply cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	raw, ok := value.(string)
	if !ok {
		metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	}

	var entry cachedReply
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		metrics.CacheLookups.WithLabelValues(metrics.CacheError).Inc()
		return nil, false
	}

	farms, ok := resolveFarms(entry.FarmIDs, catalog)
	if !ok {
		// catalog no longer carries a cached farm
		metrics.CacheLookups.WithLabelValues(metrics.CacheMiss).Inc()
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues(metrics.CacheHit).Inc()

	return &domain.AssistantReply{
		Text:           entry.Text,
		SuggestedFarms: farmIDs(farms),
		Farms:          farms,
		SearchQuery:    entry.SearchQuery,
		Parsed:         entry.Parsed,
		Outcome:        entry.Outcome,
		Source:         SourceCache,
	}, true
}

// setInCache stores a reply in the cache
func (s *AssistantService) setInCache(ctx context.Context, key string, reply *domain.AssistantReply) error {
	if s.cache == nil {
		return nil
	}

	data, err := json.Marshal(cachedReply{
		Text:        reply.Text,
		FarmIDs:     reply.SuggestedFarms,
		SearchQuery: reply.SearchQuery,
		Parsed:      reply.Parsed,
		Outcome:     reply.Outcome,
	})
	if err != nil {
		return err
	}

	return s.cache.Set(ctx, key, string(data), s.cacheTTL)
}

func resolveFarms(ids []string, catalog []domain.Farm) ([]*domain.Farm, bool) {
	farms := make([]*domain.Farm, 0, len(ids))
	for _, id := range ids {
		found := false
		for i := range catalog {
			if catalog[i].ID == id {
				farms = append(farms, &catalog[i])
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return farms, true
}

func farmIDs(farms []*domain.Farm) []string {
	ids := make([]string, 0, len(farms))
	for _, farm := range farms {
		ids = append(ids, farm.ID)
	}
	return ids
}

func outcomeOf(parsed domain.ParsedRequest, result domain.MatchResult) domain.ReplyOutcome {
	switch {
	case len(parsed.Items) == 0:
		return domain.OutcomeEmptyRequest
	case len(result.Farms) == 0:
		return domain.OutcomeNoMatch
	default:
		return domain.OutcomeMatched
	}
}
