package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"advisory-api/internal/advisor"
	"advisory-api/internal/dto"
	"advisory-api/internal/models"
	"advisory-api/internal/monitoring"
	"advisory-api/internal/repositories"
	apperrors "advisory-api/pkg/errors"
)

// chatFallback is the canned reply when no completion is available for a
// chat turn.
const chatFallback = "Based on your profile, focus on staying diversified, rebalancing on a set schedule, " +
	"and sizing positions according to your risk tolerance. Consider tax-advantaged accounts " +
	"for long-term goals. I’m not a financial advisor; this is educational information."

// Completer obtains a text continuation for a prompt. An empty result means
// no usable completion; callers fall back to deterministic advice.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

// AdviceService runs the summarize-then-advise pipeline
type AdviceService interface {
	Analyze(ctx context.Context, userID string) (*dto.AnalyzeResponse, error)
	Chat(ctx context.Context, req *dto.ChatRequest) (string, error)
}

type adviceService struct {
	userRepo      repositories.UserRepository
	portfolioRepo repositories.PortfolioRepository
	completer     Completer
	cache         SummaryCache
	cacheTTL      time.Duration
	metrics       monitoring.MetricsService
	logger        *logrus.Logger
}

// NewAdviceService creates a new advice service. cache and metrics may be nil.
func NewAdviceService(
	userRepo repositories.UserRepository,
	portfolioRepo repositories.PortfolioRepository,
	completer Completer,
	cache SummaryCache,
	cacheTTL time.Duration,
	metrics monitoring.MetricsService,
	logger *logrus.Logger,
) AdviceService {
	return &adviceService{
		userRepo:      userRepo,
		portfolioRepo: portfolioRepo,
		completer:     completer,
		cache:         cache,
		cacheTTL:      cacheTTL,
		metrics:       metrics,
		logger:        logger,
	}
}

// Analyze loads the user and portfolio, computes a summary and returns it
// with advisory text: the model completion when one arrives, the heuristic
// otherwise. Identifier validation happens before any storage access.
func (s *adviceService) Analyze(ctx context.Context, userID string) (*dto.AnalyzeResponse, error) {
	objID, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := s.summarize(ctx, userID, portfolio.Holdings)
	heuristic := advisor.Heuristic(user, summary)

	advice := s.complete(ctx, buildAnalyzePrompt(user, summary))
	source := "completion"
	if advice == "" {
		advice = heuristic
		source = "heuristic"
	}
	if s.metrics != nil {
		s.metrics.RecordAdviceGenerated(source)
	}

	return &dto.AnalyzeResponse{
		Summary: summary,
		Advice:  advice,
	}, nil
}

// Chat answers a free-form message in the context of the user's profile and
// portfolio. Missing user or portfolio documents are soft conditions: the
// conversation proceeds with an empty profile or empty holdings.
func (s *adviceService) Chat(ctx context.Context, req *dto.ChatRequest) (string, error) {
	objID, err := parseUserID(req.UserID)
	if err != nil {
		return "", err
	}

	user := &models.User{}
	if found, err := s.userRepo.GetByID(ctx, objID); err == nil {
		user = found
	} else if err != apperrors.ErrUserNotFound {
		return "", err
	}

	var holdings []models.Holding
	portfolio, err := s.portfolioRepo.GetByUserID(ctx, req.UserID)
	if err == nil {
		holdings = portfolio.Holdings
	} else if err != apperrors.ErrPortfolioNotFound {
		return "", err
	}

	summary := s.summarize(ctx, req.UserID, holdings)

	reply := s.complete(ctx, buildChatPrompt(user, summary, req))
	source := "completion"
	if reply == "" {
		reply = chatFallback
		source = "fallback"
	}
	if s.metrics != nil {
		s.metrics.RecordChatReply(source)
	}

	return reply, nil
}

// complete times the completion call for the backend metrics
func (s *adviceService) complete(ctx context.Context, prompt string) string {
	start := time.Now()
	result := s.completer.Complete(ctx, prompt)
	if s.metrics != nil {
		s.metrics.RecordCompletionCall(result != "", time.Since(start))
	}
	return result
}

// summarize computes the portfolio summary, serving and filling the cache
// when one is configured. Cache failures degrade to computing directly.
func (s *adviceService) summarize(ctx context.Context, userID string, holdings []models.Holding) *models.PortfolioSummary {
	if s.cache != nil {
		var cached models.PortfolioSummary
		err := s.cache.Get(ctx, summaryCacheKey(userID), &cached)
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(err == nil)
		}
		if err == nil {
			return &cached
		}
	}

	summary := advisor.Summarize(holdings)

	if s.cache != nil {
		if err := s.cache.Set(ctx, summaryCacheKey(userID), summary, s.cacheTTL); err != nil {
			s.logger.Warnf("Failed to cache summary for user %s: %v", userID, err)
		}
	}

	return summary
}

// parseUserID distinguishes a missing identifier from a malformed one
func parseUserID(userID string) (primitive.ObjectID, error) {
	if userID == "" {
		return primitive.NilObjectID, apperrors.ErrMissingUserID
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrInvalidUserID
	}

	return objID, nil
}

// buildAnalyzePrompt frames a one-shot recommendation request around the
// structured summary
func buildAnalyzePrompt(user *models.User, summary *models.PortfolioSummary) string {
	return fmt.Sprintf(
		"You are a helpful, compliant financial robo-advisor. "+
			"Speak clearly and concisely. Avoid guaranteeing returns. \n\n"+
			"User risk tolerance: %s\n"+
			"Goals: %s\n"+
			"Portfolio summary: %s\n\n"+
			"Provide a brief recommendation in 5-7 bullet points.",
		user.RiskTolerance, user.GoalsLine(), marshalSummary(summary))
}

// buildChatPrompt frames an open-ended conversation turn, replaying any
// prior history before the current message
func buildChatPrompt(user *models.User, summary *models.PortfolioSummary, req *dto.ChatRequest) string {
	var b strings.Builder

	b.WriteString("You are an AI robo-advisor. Use simple language, include disclaimers, " +
		"and tailor guidance to risk tolerance.")
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Risk: %s\n", user.RiskTolerance)
	fmt.Fprintf(&b, "Goals: %s\n", user.GoalsLine())
	fmt.Fprintf(&b, "Portfolio: %s\n\n", marshalSummary(summary))

	for _, turn := range req.History {
		fmt.Fprintf(&b, "%s: %s\n", speakerLabel(turn.Role), turn.Content)
	}

	fmt.Fprintf(&b, "User: %s\nAssistant:", req.Message)

	return b.String()
}

func speakerLabel(role string) string {
	if strings.EqualFold(role, "assistant") {
		return "Assistant"
	}
	return "User"
}

func marshalSummary(summary *models.PortfolioSummary) string {
	data, err := json.Marshal(summary)
	if err != nil {
		return "{}"
	}
	return string(data)
}
