package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/droidbay/catalog/cmd/catalog/models"
	"github.com/droidbay/catalog/cmd/catalog/repository"
	"github.com/droidbay/catalog/common/logger"
)

// BusyMessage is returned immediately when the admission slot is held
const BusyMessage = "I'm currently helping another user. Please try again in a moment."

// GenerationClient is the external text-generation dependency
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AssistantService answers store questions through the generation service,
// falling back to canned replies built from live catalog data. Answer never
// fails outward.
//
// A capacity-1 channel is the admission slot: at most one generation call is
// in flight system-wide. A second caller gets BusyMessage without blocking.
type AssistantService struct {
	apps       *repository.AppRepository
	categories *repository.CategoryRepository
	client     GenerationClient
	timeout    time.Duration
	slot       chan struct{}
	log        *logger.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(
	apps *repository.AppRepository,
	categories *repository.CategoryRepository,
	client GenerationClient,
	timeout time.Duration,
	log *logger.Logger,
) *AssistantService {
	return &AssistantService{
		apps:       apps,
		categories: categories,
		client:     client,
		timeout:    timeout,
		slot:       make(chan struct{}, 1),
		log:        log,
	}
}

// Answer returns a displayable reply for query. The admission slot is
// released on every exit path before the reply is composed.
func (s *AssistantService) Answer(ctx context.Context, query string) string {
	apps := s.apps.All()
	categories := s.categories.All()

	select {
	case s.slot <- struct{}{}:
	default:
		s.log.Debug("assistant busy, rejecting request")
		return BusyMessage
	}

	text, err := s.generate(ctx, query, apps, categories)
	if err != nil || text == "" {
		if err != nil {
			s.log.Warn("generation unavailable, using fallback", "error", err)
		}
		return Fallback(query, apps, categories)
	}

	return text
}

// generate performs the single admitted generation call. The deferred
// receive guarantees the slot is freed no matter how this returns.
func (s *AssistantService) generate(ctx context.Context, query string, apps []models.App, categories []models.Category) (string, error) {
	defer func() { <-s.slot }()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.Generate(ctx, buildPrompt(query, apps, categories))
}

// buildPrompt composes the bounded store-context prompt
func buildPrompt(query string, apps []models.App, categories []models.Category) string {
	var b strings.Builder

	b.WriteString("You are an AI assistant for an Android App Store. Help users find apps, provide recommendations, and answer questions about the store.\n\n")

	b.WriteString("Available Apps:\n")
	for _, app := range apps {
		fmt.Fprintf(&b, "- %s: %s (Category: %s, Rating: %g, Downloads: %s)\n",
			app.Name, app.Description, app.Category, app.Rating, app.Downloads)
	}

	b.WriteString("\nAvailable Categories:\n")
	for _, cat := range categories {
		fmt.Fprintf(&b, "- %s: %s\n", cat.Name, cat.Description)
	}

	fmt.Fprintf(&b, "\nUser Query: %s\n\n", query)
	b.WriteString("Please provide a helpful, friendly response. If recommending apps, be specific about why they're good choices. Keep responses conversational and engaging. Keep your response under 100 words.")

	return b.String()
}
