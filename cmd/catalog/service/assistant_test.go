package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/droidbay/catalog/cmd/catalog/repository"
	"github.com/droidbay/catalog/common/docstore"
	"github.com/droidbay/catalog/common/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator is a controllable GenerationClient
type fakeGenerator struct {
	mu         sync.Mutex
	reply      string
	err        error
	lastPrompt string

	// When set, Generate signals started and waits for release
	started chan struct{}
	release chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.lastPrompt = prompt
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
		f.started = nil
		<-f.release
	}

	return f.reply, f.err
}

func (f *fakeGenerator) prompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPrompt
}

func newAssistantFixture(t *testing.T, client GenerationClient) *AssistantService {
	t.Helper()

	log := logger.New("error", "text")
	store, err := docstore.NewFileStore(t.TempDir(), log)
	require.NoError(t, err)

	ctx := context.Background()

	apps, err := repository.NewAppRepository(ctx, store)
	require.NoError(t, err)
	categories, err := repository.NewCategoryRepository(ctx, store)
	require.NoError(t, err)

	seedApps, seedCategories := fallbackFixture()
	require.NoError(t, apps.ReplaceAll(ctx, seedApps))
	require.NoError(t, categories.ReplaceAll(ctx, seedCategories))

	return NewAssistantService(apps, categories, client, time.Second, log)
}

func TestAnswer_ReturnsGeneratedText(t *testing.T) {
	client := &fakeGenerator{reply: "Try Angry Birds, it is great."}
	assistant := newAssistantFixture(t, client)

	reply := assistant.Answer(context.Background(), "what game should I get")
	assert.Equal(t, "Try Angry Birds, it is great.", reply)

	// The prompt carries catalog context and the user query
	assert.Contains(t, client.prompt(), "Angry Birds")
	assert.Contains(t, client.prompt(), "User Query: what game should I get")
}

func TestAnswer_SecondCallerGetsBusyMessageWithoutBlocking(t *testing.T) {
	client := &fakeGenerator{
		reply:   "slow reply",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	started := client.started
	assistant := newAssistantFixture(t, client)

	first := make(chan string, 1)
	go func() {
		first <- assistant.Answer(context.Background(), "query one")
	}()

	// Wait until the first call holds the slot
	<-started

	done := make(chan string, 1)
	go func() {
		done <- assistant.Answer(context.Background(), "query two")
	}()

	select {
	case reply := <-done:
		assert.Equal(t, BusyMessage, reply)
	case <-time.After(time.Second):
		t.Fatal("second caller blocked instead of receiving the busy message")
	}

	close(client.release)
	assert.Equal(t, "slow reply", <-first)
}

func TestAnswer_SlotIsReleasedAfterFailure(t *testing.T) {
	client := &fakeGenerator{err: errors.New("upstream down")}
	assistant := newAssistantFixture(t, client)
	ctx := context.Background()

	// First call fails upstream and falls back
	reply := assistant.Answer(ctx, "how many apps are there")
	assert.Contains(t, reply, "We currently have 4 apps in our store")

	// The slot must be free again
	client.err = nil
	client.reply = "all good now"
	assert.Equal(t, "all good now", assistant.Answer(ctx, "query"))
}

func TestAnswer_EmptyGenerationFallsBack(t *testing.T) {
	client := &fakeGenerator{reply: ""}
	assistant := newAssistantFixture(t, client)

	reply := assistant.Answer(context.Background(), "what categories do you have")
	assert.Contains(t, reply, "Games, Productivity, Social, Education")
}

func TestAnswer_FallbackPriorityPreserved(t *testing.T) {
	client := &fakeGenerator{err: errors.New("upstream down")}
	assistant := newAssistantFixture(t, client)

	reply := assistant.Answer(context.Background(), "hi, can you recommend a game")
	assert.Contains(t, reply, "Hello! I'm your Android App Store assistant")
}
