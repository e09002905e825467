package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collaborators.go -package=mocks bizfinder/internal/service Generator,Interpreter,Fetcher,PageBuilder
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks bizfinder/internal/service ChatService,BrowseService

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bizfinder/internal/contextutil"
	"bizfinder/internal/interpret"
	"bizfinder/internal/normalize"
	"bizfinder/internal/search"
	"bizfinder/internal/storage"
)

const (
	// DefaultGeneratorTimeout bounds every text-generation call.
	DefaultGeneratorTimeout = 20 * time.Second

	intentMaxTokens  = 3
	explainMaxTokens = 90

	// UnavailableMessage is returned when no strategy could answer.
	UnavailableMessage = "The assistant is unavailable right now. Please try again later."
	// NotUnderstoodMessage is returned for queries with no usable text.
	NotUnderstoodMessage = "I could not understand your request."
)

const intentPrompt = `Answer "yes" or "no" only. Is the user trying to find a business, shop, service or local place?
Query: %s`

const explainPrompt = "Explain '%s' in very simple words. Use plain English, no technical terms. Keep it short and clear."

// Generator produces text from a prompt.
// This interface is defined from the service layer's perspective (consumer-first).
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Interpreter turns a raw query into an interpretation.
type Interpreter interface {
	Interpret(ctx context.Context, query string) interpret.Result
}

// Fetcher runs ranked listing lookups.
type Fetcher interface {
	Fetch(ctx context.Context, req search.Request) search.Result
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	Query string
}

// ChatResponse is either a TextResponse or a ListingsResponse.
type ChatResponse interface {
	// Kind is "text" or "listings".
	Kind() string
	isChatResponse()
}

// TextResponse is a free-text answer.
type TextResponse struct {
	Answer string
}

// Kind implements ChatResponse.
func (TextResponse) Kind() string { return "text" }
func (TextResponse) isChatResponse() {}

// ListingsResponse holds ranked listings for a category in a city.
type ListingsResponse struct {
	Category string
	City     string
	Results  []storage.Listing
}

// Kind implements ChatResponse.
func (ListingsResponse) Kind() string { return "listings" }
func (ListingsResponse) isChatResponse() {}

// ChatService answers natural-language queries.
type ChatService interface {
	// Chat answers the query with listings or text. Only a blank query is an error.
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// ChatOptions configures a ChatService.
type ChatOptions struct {
	// GeneratorTimeout bounds each generator call; 0 selects DefaultGeneratorTimeout.
	GeneratorTimeout time.Duration
	// ResultLimit is the number of listings returned; 0 selects the fetcher default.
	ResultLimit int
}

// chatService implements ChatService.
type chatService struct {
	generator   Generator
	interpreter Interpreter
	fetcher     Fetcher
	timeout     time.Duration
	resultLimit int
	strategies  []strategy
}

// strategy is one step of the answer chain. ok reports whether it answered.
type strategy struct {
	name string
	run  func(ctx context.Context, st *chatState) (resp ChatResponse, ok bool)
}

// chatState is the per-request state shared by the strategies.
type chatState struct {
	query          string
	interpretation interpret.Result
	action         Action
	generatorDown  bool
}

// NewChatService creates a new ChatService.
func NewChatService(generator Generator, interpreter Interpreter, fetcher Fetcher, opts ChatOptions) ChatService {
	s := &chatService{
		generator:   generator,
		interpreter: interpreter,
		fetcher:     fetcher,
		timeout:     opts.GeneratorTimeout,
		resultLimit: opts.ResultLimit,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultGeneratorTimeout
	}
	s.strategies = []strategy{
		{name: "lookup", run: s.lookup},
		{name: "explain", run: s.explain},
		{name: "static", run: unavailable},
	}
	return s
}

// Chat processes a chat request.
func (s *chatService) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Query) == "" {
		logger.WarnContext(ctx, "empty query in chat request")
		return nil, &ValidationError{Field: "query", Message: "cannot be empty"}
	}
	if normalize.Text(req.Query) == "" {
		return TextResponse{Answer: NotUnderstoodMessage}, nil
	}

	st := &chatState{query: req.Query}
	st.interpretation = s.interpreter.Interpret(ctx, req.Query)
	st.action = Route(s.businessIntent(ctx, st), st.interpretation.City)

	logger.InfoContext(ctx, "query routed",
		"action", st.action.String(),
		"category", st.interpretation.Category,
		"city", st.interpretation.City,
		"combined_score", st.interpretation.CombinedScore,
	)

	for _, strat := range s.strategies {
		if resp, ok := strat.run(ctx, st); ok {
			logger.InfoContext(ctx, "chat request answered", "strategy", strat.name, "kind", resp.Kind())
			return resp, nil
		}
	}
	// the static strategy always answers
	return TextResponse{Answer: UnavailableMessage}, nil
}

// businessIntent asks the generator whether the query seeks a business.
// A failure marks the generator down for the rest of the request.
func (s *chatService) businessIntent(ctx context.Context, st *chatState) bool {
	answer, err := s.generate(ctx, fmt.Sprintf(intentPrompt, st.query), intentMaxTokens)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "generator unavailable for intent check", "error", err)
		st.generatorDown = true
		return false
	}
	return strings.Contains(strings.ToLower(answer), "yes")
}

func (s *chatService) lookup(ctx context.Context, st *chatState) (ChatResponse, bool) {
	if st.action != Lookup {
		return nil, false
	}
	res := s.fetcher.Fetch(ctx, search.Request{
		Field: search.FieldCategory,
		Value: st.interpretation.Category,
		City:  st.interpretation.City,
		Limit: s.resultLimit,
	})
	if len(res.Listings) == 0 {
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "lookup returned no rows, falling back to explain", "category", st.interpretation.Category, "city", st.interpretation.City)
		return nil, false
	}
	return ListingsResponse{
		Category: st.interpretation.Category,
		City:     st.interpretation.City,
		Results:  res.Listings,
	}, true
}

func (s *chatService) explain(ctx context.Context, st *chatState) (ChatResponse, bool) {
	if st.generatorDown {
		return nil, false
	}
	answer, err := s.generate(ctx, fmt.Sprintf(explainPrompt, st.query), explainMaxTokens)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "generator unavailable for explanation", "error", err)
		st.generatorDown = true
		return nil, false
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, false
	}
	return TextResponse{Answer: answer}, true
}

func unavailable(context.Context, *chatState) (ChatResponse, bool) {
	return TextResponse{Answer: UnavailableMessage}, true
}

func (s *chatService) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.generator.Generate(ctx, prompt, maxTokens)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExternalService, err)
	}
	return answer, nil
}
