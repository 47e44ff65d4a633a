package workoutchat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/traintally/backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.opentelemetry.io/otel/attribute"
)

// FallbackAssistantMessage is shown when the model reply cannot be parsed;
// the chat UI must always show some assistant message.
const FallbackAssistantMessage = "I had trouble understanding that. Could you tell me again what you did in your workout?"

const defaultUpstreamTimeout = 30 * time.Second

type TurnRequest struct {
	Message string
	Session *WorkoutSummary
	History []ChatTurn
}

// TurnResult is the outcome of one relayed turn. ParsedOK tags whether the
// model reply was valid JSON: when false, RawReply holds the offending text,
// AssistantMessage holds the fallback, and Summary must be ignored.
type TurnResult struct {
	AssistantMessage string
	Summary          WorkoutSummary
	Phase            Phase
	ParsedOK         bool
	RawReply         string
}

// assistantReply is the JSON object the instruction prompt demands from the model.
type assistantReply struct {
	AssistantMessage string         `json:"assistantMessage"`
	Phase            Phase          `json:"phase"`
	Summary          WorkoutSummary `json:"summary"`
}

// turnPayload wraps the whole turn as the model's user message content.
type turnPayload struct {
	Instructions    string          `json:"instructions"`
	PreviousSummary *WorkoutSummary `json:"previousSummary"`
	History         []ChatTurn      `json:"history"`
	Message         string          `json:"message"`
}

type chatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Assistant relays workout chat turns to an OpenAI compatible model. It holds
// no state between invocations: every call is a complete, independent turn.
type Assistant struct {
	llm       chatModel
	maxTokens int
	timeout   time.Duration
}

type NewAssistantParams struct {
	BaseURL    string
	Model      string
	Token      string
	MaxTokens  int
	HTTPClient *http.Client
}

func NewAssistant(params NewAssistantParams) (*Assistant, error) {
	opts := []openai.Option{
		openai.WithModel(params.Model),
		openai.WithToken(params.Token),
	}
	if params.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(params.BaseURL))
	}
	if params.HTTPClient != nil {
		opts = append(opts, openai.WithHTTPClient(params.HTTPClient))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("new openai client: %w", err)
	}

	return &Assistant{
		llm:       llm,
		maxTokens: params.MaxTokens,
		timeout:   defaultUpstreamTimeout,
	}, nil
}

// Turn relays one chat turn. A returned error means the upstream call itself
// failed; an unparseable model reply is NOT an error, it comes back as a
// TurnResult with ParsedOK=false and the fallback assistant message.
func (a *Assistant) Turn(ctx context.Context, req TurnRequest) (_ *TurnResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workoutchat.assistant.turn")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	payload := turnPayload{
		Instructions:    workoutLoggerInstructions,
		PreviousSummary: req.Session,
		History:         TrimHistory(req.History),
		Message:         req.Message,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal turn payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.llm.GenerateContent(
		ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, string(payloadJson)),
		},
		llms.WithJSONMode(),
		llms.WithMaxTokens(a.maxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("assistant generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("assistant returned no choices")
	}

	replyText := resp.Choices[0].Content
	span.SetAttributes(attribute.Int("reply.length", len(replyText)))

	var reply assistantReply
	if err := json.Unmarshal([]byte(replyText), &reply); err != nil {
		log.Errorf("workout chat: failed to parse assistant reply as json: %s", err)
		return &TurnResult{
			AssistantMessage: FallbackAssistantMessage,
			ParsedOK:         false,
			RawReply:         replyText,
		}, nil
	}

	if reply.AssistantMessage == "" {
		reply.AssistantMessage = FallbackAssistantMessage
	}

	return &TurnResult{
		AssistantMessage: reply.AssistantMessage,
		Summary:          reply.Summary,
		Phase:            reply.Phase,
		ParsedOK:         true,
	}, nil
}
