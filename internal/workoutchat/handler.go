package workoutchat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/traintally/backend/internal/telemetry/metrics"
	"github.com/traintally/backend/internal/telemetry/tracing"
	"github.com/traintally/backend/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workoutchat_test

type turnAssistant interface {
	Turn(ctx context.Context, req TurnRequest) (*TurnResult, error)
}

type workoutSaver interface {
	SaveWorkout(ctx context.Context, summary WorkoutSummary) error
}

type ChatRequest struct {
	Message string          `json:"message"`
	Session *WorkoutSummary `json:"session"`
	History []ChatTurn      `json:"history"`
}

type ChatResponse struct {
	BotMessage     string          `json:"botMessage"`
	UpdatedSession *WorkoutSummary `json:"updatedSession"`
}

type ChatErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

const saveFailedNotice = " (Heads up: I couldn't save this workout just now, I'll try again on your next message.)"

type Handler struct {
	assistant      turnAssistant
	saver          workoutSaver
	gates          *GateRegistry
	metricsManager *metrics.Manager
}

func NewHandler(
	assistant turnAssistant,
	saver workoutSaver,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		assistant:      assistant,
		saver:          saver,
		gates:          NewGateRegistry(),
		metricsManager: metricsManager,
	}
}

// CleanInactiveGates evicts persistence gates of sessions that stopped
// chatting. Meant to run periodically from the server.
func (handler *Handler) CleanInactiveGates(inactiveFor time.Duration) {
	if removed := handler.gates.CleanInactive(inactiveFor); removed > 0 {
		log.Debugf("workout chat: removed %d inactive session gates", removed)
	}
}

// HandleChat is the stateless relay for one workout logging turn. Every
// response, including errors and preflight, carries permissive CORS headers:
// the chat runs in mobile webviews where the origin can be anything.
func (handler *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workoutchat.turn")
	defer span.End()

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		handler.writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	var chatReq ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chatReq); err != nil {
		log.Tracef("workout chat, unmarshal json params: %s", err)
		handler.writeError(w, http.StatusBadRequest, "message is required and must be a string", "")
		return
	}
	if chatReq.Message == "" {
		handler.writeError(w, http.StatusBadRequest, "message is required and must be a string", "")
		return
	}

	handler.metricsManager.CounterChatTurns.Inc()

	result, err := handler.assistant.Turn(ctx, TurnRequest{
		Message: chatReq.Message,
		Session: chatReq.Session,
		History: chatReq.History,
	})
	if err != nil {
		log.Errorf("workout chat turn failed: %s", err)
		handler.metricsManager.CounterChatFailures.Inc()
		handler.writeError(w, http.StatusInternalServerError, "assistant call failed", err.Error())
		return
	}

	if !result.ParsedOK {
		// unparseable model reply: keep the session as it was and degrade to
		// the fallback message instead of failing the turn
		handler.metricsManager.CounterChatFailures.Inc()
		handler.writeChatResponse(w, ChatResponse{
			BotMessage:     result.AssistantMessage,
			UpdatedSession: chatReq.Session,
		})
		return
	}

	merged := MergeSummary(chatReq.Session, result.Summary, result.Phase)
	if merged.SessionID == "" {
		merged.SessionID = uuid.NewString()
	}

	botMessage := result.AssistantMessage
	gate := handler.gates.Get(merged.SessionID)
	if gate.ShouldSave(merged.IsComplete) {
		if err := handler.saver.SaveWorkout(ctx, merged); err != nil {
			gate.SaveFailed()
			log.Errorf("workout chat: save completed workout for session %s: %s", merged.SessionID, err)
			// persistence failures are communicated conversationally
			botMessage += saveFailedNotice
		} else {
			gate.SaveSucceeded()
			handler.metricsManager.CounterWorkoutsSaved.Inc()
			log.Debugf("workout chat: session %s workout saved", merged.SessionID)
		}
	}

	handler.writeChatResponse(w, ChatResponse{
		BotMessage:     botMessage,
		UpdatedSession: &merged,
	})
}

func (handler *Handler) writeChatResponse(w http.ResponseWriter, resp ChatResponse) {
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("workout chat: marshal response: %s", err)
		handler.writeError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) writeError(w http.ResponseWriter, statusCode int, errMsg, details string) {
	respJson, err := json.Marshal(ChatErrorResponse{
		Error:   errMsg,
		Details: details,
	})
	if err != nil {
		// should never happen for this shape
		respJson = []byte(fmt.Sprintf(`{"error": %q}`, errMsg))
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}
