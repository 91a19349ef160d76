package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/professor/core"
)

var (
	// ErrCompletionFailed is the single error kind a Completer reports, whatever went wrong upstream.
	ErrCompletionFailed = errors.New("completion failed")

	nowFunc = time.Now // mockable
)

type (
	// Completer sends the system prompt and the full turn sequence to a chat completion service.
	Completer interface {
		Complete(ctx context.Context, systemPrompt string, turns []Turn) (string, error)
	}

	// Recorder does the best-effort bookkeeping that follows a successful exchange.
	Recorder interface {
		RecordExchange(ctx context.Context, ex Exchange) error
	}

	// Exchange describes a completed round trip, as handed over to the Recorder.
	Exchange struct {
		SessionID    string
		StudentID    string
		ClassID      string
		PromptTitle  string
		MessageCount int
		At           time.Time
	}

	ExchangeRequest struct {
		Message     string `json:"message" validate:"required"`
		SessionID   string `json:"sessionId" validate:"required"`
		StudentID   string `json:"studentId"`
		ClassID     string `json:"classId"`
		PromptTitle string `json:"promptTitle"`
	}

	Service struct {
		store        *Store
		completer    Completer
		recorder     Recorder
		validate     *validator.Validate
		logger       core.Logger
		instructions string
	}
)

func (r *ExchangeRequest) Validate(validate *validator.Validate) error {
	r.SessionID = core.CleanString(r.SessionID)
	r.StudentID = core.CleanString(r.StudentID)
	r.ClassID = core.CleanString(r.ClassID)
	r.PromptTitle = core.CleanString(r.PromptTitle)
	if core.CleanString(r.Message) == "" {
		r.Message = ""
	}
	return validate.Struct(r)
}

// ChatError reports a failed exchange. The user turn stays in the session.
type ChatError struct {
	SessionID string
	Err       error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("chat failed for session %q: %v", e.SessionID, e.Err)
}

func (e *ChatError) Unwrap() error { return e.Err }

// IsChatFailed reports whether err (or its cause) is a *ChatError.
func IsChatFailed(err error) bool {
	_, ok := errors.Cause(err).(*ChatError)
	return ok
}

func NewService(
	store *Store,
	completer Completer,
	recorder Recorder,
	validate *validator.Validate,
	logger core.Logger,
) *Service {
	return &Service{
		store:        store,
		completer:    completer,
		recorder:     recorder,
		validate:     validate,
		logger:       logger,
		instructions: BaseInstructions,
	}
}

// Exchange appends the user message to the session, asks the Completer for a reply and records it.
//
// Concurrent exchanges on the same session are not serialized: their turns may interleave.
func (svc *Service) Exchange(ctx context.Context, req ExchangeRequest) (string, error) {
	if err := req.Validate(svc.validate); err != nil {
		return "", err
	}

	sess := svc.store.Append(req.SessionID, Turn{Role: RoleUser, Content: req.Message, CreatedAt: nowFunc().UTC()})

	// TODO: trim or summarize old turns once token usage per session is tracked; the whole history goes upstream.
	prompt := BuildSystemPrompt(svc.instructions, req.PromptTitle)
	reply, err := svc.completer.Complete(ctx, prompt, sess.Turns)
	if err != nil {
		return "", &ChatError{SessionID: req.SessionID, Err: err}
	}

	now := nowFunc().UTC()
	_ = svc.store.Append(req.SessionID, Turn{Role: RoleAssistant, Content: reply, CreatedAt: now})

	svc.record(ctx, Exchange{
		SessionID:    req.SessionID,
		StudentID:    req.StudentID,
		ClassID:      req.ClassID,
		PromptTitle:  req.PromptTitle,
		MessageCount: len(sess.Turns) + 1,
		At:           now,
	})
	return reply, nil
}

// record never fails the exchange: bookkeeping errors and panics are only logged.
func (svc *Service) record(ctx context.Context, ex Exchange) {
	if svc.recorder == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			svc.logger.Error(fmt.Sprintf("recording exchange: panic: %v", r), map[string]interface{}{"sessionId": ex.SessionID})
		}
	}()
	if err := svc.recorder.RecordExchange(ctx, ex); err != nil {
		svc.logger.Warn(fmt.Sprintf("recording exchange: %v", err), map[string]interface{}{
			"sessionId": ex.SessionID,
			"studentId": ex.StudentID,
			"classId":   ex.ClassID,
		})
	}
}

// History returns the turns of the session, or nil if it does not exist.
func (svc *Service) History(sessionID string) []Turn {
	sess, ok := svc.store.Get(core.CleanString(sessionID))
	if !ok {
		return nil
	}
	return sess.Turns
}

// Clear drops the session. It is a no-op for unknown or empty IDs.
func (svc *Service) Clear(sessionID string) {
	if sessionID = core.CleanString(sessionID); sessionID != "" {
		svc.store.Clear(sessionID)
	}
}

func (svc *Service) ActiveSessions() int {
	return svc.store.Len()
}
