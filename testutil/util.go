package testutil

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/professor/apps/api/echo"
	"github.com/trezcool/professor/core"
	"github.com/trezcool/professor/core/activity"
	"github.com/trezcool/professor/core/chat"
	"github.com/trezcool/professor/core/classroom"
	emailsvc "github.com/trezcool/professor/services/email"
	logsvc "github.com/trezcool/professor/services/logger"
	inmemdb "github.com/trezcool/professor/storage/inmem"
)

func NewConfig() *core.Config {
	return &core.Config{
		AppName:         "Productive Professor",
		Env:             "TEST",
		TestMode:        true,
		FrontendBaseURL: "http://localhost:3000",
		Server: core.ServerConfig{
			Port:            "3000",
			ShutdownTimeout: time.Second,
			DisableReqLogs:  true,
			AllowOrigins:    []string{"*"},
		},
		Anthropic: core.AnthropicConfig{
			APIKey:    "test-key",
			BaseURL:   "http://127.0.0.1:1",
			Model:     "claude-3-5-sonnet-20241022",
			Version:   "2023-06-01",
			MaxTokens: 1000,
		},
		Sessions: core.SessionsConfig{
			MaxAge:        24 * time.Hour,
			SweepInterval: time.Hour,
		},
	}
}

// NewLogger returns a silent logger with Rollbar disabled.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

type CompleteCall struct {
	SystemPrompt string
	Turns        []chat.Turn
}

// FakeCompleter answers every completion with Reply, or fails with Err when set.
type FakeCompleter struct {
	mu    sync.Mutex
	Reply string
	Err   error
	Calls []CompleteCall
}

var _ chat.Completer = (*FakeCompleter)(nil)

func (f *FakeCompleter) Complete(_ context.Context, systemPrompt string, turns []chat.Turn) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, CompleteCall{SystemPrompt: systemPrompt, Turns: append([]chat.Turn(nil), turns...)})
	if f.Err != nil {
		return "", errors.Wrap(chat.ErrCompletionFailed, f.Err.Error())
	}
	return f.Reply, nil
}

func (f *FakeCompleter) Set(reply string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reply, f.Err = reply, err
}

func (f *FakeCompleter) LastCall() (CompleteCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return CompleteCall{}, false
	}
	return f.Calls[len(f.Calls)-1], true
}

// App is a fully wired API server running on in-memory storage.
type App struct {
	Server       *echoapi.Server
	Conf         *core.Config
	Store        *chat.Store
	Repo         classroom.Repository
	ClassroomSvc *classroom.Service
	ChatSvc      *chat.Service
	Ledger       *activity.Ledger
	Completer    *FakeCompleter
}

func NewApp(t *testing.T) *App {
	t.Helper()

	conf := NewConfig()
	logger := NewLogger(conf)
	translator := core.NewTranslator()
	validate := core.NewValidator(translator)

	repo := inmemdb.NewClassroomRepository(inmemdb.Open())
	store := chat.NewStore()
	completer := &FakeCompleter{Reply: "That's an interesting point about..."}

	classroomSvc := classroom.NewService(repo, emailsvc.NewConsoleServiceMock(conf, logger))
	ledger := activity.NewLedger(classroomSvc, store)
	chatSvc := chat.NewService(store, completer, ledger, validate, logger)

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:         conf,
		Logger:       logger,
		ChatSvc:      chatSvc,
		ClassroomSvc: classroomSvc,
		Ledger:       ledger,
		Validate:     validate,
		Translator:   translator,
	})
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	return &App{
		Server:       server,
		Conf:         conf,
		Store:        store,
		Repo:         repo,
		ClassroomSvc: classroomSvc,
		ChatSvc:      chatSvc,
		Ledger:       ledger,
		Completer:    completer,
	}
}

func CreateTeacher(t *testing.T, svc *classroom.Service, name, email, pwd string) classroom.Teacher {
	t.Helper()
	teacher, err := svc.Register(classroom.NewTeacher{Name: name, Email: email, Password: pwd})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return teacher
}

func CreateClass(t *testing.T, svc *classroom.Service, teacherID, name, subject string) classroom.ClassRoom {
	t.Helper()
	class, err := svc.CreateClass(classroom.NewClass{TeacherID: teacherID, Name: name, Subject: subject})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return class
}

func JoinClass(t *testing.T, svc *classroom.Service, joinCode, name string) classroom.Student {
	t.Helper()
	student, _, err := svc.Join(classroom.JoinClass{JoinCode: joinCode, StudentName: name})
	if err != nil {
		t.Fatalf("JoinClass() failed: %v", err)
	}
	return student
}
