package dig_container

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/professor/apps/api/echo"
	"github.com/trezcool/professor/core"
	"github.com/trezcool/professor/core/activity"
	"github.com/trezcool/professor/core/chat"
	"github.com/trezcool/professor/core/classroom"
	emailsvc "github.com/trezcool/professor/services/email"
	"github.com/trezcool/professor/services/llm"
	logsvc "github.com/trezcool/professor/services/logger"
	inmemdb "github.com/trezcool/professor/storage/inmem"
)

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newSweeper(conf *core.Config, store *chat.Store, logger core.Logger) *chat.Sweeper {
	return chat.NewSweeper(store, conf.Sessions.MaxAge, conf.Sessions.SweepInterval, logger)
}

func newLedger(svc *classroom.Service, store *chat.Store) *activity.Ledger {
	return activity.NewLedger(svc, store)
}

func newChatService(
	store *chat.Store,
	completer *llm.AnthropicClient,
	ledger *activity.Ledger,
	validate *validator.Validate,
	logger core.Logger,
) *chat.Service {
	return chat.NewService(store, completer, ledger, validate, logger)
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	chatSvc *chat.Service,
	classroomSvc *classroom.Service,
	ledger *activity.Ledger,
	validate *validator.Validate,
	translator ut.Translator,
) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         conf,
		Logger:       logger,
		ChatSvc:      chatSvc,
		ClassroomSvc: classroomSvc,
		Ledger:       ledger,
		Validate:     validate,
		Translator:   translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(core.NewValidator))

	// storage
	must(c.Provide(inmemdb.Open))
	must(c.Provide(inmemdb.NewClassroomRepository))
	must(c.Provide(chat.NewStore))

	// services
	must(c.Provide(classroom.NewService))
	must(c.Provide(newLedger))
	must(c.Provide(llm.NewAnthropicClient))
	must(c.Provide(newChatService))
	must(c.Provide(newSweeper))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
