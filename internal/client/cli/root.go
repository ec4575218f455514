// Package cli содержит команды клиента NoteHub.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notehub/internal/client/config"
	"notehub/internal/client/cookies"
	"notehub/internal/client/draft"
	"notehub/internal/client/session"
	"notehub/internal/domain/entities"
	"notehub/internal/remote"
	"notehub/pkg/logger"
)

// Сообщения пользователю.
const (
	MsgSomethingWentWrong = "Something went wrong."
	MsgUsernameTaken      = "This username is already taken. Please try another one."
	MsgErrorSavingProfile = "Error saving profile."
	MsgInvalidCredentials = "Invalid email or password"
	MsgNoteNotFound       = "Note not found"
	MsgVerifyingSession   = "Verifying session..."
	MsgRedirecting        = "Redirecting to %s\n"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger    = "failed to initialize logger"
	ErrOpenCookieJar = "failed to open cookie jar"
	ErrCreateClient  = "failed to create remote client"
	ErrSaveCookieJar = "failed to save cookie jar"
)

// ErrNotSignedIn сессия отсутствует или истекла.
var ErrNotSignedIn = errors.New("not signed in, run `notehub login`")

type app struct {
	cfg    *config.Config
	api    *remote.Client
	jar    *cookies.FileJar
	state  *session.AppContext
	drafts *draft.Store
}

// NewRootCommand собирает дерево команд клиента.
func NewRootCommand() *cobra.Command {
	a := &app{}
	var envFile string

	root := &cobra.Command{
		Use:           "notehub",
		Short:         "NoteHub command-line client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, envFile)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.jar == nil {
				return nil
			}
			if err := a.jar.Save(); err != nil {
				return fmt.Errorf("%s: %w", ErrSaveCookieJar, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an optional .env file")

	root.AddCommand(
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newNotesCommand(a),
		newNoteCommand(a),
		newCreateCommand(a),
		newDeleteCommand(a),
		newDraftCommand(a),
		newProfileCommand(a),
	)

	return root
}

// Execute выполняет команду и возвращает код завершения.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func (a *app) init(cmd *cobra.Command, envFile string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLogger, err)
	}
	logger.SetGlobalLogger(log)

	jar, err := cookies.Open(cfg.StateDir, cfg.Remote.BaseURL)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrOpenCookieJar, err)
	}
	a.jar = jar

	api, err := remote.NewClient(cfg.Remote, remote.WithJar(jar))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCreateClient, err)
	}
	a.api = api

	nav := session.NavigatorFunc(func(path string) {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgRedirecting, path)
	})
	a.state = session.NewAppContext(api, nav, nil)

	logger.Log(ctx).Debug(ctx, "client initialized",
		zap.String("base_url", api.BaseURL()),
		zap.String("state_dir", cfg.StateDir))

	return nil
}

// draftStore создает хранилище черновика при первом обращении: серверный
// вариант обращается к сети, поэтому не нужен командам без черновика.
func (a *app) draftStore(ctx context.Context) *draft.Store {
	if a.drafts != nil {
		return a.drafts
	}

	var p draft.Persister = draft.NewFilePersister(a.cfg.StateDir)
	if a.cfg.DraftBackend == config.DraftBackendRemote {
		p = draft.NewRemotePersister(a.api)
	}
	a.drafts = draft.NewStore(ctx, p)
	a.state.Drafts = a.drafts
	return a.drafts
}

// requireSession запускает Auth Guard для path и требует активную сессию.
func (a *app) requireSession(cmd *cobra.Command, path string) (entities.User, error) {
	guard := a.state.Guard
	if guard.Checking() {
		fmt.Fprintln(cmd.ErrOrStderr(), MsgVerifyingSession)
	}

	if guard.Check(cmd.Context(), path) != session.Authenticated {
		return entities.User{}, ErrNotSignedIn
	}

	user, _ := a.state.Auth.User()
	return user, nil
}
