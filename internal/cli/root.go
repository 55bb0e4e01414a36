package cli

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/idursun/rebase-edit/internal/config"
	"github.com/idursun/rebase-edit/internal/document"
	"github.com/idursun/rebase-edit/internal/git"
	"github.com/idursun/rebase-edit/internal/protocol"
	"github.com/idursun/rebase-edit/internal/session"
	"github.com/idursun/rebase-edit/internal/surface"
)

var (
	repoPath string
	logPath  string
	useStdio bool
)

var rootCmd = &cobra.Command{
	Use:   "rebase-edit <rebase-todo-file>",
	Short: "Interactive rebase plan editor",
	Long: `rebase-edit keeps a git-rebase-todo file and a presentation surface in
sync. Point git at it through GIT_SEQUENCE_EDITOR to reorder, reword, squash
and drop commits before the rebase runs. The file stays the single source of
truth: edits made elsewhere show up live, and accepting or aborting the plan
writes the file and exits.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func Execute() error {
	return rootCmd.Execute()
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", "", "repository root (defaults to the todo file's repository)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write diagnostics to this file")
	rootCmd.Flags().BoolVar(&useStdio, "stdio", false, "serve the protocol on stdin/stdout instead of the terminal UI")
}

// setupLogging routes the log package to the configured file, or discards it.
func setupLogging() func() {
	path := logPath
	if path == "" {
		path = config.Current.LogFile
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(file)
	return func() { _ = file.Close() }
}

// resolveRepo walks out of the .git directory the todo file lives in
// (.git/rebase-merge/git-rebase-todo) to find the working tree root.
func resolveRepo(todoPath string) string {
	if repoPath != "" {
		return repoPath
	}
	dir := filepath.Dir(todoPath)
	for parent := dir; ; {
		if filepath.Base(parent) == ".git" {
			return filepath.Dir(parent)
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	return dir
}

func runRoot(cmd *cobra.Command, args []string) error {
	closeLog := setupLogging()
	defer closeLog()

	store, err := document.NewStore(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := store.Watch(ctx); err != nil {
		return err
	}

	runner := &git.MainCommandRunner{Location: resolveRepo(args[0])}
	enricher := &git.CLIEnricher{Runner: runner, Avatars: config.Current.Avatars}
	branch := git.CurrentBranch(ctx, runner)

	if useStdio {
		transport := protocol.NewStreamTransport(cmd.InOrStdin(), cmd.OutOrStdout())
		s := session.New(store, enricher, transport, protocol.DefaultSequence, branch)
		return s.Run(ctx)
	}

	core, surfaceEnd := protocol.Pipe()
	s := session.New(store, enricher, core, protocol.DefaultSequence, branch)
	// Accepting or aborting the plan tears the surface down.
	s.OnClose = func() { _ = core.Close() }

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	program := tea.NewProgram(surface.New(surfaceEnd, protocol.DefaultSequence), tea.WithAltScreen(), tea.WithContext(ctx))
	_, uiErr := program.Run()
	cancel()

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return uiErr
	}
	return nil
}
