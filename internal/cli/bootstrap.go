package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idursun/rebase-edit/internal/config"
	"github.com/idursun/rebase-edit/internal/document"
	"github.com/idursun/rebase-edit/internal/git"
	"github.com/idursun/rebase-edit/internal/protocol"
	"github.com/idursun/rebase-edit/internal/session"
	"github.com/idursun/rebase-edit/internal/web"
)

var assetRoot string

// The bootstrap payload stands in for a first ready round-trip: a webview
// host renders this markup and already has the initial plan snapshot.
var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap <rebase-todo-file>",
	Short: "Print the presentation surface's initial markup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := document.NewStore(args[0])
		if err != nil {
			return err
		}
		runner := &git.MainCommandRunner{Location: resolveRepo(args[0])}
		enricher := &git.CLIEnricher{Runner: runner, Avatars: config.Current.Avatars}
		s := session.New(store, enricher, nil, protocol.DefaultSequence, git.CurrentBranch(cmd.Context(), runner))

		html, err := web.Render(assetRoot, s.BuildModel(cmd.Context()))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), html)
		return nil
	},
}

func init() {
	bootstrapCmd.Flags().StringVar(&assetRoot, "root", ".", "value substituted for the markup's root-path token")
	rootCmd.AddCommand(bootstrapCmd)
}
