package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = "board v0.1.0"

// baseURLFlag overrides the server URL stored in the CLI config.
var baseURLFlag string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "board [command] [flags]",
		Short: "Board: members, posts and comments over a REST API",
		Long: `Board runs the board API server and talks to it as a client.

Run without a command to start the server. Client commands keep the server
URL and your API key in ~/.board/config.json.

Quick start:
  board join --username user1 --password 1234 --nickname 유저1
  board login --username user1 --password 1234
  board write --title 제목 --content 내용
  board posts`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&baseURLFlag, "url", "", "Server URL including any API prefix (default from config, else "+defaultBaseURL+")")

	root.AddCommand(newServeCommand())
	root.AddCommand(newSeedCommand())
	addClientCommands(root)
	return root
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.Bold, color.FgHiRed).Sprint("Error:"), err)
		os.Exit(1)
	}
}
