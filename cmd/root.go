package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dPaste/cmd/paste"
	"github.com/ValentinKolb/dPaste/cmd/serve"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dpaste",
		Short: "pastebin server and client",
		Long: fmt.Sprintf(`dPaste (v%s)

A pastebin service written in Go. Documents are stored under short random
keys in memory, on the filesystem, or in a bolt database, and are served as
JSON, raw text, or a rendered page.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dPaste",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dPaste v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(paste.DocumentCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
