package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X"
var Version = "dev"

const appName = "portal"

// NewRootCommand builds the portal CLI
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "University application portal",
		Long: `Portal serves the university application website: registration and login,
university and course browsing, the admin catalog forms and application submission.

Configuration is read from the environment (and .env outside production).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return SetupAndRunServer()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return SetupAndRunServer()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMigrations()
		},
	})

	var seedFile string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load universities, courses and events from YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSeed(seedFile)
		},
	}
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed YAML file (defaults to the built-in sample catalog)")
	cmd.AddCommand(seedCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}
