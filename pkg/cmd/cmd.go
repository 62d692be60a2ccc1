// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Karin-Goldin/wedding-app/pkg/app"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "weddingapp",
		Short: "A guest media upload and gallery service for wedding events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCmd.RunE(cmd, args)
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.NewApp(configPath)
			defer a.Shutdown()

			return a.Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose command output")

	rootCmd.AddCommand(serveCmd)
	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
