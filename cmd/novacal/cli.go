// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func executeCLI() error {
	return buildRootCommand().Execute()
}

func buildRootCommand() *cobra.Command {
	var showVersion bool

	root := &cobra.Command{
		Use:   "novacal",
		Short: "Personal calendar assistant with Telegram gateway and Google Calendar tools",
		Long: strings.TrimSpace(`novacal is a single-owner conversational calendar assistant.

It understands natural language, manages events on your Google Calendar, and
talks to you over Telegram or Discord. A local chat mode is available for
testing without a bot token.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion()
				return nil
			}
			_ = cmd.Help()
			return fmt.Errorf("a subcommand is required")
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Show build/version metadata")

	root.AddCommand(newOnboardCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newChatCommand())
	root.AddCommand(newStatusCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func newOnboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "onboard",
		Short:   "Initialize ~/.novacal config",
		Long:    "Create the default configuration file for a new novacal installation.",
		Example: "  novacal onboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return onboard()
		},
	}
}

func newRunCommand() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the bot gateway",
		Long:    "Start the Telegram/Discord transports, the agent loop, and the optional daily digest.",
		Example: "  novacal run --debug",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCmd(debug)
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	return cmd
}

func newChatCommand() *cobra.Command {
	var (
		message string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant locally (no bot token needed)",
		Long:  "Run an interactive local session or send a one-shot message, talking to the real calendar.",
		Example: strings.Join([]string{
			"  novacal chat",
			"  novacal chat --message \"What's on my calendar tomorrow?\"",
		}, "\n"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return chatCmd(message, debug)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "One-shot prompt to send to the assistant")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Show configuration and runtime readiness",
		Example: "  novacal status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return statusCmd()
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Show build/version metadata",
		Example: "  novacal version",
		RunE: func(cmd *cobra.Command, args []string) error {
			printVersion()
			return nil
		},
	}
}
