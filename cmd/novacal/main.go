// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/silviochristian/novacal/pkg/agent"
	"github.com/silviochristian/novacal/pkg/bus"
	"github.com/silviochristian/novacal/pkg/channels"
	"github.com/silviochristian/novacal/pkg/config"
	"github.com/silviochristian/novacal/pkg/digest"
	"github.com/silviochristian/novacal/pkg/gcal"
	"github.com/silviochristian/novacal/pkg/logger"
	"github.com/silviochristian/novacal/pkg/memory"
	"github.com/silviochristian/novacal/pkg/providers"
)

var (
	version   = "dev"
	gitCommit string
	buildTime string
)

const appName = "novacal"

func formatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

func printVersion() {
	fmt.Printf("%s %s\n", appName, formatVersion())
	if buildTime != "" {
		fmt.Printf("  Build: %s\n", buildTime)
	}
	fmt.Printf("  Go: %s\n", runtime.Version())
}

func main() {
	// Local .env overrides nothing already exported; missing file is fine.
	_ = godotenv.Load()

	if err := executeCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getConfigPath() string {
	if p := os.Getenv("NOVACAL_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".novacal", "config.json")
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(getConfigPath())
}

func onboard() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists at %s\n", configPath)
		fmt.Print("Overwrite? (y/n): ")
		reader := bufio.NewReader(os.Stdin)
		response, readErr := reader.ReadString('\n')
		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if err := config.SaveConfig(configPath, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("%s is ready!\n", appName)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Set agent.owner_id and provider.api_key in", configPath)
	fmt.Println("  2. Add your Telegram bot token to channels.telegram.token")
	fmt.Println("  3. Place your Google Calendar token.json next to the binary")
	fmt.Println("  4. Chat locally: novacal chat -m \"What's on today?\"")
	fmt.Println("  5. Run the bot: novacal run")
	return nil
}

// buildRuntime wires everything one turn needs: provider, store, calendar
// backend, bus, and the agent loop. The calendar client is returned so other
// components (the digest scheduler) share the same authenticated backend.
func buildRuntime(cfg *config.Config) (*agent.AgentLoop, *bus.MessageBus, *memory.Store, *gcal.Client, error) {
	if err := cfg.MaterializeCredentialFiles(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("materialize calendar credentials: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	provider, err := providers.NewGeminiProvider(cfg.Provider.APIBase, cfg.Provider.APIKey, cfg.Agent.Model, cfg.Provider.Proxy)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("create provider: %w", err)
	}

	store, err := memory.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("open memory store: %w", err)
	}

	calendar, err := gcal.NewClient(cfg.Calendar.TokenFile)
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, nil, fmt.Errorf("create calendar client: %w", err)
	}

	msgBus := bus.NewMessageBus()
	loop := agent.NewAgentLoop(cfg, msgBus, provider, store, calendar)
	return loop, msgBus, store, calendar, nil
}

func runCmd(debug bool) error {
	logger.SetDebug(debug)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	agentLoop, msgBus, store, calendar, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	defer msgBus.Close()

	channelManager, err := channels.NewManager(cfg, msgBus)
	if err != nil {
		return fmt.Errorf("creating channel manager: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := channelManager.StartAll(ctx); err != nil {
		return fmt.Errorf("starting channels: %w", err)
	}
	fmt.Printf("✓ Channels enabled: %s\n", strings.Join(channelManager.GetEnabledChannels(), ", "))

	if cfg.Digest.Enabled {
		go digest.NewScheduler(cfg, msgBus, calendar).Run(ctx)
		fmt.Printf("✓ Daily digest scheduled: %s\n", cfg.Digest.Cron)
	}

	go agentLoop.Run(ctx)
	fmt.Println("✓ NovaCal is running. Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
	cancel()
	agentLoop.Stop()
	_ = channelManager.StopAll(context.Background())
	fmt.Println("✓ Stopped")
	return nil
}

func statusCmd() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	configPath := getConfigPath()

	fmt.Printf("%s Status\n", appName)
	fmt.Printf("Version: %s\n\n", formatVersion())

	checkFile := func(label, path string) {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("%s: %s ✓\n", label, path)
		} else {
			fmt.Printf("%s: %s ✗\n", label, path)
		}
	}

	checkFile("Config", configPath)
	checkFile("Memory DB", cfg.Storage.DatabasePath)
	checkFile("Calendar token", cfg.Calendar.TokenFile)

	if cfg.Agent.OwnerID != "" {
		fmt.Println("Owner ID: set ✓")
	} else {
		fmt.Println("Owner ID: missing ✗")
	}
	if cfg.Provider.APIKey != "" {
		fmt.Println("Provider API key: set ✓")
	} else {
		fmt.Println("Provider API key: missing ✗")
	}
	if cfg.Channels.Telegram.Token != "" {
		fmt.Println("Telegram token: set ✓")
	} else {
		fmt.Println("Telegram token: missing ✗")
	}
	fmt.Printf("Model: %s\n", cfg.Agent.Model)
	return nil
}
