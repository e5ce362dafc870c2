// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/silviochristian/novacal/pkg/agent"
	"github.com/silviochristian/novacal/pkg/logger"
)

func chatCmd(message string, debug bool) error {
	logger.SetDebug(debug)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	agentLoop, msgBus, store, _, err := buildRuntime(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	defer msgBus.Close()

	if strings.TrimSpace(message) != "" {
		fmt.Printf("\n%s %s\n", appName, agentLoop.ProcessDirect(context.Background(), message))
		return nil
	}

	fmt.Printf("%s Interactive mode (Ctrl+C to exit)\n\n", appName)
	interactiveMode(agentLoop)
	return nil
}

func interactiveMode(agentLoop *agent.AgentLoop) {
	prompt := fmt.Sprintf("%s You: ", appName)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".novacal_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		fmt.Println("Falling back to simple input mode...")
		simpleInteractiveMode(agentLoop)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("Goodbye!")
			return
		}

		fmt.Printf("\n%s %s\n\n", appName, agentLoop.ProcessDirect(context.Background(), input))
	}
}

func simpleInteractiveMode(agentLoop *agent.AgentLoop) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s You: ", appName)
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("Goodbye!")
			return
		}

		fmt.Printf("\n%s %s\n\n", appName, agentLoop.ProcessDirect(context.Background(), input))
	}
}
