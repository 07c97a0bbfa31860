package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/reactchat/pkg/chatkit"
	"github.com/aeolun/reactchat/pkg/client"
	"github.com/aeolun/reactchat/pkg/client/ui"
)

func main() {
	// Command line flags
	server := flag.String("server", "", "Gateway address (ws:// or wss:// URL, overrides config)")
	local := flag.Bool("local", false, "Run against the built-in demo session instead of a gateway")
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/reactchat/config.toml)")
	channel := flag.String("channel", "", "Channel to join (overrides config)")
	nickname := flag.String("nickname", "", "Nickname to use (overrides saved state)")
	flag.Parse()

	// Keep log output away from the TUI
	logPath := client.DefaultLogPath()
	if logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	if *configPath == "" {
		*configPath = client.DefaultConfigPath()
	}

	cfg, err := client.LoadClientConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	gatewayURL := cfg.Connection.GatewayURL
	if *server != "" {
		gatewayURL = *server
	}
	channelID := cfg.Connection.DefaultChannel
	if *channel != "" {
		channelID = *channel
	}

	statePath, err := cfg.GetStateDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve state path: %v\n", err)
		os.Exit(1)
	}

	state, err := client.OpenState(statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open state database: %v\n", err)
		os.Exit(1)
	}
	defer state.Close()

	if *nickname != "" {
		if err := state.SetLastNickname(*nickname); err != nil {
			log.Printf("Failed to save nickname: %v", err)
		}
	}
	nick := state.GetLastNickname()
	if nick == "" {
		nick = "guest"
	}

	var session chatkit.Session
	if *local {
		session = chatkit.NewLocalSession(nick, 4*time.Second, time.Now().UnixNano())
	} else {
		ws, err := chatkit.NewWSSession(gatewayURL, nick)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid gateway URL %s: %v\n", gatewayURL, err)
			os.Exit(1)
		}
		session = ws
	}

	if err := session.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to %s: %v\n", gatewayURL, err)
		os.Exit(1)
	}
	defer session.Close()

	notifier := client.NewNotifier(cfg.UI.Notifications)

	model := ui.NewModel(session, state, notifier, channelID, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
