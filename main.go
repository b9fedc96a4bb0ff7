package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"bizpilot/config"
	"bizpilot/dictation"
	"bizpilot/model"
	"bizpilot/provider"
	"bizpilot/ui"
)

const (
	Version = "v0.1.0"
	License = "Apache-2.0"
)

// showError runs a one-screen program explaining why BizPilot cannot start.
func showError(title, message string) {
	p := tea.NewProgram(ui.NewErrorModal(title, message), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func main() {
	os.Exit(run())
}

// closeProvider releases providers that hold a client connection (Gemini).
func closeProvider(p model.Provider) {
	c, ok := p.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		config.DebugLog.Warnf("[main] closing provider: %v", err)
	}
}

// run returns the exit code so that deferred cleanup happens before os.Exit.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		showError("Configuration Error", fmt.Sprintf("%v\n\nFix config.toml in your data directory or the BIZPILOT_* environment variables, then start BizPilot again.", err))
		return 1
	}

	config.InitDebugLog(cfg.DataDir())
	defer config.SyncDebugLog()

	p, err := provider.InitializeProvider(cfg)
	if err != nil {
		showError("Provider Error", err.Error())
		return 1
	}
	defer closeProvider(p)

	dataModel := model.NewModel(cfg, p)
	dict := dictation.NewCommand(cfg.DictationCommand)

	program := tea.NewProgram(
		ui.NewAppView(dataModel, dict, Version, License),
		tea.WithAltScreen(),
	)

	_, runErr := program.Run()

	// Quit already does this; a crash or signal may not have
	dataModel.Close()
	if dict.Listening() {
		_ = dict.StopListening()
	}

	if runErr != nil {
		config.DebugLog.Errorf("[main] %v", runErr)
		fmt.Printf("Error running bizpilot: %v\n", runErr)
		return 1
	}
	return 0
}
