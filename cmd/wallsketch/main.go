package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"wallsketch/internal/config"
	"wallsketch/internal/logging"
	"wallsketch/internal/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to configuration file")
	planPath := flag.String("plan-path", "", "JSON path of the plan inside a wrapper document")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "wallsketch - terminal floor plan editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: wallsketch [options] [file]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *planPath != "" {
		cfg.Files.PlanPath = *planPath
	}

	// the terminal belongs to the UI, so logs only go to a file
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "wallsketch")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logging.Set(logging.New(cfg.Log.Level, f))
	}

	var m tui.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(cfg, flag.Arg(0))
	} else {
		m = tui.New(cfg)
	}
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
