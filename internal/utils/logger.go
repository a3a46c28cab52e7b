package utils

import (
	"log"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

var (
	Info  = log.New(os.Stdout, "[INFO] ", log.LstdFlags|log.Lshortfile)
	Error = log.New(os.Stderr, "[ERROR] ", log.LstdFlags|log.Lshortfile)
)

// Print is the styled logger for human-facing server output.
var Print *charmlog.Logger

func Init() {
	Print = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "tarneeb",
	})

	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Padding(0, 1).
		Foreground(lipgloss.Color("#2E8B57")).Bold(true)
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Padding(0, 1).
		Foreground(lipgloss.Color("#B8860B")).Bold(true)
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1).
		Foreground(lipgloss.Color("#CD2626")).Bold(true)
	styles.Levels[charmlog.FatalLevel] = lipgloss.NewStyle().
		SetString("FATAL").
		Padding(0, 1).
		Foreground(lipgloss.Color("#8B0000")).Bold(true)
	Print.SetStyles(styles)
}
