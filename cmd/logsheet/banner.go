package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func printStartupBanner(cfg appConfig, recordCount int, destination string) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := cyan.Bold(true).Render(`
    ╦  ╔═╗╔═╗╔═╗╦ ╦╔═╗╔═╗╔╦╗
    ║  ║ ║║ ╦╚═╗╠═╣║╣ ║╣  ║
    ╩═╝╚═╝╚═╝╚═╝╩ ╩╚═╝╚═╝ ╩ `)

	ver := dim.Render("v" + version)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, logo)
	lines = append(lines, "    "+ver)
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	// Input
	lines = append(lines, bold.Render("    Input"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Log File       %s", check, cyan.Render(shortenPath(cfg.InputPath))))
	lines = append(lines, fmt.Sprintf("    %s  Records        %s", check, dim.Render(fmt.Sprintf("%d", recordCount))))
	lines = append(lines, fmt.Sprintf("    %s  Keywords       %s", check, dim.Render(fmt.Sprintf("%d", len(cfg.Keywords)))))
	lines = append(lines, "")

	// Output
	lines = append(lines, bold.Render("    Output"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Report         %s", check, cyan.Render(shortenPath(cfg.ReportPath))))
	lines = append(lines, fmt.Sprintf("    %s  Destination    %s", check, dim.Render(shortenPath(destination))))
	lines = append(lines, fmt.Sprintf("    %s  Interval       %s", check, dim.Render(cfg.Interval.String())))
	if cfg.RetainPerLevel > 0 {
		lines = append(lines, fmt.Sprintf("    %s  Retention      %s", check, dim.Render(fmt.Sprintf("last %d per level", cfg.RetainPerLevel))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Retention      %s", dot, dim.Render("unbounded")))
	}
	lines = append(lines, "")

	// Gateway
	lines = append(lines, bold.Render("    Gateway"))
	lines = append(lines, "")
	if cfg.APIEnabled {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render(cfg.APIAddr)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", dot, dim.Render("disabled")))
	}

	lines = append(lines, "")
	lines = append(lines, bold.Render("    Config"))
	lines = append(lines, "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "")
	lines = append(lines, separator)
	lines = append(lines, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop and move the report"))
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
