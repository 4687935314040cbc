package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jpollock/local-addon-cli/pkg/addon"
	"github.com/jpollock/local-addon-cli/pkg/config"
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
	"github.com/jpollock/local-addon-cli/pkg/hostapp"
	"github.com/jpollock/local-addon-cli/pkg/paths"
	"github.com/jpollock/local-addon-cli/pkg/readiness"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// statusReport is the non-mutating snapshot shown by `local-cli status`.
type statusReport struct {
	AppInstalled   bool `json:"appInstalled"`
	AddonInstalled bool `json:"addonInstalled"`
	AddonActivated bool `json:"addonActivated"`
	AppRunning     bool `json:"appRunning"`
	APIReady       bool `json:"apiReady"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: MsgStatusShort,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf(MsgErrLoadConfig, err)
		}

		pp, err := paths.New()
		if err != nil {
			return fmt.Errorf(MsgErrInitPaths, err)
		}

		fs := filesystem.NewOS()
		appProbe := hostapp.NewProbe(fs, pp, runtime.GOOS)
		addonProbe := addon.NewProbe(fs, pp)
		controller := hostapp.NewController(pp, runtime.GOOS, cfg.RestartSettle)
		ready := readiness.New(fs, pp, cfg.RequestTimeout)

		addonState := addonProbe.State()
		report := statusReport{
			AppInstalled:   appProbe.IsAppInstalled(),
			AddonInstalled: addonState.Installed,
			AddonActivated: addonState.Activated,
			AppRunning:     controller.IsRunning(),
		}
		// single probe attempt; status must never block on the full
		// readiness budget
		if report.AppRunning {
			report.APIReady = ready.CheckOnce()
		}

		if jsonOutput {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render("Local app status"))
		printCheck(out, "Host app installed", report.AppInstalled)
		printCheck(out, "Addon installed", report.AddonInstalled)
		printCheck(out, "Addon activated", report.AddonActivated)
		printCheck(out, "Host app running", report.AppRunning)
		printCheck(out, "API server ready", report.APIReady)
		return nil
	},
}

func printCheck(out io.Writer, label string, ok bool) {
	mark := badStyle.Render("✗")
	if ok {
		mark = okStyle.Render("✓")
	}
	fmt.Fprintf(out, "  %s %s\n", mark, label)
}
