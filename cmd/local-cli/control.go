package main

import (
	"fmt"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jpollock/local-addon-cli/pkg/config"
	"github.com/jpollock/local-addon-cli/pkg/hostapp"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

// newController builds a process controller for the current platform.
func newController() (*hostapp.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	pp, err := paths.New()
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	return hostapp.NewController(pp, runtime.GOOS, cfg.RestartSettle), nil
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: MsgStartShort,
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := newController()
		if err != nil {
			return err
		}
		if controller.IsRunning() {
			pterm.Info.Println("Local app is already running")
			return nil
		}
		controller.Start()
		pterm.Success.Println("Local app launched")
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: MsgStopShort,
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := newController()
		if err != nil {
			return err
		}
		controller.Stop()
		pterm.Success.Println("Local app stopped")
		return nil
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: MsgRestartShort,
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := newController()
		if err != nil {
			return err
		}
		controller.Restart()
		pterm.Success.Println("Local app restarted")
		return nil
	},
}
