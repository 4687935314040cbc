package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jpollock/local-addon-cli/pkg/bootstrap"
	"github.com/jpollock/local-addon-cli/pkg/config"
	"github.com/jpollock/local-addon-cli/pkg/filesystem"
	"github.com/jpollock/local-addon-cli/pkg/logging"
	"github.com/jpollock/local-addon-cli/pkg/paths"
)

var skipAddon bool

func init() {
	connectCmd.Flags().BoolVar(&skipAddon, "skip-addon", false, "Skip the addon install/activation check")
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: MsgConnectShort,
	Long:  MsgConnectLong,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.connect")
		logger.Info().Bool("skipAddon", skipAddon).Msg("Starting connect")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf(MsgErrLoadConfig, err)
		}

		pp, err := paths.New()
		if err != nil {
			return fmt.Errorf(MsgErrInitPaths, err)
		}

		orch := bootstrap.New(filesystem.NewOS(), pp, runtime.GOOS, cfg)

		var onStatus func(string)
		if !jsonOutput {
			onStatus = func(line string) {
				pterm.Info.Println(line)
			}
		}

		result := orch.Bootstrap(bootstrap.Options{
			SkipAddon: skipAddon,
			OnStatus:  onStatus,
		})

		if jsonOutput {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(result); err != nil {
				return err
			}
			if !result.Success {
				os.Exit(1)
			}
			return nil
		}

		if !result.Success {
			pterm.Error.Println(result.Error)
			os.Exit(1)
		}

		info := result.ConnectionInfo
		pterm.Success.Println("Local app is ready")
		fmt.Printf(MsgConnected, info.URL)
		fmt.Printf(MsgSubscriptions, info.SubscriptionURL)
		if info.AuthToken != "" {
			fmt.Print(MsgAuthConfigured)
		} else {
			fmt.Print(MsgAuthAbsent)
		}
		return nil
	},
}
