// Command superpixel splits images into color planes and encodes them as
// superpixel pyramids.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/cocosip/go-superpixel/codec/spxcodec"
	"github.com/cocosip/go-superpixel/internal/logx"
)

type app struct {
	cfg Config
	log logx.Logger

	configPath string
	logLevel   string
	color      string
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = a.color
	}

	lvl, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	mode, err := logx.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logx.NewLogToX(logx.NewStreamLogger(os.Stderr, lvl, mode), "superpixel")
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{log: logx.Nop()}
	root := &cobra.Command{
		Use:           "superpixel",
		Short:         "2x2 superpixel transform tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "TOML configuration file")
	pf.StringVar(&a.logLevel, "log-level", DefaultConfig.LogLevel, "debug, info, notice, warn, error or critical")
	pf.StringVar(&a.color, "color", DefaultConfig.Color, "colored logs: auto, on or off")

	root.AddCommand(
		newSplitCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newLevelsCmd(a),
		newDicomCmd(a),
		newCodecsCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "superpixel: %v\n", err)
		os.Exit(1)
	}
}
