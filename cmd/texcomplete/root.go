package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/texcomplete"
	"github.com/iw2rmb/texcomplete/internal/config"
	"github.com/iw2rmb/texcomplete/internal/log"
	"github.com/iw2rmb/texcomplete/latex"
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	engine  *latex.Engine
	cleanup func()

	watchTable bool
}

// newEngine builds an engine over t, tracing to the debug log when it is on.
func (a *app) newEngine(t latex.Table) *latex.Engine {
	if log.Enabled() {
		return latex.New(t, latex.WithLogger(log.Printer(log.CatEngine)))
	}
	return latex.New(t)
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "texcomplete [file]",
		Short:         "LaTeX equation editor with command completion",
		Long:          "texcomplete completes LaTeX commands and environment names as you type and keeps \\begin/\\end tags paired.",
		Version:       texcomplete.VersionTag(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(cmd, args)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.cleanup != nil {
				a.cleanup()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: ./"+config.LocalFile+" or ~/.config/texcomplete/config.yaml)")
	pf.String("table", "", "YAML command/environment table merged over the built-in one")
	pf.Bool("debug", false, "write debug logs to --log-file")
	pf.String("log-file", "", "debug log path")
	_ = a.v.BindPFlag("table", pf.Lookup("table"))
	_ = a.v.BindPFlag("debug", pf.Lookup("debug"))
	_ = a.v.BindPFlag("log_file", pf.Lookup("log-file"))

	root.AddCommand(newEditCmd(a), newCompleteCmd(a), newTableCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Debug {
		cleanup, err := log.InitWithTeaLog(cfg.LogFile, "texcomplete")
		if err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		a.cleanup = cleanup
		log.Info(log.CatCLI, "start", "command", cmd.Name(), "version", texcomplete.Version())
	}

	table, err := cfg.LoadTable()
	if err != nil {
		return err
	}
	a.engine = a.newEngine(table)

	// Query the terminal background before Bubble Tea owns stdin.
	_ = lipgloss.HasDarkBackground()
	return nil
}
