package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
	"github.td.teradata.com/sandbox/jot/internal/config"
	"github.td.teradata.com/sandbox/jot/internal/driver"
	"github.td.teradata.com/sandbox/jot/internal/log"
	"github.td.teradata.com/sandbox/jot/internal/services/common"
	"github.td.teradata.com/sandbox/jot/internal/services/display"
	"github.td.teradata.com/sandbox/jot/internal/services/geometry"
	"github.td.teradata.com/sandbox/jot/internal/services/keyboard"
	"github.td.teradata.com/sandbox/jot/internal/services/terminal"
	"io"
	"os"
)

const name = "jot"

var (
	cfgFile  string
	logFile  string
	logLevel string
	strategy string
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:           name,
	Short:         "jot is a terminal text editor",
	Long:          "jot takes over the terminal, draws the screen and reads keys until Ctrl-Q.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfigE(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode = runEditor(config.CLIConfig, os.Stdin, os.Stdout, os.Stderr)
		return nil
	},
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "%s: %v\n", name, err)
		return 1
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "configuration file for jot")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append log output to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR")
	rootCmd.PersistentFlags().StringVar(&strategy, "geometry", "", "window size discovery: query or fallback")
}

// initConfigE loads the configuration and lets explicitly set flags win over it.
func initConfigE(cmd *cobra.Command) error {
	if err := config.NewConfig(cfgFile); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-file") {
		config.CLIConfig.Log.File = logFile
	}
	if flags.Changed("log-level") {
		config.CLIConfig.Log.Level = logLevel
	}
	if flags.Changed("geometry") {
		config.CLIConfig.Geometry.Strategy = strategy
	}
	return config.CLIConfig.Validate()
}

// runEditor wires the editor to in and out and runs it under a supervisor. Nothing below this point
// exits the process; the returned code is the exit status.
func runEditor(cfg *config.Config, in *os.File, out *os.File, diag io.Writer) int {
	w, err := log.OpenFile(cfg.Log.File)
	if err != nil {
		_, _ = fmt.Fprintf(diag, "%s: %v\n", name, err)
		return 1
	}
	defer w.Close()

	lc := log.NewLogConfigurator()
	lc.Writer = w
	lc.Level = cfg.Log.Level
	log.Setup(lc)
	l := log.GetDefaultLogger()

	quit, err := cfg.QuitKey()
	if err != nil {
		log.Errorf("Quit key rejected: %v", err)
		_, _ = fmt.Fprintf(diag, "%s: %v\n", name, err)
		return 1
	}
	log.Infof("Starting %s with geometry strategy %s", name, cfg.Strategy())
	log.Debugf("Placeholder %q, quit on Ctrl-%c, idle timeout %v", cfg.Editor.Placeholder, quit, cfg.Terminal.IdleTimeout)

	screen := display.New(out, cfg.Editor.Placeholder, l)

	var sup *driver.Supervisor
	session := terminal.New(terminal.NewDevice(in.Fd()),
		terminal.WithIdleTimeout(cfg.Terminal.IdleTimeout),
		terminal.WithLogger(l),
		terminal.WithSignalGuard(func(sig os.Signal) {
			os.Exit(sup.Fail(common.NewOpError("signal", terminal.ErrTerminated, fmt.Errorf("%v", sig))))
		}),
	)
	sup = driver.NewSupervisor(name, session, screen, diag, l)

	keys := keyboard.NewReader(keyboard.NewFdSource(in.Fd()), l)
	prober := geometry.New(out, keys, geometry.TerminalSize(out.Fd()), cfg.Strategy(), l)
	d := driver.New(screen, keys, prober, driver.NewKeymap(quit), l)

	return sup.Run(func() error {
		if err := session.Enter(); err != nil {
			return err
		}
		return d.Run()
	})
}
