package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/crimson-sun/logtriage/internal/config"
	"github.com/crimson-sun/logtriage/internal/logging"

	// Register source implementations.
	_ "github.com/crimson-sun/logtriage/internal/source/file"
	_ "github.com/crimson-sun/logtriage/internal/source/remote"
	_ "github.com/crimson-sun/logtriage/internal/source/stdin"
)

// app carries state shared by subcommands once the root has loaded
// configuration.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
}

// bind maps a flag onto a config key so an explicitly set flag overrides
// file and env values.
func (a *app) bind(cmd *cobra.Command, flag, key string) {
	if f := cmd.Flags().Lookup(flag); f != nil {
		_ = a.v.BindPFlag(key, f)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "logtriage",
		Short: "Turn raw log batches into ranked, summarized incidents",
		Long: `logtriage parses "<date> <time>, <level> <component> <message>" log lines,
groups them into incidents, assigns a severity to every record based on its
content and how often its incident repeats, and prints a ranked report with
an executive summary.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWith(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.NewWithSink(zapcore.AddSync(cmd.ErrOrStderr()),
				cfg.Logging.Format, logging.ParseLevel(cfg.Logging.Level))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./logtriage.yaml or /etc/logtriage/logtriage.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "json", "log format: json or console")
	_ = a.v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("logging.format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(newAnalyzeCmd(a), newGenerateCmd(a))
	return root
}
