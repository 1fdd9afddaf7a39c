package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cloudchase/modelfetch/config"
	"github.com/cloudchase/modelfetch/logger"
	"github.com/cloudchase/modelfetch/registry"
)

// app carries state shared by every command of one invocation.
type app struct {
	cfgFile     string
	logLevel    string
	registryDir string

	cfg *config.Config
	log *logger.Logger
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	fo := &fetchOptions{}

	rootCmd := &cobra.Command{
		Use:   "modelfetch",
		Short: "Download a pretrained model file",
		Long: `Download the FaceNet TFLite model (or any configured model file) to a local
directory, printing progress and what to do next. Running without a
subcommand is the same as 'modelfetch fetch'.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFetch(cmd, fo)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./modelfetch.yaml or $HOME/.modelfetch/modelfetch.yaml)")
	pf.StringVar(&a.logLevel, "log-level", "", "diagnostic log level: trace, debug, info, warn, error")
	pf.StringVar(&a.registryDir, "registry-dir", "", "directory holding fetched model records")

	fo.addFlags(rootCmd.Flags())

	rootCmd.AddCommand(newFetchCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.registryDir != "" {
		cfg.Registry.Dir = a.registryDir
	}
	a.cfg = cfg

	a.log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
		Out:    cmd.ErrOrStderr(),
	})
	a.log.Debug().Str("command", cmd.Name()).Str("config", a.cfgFile).Msg("Configuration loaded")
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) error {
	if a.log == nil {
		return nil
	}
	return a.log.Close()
}

func (a *app) manager() (*registry.ModelManager, error) {
	if a.cfg.Registry.Dir == "" {
		return nil, errors.New("no registry directory: home directory is unknown, set --registry-dir or registry.dir")
	}
	mgr, err := registry.NewModelManager(a.cfg.Registry.Dir)
	if err != nil {
		return nil, errors.Wrap(err, "init model registry")
	}
	return mgr, nil
}
