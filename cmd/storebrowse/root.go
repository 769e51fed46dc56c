package main

import (
	"storebrowse/internal/browser"
	"storebrowse/internal/config"
	"storebrowse/internal/log"

	"github.com/spf13/cobra"
)

// options holds the persistent flags and the configuration they produce.
type options struct {
	cfgFile    string
	root       string
	filterMode string
	match      string
	watch      bool
	debug      bool

	cfg *config.Config
}

// NewRootCmd creates the root command. Without a subcommand it opens the window.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "storebrowse",
		Short:   "Browse the entries of a directory",
		Long:    `storebrowse lists the direct children of a directory (~/.password-store by default) and narrows them with a filter.`,
		Version: version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts.cfg)
		},
		SilenceUsage: true,
		// main prints the error
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/storebrowse/config.yaml)")
	flags.StringVar(&opts.root, "root", "", "directory to browse (default from config, ~/.password-store)")
	flags.StringVar(&opts.filterMode, "filter-mode", "", "filter mode: substring, glob or fuzzy")
	flags.StringVar(&opts.match, "match", "", "what the filter is matched against: path or name")
	flags.BoolVar(&opts.watch, "watch", false, "mark the listing stale when the directory changes")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewGUICmd(opts))
	rootCmd.AddCommand(NewTUICmd(opts))
	rootCmd.AddCommand(NewListCmd(opts))

	return rootCmd
}

// load reads the config file and applies flag overrides on top of it.
func (o *options) load(cmd *cobra.Command) error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		o.cfg.Root = o.root
	}
	if flags.Changed("filter-mode") {
		o.cfg.Filter.Mode = o.filterMode
	}
	if flags.Changed("match") {
		o.cfg.Filter.Match = o.match
	}
	if flags.Changed("watch") {
		o.cfg.Watch = o.watch
	}
	if flags.Changed("debug") {
		o.cfg.Debug = o.debug
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}

	log.Configure(log.WithOutput(cmd.ErrOrStderr()))
	log.SetDebug(o.cfg.Debug)
	log.LogWithFields(
		log.F("root", o.cfg.Root),
		log.F("mode", o.cfg.Filter.Mode),
		log.F("match", o.cfg.Filter.Match),
	).Debug("Configuration loaded")
	return nil
}

// newState builds the browser state for the configured root. Nothing is read
// until the first reload.
func newState(cfg *config.Config) (*browser.State, error) {
	root, err := cfg.RootPath()
	if err != nil {
		return nil, err
	}
	return browser.NewState(root, browser.OptionsFromConfig(cfg)), nil
}
