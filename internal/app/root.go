package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/binctl/internal/config"
	"github.com/blackwell-systems/binctl/internal/fetch"
	ghclient "github.com/blackwell-systems/binctl/internal/github"
	"github.com/blackwell-systems/binctl/internal/manifest"
	"github.com/blackwell-systems/binctl/internal/pipeline"
	"github.com/blackwell-systems/binctl/internal/platform"
	"github.com/blackwell-systems/binctl/internal/util"
)

var (
	cfg    *config.Config
	gh     *ghclient.Client
	store  *manifest.Store
	runner *pipeline.Runner
	log    = logrus.New()

	flagNoColor       bool
	flagNoInteractive bool
	flagVerbose       bool
	flagConfig        string
)

var rootCmd = &cobra.Command{
	Use:   "binctl",
	Short: "Install and manage prebuilt binaries from GitHub releases",
	Long: `binctl installs tools published as GitHub release assets.

It picks the asset matching your OS and architecture, verifies published
checksums, drops the executables into one bin directory and records what it
installed in a manifest — so updating and uninstalling stay one command away.

Add ~/.binctl/bin to your PATH once and every installed tool is available.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Never prompt; pick defaults")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/binctl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
		if flagVerbose {
			log.SetLevel(logrus.DebugLevel)
		}

		if flagConfig != "" {
			// config.Load resolves the file through this variable.
			os.Setenv("BINCTL_CONFIG", flagConfig)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.EnsureDirs(); err != nil {
			return err
		}

		store, err = manifest.Load(cfg.ManifestPath())
		if err != nil {
			return fmt.Errorf("loading manifest: %w", err)
		}

		gh = ghclient.New(cfg.GitHub.Token, cfg.GitHub.APIBase)
		runner = &pipeline.Runner{
			Client:   gh,
			Fetcher:  fetch.New(),
			Store:    store,
			Cfg:      cfg,
			Platform: platform.Detect(),
			Progress: progressHook(),
			Log:      log,
		}
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newInstallCmd(),
		newUninstallCmd(),
		newUpdateCmd(),
		newUpgradeCmd(),
		newListCmd(),
		newInfoCmd(),
		newSearchCmd(),
		newOutdatedCmd(),
		newPinCmd(),
		newUnpinCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
