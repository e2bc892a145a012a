// swiglls generates Lua language server annotation files from SWIG XML.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phobologic/swiglls/internal/config"
	"github.com/phobologic/swiglls/internal/logger"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(context.Background())
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	verbose    bool
	jsonLog    bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "swiglls",
		Short: "Lua language server annotations for SWIG bindings",
		Long: `swiglls reads the XML interface description SWIG writes with -xml and
generates ---@meta files for the Lua language server, so bound native classes,
functions and enums get completion and type checking.

Examples:
  swig -lua -c++ -xml -o physics.xml physics.i
  swiglls generate physics.xml          # writes ./meta/*.lua
  swiglls generate -o lua/meta bindings # every *.xml under bindings/
  swiglls check meta                    # syntax check generated files
  swiglls dump physics.xml              # show the symbol model as YAML
  swiglls init                          # write a commented swiglls.toml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("swiglls {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ./"+config.FileName+")")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "also log skipped overloads")
	cmd.PersistentFlags().BoolVar(&flags.jsonLog, "json", false, "log diagnostics as JSON")

	cmd.AddCommand(
		newGenerateCmd(&flags),
		newCheckCmd(&flags),
		newDumpCmd(&flags),
		newInitCmd(),
	)
	return cmd
}

// env is the loaded configuration and logger of one command invocation.
type env struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// setup loads the configuration, letting command line flags that were set
// override it. bindings maps config keys to local flag names.
func setup(cmd *cobra.Command, flags *rootFlags, bindings map[string]string) (*env, error) {
	v, err := config.NewViper(flags.configPath)
	if err != nil {
		return nil, err
	}

	all := map[string]string{"log.verbose": "verbose", "log.json": "json"}
	for key, name := range bindings {
		all[key] = name
	}
	for key, name := range all {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return nil, errors.Wrapf(err, "binding flag --%s", name)
		}
	}

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: logger.New(cmd.ErrOrStderr(), cfg.Log.Verbose, cfg.Log.JSON)}, nil
}
