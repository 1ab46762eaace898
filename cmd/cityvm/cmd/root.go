package cmd

import (
	"fmt"
	"os"

	"github.com/Net-Set/CodeCity/internal/supervisor"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cityvm <config-file>",
	Short: "Persistent virtual-machine process for a snapshot-capable ES5 dialect",
	Long: `cityvm hosts a single running program whose entire state — code,
closures, objects, and in-flight execution stacks — lives in a heap that
is checkpointed to disk and restored across restarts.

Given a config file, it restores the most recent snapshot in the
configured database directory, or loads that directory's startup sources
from scratch if no snapshot exists yet, then runs until a termination
signal or the program's own shutdown call.`,
	Version: Version,
	Args:    cobra.ExactArgs(1),
	RunE:    runVM,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runVM(cmd *cobra.Command, args []string) error {
	cfg, err := supervisor.LoadConfig(args[0])
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "cityvm: database directory %s\n", cfg.DatabaseDirectory)
	}

	// No concrete grammar ships with this module: parsing a real source
	// file is an external collaborator (see internal/ast.Parser). A
	// caller embedding this command can register one via
	// supervisor.New's parser argument; this binary leaves it nil, which
	// still allows restoring from an existing snapshot.
	sup := supervisor.New(cfg, nil, os.Stderr)
	if err := sup.Bootstrap(); err != nil {
		return err
	}
	os.Exit(sup.Run())
	return nil
}
