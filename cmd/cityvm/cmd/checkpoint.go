package cmd

import (
	"fmt"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint <pid>",
	Short: "Force an out-of-band checkpoint on a running cityvm process",
	Long: `Sends SIGHUP to the given process ID, the same signal the running
instance's own supervisor treats as an immediate snapshot request that
does not interrupt the program.`,
	Args: cobra.ExactArgs(1),
	RunE: forceCheckpoint,
}

func init() {
	rootCmd.AddCommand(checkpointCmd)
}

func forceCheckpoint(cmd *cobra.Command, args []string) error {
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pid %q: %w", args[0], err)
	}
	if err := syscall.Kill(pid, syscall.SIGHUP); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}
	return nil
}
