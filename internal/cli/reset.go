package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"
)

func newResetCommand(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all sessions, subjects, tasks and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				cmd.Print("This wipes all focusflow data. Type 'yes' to continue: ")
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if strings.TrimSpace(strings.ToLower(line)) != "yes" {
					cmd.Println("Aborted.")
					return nil
				}
			}
			if err := e.state.ResetAll(); err != nil {
				return err
			}
			cmd.Println("All data reset.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
