package cmd

import (
	"context"
	"fmt"
)

// StatusCmd prints today's session counts in a single line, suitable for
// embedding in a tmux status bar
type StatusCmd struct{}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	snapshot, err := cli.Container.DataService.Dashboard(context.Background())
	if err != nil {
		// Backend unreachable
		fmt.Print("done:? cancelled:? no-show:? pending:?")
		return nil
	}

	fmt.Printf("done:%d cancelled:%d no-show:%d pending:%d",
		snapshot.Sessions.Completed,
		snapshot.Sessions.Cancelled,
		snapshot.Sessions.NoShow,
		snapshot.PendingExport)
	return nil
}
