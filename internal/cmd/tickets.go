package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"studioops/internal/services"
)

// TicketsCmd browses and syncs the lesson ticket cache
type TicketsCmd struct {
	List TicketsListCmd `cmd:"list" help:"List lesson tickets" default:"1"`
	Sync TicketsSyncCmd `cmd:"sync" help:"Trigger a CRM lesson ticket sync"`
}

// TicketsListCmd lists lesson tickets, optionally filtered by name
type TicketsListCmd struct {
	Filter string `help:"Filter by member or trainer name substring"`
}

// Run executes the list command
func (l *TicketsListCmd) Run(cli *CLI) error {
	tickets, err := cli.Container.DataService.LessonTickets(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list lesson tickets: %w", err)
	}

	filtered := services.CapRows(services.FilterTickets(l.Filter, tickets))
	if len(filtered) == 0 {
		fmt.Println("No lesson tickets")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tTRAINER\tTYPE\tREMAINING\tTOTAL\tENDS")
	for _, t := range filtered {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			t.MemberName, t.TrainerName, t.TicketType, t.RemainingCount, t.TotalCount, t.EndDate)
	}
	return w.Flush()
}

// TicketsSyncCmd triggers a CRM lesson ticket sync
type TicketsSyncCmd struct{}

// Run executes the sync command
func (s *TicketsSyncCmd) Run(cli *CLI) error {
	if _, err := cli.Container.DataService.SyncTickets(context.Background()); err != nil {
		return fmt.Errorf("lesson ticket sync failed: %w", err)
	}
	fmt.Println("Lesson ticket sync completed")
	return nil
}
