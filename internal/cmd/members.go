package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"studioops/internal/domain"
	"studioops/internal/services"
)

// MembersCmd browses and syncs the CRM member cache
type MembersCmd struct {
	List   MembersListCmd   `cmd:"list" help:"List cached members" default:"1"`
	Search MembersSearchCmd `cmd:"search" help:"Search members on the server"`
	Stats  MembersStatsCmd  `cmd:"stats" help:"Show member cache totals"`
	Sync   MembersSyncCmd   `cmd:"sync" help:"Trigger a CRM member sync"`
}

// MembersListCmd lists the cached members
type MembersListCmd struct{}

// Run executes the list command
func (l *MembersListCmd) Run(cli *CLI) error {
	ctx := context.Background()

	members, err := cli.Container.DataService.Members(ctx)
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}
	stats, err := cli.Container.DataService.MemberStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load member stats: %w", err)
	}

	rows := make([]domain.MemberRow, 0, len(members))
	for _, m := range members {
		rows = append(rows, m.Row())
	}
	rows = services.CapRows(rows)

	printMemberRows(rows)
	syncedAt := "never"
	if stats.SyncedAt != nil {
		syncedAt = *stats.SyncedAt
	}
	fmt.Printf("\n%d cached members, last synced %s\n", stats.Total, syncedAt)
	return nil
}

// MembersSearchCmd searches members server-side
type MembersSearchCmd struct {
	Query string `arg:"" help:"Name or phone fragment (minimum 2 characters)"`
}

// Run executes the search command
func (s *MembersSearchCmd) Run(cli *CLI) error {
	if !services.SearchActive(s.Query) {
		return fmt.Errorf("search query must be at least %d characters", services.SearchMinLen)
	}

	resp, err := cli.Container.DataService.MemberSearch(context.Background(), s.Query)
	if err != nil {
		return fmt.Errorf("failed to search members: %w", err)
	}

	rows := make([]domain.MemberRow, 0, len(resp.Members))
	for _, m := range resp.Members {
		rows = append(rows, m.Row())
	}
	printMemberRows(services.CapRows(rows))
	fmt.Printf("\n%d matches for %q\n", resp.Count, resp.Query)
	return nil
}

// MembersStatsCmd prints the member cache totals
type MembersStatsCmd struct{}

// Run executes the stats command
func (s *MembersStatsCmd) Run(cli *CLI) error {
	stats, err := cli.Container.DataService.MemberStats(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load member stats: %w", err)
	}
	syncedAt := "never"
	if stats.SyncedAt != nil {
		syncedAt = *stats.SyncedAt
	}
	fmt.Printf("%d cached members, last synced %s\n", stats.Total, syncedAt)
	return nil
}

// MembersSyncCmd triggers a CRM member sync
type MembersSyncCmd struct{}

// Run executes the sync command
func (s *MembersSyncCmd) Run(cli *CLI) error {
	result, err := cli.Container.DataService.SyncMembers(context.Background())
	if err != nil {
		return fmt.Errorf("member sync failed: %w", err)
	}
	fmt.Printf("Synced %d members: %s\n", result.Count, result.Message)
	return nil
}

func printMemberRows(rows []domain.MemberRow) {
	if len(rows) == 0 {
		fmt.Println("No members")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tPHONE\tTRAINER\tPT LEFT")
	for _, r := range rows {
		ptLeft := "-"
		if r.PTRemaining != nil {
			ptLeft = fmt.Sprintf("%d", *r.PTRemaining)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.JgjmKey, r.Name, r.Phone, r.TrainerName, ptLeft)
	}
	w.Flush()
}
