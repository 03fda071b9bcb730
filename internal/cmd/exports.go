package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"studioops/internal/domain"
)

// ExportsCmd manages salary exports
type ExportsCmd struct {
	Create    ExportsCreateCmd    `cmd:"create" help:"Create a salary export for a date range"`
	Download  ExportsDownloadCmd  `cmd:"download" help:"Download an export file"`
	Downloads ExportsDownloadsCmd `cmd:"downloads" help:"List previously downloaded export files"`
	List      ExportsListCmd      `cmd:"list" help:"List export history" default:"1"`
	Pending   ExportsPendingCmd   `cmd:"pending" help:"Show how many sessions await export"`
}

// ExportsListCmd lists the export history
type ExportsListCmd struct{}

// Run executes the list command
func (l *ExportsListCmd) Run(cli *CLI) error {
	resp, err := cli.Container.DataService.Exports(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list exports: %w", err)
	}

	if len(resp.Exports) == 0 {
		fmt.Println("No exports yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXPORT ID\tRANGE\tSESSIONS\tSTATUS\tCREATED")
	for _, e := range resp.Exports {
		fmt.Fprintf(w, "%s\t%s..%s\t%d\t%s\t%s\n",
			e.ExportID, e.StartDate, e.EndDate, e.SessionCount, e.Status,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// ExportsCreateCmd creates a new salary export
type ExportsCreateCmd struct {
	Start string `help:"Start date (YYYY-MM-DD, defaults to first of this month)"`
	End   string `help:"End date (YYYY-MM-DD, defaults to today)"`
}

// Run executes the create command
func (c *ExportsCreateCmd) Run(cli *CLI) error {
	now := time.Now()
	start := c.Start
	if start == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	end := c.End
	if end == "" {
		end = now.Format("2006-01-02")
	}

	req := domain.ExportRequest{EndDate: end, StartDate: start}
	if err := req.Validate(); err != nil {
		return err
	}

	created, err := cli.Container.DataService.CreateExport(context.Background(), req)
	if err != nil {
		return fmt.Errorf("failed to create export: %w", err)
	}

	fmt.Printf("Created export %s covering %s..%s (%d sessions)\n",
		created.ExportID, created.StartDate, created.EndDate, created.SessionCount)
	return nil
}

// ExportsDownloadCmd downloads an export file to the download directory
type ExportsDownloadCmd struct {
	ExportID string `arg:"" help:"Export id to download"`
}

// Run executes the download command
func (d *ExportsDownloadCmd) Run(cli *CLI) error {
	path, err := cli.Container.DownloadService.Download(context.Background(), d.ExportID)
	if err != nil {
		return fmt.Errorf("failed to download export %s: %w", d.ExportID, err)
	}
	fmt.Printf("Saved %s\n", path)
	return nil
}

// ExportsDownloadsCmd lists the local download history
type ExportsDownloadsCmd struct{}

// Run executes the downloads command
func (d *ExportsDownloadsCmd) Run(cli *CLI) error {
	records, err := cli.Container.DownloadService.History(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load download history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No downloads yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXPORT ID\tPATH\tSIZE\tDOWNLOADED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			r.ExportID, r.Path, r.SizeBytes,
			r.DownloadedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// ExportsPendingCmd shows the pending export count
type ExportsPendingCmd struct{}

// Run executes the pending command
func (p *ExportsPendingCmd) Run(cli *CLI) error {
	pending, err := cli.Container.DataService.PendingExports(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load pending exports: %w", err)
	}
	fmt.Printf("%d sessions pending export\n", pending.PendingCount)
	return nil
}
