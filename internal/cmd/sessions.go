package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"studioops/internal/domain"
)

// SessionsCmd manages training sessions
type SessionsCmd struct {
	Add  SessionsAddCmd  `cmd:"add" help:"Log a new session"`
	Del  SessionsDelCmd  `cmd:"del" help:"Delete a session"`
	List SessionsListCmd `cmd:"list" help:"List sessions for a date" default:"1"`
}

// SessionsListCmd lists the sessions logged on a single date
type SessionsListCmd struct {
	Date string `help:"Date to list (YYYY-MM-DD, defaults to today)"`
}

// Run executes the list command
func (l *SessionsListCmd) Run(cli *CLI) error {
	date := l.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	sessions, err := cli.Container.DataService.DailySessions(context.Background(), date)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Printf("No sessions on %s\n", date)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTRAINER\tMEMBER\tTYPE\tSTATUS\tEXPORTED")
	for _, s := range sessions {
		exported := ""
		if s.Exported {
			exported = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.SessionTime, s.TrainerName, s.MemberName,
			s.SessionType, s.SessionStatus, exported)
	}
	return w.Flush()
}

// SessionsAddCmd logs a new training session
type SessionsAddCmd struct {
	Date    string `help:"Session date (YYYY-MM-DD, defaults to today)"`
	Time    string `help:"Session time (HH:MM)" required:""`
	Trainer string `help:"Trainer name" required:""`
	Member  string `help:"Member name" required:""`
	Type    string `help:"Session type" default:"PT"`
	Status  string `help:"Session status" enum:"completed,cancelled,no_show,payment" default:"completed"`
	Note    string `help:"Optional note"`
}

// Run executes the add command
func (a *SessionsAddCmd) Run(cli *CLI) error {
	date := a.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	payload := domain.SessionCreate{
		MemberName:    a.Member,
		Note:          a.Note,
		SessionDate:   date,
		SessionStatus: domain.SessionStatus(a.Status),
		SessionTime:   a.Time,
		SessionType:   a.Type,
		TrainerName:   a.Trainer,
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	created, err := cli.Container.DataService.CreateSession(context.Background(), payload)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	fmt.Printf("Logged session %d: %s %s %s with %s\n",
		created.ID, created.SessionDate, created.SessionTime, created.MemberName, created.TrainerName)
	return nil
}

// SessionsDelCmd deletes a session by id
type SessionsDelCmd struct {
	Force bool `help:"Force deletion without confirmation" short:"f"`
	ID    int  `arg:"" help:"Session id to delete"`

	confirmInput io.Reader `kong:"-"`
}

// Run executes the del command
func (d *SessionsDelCmd) Run(cli *CLI) error {
	if !d.Force && !d.confirmDeletion() {
		return nil
	}

	if err := cli.Container.DataService.DeleteSession(context.Background(), d.ID); err != nil {
		return fmt.Errorf("failed to delete session %d: %w", d.ID, err)
	}
	fmt.Printf("Deleted session %d\n", d.ID)
	return nil
}

func (d *SessionsDelCmd) confirmDeletion() bool {
	in := d.confirmInput
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("WARNING: This will delete session %d\n", d.ID)
	fmt.Print("\nContinue? (y/N): ")
	var response string
	fmt.Fscanln(in, &response)
	if response != "y" && response != "Y" {
		fmt.Println("Cancelled")
		return false
	}
	return true
}
