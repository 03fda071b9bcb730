package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"studioops/internal/cache"
	"studioops/internal/domain"
	"studioops/internal/services"
)

// Fetch commands. Every read goes through the query cache, so repeated
// commands for fresh keys resolve without touching the network.

func loadDashboard(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := data.Dashboard(context.Background())
		return dashboardLoadedMsg{err: err, snapshot: snapshot}
	}
}

func loadSessions(data *services.DataService, date string) tea.Cmd {
	return func() tea.Msg {
		sessions, err := data.DailySessions(context.Background(), date)
		return sessionsLoadedMsg{date: date, err: err, sessions: sessions}
	}
}

func loadTrainers(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		list, err := data.Trainers(context.Background())
		if err != nil {
			return trainersLoadedMsg{err: err}
		}
		return trainersLoadedMsg{trainers: list.Trainers}
	}
}

func loadMembers(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		members, err := data.Members(context.Background())
		return membersLoadedMsg{err: err, members: members}
	}
}

func loadMemberStats(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		stats, err := data.MemberStats(context.Background())
		return memberStatsLoadedMsg{err: err, stats: stats}
	}
}

func loadMemberSearch(data *services.DataService, query string) tea.Cmd {
	return func() tea.Msg {
		result, err := data.MemberSearch(context.Background(), query)
		return memberSearchLoadedMsg{err: err, query: query, result: result}
	}
}

func loadTickets(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		tickets, err := data.LessonTickets(context.Background())
		return ticketsLoadedMsg{err: err, tickets: tickets}
	}
}

func loadExports(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		resp, err := data.Exports(context.Background())
		if err != nil {
			return exportsLoadedMsg{err: err}
		}
		return exportsLoadedMsg{exports: resp.Exports}
	}
}

func loadPending(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		pending, err := data.PendingExports(context.Background())
		return pendingLoadedMsg{err: err, pending: pending}
	}
}

// Mutation commands. No optimistic state: the cache keeps its prior values
// until the invalidation-triggered refetch lands.

func saveSession(data *services.DataService, editing *domain.SessionRecord, payload domain.SessionCreate) tea.Cmd {
	return func() tea.Msg {
		var err error
		if editing != nil {
			_, err = data.UpdateSession(context.Background(), editing.ID, payload)
		} else {
			_, err = data.CreateSession(context.Background(), payload)
		}
		return sessionSavedMsg{err: err}
	}
}

func deleteSession(data *services.DataService, id int) tea.Cmd {
	return func() tea.Msg {
		return sessionDeletedMsg{err: data.DeleteSession(context.Background(), id)}
	}
}

func syncMembers(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		_, err := data.SyncMembers(context.Background())
		return syncDoneMsg{err: err, what: "members"}
	}
}

func syncTickets(data *services.DataService) tea.Cmd {
	return func() tea.Msg {
		_, err := data.SyncTickets(context.Background())
		return syncDoneMsg{err: err, what: "tickets"}
	}
}

func createExport(data *services.DataService, req domain.ExportRequest) tea.Cmd {
	return func() tea.Msg {
		record, err := data.CreateExport(context.Background(), req)
		return exportCreatedMsg{err: err, record: record}
	}
}

func downloadExport(downloads *services.DownloadService, exportID string) tea.Cmd {
	return func() tea.Msg {
		path, err := downloads.Download(context.Background(), exportID)
		return downloadDoneMsg{err: err, path: path}
	}
}

// waitForRefresh blocks on the cache subscription channel and surfaces the
// next transition as a message. The model re-arms it after every delivery.
func waitForRefresh(ch <-chan cacheRefreshMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// subscribeKeys registers interest in the keys the TUI renders and funnels
// their transitions into one channel. Resolved transitions matter here;
// pending and failed states are already handled by the issuing command.
func subscribeKeys(c *cache.Cache, keys []string) (<-chan cacheRefreshMsg, func()) {
	ch := make(chan cacheRefreshMsg, 32)
	unsubs := make([]func(), 0, len(keys))
	for _, key := range keys {
		key := key
		unsub := c.Subscribe(key, func(result cache.Result) {
			if result.Status != cache.StatusResolved {
				return
			}
			select {
			case ch <- cacheRefreshMsg{key: key}:
			default:
				// Drop when the UI is behind; the next transition re-notifies
			}
		})
		unsubs = append(unsubs, unsub)
	}
	return ch, func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
