package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"studioops/internal/adapters/api"
	"studioops/internal/adapters/storage"
	"studioops/internal/cache"
	"studioops/internal/config"
	"studioops/internal/logging"
	"studioops/internal/ports"
	"studioops/internal/services"
	"studioops/internal/ui"
)

// sessionModel wraps ui.Model to release per-session resources on quit
type sessionModel struct {
	tea.Model
	queryCache *cache.Cache
	repo       ports.DownloadRepository
	sessionID  string
	startTime  time.Time
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		duration := time.Since(s.startTime)

		s.queryCache.Close()
		if err := s.repo.Close(); err != nil {
			logging.Logger.Error("Failed to close download store for SSH session",
				"error", err,
				"session_id", s.sessionID,
				"duration", duration.String())
		}

		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", duration.String())
	}

	updated, cmd := s.Model.Update(msg)
	s.Model = updated
	return s, cmd
}

// teaHandler creates a Bubble Tea model for each SSH session. Every session
// gets its own query cache so one operator's invalidations never surprise
// another's view.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	client := api.NewClient(s.backendURL, s.settings.RequestTimeout())
	backend := client.Backend()
	queryCache := cache.New(s.settings.StaleTime())

	repo, err := storage.NewSQLiteRepository(config.DBPath())
	if err != nil {
		logging.Logger.Error("Failed to open download store for SSH session",
			"error", err,
			"session_id", sessionID)
		queryCache.Close()
		return errorModel{err}, nil
	}

	downloadDir := "exports"
	if s.settings != nil && s.settings.DownloadDir != "" {
		downloadDir = config.ExpandPath(s.settings.DownloadDir)
	} else if homeDir, err := os.UserHomeDir(); err == nil {
		downloadDir = filepath.Join(homeDir, ".studioops", "exports")
	}

	errorClearDelay := 10 * time.Second
	if s.settings != nil && s.settings.ErrorClearDelay != nil {
		errorClearDelay = time.Duration(*s.settings.ErrorClearDelay) * time.Second
	}

	dataService := services.NewDataService(backend, queryCache, s.settings.DashboardStaleTime())
	downloadService := services.NewDownloadService(backend.Exports, repo, downloadDir)

	model := ui.NewModel(dataService, downloadService, errorClearDelay)

	wrapped := &sessionModel{
		Model:      model,
		queryCache: queryCache,
		repo:       repo,
		sessionID:  sessionID,
		startTime:  time.Now(),
	}

	return wrapped, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
