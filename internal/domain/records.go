package domain

import "time"

// SessionStatus represents the outcome recorded for a training session
type SessionStatus string

const (
	StatusCancelled SessionStatus = "cancelled"
	StatusCompleted SessionStatus = "completed"
	StatusNoShow    SessionStatus = "no_show"
	StatusPayment   SessionStatus = "payment"
)

// Valid reports whether s is one of the known session statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow, StatusPayment:
		return true
	}
	return false
}

// SessionRecord is a logged training session (domain entity, server-owned)
type SessionRecord struct {
	CreatedAt        time.Time     `json:"created_at"`
	Exported         bool          `json:"exported"`
	ID               int           `json:"id"`
	IsEvent          bool          `json:"is_event"`
	MemberKey        *int          `json:"member_key,omitempty"`
	MemberName       string        `json:"member_name"`
	Note             string        `json:"note,omitempty"`
	RegistrationType string        `json:"registration_type,omitempty"`
	SessionDate      string        `json:"session_date"`
	SessionIndex     string        `json:"session_index,omitempty"`
	SessionStatus    SessionStatus `json:"session_status"`
	SessionTime      string        `json:"session_time"`
	SessionType      string        `json:"session_type"`
	TrainerName      string        `json:"trainer_name"`
}

// SessionCreate is the payload for creating a session. The same shape is
// used for partial updates, where zero-valued optional fields are omitted.
type SessionCreate struct {
	IsEvent          bool          `json:"is_event"`
	MemberKey        *int          `json:"member_key,omitempty"`
	MemberName       string        `json:"member_name"`
	Note             string        `json:"note,omitempty"`
	RegistrationType string        `json:"registration_type,omitempty"`
	SessionDate      string        `json:"session_date"`
	SessionIndex     string        `json:"session_index,omitempty"`
	SessionStatus    SessionStatus `json:"session_status,omitempty"`
	SessionTime      string        `json:"session_time"`
	SessionType      string        `json:"session_type,omitempty"`
	TrainerName      string        `json:"trainer_name"`
}

// Validate checks the required creation fields before a request is issued.
// Validation failures never reach the network.
func (c SessionCreate) Validate() error {
	switch {
	case c.SessionDate == "":
		return ErrMissingField("session_date")
	case c.SessionTime == "":
		return ErrMissingField("session_time")
	case c.TrainerName == "":
		return ErrMissingField("trainer_name")
	case c.MemberName == "":
		return ErrMissingField("member_name")
	}
	if c.SessionStatus != "" && !c.SessionStatus.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// MemberRecord is a CRM member synced into the backend cache. Read-only
// from this client; replaced wholesale by sync.
type MemberRecord struct {
	Classification string `json:"classification,omitempty"`
	CustomerStatus string `json:"customer_status,omitempty"`
	Gender         string `json:"gender,omitempty"`
	ID             int    `json:"id"`
	JgjmKey        int    `json:"jgjm_key"`
	MembershipEnd  string `json:"membership_end,omitempty"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	PTRemaining    *int   `json:"pt_remaining,omitempty"`
	PTTotal        *int   `json:"pt_total,omitempty"`
	SyncedAt       string `json:"synced_at"`
	TrainerName    string `json:"trainer_name,omitempty"`
}

// MemberSearchResult is the slimmer shape returned by the server-side
// member search endpoint.
type MemberSearchResult struct {
	JgjmKey     int    `json:"jgjm_key"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	PTRemaining *int   `json:"pt_remaining,omitempty"`
	TrainerName string `json:"trainer_name,omitempty"`
}

// MemberRow is the normalized member shape the views render. Both the full
// cached record and the search result collapse into it; Source tags which
// one a row came from so nothing is silently coerced.
type MemberRow struct {
	JgjmKey     int
	Name        string
	Phone       string
	PTRemaining *int
	Source      MemberRowSource
	TrainerName string
}

// MemberRowSource tags the origin of a MemberRow
type MemberRowSource string

const (
	RowFromCache  MemberRowSource = "cache"
	RowFromSearch MemberRowSource = "search"
)

// Row converts a cached MemberRecord to the render shape.
func (m MemberRecord) Row() MemberRow {
	return MemberRow{
		JgjmKey:     m.JgjmKey,
		Name:        m.Name,
		Phone:       m.Phone,
		PTRemaining: m.PTRemaining,
		Source:      RowFromCache,
		TrainerName: m.TrainerName,
	}
}

// Row converts a search result to the render shape.
func (m MemberSearchResult) Row() MemberRow {
	return MemberRow{
		JgjmKey:     m.JgjmKey,
		Name:        m.Name,
		Phone:       m.Phone,
		PTRemaining: m.PTRemaining,
		Source:      RowFromSearch,
		TrainerName: m.TrainerName,
	}
}

// LessonTicketRecord is a CRM lesson ticket synced into the backend cache
type LessonTicketRecord struct {
	EndDate          string `json:"end_date,omitempty"`
	JgjmKey          int    `json:"jgjm_key"`
	JglessonTicketKey int   `json:"jglesson_ticket_key"`
	MemberName       string `json:"member_name"`
	RemainingCount   int    `json:"remaining_count"`
	StartDate        string `json:"start_date,omitempty"`
	TicketType       string `json:"ticket_type"`
	TotalCount       int    `json:"total_count"`
	TrainerName      string `json:"trainer_name,omitempty"`
}

// ExportLogRecord is one completed export run. Immutable once created.
type ExportLogRecord struct {
	CreatedAt     time.Time `json:"created_at"`
	EndDate       string    `json:"end_date"`
	ExportDate    string    `json:"export_date"`
	ExportID      string    `json:"export_id"`
	FilePath      string    `json:"file_path"`
	FileSizeBytes int64     `json:"file_size_bytes"`
	ID            int       `json:"id"`
	SessionCount  int       `json:"session_count"`
	StartDate     string    `json:"start_date"`
	Status        string    `json:"status"`
}

// ExportRequest is the date range submitted for a new export
type ExportRequest struct {
	EndDate   string `json:"end_date"`
	StartDate string `json:"start_date"`
}

// Validate checks the export range fields before a request is issued.
func (r ExportRequest) Validate() error {
	if r.StartDate == "" {
		return ErrMissingField("start_date")
	}
	if r.EndDate == "" {
		return ErrMissingField("end_date")
	}
	return nil
}

// DashboardSnapshot is the server-computed aggregate for today. Each fetch
// replaces the previous value entirely; the client never merges it.
type DashboardSnapshot struct {
	Date           string          `json:"date"`
	MembersCached  int             `json:"members_cached"`
	PendingExport  int             `json:"pending_export"`
	RecentSessions []RecentSession `json:"recent_sessions"`
	Sessions       SessionCounts   `json:"sessions"`
}

// SessionCounts breaks down today's sessions by status
type SessionCounts struct {
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
	NoShow    int `json:"no_show"`
	Total     int `json:"total"`
}

// RecentSession is the short row shown on the dashboard
type RecentSession struct {
	ID      int    `json:"id"`
	Member  string `json:"member"`
	Status  string `json:"status"`
	Time    string `json:"time"`
	Trainer string `json:"trainer"`
}

// SyncResult is the completion signal of a CRM sync trigger
type SyncResult struct {
	Count    int    `json:"count"`
	Message  string `json:"message"`
	Success  bool   `json:"success"`
	SyncedAt string `json:"synced_at"`
}

// MemberStats reports the state of the backend member cache
type MemberStats struct {
	SyncedAt *string `json:"synced_at"`
	Total    int     `json:"total"`
}

// MemberSearchResponse wraps server-side member search results
type MemberSearchResponse struct {
	Count   int                  `json:"count"`
	Members []MemberSearchResult `json:"members"`
	Query   string               `json:"query"`
}

// ExportListResponse wraps the export history listing
type ExportListResponse struct {
	Exports []ExportLogRecord `json:"exports"`
}

// PendingExports reports how many sessions have not been exported yet
type PendingExports struct {
	Message      string `json:"message"`
	PendingCount int    `json:"pending_count"`
}

// TrainerList wraps the distinct trainer names known to the backend
type TrainerList struct {
	Trainers []string `json:"trainers"`
}
