package cache

import "fmt"

// Cache keys. A key combines the resource name with its request
// parameters; invalidation and deduplication both work on these.
const (
	KeyDashboard     = "dashboard"
	KeyExportPending = "exportPending"
	KeyExports       = "exports"
	KeyLessonTickets = "lessonTickets"
	KeyMemberStats   = "memberStats"
	KeyMembers       = "members"
	KeySessions      = "sessions"
	KeyTrainers      = "trainers"
)

// KeySessionsDaily keys the session list for one calendar date
func KeySessionsDaily(date string) string {
	return fmt.Sprintf("%s/%s", KeySessions, date)
}

// KeyMemberSearch keys a server-side member search by query text
func KeyMemberSearch(query string) string {
	return fmt.Sprintf("memberSearch/%s", query)
}
