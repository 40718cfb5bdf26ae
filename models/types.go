package models

import "time"

// Default origin tag for signups that don't name one
const DefaultSource = "website"

// Export formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Request types

type SignupRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

type UnsubscribeRequest struct {
	Email string `json:"email"`
}

// Domain types

// SignupRecord is one waitlist entry. There is exactly one per normalized
// email; unsubscribing flips IsActive instead of deleting the row.
type SignupRecord struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IPHash    string    `json:"-"` // Never expose in JSON
	UserAgent string    `json:"-"` // Never expose in JSON
}

// ClientInfo describes the caller at signup time
type ClientInfo struct {
	IPHash    string
	UserAgent string
}

type SignupSummary struct {
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Position  int       `json:"position"`
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

type ExportRow struct {
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
}

// Response types

type SignupResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Email        string `json:"email"`
	Position     int    `json:"position"`
	TotalSignups int    `json:"total_signups,omitempty"`
}

type StatsResponse struct {
	Success             bool            `json:"success"`
	TotalSignups        int             `json:"total_signups"`
	ActiveSignups       int             `json:"active_signups"`
	InactiveSignups     int             `json:"inactive_signups"`
	RecentSignups       int             `json:"recent_signups"`
	TodaySignups        int             `json:"today_signups"`
	AverageDailySignups float64         `json:"average_daily_signups"`
	TopSources          []SourceCount   `json:"top_sources"`
	LatestSignups       []SignupSummary `json:"latest_signups"`
}

type UnsubscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Email   string `json:"email"`
}

type PositionResponse struct {
	Success      bool      `json:"success"`
	Email        string    `json:"email"`
	Position     int       `json:"position"`
	TotalSignups int       `json:"total_signups"`
	JoinedAt     time.Time `json:"joined_at"`
	Source       string    `json:"source"`
}

type EntriesResponse struct {
	Success bool           `json:"success"`
	Entries []SignupRecord `json:"entries"`
	Count   int            `json:"count"`
}

// Data is []ExportRow for json and a CSV document for csv
type ExportResponse struct {
	Success    bool      `json:"success"`
	Format     string    `json:"format"`
	Data       any       `json:"data"`
	Count      int       `json:"count"`
	ExportedAt time.Time `json:"exported_at"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

type RootResponse struct {
	Message     string `json:"message"`
	Status      string `json:"status"`
	HealthCheck string `json:"health_check"`
}

// Error response

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
