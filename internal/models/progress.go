package models

import "time"

const dateLayout = "2006-01-02"

// ProgressEntry представляет запись о занятии. Поля date и createdAt хранятся
// в том виде, в котором их прислал сервер.
type ProgressEntry struct {
	ID             ID     `json:"id"`
	Subject        string `json:"subject"`
	MinutesStudied int    `json:"minutesStudied"`
	Notes          string `json:"notes,omitempty"`
	Date           string `json:"date,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// Timestamp разбирает date, а при его отсутствии createdAt.
// Поддерживаются RFC 3339, "YYYY-MM-DD hh:mm:ss", YYYY-MM-DD и HTTP-дата.
func (e ProgressEntry) Timestamp() (time.Time, bool) {
	for _, raw := range []string{e.Date, e.CreatedAt} {
		if ts, ok := parseTimestamp(raw); ok {
			return ts, true
		}
	}

	return time.Time{}, false
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339Nano, dateTimeLayout, dateLayout, time.RFC1123} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

type ProgressRequest struct {
	Subject        string `json:"subject"         validate:"required,max=100" binding:"required"`
	MinutesStudied int    `json:"minutesStudied"  validate:"required,gt=0"    binding:"required,gt=0"`
	Notes          string `json:"notes,omitempty" validate:"max=1000"`
}

func (r ProgressRequest) Validate() error {
	return Validate(r)
}

// ProgressList тело ответа GET /progress
type ProgressList struct {
	Items []ProgressEntry `json:"items"`
}

// ProgressCreated тело ответа POST /progress
type ProgressCreated struct {
	Entry ProgressEntry `json:"entry"`
}

// NewProgressEntry заполняет серверные поля записи: дату и время создания
func NewProgressEntry(req ProgressRequest, now time.Time) ProgressEntry {
	return ProgressEntry{
		Subject:        req.Subject,
		MinutesStudied: req.MinutesStudied,
		Notes:          req.Notes,
		Date:           now.UTC().Format(dateLayout),
		CreatedAt:      now.UTC().Format(time.RFC3339),
	}
}
