package specification

import (
	"testing"
	"time"

	"ai-journaling-be/internal/model"
	"ai-journaling-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dryRun(t *testing.T, dest interface{}, specs ...Specification) *gorm.Statement {
	t.Helper()
	db, err := database.NewDryRunDB()
	require.NoError(t, err)

	query := db.Model(dest)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	stmt := query.Find(dest).Statement
	return stmt
}

func TestDateRangeIsInclusive(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC)

	stmt := dryRun(t, &[]model.Journal{},
		UserOwnedBy{UserID: uuid.New()},
		DateRange{Field: "journal_date", From: from, To: to},
		OrderBy{Field: "journal_date"},
	)

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "Journals"`)
	assert.Contains(t, sql, "journal_date >= $2")
	assert.Contains(t, sql, "journal_date <= $3")
	assert.Contains(t, sql, "ORDER BY journal_date ASC")
	require.Len(t, stmt.Vars, 3)
	assert.Equal(t, "2024-01-01", stmt.Vars[1])
	assert.Equal(t, "2024-01-07", stmt.Vars[2])
}

func TestSessionWindowOrderAndLimit(t *testing.T) {
	sessionID := uuid.New()

	stmt := dryRun(t, &[]model.ChatMessage{},
		BySessionID{SessionID: sessionID},
		OrderBy{Field: "created_at", Desc: true},
		Limit{N: 10},
	)

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "ChatMessages"`)
	assert.Contains(t, sql, "session_id = $1")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT")
	assert.Equal(t, sessionID, stmt.Vars[0])
}

func TestByWindowMatchesNaturalKey(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	stmt := dryRun(t, &[]model.JournalSummary{}, ByWindow{StartDate: start, EndDate: end})

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "JournalSummaries"`)
	assert.Contains(t, sql, "start_date = $1")
	assert.Contains(t, sql, "end_date = $2")
	assert.Equal(t, []interface{}{"2024-01-01", "2024-01-07"}, stmt.Vars)
}

func TestSelectNarrowsColumns(t *testing.T) {
	stmt := dryRun(t, &[]model.ChatSession{},
		BySessionID{SessionID: uuid.New()},
		Select{Fields: []string{"session_id", "user_id"}},
	)

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `SELECT "session_id","user_id" FROM "ChatSessions"`)
	assert.Contains(t, sql, "session_id = $1")
}
