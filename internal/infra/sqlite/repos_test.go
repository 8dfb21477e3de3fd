package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ParikhVedant/pare/internal/domain"
	"github.com/ParikhVedant/pare/internal/usecase"
)

func testDSN(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestLeadRepoSaveLead(t *testing.T) {
	repo, err := NewLeadRepo(testDSN(t))
	require.NoError(t, err)

	lead := domain.NewLeadRecord(domain.RequiredFields, domain.ContactFields)
	lead.Set("location", "Mumbai")
	lead.Set("requirement_type", "Commercial")
	lead.Set("quantity", "5000")
	lead.Set("phone", "9876543210")

	require.NoError(t, repo.SaveLead("sess-1", lead))

	var count int
	var location, phone, email string
	row := repo.db.QueryRow(`SELECT COUNT(*) FROM leads`)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count)

	row = repo.db.QueryRow(`SELECT location, phone, email FROM leads WHERE session_id = ?`, "sess-1")
	require.NoError(t, row.Scan(&location, &phone, &email))
	assert.Equal(t, "Mumbai", location)
	assert.Equal(t, "9876543210", phone)
	assert.Empty(t, email)
}

func TestFunnelRepoCountsDistinctSessions(t *testing.T) {
	repo, err := NewFunnelRepo(testDSN(t))
	require.NoError(t, err)

	require.NoError(t, repo.Hit(usecase.StageIntro, "s1"))
	require.NoError(t, repo.Hit(usecase.StageIntro, "s1"))
	require.NoError(t, repo.Hit(usecase.StageIntro, "s2"))
	require.NoError(t, repo.Hit(usecase.Stage("location"), "s1"))

	counts := repo.Counts()
	assert.Equal(t, 2, counts[usecase.StageIntro])
	assert.Equal(t, 1, counts[usecase.Stage("location")])
}

func TestUserRepoUpsert(t *testing.T) {
	repo, err := NewUserRepo(testDSN(t))
	require.NoError(t, err)

	require.NoError(t, repo.SaveUser(42))
	require.NoError(t, repo.SaveUser(42))
	require.NoError(t, repo.SaveUser(7))

	ids, err := repo.ListChatIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{7, 42}, ids)
}

func TestBroadcastStatRepoListRecent(t *testing.T) {
	repo, err := NewBroadcastStatRepo(testDSN(t))
	require.NoError(t, err)

	require.NoError(t, repo.Save(usecase.BroadcastStat{Total: 10, Sent: 9, Failed: 1}))
	require.NoError(t, repo.Save(usecase.BroadcastStat{Total: 20, Sent: 20}))

	stats, err := repo.ListRecent(1)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	// newest first
	assert.Equal(t, 20, stats[0].Total)
	assert.False(t, stats[0].CreatedAt.IsZero())
}
