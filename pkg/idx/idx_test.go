package idx_test

import (
	"testing"
	"time"

	"github.com/mindtrackhq/mindtrack/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "  ", "not-a-ulid", "0000"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", s)
	}
}

func TestOrdering(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())

	// ULIDs sort lexicographically by creation time.
	require.Less(t, a.String(), b.String())
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)
	require.True(t, tm.Equal(id.Time()), "want %s, got %s", tm, id.Time())
}

func TestUniqueUnderConcurrency(t *testing.T) {
	const n = 64

	ids := make(chan idx.ID, n)
	for i := 0; i < n; i++ {
		go func() { ids <- idx.New() }()
	}

	seen := make(map[idx.ID]bool, n)
	for i := 0; i < n; i++ {
		id := <-ids
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
