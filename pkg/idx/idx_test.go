package idx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/viewinvoices/server/pkg/idx"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())

	// Parse a newly generated string
	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.False(t, id.IsZero())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(bad)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", bad)
	}
}

func TestTimeExtraction(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Millisecond)
	id := idx.New()
	after := time.Now().UTC()

	got := id.Time()
	require.False(t, got.Before(before))
	require.False(t, got.After(after.Add(time.Millisecond)))
}

func TestMustParse(t *testing.T) {
	id := idx.MustParse("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV") // any valid ULID
	require.False(t, id.IsZero())
}
