package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-discounting/internal/store"
)

type record struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		records []record
	}{
		{"empty", []record{}},
		{"single", []record{{ID: "a", Label: "one"}}},
		{"multiple", []record{{ID: "a", Label: "one"}, {ID: "b", Label: "two"}, {ID: "c", Label: "three"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			st := store.NewMemoryStore()

			require.NoError(t, store.ReplaceAll(ctx, st, "things", tt.records))
			got, err := store.LoadAll[record](ctx, st, "things")
			require.NoError(t, err)

			if len(tt.records) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.records, got)
		})
	}
}

func TestLoadAll_AbsentKeyIsEmpty(t *testing.T) {
	got, err := store.LoadAll[record](context.Background(), store.NewMemoryStore(), "nothing-here")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadAll_MalformedDocumentDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(ctx, "broken", []byte(`{"not":"an array"`)))

	got, err := store.LoadAll[record](ctx, st, "broken")
	require.NoError(t, err, "corruption must never propagate as an error")
	assert.Empty(t, got)
}

func TestReplaceAll_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	require.NoError(t, store.ReplaceAll(ctx, st, "things", []record{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, store.ReplaceAll(ctx, st, "things", []record{{ID: "c"}}))

	got, err := store.LoadAll[record](ctx, st, "things")
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "c"}}, got, "no merge: the later write replaces wholesale")
}

func TestAppendOne(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	require.NoError(t, store.AppendOne(ctx, st, "things", record{ID: "a"}))
	require.NoError(t, store.AppendOne(ctx, st, "things", record{ID: "b"}))

	got, err := store.LoadAll[record](ctx, st, "things")
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "a"}, {ID: "b"}}, got)
}

func TestLoad_ReturnsPrivateCopy(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Save(ctx, "doc", []byte(`[1,2,3]`)))

	doc, err := st.Load(ctx, "doc")
	require.NoError(t, err)
	doc[0] = 'X'

	again, err := st.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), again)
}
