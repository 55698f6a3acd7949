package cascade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/mapping/schema/cascade"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec string
		want cascade.Set
	}{
		{name: "single", spec: "all", want: cascade.Of(cascade.All)},
		{name: "mixed_case_and_spaces", spec: "ALL, Merge , remove", want: cascade.Of(cascade.All, cascade.Merge, cascade.Remove)},
		{name: "unknown_token_ignored", spec: "all,bogus", want: cascade.Of(cascade.All)},
		{name: "save_update_alias", spec: "save-update", want: cascade.Of(cascade.Persist)},
		{name: "delete_alias", spec: "delete", want: cascade.Of(cascade.Remove)},
		{name: "aliases_collapse", spec: "persist,save-update,delete,remove", want: cascade.Of(cascade.Persist, cascade.Remove)},
		{name: "refresh", spec: " REFRESH ", want: cascade.Of(cascade.Refresh)},
		{name: "unsupported_keywords", spec: "all-delete-orphan, lock, evict", want: cascade.None},
		{name: "empty", spec: "", want: cascade.None},
		{name: "empty_tokens", spec: ", ,", want: cascade.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cascade.Parse(tt.spec)
			assert.Equal(t, tt.want, got, "Parse(%q) = %s", tt.spec, got)
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()
	spec := "Merge, refresh, nonsense"
	first := cascade.Parse(spec)
	for range 10 {
		assert.Equal(t, first, cascade.Parse(spec))
	}
}

func TestUnrecognized(t *testing.T) {
	t.Parallel()
	assert.Empty(t, cascade.Unrecognized("all, merge"))
	assert.Equal(t, []string{"bogus", "lock"}, cascade.Unrecognized("all,Bogus, LOCK ,"))
}

func TestParseType(t *testing.T) {
	t.Parallel()

	typ, err := cascade.ParseType(" Save-Update ")
	require.NoError(t, err)
	assert.Equal(t, cascade.Persist, typ)

	_, err = cascade.ParseType("replicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replicate")
}

func TestSet(t *testing.T) {
	t.Parallel()

	t.Run("Has", func(t *testing.T) {
		all := cascade.Of(cascade.All)
		for _, op := range []cascade.Type{cascade.Merge, cascade.Persist, cascade.Remove, cascade.Refresh} {
			assert.True(t, all.Has(op), op.String())
		}
		persist := cascade.Of(cascade.Persist)
		assert.True(t, persist.Has(cascade.Persist))
		assert.False(t, persist.Has(cascade.Remove))
		assert.False(t, persist.Has(cascade.All))
		assert.False(t, persist.Has(cascade.Unk))
	})

	t.Run("Any", func(t *testing.T) {
		s := cascade.Of(cascade.Merge)
		assert.True(t, s.Any(cascade.Remove, cascade.Merge))
		assert.False(t, s.Any(cascade.Remove, cascade.Refresh))
		assert.False(t, s.Any())
		assert.True(t, cascade.Of(cascade.All).Any())
	})

	t.Run("Types", func(t *testing.T) {
		s := cascade.Of(cascade.Refresh, cascade.All, cascade.Unk)
		assert.Equal(t, []cascade.Type{cascade.All, cascade.Refresh}, s.Types())
		assert.Equal(t, 2, s.Len())
		assert.Empty(t, cascade.None.Types())
		assert.True(t, cascade.None.Empty())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "{ALL, MERGE, REMOVE}", cascade.Parse("remove,merge,all").String())
		assert.Equal(t, "{}", cascade.None.String())
	})

	t.Run("Defaults", func(t *testing.T) {
		assert.Equal(t, cascade.Of(cascade.All), cascade.OwnerDefault)
		assert.Equal(t, cascade.Of(cascade.Persist), cascade.ChildDefault)
	})
}

func TestTypeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "PERSIST", cascade.Persist.String())
	assert.Equal(t, "UNKNOWN", cascade.Type(42).String())
}
