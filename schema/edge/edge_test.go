package edge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/mapping/schema/edge"
	"github.com/syssam/mapping/schema/fetch"
	"github.com/syssam/mapping/schema/field"
)

// TestBuilders tests the association builders with various configurations.
func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *edge.Descriptor
		validate func(t *testing.T, desc *edge.Descriptor)
	}{
		{
			name: "has_many",
			build: func() *edge.Descriptor {
				return edge.HasMany("books", "Book").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.OneToMany, desc.Kind)
				assert.Equal(t, "books", desc.Name)
				assert.Equal(t, "Book", desc.Target)
				assert.Equal(t, field.TypeInfo{Name: "Book", Collection: field.List}, *desc.Type)
				assert.Empty(t, desc.MappedBy)
				assert.Nil(t, desc.Owning)
				assert.True(t, desc.Mapping.IsZero())
				assert.NoError(t, desc.Err)
			},
		},
		{
			name: "belongs_to",
			build: func() *edge.Descriptor {
				return edge.BelongsTo("author", "Author").MappedBy("books").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.ManyToOne, desc.Kind)
				assert.Equal(t, "books", desc.MappedBy)
				assert.Equal(t, field.Single, desc.Type.Collection)
			},
		},
		{
			name: "has_one",
			build: func() *edge.Descriptor {
				return edge.HasOne("passport", "Passport").Owning(true).Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.OneToOne, desc.Kind)
				require.NotNil(t, desc.Owning)
				assert.True(t, *desc.Owning)
			},
		},
		{
			name: "many_to_many",
			build: func() *edge.Descriptor {
				return edge.BelongsToMany("tags", "Tag").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.ManyToMany, desc.Kind)
				assert.Equal(t, field.Set, desc.Type.Collection)
			},
		},
		{
			name: "embedded",
			build: func() *edge.Descriptor {
				return edge.Embed("address", "Address").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.Embedded, desc.Kind)
				assert.Equal(t, "Address", desc.Target)
			},
		},
		{
			name: "embedded_collection",
			build: func() *edge.Descriptor {
				return edge.EmbedMany("addresses", "Address").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.EmbeddedCollection, desc.Kind)
				assert.True(t, desc.Type.IsList())
			},
		},
		{
			name: "basic_values",
			build: func() *edge.Descriptor {
				return edge.Values("tags", field.TypeString).Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Equal(t, edge.Basic, desc.Kind)
				assert.Empty(t, desc.Target)
				assert.Equal(t, "[]string", desc.Type.String())
			},
		},
		{
			name: "cascade_and_fetch",
			build: func() *edge.Descriptor {
				return edge.HasMany("books", "Book").Cascade("all").Eager().Comment("written books").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				require.NotNil(t, desc.Mapping.Cascade)
				assert.Equal(t, "all", *desc.Mapping.Cascade)
				require.NotNil(t, desc.Mapping.Fetch)
				assert.Equal(t, fetch.Eager, *desc.Mapping.Fetch)
				assert.Equal(t, "written books", desc.Comment)
			},
		},
		{
			name: "as_set",
			build: func() *edge.Descriptor {
				return edge.HasMany("books", "Book").As("set<Book>").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				require.NoError(t, desc.Err)
				assert.Equal(t, field.Set, desc.Type.Collection)
				assert.False(t, desc.Type.IsList())
			},
		},
		{
			name: "as_single_on_collection",
			build: func() *edge.Descriptor {
				return edge.HasMany("books", "Book").As("Book").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				require.Error(t, desc.Err)
				assert.Contains(t, desc.Err.Error(), "books")
			},
		},
		{
			name: "as_malformed",
			build: func() *edge.Descriptor {
				return edge.BelongsTo("author", "Author").As("set<").Descriptor()
			},
			validate: func(t *testing.T, desc *edge.Descriptor) {
				assert.Error(t, desc.Err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.validate(t, tt.build())
		})
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want edge.Kind
	}{
		{in: "one-to-many", want: edge.OneToMany},
		{in: "hasMany", want: edge.OneToMany},
		{in: "MANY_TO_ONE", want: edge.ManyToOne},
		{in: "belongs-to", want: edge.ManyToOne},
		{in: "one-to-one", want: edge.OneToOne},
		{in: "m2m", want: edge.ManyToMany},
		{in: "embedded", want: edge.Embedded},
		{in: "embedded-collection", want: edge.EmbeddedCollection},
		{in: "basic", want: edge.Basic},
	}
	for _, tt := range tests {
		got, err := edge.ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		// The canonical name parses back.
		back, err := edge.ParseKind(got.String())
		require.NoError(t, err)
		assert.Equal(t, got, back)
	}

	_, err := edge.ParseKind("polymorphic")
	assert.Error(t, err)
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, edge.Embedded.IsEmbedded())
	assert.True(t, edge.EmbeddedCollection.IsEmbedded())
	assert.False(t, edge.OneToMany.IsEmbedded())
	assert.True(t, edge.Basic.IsBasic())
	assert.False(t, edge.ManyToMany.IsBasic())

	for _, k := range []edge.Kind{edge.OneToMany, edge.ManyToMany, edge.EmbeddedCollection, edge.Basic} {
		assert.True(t, k.IsCollection(), k.String())
	}
	for _, k := range []edge.Kind{edge.ManyToOne, edge.OneToOne, edge.Embedded} {
		assert.False(t, k.IsCollection(), k.String())
	}
	assert.True(t, edge.OneToOne.IsEntity())
	assert.False(t, edge.Embedded.IsEntity())
	assert.False(t, edge.Basic.IsEntity())
}

func TestKindPairs(t *testing.T) {
	t.Parallel()

	assert.True(t, edge.OneToMany.Pairs(edge.ManyToOne))
	assert.True(t, edge.ManyToOne.Pairs(edge.OneToMany))
	assert.True(t, edge.OneToOne.Pairs(edge.OneToOne))
	assert.True(t, edge.ManyToMany.Pairs(edge.ManyToMany))
	assert.False(t, edge.OneToMany.Pairs(edge.OneToMany))
	assert.False(t, edge.ManyToMany.Pairs(edge.ManyToOne))
	assert.False(t, edge.Embedded.Pairs(edge.Embedded))
}

func TestMappingMerge(t *testing.T) {
	t.Parallel()

	eager := fetch.Eager
	base := edge.Mapping{Cascade: edge.Spec("all")}
	merged := base.Merge(edge.Mapping{Fetch: &eager})
	require.NotNil(t, merged.Cascade)
	assert.Equal(t, "all", *merged.Cascade)
	assert.Equal(t, fetch.Eager, *merged.Fetch)

	merged = merged.Merge(edge.Mapping{Cascade: edge.Spec("merge")})
	assert.Equal(t, "merge", *merged.Cascade)
	assert.Equal(t, fetch.Eager, *merged.Fetch)

	// Base is left untouched.
	assert.Nil(t, base.Fetch)
	assert.True(t, edge.Mapping{}.IsZero())
	assert.False(t, merged.IsZero())
}
