package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/mapping/schema/field"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    field.TypeInfo
		wantErr bool
	}{
		{in: "Book", want: field.TypeInfo{Name: "Book"}},
		{in: " string ", want: field.TypeInfo{Name: "string"}},
		{in: "[]Book", want: field.TypeInfo{Name: "Book", Collection: field.List}},
		{in: "list<Book>", want: field.TypeInfo{Name: "Book", Collection: field.List}},
		{in: "set<Book>", want: field.TypeInfo{Name: "Book", Collection: field.Set}},
		{in: "Set< Book >", want: field.TypeInfo{Name: "Book", Collection: field.Set}},
		{in: "sorted-set<Book>", want: field.TypeInfo{Name: "Book", Collection: field.SortedSet}},
		{in: "map<Book>", want: field.TypeInfo{Name: "Book", Collection: field.Map}},
		{in: "", wantErr: true},
		{in: "[]", wantErr: true},
		{in: "set<>", wantErr: true},
		{in: "set<Book", wantErr: true},
		{in: "bag<Book>", wantErr: true},
		{in: "set<set<Book>>", wantErr: true},
		{in: "Bo ok", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := field.ParseType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeInfo(t *testing.T) {
	t.Parallel()

	list := field.TypeInfo{Name: "Book", Collection: field.List}
	assert.True(t, list.IsList())
	assert.True(t, list.IsCollection())
	assert.Equal(t, "[]Book", list.String())

	set := field.TypeInfo{Name: "Book", Collection: field.Set}
	assert.False(t, set.IsList())
	assert.True(t, set.IsCollection())
	assert.Equal(t, "set<Book>", set.String())

	single := field.TypeInfo{Name: "Author"}
	assert.False(t, single.IsList())
	assert.False(t, single.IsCollection())
	assert.Equal(t, "Author", single.String())
	assert.True(t, single.Valid())
	assert.False(t, field.TypeInfo{}.Valid())

	// String output parses back to the same type.
	for _, info := range []field.TypeInfo{list, set, single, {Name: "Tag", Collection: field.SortedSet}, {Name: "Tag", Collection: field.Map}} {
		parsed, err := field.ParseType(info.String())
		require.NoError(t, err)
		assert.Equal(t, info, parsed)
	}
}

func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    *field.Builder
		want string
	}{
		{name: "string", b: field.String("title"), want: field.TypeString},
		{name: "int", b: field.Int("pages"), want: field.TypeInt},
		{name: "int64", b: field.Int64("isbn"), want: field.TypeInt64},
		{name: "float", b: field.Float("price"), want: field.TypeFloat},
		{name: "bool", b: field.Bool("active"), want: field.TypeBool},
		{name: "time", b: field.Time("published_at"), want: field.TypeTime},
		{name: "bytes", b: field.Bytes("cover"), want: field.TypeBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			desc := tt.b.Descriptor()
			require.NoError(t, desc.Err)
			assert.Equal(t, tt.want, desc.Info.Name)
			assert.False(t, desc.Nullable)
		})
	}

	desc := field.Time("deleted_at").Nullable().Comment("soft delete").Descriptor()
	assert.Equal(t, "deleted_at", desc.Name)
	assert.True(t, desc.Nullable)
	assert.Equal(t, "soft delete", desc.Comment)

	desc = field.Of("scores", "[]int").Descriptor()
	require.NoError(t, desc.Err)
	assert.True(t, desc.Info.IsList())

	desc = field.Of("broken", "set<").Descriptor()
	assert.Error(t, desc.Err)
}
