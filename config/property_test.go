package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/mapping/config"
	"github.com/syssam/mapping/schema/edge"
	"github.com/syssam/mapping/schema/fetch"
)

func TestProperty(t *testing.T) {
	t.Parallel()

	t.Run("Nil", func(t *testing.T) {
		var p *config.Property
		spec, ok := p.CascadeSpec()
		assert.False(t, ok)
		assert.Empty(t, spec)
		assert.Equal(t, fetch.Lazy, p.FetchStrategy())
	})

	t.Run("Zero", func(t *testing.T) {
		p := &config.Property{}
		_, ok := p.CascadeSpec()
		assert.False(t, ok)
		assert.Equal(t, fetch.Lazy, p.FetchStrategy())
	})

	t.Run("EmptySpecIsExplicit", func(t *testing.T) {
		p := config.FromMapping(edge.Mapping{Cascade: edge.Spec("")})
		spec, ok := p.CascadeSpec()
		assert.True(t, ok)
		assert.Empty(t, spec)
	})

	t.Run("FromMapping", func(t *testing.T) {
		eager := fetch.Eager
		src := edge.Mapping{Cascade: edge.Spec("all"), Fetch: &eager}
		p := config.FromMapping(src)
		spec, ok := p.CascadeSpec()
		assert.True(t, ok)
		assert.Equal(t, "all", spec)
		assert.Equal(t, fetch.Eager, p.FetchStrategy())

		// The mapped form does not alias the source specification.
		*src.Cascade = "merge"
		spec, _ = p.CascadeSpec()
		assert.Equal(t, "all", spec)
	})
}
