package fetch_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/mapping/schema/fetch"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    fetch.Type
		wantErr bool
	}{
		{in: "", want: fetch.Lazy},
		{in: "lazy", want: fetch.Lazy},
		{in: "select", want: fetch.Lazy},
		{in: " EAGER ", want: fetch.Eager},
		{in: "join", want: fetch.Eager},
		{in: "sometimes", wantErr: true},
	}
	for _, tt := range tests {
		got, err := fetch.Parse(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	var v struct {
		Fetch fetch.Type `json:"fetch"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"fetch":"eager"}`), &v))
	assert.Equal(t, fetch.Eager, v.Fetch)
	assert.Equal(t, "EAGER", v.Fetch.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fetch":"eager"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"fetch":"never"}`), &v))
}
