package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_PreservesInsertionOrder(t *testing.T) {
	f := NewFields()
	f.Set("zeta", json.RawMessage(`1`))
	f.Set("alpha", json.RawMessage(`"a"`))
	f.Set("mid", json.RawMessage(`{"b":1,"a":2}`))
	f.Set("zeta", json.RawMessage(`2`))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, f.Keys())
	assert.Equal(t, 3, f.Len())

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":2,"alpha":"a","mid":{"b":1,"a":2}}`, string(out))
}

func TestFields_Delete(t *testing.T) {
	f := NewFields()
	require.NoError(t, f.SetValue("a", 1))
	require.NoError(t, f.SetValue("b", true))
	f.Delete("a")
	f.Delete("missing")

	assert.False(t, f.Has("a"))
	assert.Equal(t, []string{"b"}, f.Keys())

	v, ok := f.Get("b")
	require.True(t, ok)
	assert.JSONEq(t, `true`, string(v))
}

func TestFields_Merge(t *testing.T) {
	base := NewFields()
	base.Set("user", json.RawMessage(`"alice"`))
	base.Set("time", json.RawMessage(`"t1"`))

	extra := NewFields()
	extra.Set("message", json.RawMessage(`"hi"`))
	extra.Set("user", json.RawMessage(`"bob"`))

	base.Merge(extra)
	base.Merge(nil)

	assert.Equal(t, []string{"user", "time", "message"}, base.Keys())
	v, _ := base.Get("user")
	assert.Equal(t, `"bob"`, string(v))
}

func TestFields_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantErr  bool
	}{
		{name: "ordered object", input: `{"b": 1, "a": {"x": [1, 2]}, "c": null}`, wantKeys: []string{"b", "a", "c"}},
		{name: "empty object", input: `{}`, wantKeys: nil},
		{name: "duplicate keys keep first position", input: `{"a": 1, "b": 2, "a": 3}`, wantKeys: []string{"a", "b"}},
		{name: "trailing whitespace", input: "{\"a\": 1}\n  ", wantKeys: []string{"a"}},
		{name: "array", input: `[1, 2]`, wantErr: true},
		{name: "truncated", input: `{"a": `, wantErr: true},
		{name: "trailing garbage", input: `{"a": 1} extra`, wantErr: true},
		{name: "two objects", input: `{"a": 1}{"b": 2}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFields()
			err := json.Unmarshal([]byte(tt.input), f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, f.keys)
		})
	}
}

func TestFields_DuplicateKeyKeepsLastValue(t *testing.T) {
	f := NewFields()
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "a": 3}`), f))
	v, _ := f.Get("a")
	assert.Equal(t, "3", string(v))
}
