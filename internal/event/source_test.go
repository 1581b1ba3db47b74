package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldSource(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		structured bool
		names      []string
		wantErr    bool
	}{
		{name: "json object", text: `{"user": {"name": "alice"}}`, structured: true},
		{name: "json object with leading whitespace", text: "  \n{\"a\": 1}", structured: true},
		{name: "comma separated", text: "time, user ,severity_id", names: []string{"time", "user", "severity_id"}},
		{name: "empty entries skipped", text: "a,, ,b,", names: []string{"a", "b"}},
		{name: "empty text", text: "", names: nil},
		{name: "json array is a name list", text: `["a"]`, names: []string{`["a"]`}},
		{name: "broken json", text: `{"user": `, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := ParseFieldSource("required_fields", tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFieldSource)
				assert.Contains(t, err.Error(), "Invalid JSON in required_fields: ")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.structured, src.IsStructured())
			assert.Equal(t, tt.names, src.Names())
		})
	}
}

func TestDefaults_Value(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	d := Defaults{ClassUID: 3002, Now: now}

	tests := map[string]string{
		"activity_id":  `1`,
		"severity_id":  `1`,
		"category_uid": `3`,
		"class_uid":    `3002`,
		"type_uid":     `300201`,
		"time":         `"2025-01-15T09:30:00Z"`,
		"message":      `"Generated OCSF event"`,
		"user":         `{"name":"example_user","uid":"1001"}`,
		"hostname":     `"default_hostname"`,
	}
	for name, want := range tests {
		assert.JSONEq(t, want, string(d.Value(name)), name)
	}
}

func TestFieldSource_Resolve(t *testing.T) {
	d := Defaults{ClassUID: 1007, Now: time.Unix(0, 0)}

	names, err := ParseFieldSource("optional_fields", "class_uid,message")
	require.NoError(t, err)
	got := names.Resolve(d)
	assert.Equal(t, []string{"class_uid", "message"}, got.Keys())

	obj, err := ParseFieldSource("optional_fields", `{"class_uid": 9}`)
	require.NoError(t, err)
	resolved := obj.Resolve(d)
	v, _ := resolved.Get("class_uid")
	assert.Equal(t, json.RawMessage(`9`), v)

	resolved.Set("extra", json.RawMessage(`1`))
	assert.Equal(t, 1, obj.Resolve(d).Len(), "resolving must not alias the parsed source")
}
