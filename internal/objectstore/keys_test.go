package objectstore

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "safe", in: "front-id_v2.PNG", want: "front-id_v2.PNG"},
		{name: "spaces and slashes", in: "my id/front.png", want: "my_id_front.png"},
		{name: "traversal", in: "../../etc/passwd", want: ".._.._etc_passwd"},
		{name: "unicode", in: "pässport.jpg", want: "p_ssport.jpg"},
		{name: "one underscore per character", in: "id📄.png", want: "id_.png"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 300))
	assert.Len(t, got, 120)
}

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey("front id.png")

	require.True(t, strings.HasPrefix(key, KeyPrefix))
	rest := strings.TrimPrefix(key, KeyPrefix)

	id, name, ok := strings.Cut(rest, "-")
	require.True(t, ok)
	_, err := ulid.ParseStrict(id)
	require.NoError(t, err)
	assert.Equal(t, "front_id.png", name)

	assert.NotEqual(t, key, NewObjectKey("front id.png"))
}

func TestHealthCheckKey(t *testing.T) {
	key := HealthCheckKey()

	assert.True(t, strings.HasPrefix(key, "identity-uploads/healthcheck-"))
	assert.True(t, strings.HasSuffix(key, ".txt"))
}
