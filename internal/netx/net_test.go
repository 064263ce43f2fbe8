package netx

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	got, err := JoinURL("http://127.0.0.1:8000/api", "files", "01HX/with space")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/api/files/01HX%2Fwith%20space", got)

	got, err = JoinURL("http://host/api/", "upload")
	require.NoError(t, err)
	assert.Equal(t, "http://host/api/upload", got)

	_, err = JoinURL("://bad", "x")
	require.Error(t, err)
}

func TestToWebsocketURL(t *testing.T) {
	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "http://host:8000/api/shards", want: "ws://host:8000/api/shards"},
		{in: "https://host/api/shards", want: "wss://host/api/shards"},
		{in: "ws://host/x", want: "ws://host/x"},
		{in: "ftp://host/x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToWebsocketURL(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorBody(t *testing.T) {
	assert.Equal(t, "", ErrorBody(nil))

	resp := &http.Response{Body: io.NopCloser(strings.NewReader("  nope \n"))}
	assert.Equal(t, "nope", ErrorBody(resp))

	long := strings.Repeat("x", 4096)
	resp = &http.Response{Body: io.NopCloser(strings.NewReader(long))}
	assert.Len(t, ErrorBody(resp), maxErrorBody)
}
