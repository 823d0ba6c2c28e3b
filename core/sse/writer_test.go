package sse

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEvent_Framing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "name and data",
			ev:   Event{Name: "pageavailable.svg", Data: `{"pages":[1,2]}`},
			want: "event: pageavailable.svg\ndata: {\"pages\":[1,2]}\n\n",
		},
		{
			name: "data only",
			ev:   Event{Data: "hello"},
			want: "data: hello\n\n",
		},
		{
			name: "with id",
			ev:   Event{Name: "finished.png", ID: "42", Data: ""},
			want: "event: finished.png\nid: 42\ndata: \n\n",
		},
		{
			name: "multi-line data splits into fields",
			ev:   Event{Data: "line one\nline two"},
			want: "data: line one\ndata: line two\n\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var sb strings.Builder
			require.NoError(t, WriteEvent(&sb, tt.ev))
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

func TestWriteEvent_RoundTrip(t *testing.T) {
	t.Parallel()

	in := Event{Name: "failed.svg", ID: "9", Data: "first\nsecond\nthird"}

	var sb strings.Builder
	require.NoError(t, WriteEvent(&sb, in))

	r := newReader(strings.NewReader(sb.String()))
	out, err := r.next()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteComment(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, WriteComment(&sb, "keepalive"))
	assert.Equal(t, ": keepalive\n\n", sb.String())

	// Comments are invisible to the parser.
	r := newReader(strings.NewReader(sb.String()))
	_, err := r.next()
	assert.Error(t, err)
}

func TestSetStreamHeaders(t *testing.T) {
	t.Parallel()

	h := make(http.Header)
	SetStreamHeaders(h)

	assert.Equal(t, ContentType, h.Get("Content-Type"))
	assert.Equal(t, "no-cache", h.Get("Cache-Control"))
}
