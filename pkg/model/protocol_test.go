package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, line string) LogRecord {
	t.Helper()
	rec, err := ParseLine(line, 0)
	require.NoError(t, err)
	return rec
}

func TestRequestResponseClassification(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		request  bool
		response bool
		family   Family
	}{
		{
			name:    "cdp request",
			line:    `{"tag":"cdp.send","metadata":{"message":{"id":1,"method":"Runtime.enable"}}}`,
			request: true, family: FamilyCDP,
		},
		{
			name:     "cdp result",
			line:     `{"tag":"cdp.receive","metadata":{"message":{"id":1,"result":{}}}}`,
			response: true, family: FamilyCDP,
		},
		{
			name:   "cdp error has neither",
			line:   `{"tag":"cdp.receive","metadata":{"message":{"id":1,"error":{"code":-32000}}}}`,
			family: FamilyCDP,
		},
		{
			name:    "dap request",
			line:    `{"tag":"dap.receive","metadata":{"message":{"seq":1,"type":"request","command":"initialize"}}}`,
			request: true, family: FamilyDAP,
		},
		{
			name:     "dap response",
			line:     `{"tag":"dap.send","metadata":{"message":{"seq":2,"request_seq":1,"type":"response"}}}`,
			response: true, family: FamilyDAP,
		},
		{
			name:   "dap event",
			line:   `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"event","event":"stopped"}}}`,
			family: FamilyDAP,
		},
		{
			name: "runtime",
			line: `{"tag":"runtime","metadata":{"message":{"method":"x"}}}`,
		},
		{
			name:   "protocol without metadata",
			line:   `{"tag":"cdp.send"}`,
			family: FamilyCDP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := mustParse(t, tt.line)
			assert.Equal(t, tt.request, rec.IsRequest(), "IsRequest")
			assert.Equal(t, tt.response, rec.IsResponse(), "IsResponse")
			assert.Equal(t, tt.family, rec.Family())
		})
	}
}

func TestRequestParams(t *testing.T) {
	rec := mustParse(t, `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"event","event":"stopped","body":{"reason":"step"}}}}`)
	req, ok := rec.RequestParams()
	require.True(t, ok)
	assert.Equal(t, "stopped", req.Method)
	assert.Equal(t, `{"reason":"step"}`, JSON(req.Params))

	rec = mustParse(t, `{"tag":"dap.receive","metadata":{"message":{"seq":3,"type":"request","command":"next","arguments":{"threadId":1}}}}`)
	req, ok = rec.RequestParams()
	require.True(t, ok)
	assert.Equal(t, "next", req.Method)

	rec = mustParse(t, `{"tag":"cdp.receive","metadata":{"message":{"id":3,"result":{}}}}`)
	_, ok = rec.RequestParams()
	assert.False(t, ok)
	data, ok := rec.ResponseData()
	require.True(t, ok)
	assert.Equal(t, `{}`, JSON(data))
}

func TestReciprocalID(t *testing.T) {
	send := mustParse(t, `{"tag":"dap.receive","metadata":{"message":{"seq":4,"type":"request","command":"threads"}}}`)
	resp := mustParse(t, `{"tag":"dap.send","metadata":{"message":{"seq":9,"request_seq":4,"type":"response"}}}`)
	a, ok := send.ReciprocalID()
	require.True(t, ok)
	b, ok := resp.ReciprocalID()
	require.True(t, ok)
	assert.Equal(t, "dap-4", a)
	assert.Equal(t, a, b)

	runtime := mustParse(t, `{"tag":"runtime"}`)
	_, ok = runtime.ReciprocalID()
	assert.False(t, ok)
}

func TestConnectionID(t *testing.T) {
	rec := mustParse(t, `{"tag":"cdp.send","metadata":{"connectionId":12}}`)
	id, ok := rec.ConnectionID()
	require.True(t, ok)
	assert.Equal(t, "12", id)

	rec = mustParse(t, `{"tag":"cdp.send","metadata":{"connectionId":"abc"}}`)
	id, ok = rec.ConnectionID()
	require.True(t, ok)
	assert.Equal(t, "abc", id)

	rec = mustParse(t, `{"tag":"cdp.send","metadata":{"connectionId":null}}`)
	_, ok = rec.ConnectionID()
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		line string
		max  int
		want string
	}{
		{
			name: "request with message",
			line: `{"tag":"cdp.send","message":"sending","metadata":{"message":{"id":1,"method":"Debugger.enable","params":{"a":1}}}}`,
			want: `sending: Debugger.enable({"a":1})`,
		},
		{
			name: "response",
			line: `{"tag":"cdp.receive","metadata":{"message":{"id":1,"result":{"ok":true}}}}`,
			want: `{"ok":true}`,
		},
		{
			name: "plain message",
			line: `{"tag":"runtime","message":"hello"}`,
			want: `hello`,
		},
		{
			name: "metadata clipped",
			line: `{"tag":"runtime","metadata":{"key":"abcdefghij"}}`,
			max:  8,
			want: `{"key":"`,
		},
		{
			name: "request without params",
			line: `{"tag":"dap.send","metadata":{"message":{"seq":1,"type":"request","command":"disconnect"}}}`,
			want: `disconnect(undefined)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := mustParse(t, tt.line)
			assert.Equal(t, tt.want, rec.Summary(tt.max))
		})
	}
}
