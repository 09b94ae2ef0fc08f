package pairing

import (
	"fmt"
	"testing"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t testing.TB, index int, line string) *model.LogRecord {
	t.Helper()
	rec, err := model.ParseLine(line, index)
	require.NoError(t, err)
	return &rec
}

func TestIsReciprocalPair(t *testing.T) {
	cdpRequest := `{"tag":"cdp.send","metadata":{"message":{"id":5,"method":"Debugger.enable"}}}`
	cdpResult := `{"tag":"cdp.receive","metadata":{"message":{"id":5,"result":{}}}}`

	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "cdp request and result", a: cdpRequest, b: cdpResult, want: true},
		{name: "cdp reversed order", a: cdpResult, b: cdpRequest, want: true},
		{
			name: "cdp different id",
			a:    cdpRequest,
			b:    `{"tag":"cdp.receive","metadata":{"message":{"id":6,"result":{}}}}`,
		},
		{
			name: "cdp same direction",
			a:    cdpRequest,
			b:    `{"tag":"cdp.send","metadata":{"message":{"id":5,"method":"X"}}}`,
		},
		{
			name: "cdp both sides carry method",
			a:    cdpRequest,
			b:    `{"tag":"cdp.receive","metadata":{"message":{"id":5,"method":"Debugger.paused"}}}`,
		},
		{
			name: "cdp error response",
			a:    cdpRequest,
			b:    `{"tag":"cdp.receive","metadata":{"message":{"id":5,"error":{"code":-1}}}}`,
			want: true,
		},
		{
			name: "cdp without ids",
			a:    `{"tag":"cdp.send","metadata":{"message":{"method":"A"}}}`,
			b:    `{"tag":"cdp.receive","metadata":{"message":{"result":{}}}}`,
		},
		{
			name: "dap request and response",
			a:    `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"request","command":"next"}}}`,
			b:    `{"tag":"dap.receive","metadata":{"message":{"seq":3,"type":"response"}}}`,
			want: true,
		},
		{
			name: "dap equal seq wins over a different request_seq",
			a:    `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"request","command":"next"}}}`,
			b:    `{"tag":"dap.receive","metadata":{"message":{"seq":3,"type":"response","request_seq":9}}}`,
			want: true,
		},
		{
			name: "dap request_seq must name the request",
			a:    `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"request","command":"next"}}}`,
			b:    `{"tag":"dap.receive","metadata":{"message":{"seq":10,"type":"response","request_seq":4}}}`,
		},
		{
			name: "dap request_seq on an event is ignored",
			a:    `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"request","command":"next"}}}`,
			b:    `{"tag":"dap.receive","metadata":{"message":{"seq":10,"type":"event","request_seq":3}}}`,
		},
		{
			name: "dap response answering its request by request_seq",
			a:    `{"tag":"dap.receive","metadata":{"message":{"seq":3,"type":"request","command":"next"}}}`,
			b:    `{"tag":"dap.send","metadata":{"message":{"seq":40,"request_seq":3,"type":"response"}}}`,
			want: true,
		},
		{
			name: "dap same direction",
			a:    `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"request","command":"next"}}}`,
			b:    `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"request","command":"next"}}}`,
		},
		{
			name: "dap echo with identical type",
			a:    `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"request"}}}`,
			b:    `{"tag":"dap.receive","metadata":{"message":{"seq":3,"type":"request"}}}`,
		},
		{
			name: "dap different seq",
			a:    `{"tag":"dap.send","metadata":{"message":{"seq":3,"type":"request"}}}`,
			b:    `{"tag":"dap.receive","metadata":{"message":{"seq":4,"type":"response"}}}`,
		},
		{
			name: "families never mix",
			a:    `{"tag":"dap.send","metadata":{"message":{"seq":5,"id":5,"type":"request","method":"A"}}}`,
			b:    cdpResult,
		},
		{
			name: "runtime records",
			a:    `{"tag":"runtime","metadata":{"message":{"id":5,"method":"A"}}}`,
			b:    `{"tag":"runtime","metadata":{"message":{"id":5,"result":{}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := record(t, 0, tt.a)
			b := record(t, 1, tt.b)
			assert.Equal(t, tt.want, IsReciprocalPair(a, b))
			assert.Equal(t, tt.want, IsReciprocalPair(b, a), "pairing must not depend on argument order")
		})
	}
}

func TestFindCounterpart(t *testing.T) {
	rows := model.Parse(`{"tag":"cdp.send","metadata":{"message":{"id":1,"method":"A"}}}
{"tag":"cdp.receive","metadata":{"message":{"id":1,"result":{}}}}
{"tag":"runtime","message":"noise"}
{"tag":"cdp.send","metadata":{"message":{"id":1,"method":"B"}}}
{"tag":"cdp.receive","metadata":{"message":{"id":1,"result":{"second":true}}}}`)
	require.Len(t, rows, 5)

	got, ok := FindCounterpart(&rows[3], rows)
	require.True(t, ok)
	assert.Equal(t, 4, got.Index, "the closest counterpart wins")

	got, ok = FindCounterpart(&rows[1], rows)
	require.True(t, ok)
	assert.Equal(t, 0, got.Index)

	_, ok = FindCounterpart(&rows[2], rows)
	assert.False(t, ok, "runtime records have no counterpart")
}

var protocolTags = []string{model.TagCDPSend, model.TagCDPReceive, model.TagDAPSend, model.TagDAPReceive, model.TagRuntime}
var dapTypes = []string{"request", "response", "event"}

func genRecordLine() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(protocolTags)-1),
		gen.IntRange(0, 3),
		gen.Bool(),
		gen.IntRange(0, len(dapTypes)-1),
	).Map(func(values []interface{}) string {
		tag := protocolTags[values[0].(int)]
		id := values[1].(int)
		withMethod := values[2].(bool)
		dapType := dapTypes[values[3].(int)]
		method := ""
		if withMethod {
			method = `,"method":"M"`
		} else {
			method = `,"result":{}`
		}
		return fmt.Sprintf(`{"tag":%q,"metadata":{"message":{"id":%d,"seq":%d,"type":%q%s}}}`, tag, id, id, dapType, method)
	})
}

func TestPairingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("a record never pairs with itself", prop.ForAll(
		func(line string) bool {
			rec := record(t, 0, line)
			return !IsReciprocalPair(rec, rec)
		},
		genRecordLine(),
	))

	properties.Property("pairing is symmetric", prop.ForAll(
		func(lineA, lineB string) bool {
			a := record(t, 0, lineA)
			b := record(t, 1, lineB)
			return IsReciprocalPair(a, b) == IsReciprocalPair(b, a)
		},
		genRecordLine(), genRecordLine(),
	))

	properties.TestingRun(t)
}
