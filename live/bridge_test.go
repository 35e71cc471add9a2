package live_test

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonelang-ai/tonelang-go/live"
)

// fakeHost answers bridge requests over a local TCP socket. Responses are
// canned per (op, property/function) pair.
type fakeHost struct {
	listener net.Listener
	handle   func(req map[string]any) (any, string)
}

func startFakeHost(t *testing.T, handle func(req map[string]any) (any, string)) *fakeHost {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	h := &fakeHost{listener: listener, handle: handle}
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadBytes('\n')
			if err != nil {
				return
			}
			var req map[string]any
			if json.Unmarshal(line, &req) != nil {
				return
			}
			result, errMsg := h.handle(req)
			resp := map[string]any{"id": req["id"]}
			if errMsg != "" {
				resp["error"] = errMsg
			} else {
				resp["result"] = result
			}
			payload, _ := json.Marshal(resp)
			if _, err := conn.Write(append(payload, '\n')); err != nil {
				return
			}
		}
	}()
	return h
}

func (h *fakeHost) addr() string { return h.listener.Addr().String() }

func TestBridgeClient_GetScalar(t *testing.T) {
	host := startFakeHost(t, func(req map[string]any) (any, string) {
		assert.Equal(t, "get", req["op"])
		assert.Equal(t, "live_set tracks 0", req["path"])
		assert.Equal(t, "name", req["property"])
		return map[string]any{"scalar": "Bass"}, ""
	})

	client, err := live.DialBridge("tcp", host.addr())
	require.NoError(t, err)
	defer client.Close()

	name, err := client.FromPath("live_set tracks 0").Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Bass", name)
}

func TestBridgeClient_GetChildren(t *testing.T) {
	host := startFakeHost(t, func(req map[string]any) (any, string) {
		return map[string]any{"children": []map[string]any{
			{"path": "live_set tracks 0", "id": "id 7"},
			{"path": "live_set tracks 1", "id": "id 8"},
		}}, ""
	})

	client, err := live.DialBridge("tcp", host.addr())
	require.NoError(t, err)
	defer client.Close()

	raw, err := client.FromPath("live_set").Get("tracks")
	require.NoError(t, err)

	tracks, ok := raw.([]live.Object)
	require.True(t, ok, "child lists decode as []Object for the resolver")
	require.Len(t, tracks, 2)
	assert.Equal(t, "live_set tracks 0", tracks[0].Path())
	assert.Equal(t, "id 8", tracks[1].ID())
}

func TestBridgeClient_CallAndExists(t *testing.T) {
	host := startFakeHost(t, func(req map[string]any) (any, string) {
		switch req["op"] {
		case "call":
			assert.Equal(t, "delete_device", req["function"])
			assert.Equal(t, []any{2.0}, req["args"], "JSON numbers arrive as float64")
			return nil, ""
		case "exists":
			return true, ""
		}
		return nil, "unexpected op"
	})

	client, err := live.DialBridge("tcp", host.addr())
	require.NoError(t, err)
	defer client.Close()

	obj := client.FromPath("live_set tracks 0")
	assert.True(t, obj.Exists())
	_, err = obj.Call("delete_device", 2)
	require.NoError(t, err)
}

func TestBridgeClient_HostError(t *testing.T) {
	host := startFakeHost(t, func(req map[string]any) (any, string) {
		return nil, "no such property"
	})

	client, err := live.DialBridge("tcp", host.addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = client.FromPath("live_set").Get("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such property")
}
