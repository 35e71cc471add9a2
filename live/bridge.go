package live

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
)

// BridgeClient talks to the plugin host over a local socket using a
// line-delimited JSON request/response protocol. Each host API operation
// is one synchronous round trip; the host side answers in order but
// responses are matched by id anyway.
type BridgeClient struct {
	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

type bridgeRequest struct {
	ID       string `json:"id"`
	Op       string `json:"op"` // get | set | call | exists | id
	Path     string `json:"path,omitempty"`
	ObjectID string `json:"objectId,omitempty"`
	Property string `json:"property,omitempty"`
	Function string `json:"function,omitempty"`
	Args     []any  `json:"args,omitempty"`
	Value    any    `json:"value,omitempty"`
}

type bridgeResponse struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

// DialBridge connects to the plugin host, e.g. "localhost:39031".
func DialBridge(network, address string) (*BridgeClient, error) {
	conn, err := net.Dial(network, address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to host bridge at %s: %w", address, err)
	}
	return &BridgeClient{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Close shuts the bridge connection down.
func (c *BridgeClient) Close() error { return c.conn.Close() }

// FromPath implements Client.
func (c *BridgeClient) FromPath(path string) Object {
	return &bridgeObject{client: c, path: path}
}

// FromID implements Client.
func (c *BridgeClient) FromID(id string) Object {
	return &bridgeObject{client: c, objectID: id}
}

func (c *BridgeClient) roundTrip(req bridgeRequest) (json.RawMessage, error) {
	req.ID = uuid.NewString()
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bridge request: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("bridge write failed: %w", err)
	}
	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("bridge read failed: %w", err)
		}
		var resp bridgeResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, fmt.Errorf("bridge sent invalid JSON: %w", err)
		}
		if resp.ID != req.ID {
			// Stale response from an earlier timed-out request; skip it.
			continue
		}
		if resp.Error != "" {
			return nil, fmt.Errorf("host error: %s", resp.Error)
		}
		return resp.Result, nil
	}
}

type bridgeObject struct {
	client   *BridgeClient
	path     string
	objectID string
}

func (o *bridgeObject) request(op string) bridgeRequest {
	return bridgeRequest{Op: op, Path: o.path, ObjectID: o.objectID}
}

func (o *bridgeObject) Get(property string) (any, error) {
	req := o.request("get")
	req.Property = property
	raw, err := o.client.roundTrip(req)
	if err != nil {
		return nil, err
	}
	return decodeBridgeValue(o.client, raw)
}

func (o *bridgeObject) Set(property string, value any) error {
	req := o.request("set")
	req.Property = property
	req.Value = value
	_, err := o.client.roundTrip(req)
	return err
}

func (o *bridgeObject) Call(function string, args ...any) (any, error) {
	req := o.request("call")
	req.Function = function
	req.Args = args
	raw, err := o.client.roundTrip(req)
	if err != nil {
		return nil, err
	}
	var out any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("bridge sent invalid call result: %w", err)
		}
	}
	return out, nil
}

func (o *bridgeObject) Exists() bool {
	raw, err := o.client.roundTrip(o.request("exists"))
	if err != nil {
		return false
	}
	var exists bool
	return json.Unmarshal(raw, &exists) == nil && exists
}

func (o *bridgeObject) Path() string { return o.path }

func (o *bridgeObject) ID() string {
	if o.objectID != "" {
		return o.objectID
	}
	raw, err := o.client.roundTrip(o.request("id"))
	if err != nil {
		return ""
	}
	var id string
	if json.Unmarshal(raw, &id) != nil {
		return ""
	}
	return id
}

// bridgeValue is the wire shape for object references and child lists.
type bridgeValue struct {
	Object   *bridgeRef  `json:"object,omitempty"`
	Children []bridgeRef `json:"children,omitempty"`
	Scalar   any         `json:"scalar,omitempty"`
}

type bridgeRef struct {
	Path string `json:"path"`
	ID   string `json:"id"`
}

// decodeBridgeValue turns a get result into the shapes the resolver
// expects: []Object for child collections, Object for singular children,
// the scalar otherwise.
func decodeBridgeValue(c *BridgeClient, raw json.RawMessage) (any, error) {
	var v bridgeValue
	if err := json.Unmarshal(raw, &v); err == nil {
		if v.Object != nil {
			return &bridgeObject{client: c, path: v.Object.Path, objectID: v.Object.ID}, nil
		}
		if v.Children != nil {
			out := make([]Object, len(v.Children))
			for i, ref := range v.Children {
				out[i] = &bridgeObject{client: c, path: ref.Path, objectID: ref.ID}
			}
			return out, nil
		}
		if v.Scalar != nil {
			return v.Scalar, nil
		}
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("bridge sent invalid get result: %w", err)
	}
	return plain, nil
}
