package jupyter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/atomicstack/notebook-menubar/internal/logging/events"
)

const protocolVersion = "5.3"

// MessageHeader is the header of a kernel messaging protocol message.
type MessageHeader struct {
	MsgID    string `json:"msg_id"`
	Session  string `json:"session"`
	Username string `json:"username"`
	Date     string `json:"date"`
	MsgType  string `json:"msg_type"`
	Version  string `json:"version"`
}

// Message is a kernel protocol message as framed by the server's websocket.
type Message struct {
	Header       MessageHeader          `json:"header"`
	ParentHeader map[string]interface{} `json:"parent_header"`
	Metadata     map[string]interface{} `json:"metadata"`
	Content      interface{}            `json:"content"`
	Channel      string                 `json:"channel"`
	Buffers      []interface{}          `json:"buffers"`
}

// ExecuteContent is the content of an execute_request.
type ExecuteContent struct {
	Code            string                 `json:"code"`
	Silent          bool                   `json:"silent"`
	StoreHistory    bool                   `json:"store_history"`
	UserExpressions map[string]interface{} `json:"user_expressions"`
	AllowStdin      bool                   `json:"allow_stdin"`
	StopOnError     bool                   `json:"stop_on_error"`
}

// KernelChannel is a websocket connection to a kernel's channels endpoint.
// Requests are sent without waiting for replies.
type KernelChannel struct {
	client    *Client
	kernelID  string
	sessionID string

	mu   sync.Mutex
	conn *websocket.Conn
}

// Channel returns an unconnected channel for kernelID.
func (c *Client) Channel(kernelID, sessionID string) *KernelChannel {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &KernelChannel{client: c, kernelID: kernelID, sessionID: sessionID}
}

// KernelID returns the kernel this channel addresses.
func (k *KernelChannel) KernelID() string {
	return k.kernelID
}

func (k *KernelChannel) url() string {
	base := k.client.base
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return APIPath(base, "kernels", k.kernelID, "channels") + "?session_id=" + k.sessionID
}

func (k *KernelChannel) dial() (*websocket.Conn, error) {
	cfg, err := websocket.NewConfig(k.url(), k.client.base)
	if err != nil {
		return nil, fmt.Errorf("kernel channel config: %w", err)
	}
	cfg.Header = make(http.Header)
	k.client.authorize(cfg.Header)
	conn, err := websocket.DialConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("dial kernel %s: %w", k.kernelID, err)
	}
	return conn, nil
}

// Reconnect drops the current connection and dials a new one.
func (k *KernelChannel) Reconnect() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.conn != nil {
		_ = k.conn.Close()
		k.conn = nil
	}
	conn, err := k.dial()
	events.Kernel.Op("reconnect", k.kernelID, err)
	if err != nil {
		return err
	}
	k.conn = conn
	return nil
}

// Close closes the connection if one is open.
func (k *KernelChannel) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.conn == nil {
		return nil
	}
	err := k.conn.Close()
	k.conn = nil
	return err
}

// Execute sends one execute_request per source on the shell channel.
func (k *KernelChannel) Execute(sources ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.conn == nil {
		conn, err := k.dial()
		if err != nil {
			return err
		}
		k.conn = conn
	}
	enc := json.NewEncoder(k.conn)
	for _, code := range sources {
		msg := k.executeRequest(code)
		if err := enc.Encode(msg); err != nil {
			_ = k.conn.Close()
			k.conn = nil
			return fmt.Errorf("send execute_request: %w", err)
		}
	}
	events.Kernel.Execute(k.kernelID, len(sources))
	return nil
}

func (k *KernelChannel) executeRequest(code string) Message {
	return Message{
		Header: MessageHeader{
			MsgID:    uuid.NewString(),
			Session:  k.sessionID,
			Username: "notebook-menubar",
			Date:     time.Now().UTC().Format(time.RFC3339Nano),
			MsgType:  "execute_request",
			Version:  protocolVersion,
		},
		ParentHeader: map[string]interface{}{},
		Metadata:     map[string]interface{}{},
		Content: ExecuteContent{
			Code:            code,
			StoreHistory:    true,
			UserExpressions: map[string]interface{}{},
			StopOnError:     true,
		},
		Channel: "shell",
		Buffers: []interface{}{},
	}
}
