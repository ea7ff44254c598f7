package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vencsim/calculator"
	"vencsim/model"
)

func dial(t *testing.T) *websocket.Conn {
	s := NewServer("", calculator.DefaultConfig(), websocket.Upgrader{})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg model.Msg) model.Msg {
	require.NoError(t, conn.WriteJSON(&msg))
	var reply model.Msg
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestHubStart(t *testing.T) {
	conn := dial(t)

	reply := roundTrip(t, conn, model.Msg{Type: MsgStart})
	require.Equal(t, MsgResult, reply.Type)

	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &res))
	assert.Len(t, res.VMeasured, 500)
	assert.Equal(t, "Max Error at edges: 0.0500 m/s", res.Summary.String())
}

func TestHubEnv(t *testing.T) {
	conn := dial(t)

	reply := roundTrip(t, conn, model.Msg{Type: MsgEnv, Content: `{"alpha": 0.2, "n_samples": 11}`})
	require.Equal(t, MsgEnvSet, reply.Type)

	reply = roundTrip(t, conn, model.Msg{Type: MsgStart})
	require.Equal(t, MsgResult, reply.Type)
	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &res))
	assert.Equal(t, 0.2, res.Config.Alpha)
	assert.Equal(t, 0.5, res.Config.VTrue)
	assert.Len(t, res.Position, 11)
	assert.InDelta(t, 0.6, res.VMeasured[0], 1e-12)
}

func TestHubRejectsInvalidEnv(t *testing.T) {
	conn := dial(t)

	reply := roundTrip(t, conn, model.Msg{Type: MsgEnv, Content: `{"alpha": -1}`})
	assert.Equal(t, MsgError, reply.Type)
	assert.Contains(t, reply.Content, "invalid configuration")

	reply = roundTrip(t, conn, model.Msg{Type: MsgEnv, Content: `not json`})
	assert.Equal(t, MsgError, reply.Type)

	// 配置未被修改
	reply = roundTrip(t, conn, model.Msg{Type: MsgStart})
	require.Equal(t, MsgResult, reply.Type)
	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &res))
	assert.Equal(t, -0.1, res.Config.Alpha)
}

func TestHubUnknownAndStop(t *testing.T) {
	conn := dial(t)

	reply := roundTrip(t, conn, model.Msg{Type: "pause"})
	assert.Equal(t, MsgError, reply.Type)

	reply = roundTrip(t, conn, model.Msg{Type: MsgStop})
	assert.Equal(t, MsgStopped, reply.Type)

	// 服务端关闭连接
	var msg model.Msg
	assert.Error(t, conn.ReadJSON(&msg))
}

func TestHubRejectsHugeSampleCount(t *testing.T) {
	conn := dial(t)

	reply := roundTrip(t, conn, model.Msg{Type: MsgEnv, Content: `{"n_samples": 9223372036854775807}`})
	assert.Equal(t, MsgError, reply.Type)
	assert.Contains(t, reply.Content, "n_samples")

	// 连接仍可用，配置未被修改
	reply = roundTrip(t, conn, model.Msg{Type: MsgStart})
	require.Equal(t, MsgResult, reply.Type)
	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &res))
	assert.Len(t, res.Position, 500)
}
