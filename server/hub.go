package server

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"vencsim/calculator"
	"vencsim/model"
)

// 消息类型
const (
	MsgEnv     = "env"
	MsgStart   = "start"
	MsgStop    = "stop"
	MsgEnvSet  = "envSet"
	MsgResult  = "result"
	MsgStopped = "stopped"
	MsgError   = "error"
)

// Hub 处理一个 websocket 连接：读取请求，计算，推送结果。
type Hub struct {
	cfg  model.Config
	conn *websocket.Conn
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
	done  chan struct{}
}

func NewHub(conn *websocket.Conn, cfg model.Config) *Hub {
	return &Hub{
		cfg:   cfg,
		conn:  conn,
		msg:   make(chan model.Msg, 10),
		reply: make(chan model.Msg, 10),
		done:  make(chan struct{}),
	}
}

func (h *Hub) handleResponse() {
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.WithFields(log.Fields{"type": reply.Type}).Error("err: ", err)
		}
		if reply.Type == MsgStopped {
			close(h.done)
			return
		}
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	for msg := range h.msg {
		reply := h.dispatch(msg)
		h.reply <- reply
		if reply.Type == MsgStopped {
			return
		}
	}
}

func (h *Hub) dispatch(msg model.Msg) model.Msg {
	switch msg.Type {
	case MsgEnv:
		// 在当前配置上覆盖收到的字段
		cfg := h.cfg
		if cfg.CalibrationAlpha != nil {
			calibration := *cfg.CalibrationAlpha
			cfg.CalibrationAlpha = &calibration
		}
		if err := json.Unmarshal([]byte(msg.Content), &cfg); err != nil {
			return errorMsg(fmt.Errorf("bad env: %w", err))
		}
		if err := calculator.Validate(cfg); err != nil {
			return errorMsg(err)
		}
		h.cfg = cfg
		log.WithFields(log.Fields{
			"Alpha":    cfg.Alpha,
			"L":        cfg.L,
			"NSamples": cfg.NSamples,
		}).Info("设置仿真参数")
		return model.Msg{Type: MsgEnvSet, Content: "env is set"}
	case MsgStart:
		res, err := calculator.Calculate(h.cfg)
		if err != nil {
			return errorMsg(err)
		}
		data, err := json.Marshal(res)
		if err != nil {
			return errorMsg(err)
		}
		return model.Msg{Type: MsgResult, Content: string(data)}
	case MsgStop:
		return model.Msg{Type: MsgStopped, Content: "stopped"}
	default:
		log.WithFields(log.Fields{"type": msg.Type}).Warn("no such type")
		return model.Msg{Type: MsgError, Content: "no such type: " + msg.Type}
	}
}

func errorMsg(err error) model.Msg {
	return model.Msg{Type: MsgError, Content: err.Error()}
}
