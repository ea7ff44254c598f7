package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"vencsim/model"
)

type Server struct {
	addr     string
	cfg      model.Config
	upgrader websocket.Upgrader
}

func NewServer(addr string, cfg model.Config, upgrader websocket.Upgrader) *Server {
	return &Server{
		addr:     addr,
		cfg:      cfg,
		upgrader: upgrader,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	hub := NewHub(conn, s.cfg)
	go hub.handleRequest()
	go hub.handleResponse()
	defer close(hub.msg)

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			log.Println("err: ", err)
			return
		}
		hub.msg <- msg
		if msg.Type == MsgStop {
			<-hub.done
			return
		}
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithFields(log.Fields{"addr": s.addr}).Info("websocket 服务已启动")
	return http.ListenAndServe(s.addr, s.Handler())
}
