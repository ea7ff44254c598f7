package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"vencsim/calculator"
	"vencsim/model"
	"vencsim/render"
	"vencsim/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	confPath := flag.String("conf", "", "ini 配置文件路径，为空时使用默认参数")
	out := flag.String("out", "venc_simulation.png", "图表输出路径")
	addr := flag.String("addr", "", "websocket 推送地址，例如 :9000")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg := calculator.DefaultConfig()
	if *confPath != "" {
		var (
			level log.Level
			err   error
		)
		cfg, level, err = calculator.LoadConfig(*confPath)
		if err != nil {
			log.Fatal(err)
		}
		log.SetLevel(level)
	}

	if err := run(cfg, *out); err != nil {
		log.Fatal(err)
	}

	if *addr != "" {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
		s := server.NewServer(*addr, cfg, upgrader)
		if err := s.Serve(); err != nil {
			log.Fatal("ListenAndServe: ", err)
		}
	}
}

func run(cfg model.Config, out string) error {
	res, err := calculator.Calculate(cfg)
	if err != nil {
		return err
	}

	renderers := []render.Renderer{
		render.NewPNGRenderer(out),
		render.TextRenderer{W: os.Stdout},
	}
	for _, r := range renderers {
		if err := r.Render(res); err != nil {
			return err
		}
	}
	return nil
}
