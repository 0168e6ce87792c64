package debugserver

import (
	"encoding/json"
	"net/http"

	notify "github.com/bitly/go-notify"
	"github.com/gorilla/websocket"

	"github.com/wize-logic/realmarble2-sub000/common/utils"
)

type wsincomingmessage struct {
	messageType int
	p           []byte
	err         error
}

type eventEnvelope struct {
	Topic string      `json:"topic"`
	Data  interface{} `json:"data"`
}

// topics relayed to websocket watchers
var watchedTopics = []string{
	"bot:state",
	"bot:teleport",
	"arena:pickup",
	"arena:frag",
}

func (srv *DebugService) websocket(w http.ResponseWriter, r *http.Request) {

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Debug("debugserver", "websocket upgrade failed", "error", err.Error())
		return
	}

	defer c.Close()

	utils.Debug("debugserver", "watcher connected", "remote", r.RemoteAddr)
	defer utils.Debug("debugserver", "watcher disconnected", "remote", r.RemoteAddr)

	clientclosedsocket := make(chan bool)
	c.SetCloseHandler(func(code int, text string) error {
		clientclosedsocket <- true
		return nil
	})

	// Listen to incoming messages; mandatory to notice when the socket is
	// closed client side
	incomingmsg := make(chan wsincomingmessage)
	go func(client *websocket.Conn, ch chan wsincomingmessage) {
		messageType, p, err := client.ReadMessage()
		ch <- wsincomingmessage{messageType, p, err}
	}(c, incomingmsg)

	eventchan := make(chan eventEnvelope)
	stopchans := make([]chan interface{}, 0, len(watchedTopics))

	for _, topic := range watchedTopics {
		topicchan := make(chan interface{})
		notify.Start(topic, topicchan)
		stopchans = append(stopchans, topicchan)

		go func(topic string, ch chan interface{}) {
			for data := range ch {
				eventchan <- eventEnvelope{Topic: topic, Data: data}
			}
		}(topic, topicchan)
	}

	defer func() {
		for i, topic := range watchedTopics {
			notify.Stop(topic, stopchans[i])
		}
	}()

	for {
		select {
		case <-clientclosedsocket:
			return
		case <-incomingmsg:
			// ignored; the debug socket is one-way
		case envelope := <-eventchan:
			payload, err := json.Marshal(envelope)
			if err != nil {
				continue
			}

			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}
}
