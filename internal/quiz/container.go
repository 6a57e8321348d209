package quiz

import "github.com/skillcheck-ai/skillcheck-api/internal/store"

type Container struct {
	Handler   *Handler
	WSHandler *WSHandler
	Service   Service
}

func NewContainer(kv store.KV, gateway Gateway, recorder ResultRecorder, mode Mode, questionCount, secondsPerQuestion int) *Container {
	service := NewService(NewSessionStore(), kv, gateway, recorder, mode, questionCount, secondsPerQuestion)

	return &Container{
		Handler:   NewHandler(service),
		WSHandler: NewWSHandler(service),
		Service:   service,
	}
}
