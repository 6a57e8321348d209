package ingestion

import "github.com/skillcheck-ai/skillcheck-api/internal/store"

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(extractor Extractor, kv store.KV) *Container {
	service := NewService(NewChromedpRenderer(), extractor, kv)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
