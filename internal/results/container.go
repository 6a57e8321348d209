package results

import "github.com/skillcheck-ai/skillcheck-api/internal/store"

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(repo Repository, kv store.KV) *Container {
	service := NewService(repo, kv)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
