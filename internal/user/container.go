package user

import "time"

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(repo Repository, adminEmails []string, tokenTTL time.Duration) *Container {
	service := NewService(repo, adminEmails, tokenTTL)
	handler := NewHandler(service, NewGoogleAuthenticator(), tokenTTL)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
