package ports

import "context"

type GroupInfo struct {
	ID   string
	Name string
}

type GroupCreator interface {
	IsConnected() bool
	CreateGroup(ctx context.Context, name string, participants []string) (GroupInfo, error)
}
