package application

import (
	"github.com/bnema/opbots/internal/domain"
	"github.com/bnema/opbots/internal/ports"
)

func MainMenu() [][]ports.Button {
	return [][]ports.Button{
		{actionButton("Create groups", domain.ActionCreate)},
		{actionButton("Status", domain.ActionStatus), actionButton("Stop", domain.ActionStop)},
		{actionButton("Reset", domain.ActionReset)},
	}
}

func ConfirmMenu() [][]ports.Button {
	return [][]ports.Button{
		{actionButton("Execute", domain.ActionExecute), actionButton("Cancel", domain.ActionCancel)},
	}
}

func CancelMenu() [][]ports.Button {
	return [][]ports.Button{{actionButton("Cancel", domain.ActionCancel)}}
}

func StopMenu() [][]ports.Button {
	return [][]ports.Button{{actionButton("Stop", domain.ActionStop)}}
}

func actionButton(text string, action domain.Action) ports.Button {
	return ports.Button{Text: text, Data: string(action)}
}
