package domain

import (
	"fmt"
	"strings"
)

// Bot names one of the chat front ends shipped in the binary.
type Bot string

const (
	BotGroups  Bot = "groups"
	BotCatalog Bot = "catalog"
)

func Bots() []Bot {
	return []Bot{BotGroups, BotCatalog}
}

func ParseBot(raw string) (Bot, error) {
	bot := Bot(strings.ToLower(strings.TrimSpace(raw)))
	switch bot {
	case BotGroups, BotCatalog:
		return bot, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBot, raw)
	}
}
