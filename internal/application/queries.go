package application

import "github.com/bnema/opbots/internal/domain"

type SessionSnapshot struct {
	Phase           domain.Phase `json:"phase"`
	Name            string       `json:"name,omitempty"`
	Participants    []string     `json:"participants,omitempty"`
	Count           int          `json:"count,omitempty"`
	Running         bool         `json:"running"`
	CancelRequested bool         `json:"cancel_requested"`
	Draining        bool         `json:"draining"`
	Connected       bool         `json:"connected"`
}

type Dashboard struct {
	Stats     domain.CatalogStats
	BannerURL string
}

type BroadcastResult struct {
	Recipients int
	Delivered  int
}
