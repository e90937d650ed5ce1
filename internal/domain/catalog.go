package domain

import (
	"path"
	"strings"
	"time"
)

type CatalogFileID string

// DeepLinkPrefix marks a /start payload that asks for a catalog file.
const DeepLinkPrefix = "dl_"

type CatalogFile struct {
	ID         CatalogFileID
	Name       string
	TelegramID string
	Uploader   string
	CreatedAt  time.Time
}

type CatalogStats struct {
	Files int
	Users int
}

// AcceptsDocument reports whether an upload may enter the catalog.
func AcceptsDocument(fileName, mimeType string) bool {
	if strings.EqualFold(path.Ext(fileName), ".txt") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(mimeType), "text/plain")
}

// ParseDeepLink extracts the file id from a "dl_<id>" start payload.
func ParseDeepLink(payload string) (CatalogFileID, bool) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, DeepLinkPrefix) {
		return "", false
	}

	id := strings.TrimPrefix(payload, DeepLinkPrefix)
	if id == "" {
		return "", false
	}
	return CatalogFileID(id), true
}

func DeepLink(botUsername string, id CatalogFileID) string {
	return "https://t.me/" + botUsername + "?start=" + DeepLinkPrefix + string(id)
}
