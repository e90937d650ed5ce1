package render

import (
	"fmt"
	"strings"

	"github.com/bnema/opbots/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Catalog renders the stored files with their deep links when botUsername
// is known.
func Catalog(files []domain.CatalogFile, botUsername string) (string, error) {
	return run(func(s styles) string {
		return catalogView(files, botUsername, s)
	})
}

func catalogView(files []domain.CatalogFile, botUsername string, s styles) string {
	lines := []string{
		s.title.Render("TXT catalog"),
		s.header.Render(fmt.Sprintf("files: %d", len(files))),
	}

	if len(files) == 0 {
		lines = append(lines, s.empty.Render("The catalog is empty."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, file := range files {
		parts := []string{
			s.file.Render(fmt.Sprintf("%s (%s)", strings.TrimSpace(file.Name), file.ID)),
			s.detail.Render("by " + file.Uploader + addedSuffix(file)),
		}
		if botUsername != "" {
			parts = append(parts, s.header.Render(domain.DeepLink(botUsername, file.ID)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, parts...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func addedSuffix(file domain.CatalogFile) string {
	if file.CreatedAt.IsZero() {
		return ""
	}
	return ", added " + file.CreatedAt.Format("2006-01-02 15:04")
}
