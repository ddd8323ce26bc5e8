package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"richarticles/enrichment"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)
)

// renderResults draws one box per article followed by a totals line
func renderResults(results []enrichment.BatchResult) string {
	var b strings.Builder
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		b.WriteString(boxStyle.Render(renderResult(r)))
		b.WriteString("\n")
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("%d enriched, %d failed", len(results)-failed, failed)))
	return b.String()
}

func renderResult(r enrichment.BatchResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.ArticleID))
	b.WriteString("\n")

	if r.Err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("❌ %s: %v", enrichment.KindOf(r.Err), r.Err)))
		return b.String()
	}

	a := r.Article
	b.WriteString(statusStyle.Render("✅ " + a.Name))
	b.WriteString("\n")
	if a.HeroImage != nil {
		b.WriteString(fmt.Sprintf("Hero image: %s (%s)\n", a.HeroImage.ID, a.HeroImage.AltText))
	} else {
		b.WriteString(infoStyle.Render("Hero image: none") + "\n")
	}
	b.WriteString(fmt.Sprintf("Videos: %d", a.Videos.Len()))
	for _, v := range a.Videos.Slice() {
		b.WriteString(fmt.Sprintf("\n  • %s %s", v.ID, infoStyle.Render(v.Caption)))
	}
	return b.String()
}
