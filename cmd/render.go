package cmd

import (
	"assessment_backend/internal/model"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type treeStyles struct {
	header   lipgloss.Style
	pillar   lipgloss.Style
	category lipgloss.Style
	dim      lipgloss.Style
}

func newTreeStyles() treeStyles {
	return treeStyles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		pillar:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		category: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func label(id, name string) string {
	if name == "" || name == id {
		return id
	}
	return fmt.Sprintf("%s (%s)", name, id)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// renderTree prints pillars, categories and questions ordered by id.
func renderTree(title string, tree model.ScoreTree, s treeStyles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", s.header.Render(title), s.header.Render(fmt.Sprintf("%.2f", tree.Score)))
	if !tree.ComputedAt.IsZero() {
		fmt.Fprintln(&b, s.dim.Render("computed "+tree.ComputedAt.Format("2006-01-02 15:04:05 MST")))
	}

	for _, pid := range sortedKeys(tree.PillarScores) {
		p := tree.PillarScores[pid]
		fmt.Fprintf(&b, "%s  %.2f\n", s.pillar.Render(label(pid, p.PillarName)), p.Score)
		for _, cid := range sortedKeys(p.CategoryScores) {
			c := p.CategoryScores[cid]
			fmt.Fprintf(&b, "  %s  %.2f\n", s.category.Render(label(cid, c.CategoryName)), c.Score)
			for _, qid := range sortedKeys(c.QuestionScores) {
				fmt.Fprintf(&b, "    %s  %.2f\n", s.dim.Render(qid), c.QuestionScores[qid].Score)
			}
		}
	}
	return b.String()
}
