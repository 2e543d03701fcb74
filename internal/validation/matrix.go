package validation

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	matrixHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	matrixCell   = lipgloss.NewStyle().Padding(0, 1)
	matrixPass   = matrixCell.Foreground(lipgloss.Color("2"))
	matrixFail   = matrixCell.Foreground(lipgloss.Color("1"))
)

// Matrix renders the sweep as a table with one row per context and one
// column per type. Cells read "ok" or the pair's error count.
func Matrix(sweep *Sweep) string {
	types := sweep.Types()
	headers := make([]string, 0, len(types)+1)
	headers = append(headers, "Context")
	for _, t := range types {
		headers = append(headers, t.String())
	}

	contexts := sweep.Contexts()
	rows := make([][]string, 0, len(contexts))
	failed := make(map[[2]int]bool)
	for i, c := range contexts {
		row := []string{c.String()}
		for j, t := range types {
			result, ok := sweep.Lookup(c, t)
			switch {
			case !ok:
				row = append(row, "-")
			case result.HasErrors():
				row = append(row, fmt.Sprintf("%d error(s)", result.Len()))
				failed[[2]int{i, j + 1}] = true
			default:
				row = append(row, "ok")
			}
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return matrixHeader
			case col == 0:
				return matrixCell
			case failed[[2]int{row, col}]:
				return matrixFail
			default:
				return matrixPass
			}
		}).
		Render()
}
