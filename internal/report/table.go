package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/tagger"
)

// Width in cells of the longest bar drawn by PrintBars.
const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	numberStyle = cellStyle.
			Align(lipgloss.Right)

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// PrintTable writes the analysis summary and a (Skill, Count, Share) table.
// Share is the fraction of valid postings that mention the skill.
func PrintTable(w io.Writer, res tagger.Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Successfully loaded and cleaned %d job postings.\n", res.Valid)
	if res.Discarded > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Skipped %d postings without a usable description.", res.Discarded)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(titleStyle.Render("--- Skill Analysis Complete ---"))
	b.WriteByte('\n')

	rows := make([][]string, 0, len(res.Counts))
	for _, c := range res.Counts {
		rows = append(rows, []string{c.Skill, strconv.Itoa(c.Count), share(c.Count, res.Valid)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col > 0:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		Headers("Skill", "Count", "Share").
		Rows(rows...)

	b.WriteString(t.Render())
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// PrintBars writes one horizontal bar per skill, scaled to the largest count.
func PrintBars(w io.Writer, counts []tagger.SkillCount) error {
	if len(counts) == 0 {
		return nil
	}

	nameWidth, maxCount := 0, 0
	for _, c := range counts {
		nameWidth = max(nameWidth, lipgloss.Width(c.Skill))
		maxCount = max(maxCount, c.Count)
	}

	var b strings.Builder
	for _, c := range counts {
		n := 0
		if maxCount > 0 {
			n = c.Count * barWidth / maxCount
		}
		if n == 0 && c.Count > 0 {
			n = 1
		}
		name := cellStyle.Width(nameWidth + 2).Render(c.Skill)
		bar := barStyle.Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%s %s %s\n", name, bar, dimStyle.Render(strconv.Itoa(c.Count)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// PrintJobs writes a preview table of the first n jobs (all of them when n <= 0).
func PrintJobs(w io.Writer, jobs []model.Job, n int) error {
	if n <= 0 || n > len(jobs) {
		n = len(jobs)
	}

	rows := make([][]string, 0, n)
	for _, j := range jobs[:n] {
		rows = append(rows, []string{
			model.OrNA(j.Title),
			model.OrNA(j.Company),
			model.OrNA(j.JobType),
			model.OrNA(j.PostDate),
			j.Status.String(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Title", "Company", "Job Type", "Post Date", "Description").
		Rows(rows...)

	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

func share(count, valid int) string {
	if valid == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)*100/float64(valid))
}
