package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/tagger"
)

func sampleResult() tagger.Result {
	return tagger.Result{
		Counts: []tagger.SkillCount{
			{Skill: "Python", Count: 3},
			{Skill: "Django", Count: 2},
			{Skill: "Flask", Count: 0},
		},
		Valid:     4,
		Discarded: 1,
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "Successfully loaded and cleaned 4 job postings.")
	assert.Contains(t, out, "Skipped 1 postings without a usable description.")
	assert.Contains(t, out, "Skill")
	assert.Contains(t, out, "Count")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "50.0%")

	// Rows keep the order they were given in.
	py := strings.Index(out, "Python")
	dj := strings.Index(out, "Django")
	fl := strings.Index(out, "Flask")
	require.True(t, py >= 0 && dj >= 0 && fl >= 0)
	assert.Less(t, py, dj)
	assert.Less(t, dj, fl)
}

func TestPrintTableNoValidJobs(t *testing.T) {
	var buf bytes.Buffer
	res := tagger.Result{Counts: []tagger.SkillCount{{Skill: "Python"}}}
	require.NoError(t, PrintTable(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "Successfully loaded and cleaned 0 job postings.")
	assert.Contains(t, out, "0.0%")
	assert.NotContains(t, out, "Skipped")
}

func TestPrintBars(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintBars(&buf, sampleResult().Counts))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, barWidth, strings.Count(lines[0], "█"))
	assert.Equal(t, barWidth*2/3, strings.Count(lines[1], "█"))
	assert.Equal(t, 0, strings.Count(lines[2], "█"))
	assert.True(t, strings.HasSuffix(lines[2], "0"))
}

func TestPrintBarsSmallCountStillVisible(t *testing.T) {
	var buf bytes.Buffer
	counts := []tagger.SkillCount{{Skill: "Python", Count: 1000}, {Skill: "Git", Count: 1}}
	require.NoError(t, PrintBars(&buf, counts))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 1, strings.Count(lines[1], "█"))
}

func TestPrintBarsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintBars(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestRenderChartPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "skill_demand_chart.png")
	require.NoError(t, RenderChart(path, sampleResult().Counts, ChartOptions{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "expected a PNG file")
}

func TestRenderChartSVGWithCustomTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	opts := ChartOptions{Title: "Demand This Week"}
	require.NoError(t, RenderChart(path, sampleResult().Counts, opts))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestRenderChartAllZeroCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.png")
	counts := []tagger.SkillCount{{Skill: "Python"}, {Skill: "Git"}}
	require.NoError(t, RenderChart(path, counts, ChartOptions{}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderChartNoCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	err := RenderChart(path, nil, ChartOptions{})
	assert.ErrorIs(t, err, ErrNoCounts)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestChartOptionsDefaults(t *testing.T) {
	o := ChartOptions{YLabel: "Skill"}.withDefaults()
	d := DefaultChartOptions()
	assert.Equal(t, d.Title, o.Title)
	assert.Equal(t, d.XLabel, o.XLabel)
	assert.Equal(t, "Skill", o.YLabel)
	assert.Equal(t, d.Width, o.Width)
}

func TestPrintJobsPreview(t *testing.T) {
	jobs := []model.Job{
		{Title: "Backend Dev", Company: "Acme", Status: model.DescriptionOK},
		{Title: "Data Eng", Status: model.DescriptionNotFound},
		{Title: "Third", Status: model.DescriptionOK},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintJobs(&buf, jobs, 2))

	out := buf.String()
	assert.Contains(t, out, "Backend Dev")
	assert.Contains(t, out, "Data Eng")
	assert.Contains(t, out, "N/A")
	assert.NotContains(t, out, "Third")
}
