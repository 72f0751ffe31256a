package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/amishk599/skillradar/internal/model"
)

// Column headers of the tabular job file, in write order.
const (
	ColTitle       = "Title"
	ColCompany     = "Company"
	ColJobType     = "Job Type"
	ColPostDate    = "Post Date"
	ColDescription = "Description"
	ColLink        = "Link"
)

var csvHeader = []string{ColTitle, ColCompany, ColJobType, ColPostDate, ColDescription, ColLink}

// WriteCSV writes jobs to path, replacing any existing file. Absent values are
// written as their sentinel strings. Missing parent directories are created.
func WriteCSV(path string, jobs []model.Job) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := writeJobs(f, jobs); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func writeJobs(w io.Writer, jobs []model.Job) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, j := range jobs {
		row := []string{
			model.OrNA(j.Title),
			model.OrNA(j.Company),
			model.OrNA(j.JobType),
			model.OrNA(j.PostDate),
			j.DescriptionText(),
			model.OrNA(j.Link),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads jobs from a file written by WriteCSV or any table with the same
// column names in any order. A missing file yields model.ErrMissingInput.
func ReadCSV(path string) ([]model.Job, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", model.ErrMissingInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	jobs, err := readJobs(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return jobs, nil
}

func readJobs(r io.Reader) ([]model.Job, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[strings.TrimSpace(h)] = i
	}
	if _, ok := cols[ColDescription]; !ok {
		return nil, fmt.Errorf("missing %q column", ColDescription)
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var jobs []model.Job
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(jobs)+2, err)
		}

		desc, status := model.ParseDescription(field(row, ColDescription))
		jobs = append(jobs, model.Job{
			Title:       model.FromNA(field(row, ColTitle)),
			Company:     model.FromNA(field(row, ColCompany)),
			JobType:     model.FromNA(field(row, ColJobType)),
			PostDate:    model.FromNA(field(row, ColPostDate)),
			Link:        model.FromNA(field(row, ColLink)),
			Description: desc,
			Status:      status,
		})
	}
	return jobs, nil
}
