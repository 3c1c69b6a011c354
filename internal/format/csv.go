package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"pm-cli/internal/model"
)

var csvHeader = []string{
	"ID", "Title", "Kind", "Status", "Priority", "Urgency", "ProcessStage",
	"Project", "Tags", "Due", "Parent", "CreatedUTC", "UpdatedUTC", "Description",
}

const csvTimeLayout = "2006-01-02T15:04:05Z"

// WriteCSV emits the items as a spreadsheet-friendly table. Tags are
// semicolon-joined inside their column so the record stays one row.
func WriteCSV(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range items {
		parent := ""
		if it.Parent != nil {
			parent = strconv.FormatUint(*it.Parent, 10)
		}
		rec := []string{
			strconv.FormatUint(it.ID, 10),
			it.Title,
			string(it.Kind),
			string(it.Status),
			string(it.Priority),
			string(it.Urgency),
			string(it.ProcessStage),
			it.Project,
			strings.Join(it.Tags, ";"),
			string(it.Due),
			parent,
			it.CreatedAt.UTC().Format(csvTimeLayout),
			it.UpdatedAt.UTC().Format(csvTimeLayout),
			it.Description,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file previously produced by WriteCSV. Items keep their
// original ids and parent pointers; the importer is expected to remap them
// into the target store.
func ReadCSV(r io.Reader) ([]model.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, col := range csvHeader {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected csv header: want %q in column %d, got %q", col, i+1, header[i])
		}
	}

	var items []model.Item
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		it, err := itemFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func itemFromRecord(rec []string) (model.Item, error) {
	var it model.Item
	id, err := strconv.ParseUint(rec[0], 10, 64)
	if err != nil {
		return it, fmt.Errorf("bad id %q", rec[0])
	}
	it.ID = id
	it.Title = rec[1]
	if it.Title == "" {
		return it, fmt.Errorf("empty title")
	}
	if it.Kind, err = model.ParseKind(rec[2]); err != nil {
		return it, err
	}
	if it.Status, err = model.ParseStatus(rec[3]); err != nil {
		return it, err
	}
	if rec[4] != "" {
		if it.Priority, err = model.ParsePriority(rec[4]); err != nil {
			return it, err
		}
	}
	if rec[5] != "" {
		if it.Urgency, err = model.ParseUrgency(rec[5]); err != nil {
			return it, err
		}
	}
	if rec[6] != "" {
		if it.ProcessStage, err = model.ParseProcessStage(rec[6]); err != nil {
			return it, err
		}
	}
	it.Project = rec[7]
	if rec[8] != "" {
		it.Tags = model.SplitTags(strings.Split(rec[8], ";"))
	}
	if rec[9] != "" {
		if it.Due, err = model.ParseDate(rec[9]); err != nil {
			return it, err
		}
	}
	if rec[10] != "" {
		pid, err := strconv.ParseUint(rec[10], 10, 64)
		if err != nil {
			return it, fmt.Errorf("bad parent id %q", rec[10])
		}
		it.Parent = &pid
	}
	if it.CreatedAt, err = parseCSVTime(rec[11]); err != nil {
		return it, err
	}
	if it.UpdatedAt, err = parseCSVTime(rec[12]); err != nil {
		return it, err
	}
	it.Description = rec[13]
	return it, nil
}

func parseCSVTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(csvTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q", s)
	}
	return t, nil
}
