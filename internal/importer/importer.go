package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lms-theme-renderer/internal/domain"
)

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.Category) (*domain.Category, error)
}

var requiredColumns = []string{"id", "name"}

// CSVImporter reads course category exports with the columns
// id,parent_id,name,visible,sort_order and upserts them parents first.
type CSVImporter struct {
	reader *csv.Reader
	repo   CategoryWriter
}

func NewCSVImporter(r io.Reader, repo CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader: csvr,
		repo:   repo,
	}
}

// Run parses every row, then writes categories so that a parent listed in the
// file is stored before its children. Parents missing from the file are
// assumed to exist already.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []domain.Category
	seen := make(map[int64]int)
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return 0, fmt.Errorf("read row %d: %w", line, err)
		}
		if blank(record) {
			continue
		}
		c, err := parseRow(record, index)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", line, err)
		}
		if prev, dup := seen[c.ID]; dup {
			return 0, fmt.Errorf("row %d: category %d already defined on row %d", line, c.ID, prev)
		}
		seen[c.ID] = line
		rows = append(rows, c)
	}

	ordered, err := parentsFirst(rows)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, c := range ordered {
		if _, err := i.repo.Upsert(ctx, c); err != nil {
			return imported, fmt.Errorf("upsert category %d: %w", c.ID, err)
		}
		imported++
	}
	return imported, nil
}

// parentsFirst orders rows so every in-file parent precedes its children,
// keeping file order otherwise. A parent chain that loops is rejected.
func parentsFirst(rows []domain.Category) ([]domain.Category, error) {
	byID := make(map[int64]domain.Category, len(rows))
	for _, c := range rows {
		byID[c.ID] = c
	}

	const (
		pending = iota
		active
		done
	)
	state := make(map[int64]int, len(rows))
	out := make([]domain.Category, 0, len(rows))

	var visit func(c domain.Category) error
	visit = func(c domain.Category) error {
		switch state[c.ID] {
		case done:
			return nil
		case active:
			return fmt.Errorf("%w: parent chain of category %d loops", domain.ErrCorruptCategoryTree, c.ID)
		}
		state[c.ID] = active
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				if err := visit(parent); err != nil {
					return err
				}
			}
		}
		state[c.ID] = done
		out = append(out, c)
		return nil
	}

	for _, c := range rows {
		if err := visit(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.Category, error) {
	id, err := strconv.ParseInt(pick(record, index, "id"), 10, 64)
	if err != nil || id <= 0 {
		return domain.Category{}, fmt.Errorf("invalid id %q", pick(record, index, "id"))
	}
	name := pick(record, index, "name")
	if name == "" {
		return domain.Category{}, fmt.Errorf("category %d has no name", id)
	}

	c := domain.Category{ID: id, Name: name, Visible: true}

	if raw := pick(record, index, "parent_id"); raw != "" && raw != "0" {
		parent, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parent < 0 {
			return domain.Category{}, fmt.Errorf("category %d: invalid parent_id %q", id, raw)
		}
		if parent == id {
			return domain.Category{}, fmt.Errorf("%w: category %d is its own parent", domain.ErrCorruptCategoryTree, id)
		}
		c.ParentID = &parent
	}

	if raw := pick(record, index, "visible"); raw != "" {
		visible, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.Category{}, fmt.Errorf("category %d: invalid visible %q", id, raw)
		}
		c.Visible = visible
	}

	if raw := pick(record, index, "sort_order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Category{}, fmt.Errorf("category %d: invalid sort_order %q", id, raw)
		}
		c.SortOrder = order
	}
	return c, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
