package layout

import (
	"fmt"
	"strconv"
	"strings"

	"lms-theme-renderer/internal/settings"
)

const (
	blockRowCount = 8
	emptyBlockRow = "0-0-0-0"
	regionPrefix  = "theme-front-"
)

type BlockColumn struct {
	Width  int    `json:"width"`
	Region string `json:"region"`
}

type BlockRow struct {
	ID      int           `json:"id"`
	Columns []BlockColumn `json:"columns"`
}

type BlockRegions struct {
	Rows    []BlockRow `json:"rows"`
	Editing bool       `json:"editing"`
}

// FrontPageBlockRegions lays out the blockrowN settings. Each setting holds
// dash separated column widths; zero widths are skipped and "0-0-0-0" drops the row.
// Region names use letters because the block system rejects digits in region names.
func FrontPageBlockRegions(s settings.Settings, editing bool) BlockRegions {
	out := BlockRegions{Rows: []BlockRow{}, Editing: editing}
	regions := 0
	for i := 1; i <= blockRowCount; i++ {
		raw := strings.TrimSpace(s.Get(fmt.Sprintf("blockrow%d", i)))
		if raw == "" || raw == emptyBlockRow {
			continue
		}
		row := BlockRow{ID: len(out.Rows) + 1, Columns: []BlockColumn{}}
		for _, part := range strings.Split(raw, "-") {
			width, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || width <= 0 {
				continue
			}
			regions++
			row.Columns = append(row.Columns, BlockColumn{Width: width, Region: regionPrefix + regionSuffix(regions)})
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// RegionNames lists every region declared by the layout, in order.
func (b BlockRegions) RegionNames() []string {
	var names []string
	for _, row := range b.Rows {
		for _, col := range row.Columns {
			names = append(names, col.Region)
		}
	}
	return names
}

// regionSuffix maps 1 → "a", 26 → "z", 27 → "aa".
func regionSuffix(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
