package importer

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// FileSource reads a local xlsx file. Raw cell values are requested so
// that date cells arrive as serial numbers, not locale-formatted text.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Grids(ctx context.Context) ([]Grid, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", s.path, err)
	}
	defer f.Close()

	var grids []Grid
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}
		grids = append(grids, Grid{Name: name, Rows: rows})
	}
	return grids, nil
}
