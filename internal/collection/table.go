package collection

import (
	"strconv"

	"github.com/JaimeStill/catalog-console/pkg/record"
)

// Table renders the current snapshot through the screen's columns.
func (vm *ViewModel) Table() Table {
	state := vm.State()

	headers := make([]string, len(vm.opts.Columns))
	for i, col := range vm.opts.Columns {
		headers[i] = col.Header
	}

	rows := make([]Row, len(state.Records))
	for i, view := range state.Records {
		cells := make([]string, len(vm.opts.Columns))
		for j, col := range vm.opts.Columns {
			cells[j] = cell(col.Field, i, view)
		}
		rows[i] = Row{ID: view.ID, Cells: cells}
	}

	return Table{
		Screen:  state.Screen,
		Title:   state.Title,
		Headers: headers,
		Rows:    rows,
	}
}

func cell(field string, index int, view record.View) string {
	switch field {
	case ColumnIndex:
		return strconv.Itoa(index + 1)
	case ColumnID:
		return record.Display(view.ID)
	case ColumnCategoryName:
		return record.Display(view.CategoryName)
	default:
		return record.Display(view.Fields[field])
	}
}
