// Package collection implements the managed collection view-model: the
// per-screen state machine that loads a collection, resolves one level of
// reference, and applies create, update and delete mutations to a local
// snapshot without reloading it.
package collection

import (
	"time"

	"github.com/JaimeStill/catalog-console/internal/resolver"
	"github.com/JaimeStill/catalog-console/pkg/record"
)

// Status is the load state of a view-model.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
)

// FormMode is the state of the screen's single edit form.
type FormMode string

const (
	FormClosed FormMode = "closed"
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// Column binds a table header to a record field. The pseudo fields "#",
// "id" and "categoryName" render the row number, the record id and the
// resolved reference name.
type Column struct {
	Header string `json:"header" validate:"required"`
	Field  string `json:"field" validate:"required"`
}

// Pseudo fields understood by Column.
const (
	ColumnIndex        = "#"
	ColumnID           = "id"
	ColumnCategoryName = "categoryName"
)

// Children describes a child collection listed under a record of this one.
type Children struct {
	Collection string `validate:"required"`
	Field      string
}

// Options configures a view-model for one screen.
type Options struct {
	Name       string `validate:"required"`
	Title      string
	Collection string `validate:"required"`

	// Defaults seed the draft of a new record.
	Defaults record.Fields

	// Required lists draft keys that must be present and non-empty.
	Required []string

	// Reference enables resolution of a parent name for each record.
	Reference *resolver.Spec

	Children *Children
	Columns  []Column `validate:"dive"`

	// ReadOnly screens only list records.
	ReadOnly bool

	// Timeout bounds every gateway call. Zero disables the bound.
	Timeout time.Duration
}

// Form is the open form and its draft.
type Form struct {
	Mode     FormMode      `json:"mode"`
	TargetID string        `json:"target_id,omitempty"`
	Draft    record.Fields `json:"draft,omitempty"`
}

// State is a rendering snapshot of a view-model.
type State struct {
	Screen     string        `json:"screen"`
	Title      string        `json:"title"`
	Collection string        `json:"collection"`
	ReadOnly   bool          `json:"read_only"`
	Status     Status        `json:"status"`
	Error      string        `json:"error,omitempty"`
	ErrorKind  Kind          `json:"error_kind,omitempty"`
	Records    []record.View `json:"records"`
	Form       Form          `json:"form"`
	Submitting bool          `json:"submitting"`
}

// Table is the snapshot rendered through the screen's columns.
type Table struct {
	Screen  string   `json:"screen"`
	Title   string   `json:"title"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Row is one rendered record.
type Row struct {
	ID    string   `json:"id"`
	Cells []string `json:"cells"`
}
