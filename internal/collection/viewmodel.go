package collection

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/JaimeStill/catalog-console/internal/resolver"
	"github.com/JaimeStill/catalog-console/pkg/assets"
	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/JaimeStill/catalog-console/pkg/record"
	"github.com/go-playground/validator/v10"
)

// ViewModel owns the snapshot of one screen. Operations never return
// errors; failures are recorded in State and the view-model always settles
// in a renderable state.
//
// The mutex guards state only and is never held across gateway calls, so
// overlapping submits are not serialized: the last patch to complete wins.
type ViewModel struct {
	opts     Options
	store    docstore.System
	assets   assets.System
	resolver *resolver.Resolver
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time

	mu         sync.Mutex
	status     Status
	err        string
	errKind    Kind
	snapshot   []record.View
	form       Form
	submitting bool
}

var validate = validator.New()

// New creates a view-model for the screen described by opts.
func New(opts Options, store docstore.System, assetStore assets.System, logger *slog.Logger) (*ViewModel, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid options for screen %q: %w", opts.Name, err)
	}
	if opts.Title == "" {
		opts.Title = opts.Name
	}

	vm := &ViewModel{
		opts:     opts,
		store:    store,
		assets:   assetStore,
		validate: validate,
		logger:   logger.With("screen", opts.Name, "collection", opts.Collection),
		now:      time.Now,
		status:   StatusIdle,
		snapshot: []record.View{},
		form:     Form{Mode: FormClosed},
	}

	if opts.Reference != nil {
		vm.resolver = resolver.New(store, *opts.Reference, logger)
	}

	return vm, nil
}

// Name returns the screen name.
func (vm *ViewModel) Name() string {
	return vm.opts.Name
}

// Options returns the screen configuration.
func (vm *ViewModel) Options() Options {
	return vm.opts
}

// State returns a copy of the current state.
func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.stateLocked()
}

// Load fetches the collection and resolves references. On failure the
// previous snapshot is kept and the error is recorded.
func (vm *ViewModel) Load(ctx context.Context) State {
	vm.mu.Lock()
	vm.status = StatusLoading
	vm.mu.Unlock()

	ctx, cancel := vm.bound(ctx)
	defer cancel()

	records, err := vm.store.List(ctx, vm.opts.Collection)
	if err != nil {
		vm.logger.Error("load failed", "error", err)
		return vm.settle(func() {
			vm.status = StatusReady
			vm.fail(fmt.Errorf("%w: %w", ErrStoreUnavailable, err), fmt.Sprintf("Failed to fetch %s.", vm.opts.Title))
		})
	}

	records = dedupe(records)
	views := vm.resolveAll(ctx, records)

	vm.logger.Info("collection loaded", "count", len(views))
	return vm.settle(func() {
		vm.snapshot = views
		vm.status = StatusReady
		vm.clearError()
	})
}

// OpenCreate opens the form with a draft seeded from the screen defaults.
// Any unsaved draft is discarded.
func (vm *ViewModel) OpenCreate() State {
	return vm.settle(func() {
		if vm.opts.ReadOnly {
			vm.fail(ErrReadOnly, fmt.Sprintf("%s cannot be modified.", vm.opts.Title))
			return
		}
		vm.form = Form{Mode: FormCreate, Draft: vm.opts.Defaults.Clone()}
		vm.clearError()
	})
}

// OpenEdit opens the form with a copy of the target record's fields.
// Any unsaved draft is discarded.
func (vm *ViewModel) OpenEdit(id string) State {
	return vm.settle(func() {
		if vm.opts.ReadOnly {
			vm.fail(ErrReadOnly, fmt.Sprintf("%s cannot be modified.", vm.opts.Title))
			return
		}

		i := vm.indexLocked(id)
		if i < 0 {
			vm.fail(ErrNotFound, fmt.Sprintf("Record %s was not found.", id))
			return
		}

		draft := vm.snapshot[i].Fields.Clone()
		delete(draft, record.FieldCreatedAt)

		vm.form = Form{Mode: FormEdit, TargetID: id, Draft: draft}
		vm.clearError()
	})
}

// CloseForm discards the draft and closes the form.
func (vm *ViewModel) CloseForm() State {
	return vm.settle(func() {
		vm.form = Form{Mode: FormClosed}
	})
}

// Submit saves the open form. draft is applied over the seeded draft; a
// pending asset, when present, is persisted first and its URL stored as the
// record's imageUrl. Upload failure aborts before any store mutation and
// keeps the form open with its draft.
func (vm *ViewModel) Submit(ctx context.Context, draft record.Fields, asset *assets.Pending) State {
	vm.mu.Lock()
	if vm.opts.ReadOnly {
		vm.fail(ErrReadOnly, fmt.Sprintf("%s cannot be modified.", vm.opts.Title))
		defer vm.mu.Unlock()
		return vm.stateLocked()
	}
	if vm.form.Mode == FormClosed {
		vm.fail(fmt.Errorf("%w: no form is open", ErrValidationFailed), "Open a form before submitting.")
		defer vm.mu.Unlock()
		return vm.stateLocked()
	}

	form := vm.form
	fields := form.Draft.Merge(draft)
	delete(fields, record.FieldCreatedAt)
	vm.form.Draft = fields.Clone()

	if missing := vm.missing(fields); len(missing) > 0 {
		vm.fail(fmt.Errorf("%w: missing %s", ErrValidationFailed, strings.Join(missing, ", ")),
			fmt.Sprintf("Required fields missing: %s.", strings.Join(missing, ", ")))
		defer vm.mu.Unlock()
		return vm.stateLocked()
	}

	vm.submitting = true
	vm.mu.Unlock()

	ctx, cancel := vm.bound(ctx)
	defer cancel()

	if asset != nil {
		url, err := assets.Persist(ctx, vm.assets, vm.opts.Collection, *asset)
		if err != nil {
			vm.logger.Error("asset upload failed", "file", asset.FileName, "error", err)
			return vm.settle(func() {
				vm.submitting = false
				vm.fail(fmt.Errorf("%w: %w", ErrUploadFailed, err), "Failed to upload image.")
			})
		}
		fields[record.FieldImageURL] = url
	}

	switch form.Mode {
	case FormCreate:
		return vm.create(ctx, fields)
	default:
		return vm.update(ctx, form.TargetID, fields)
	}
}

// Remove deletes a record and drops it from the snapshot. Confirmation is
// the caller's responsibility. Deleting an id that no longer exists in the
// store succeeds.
func (vm *ViewModel) Remove(ctx context.Context, id string) State {
	if vm.opts.ReadOnly {
		return vm.settle(func() {
			vm.fail(ErrReadOnly, fmt.Sprintf("%s cannot be modified.", vm.opts.Title))
		})
	}

	ctx, cancel := vm.bound(ctx)
	defer cancel()

	if err := vm.store.Delete(ctx, vm.opts.Collection, id); err != nil {
		vm.logger.Error("delete failed", "id", id, "error", err)
		return vm.settle(func() {
			vm.fail(err, "Failed to delete record.")
		})
	}

	vm.logger.Info("record deleted", "id", id)
	return vm.settle(func() {
		if i := vm.indexLocked(id); i >= 0 {
			vm.snapshot = append(vm.snapshot[:i:i], vm.snapshot[i+1:]...)
		}
		if vm.form.Mode == FormEdit && vm.form.TargetID == id {
			vm.form = Form{Mode: FormClosed}
		}
		vm.clearError()
	})
}

// Children lists the records of the configured child collection that
// reference parentID.
func (vm *ViewModel) Children(ctx context.Context, parentID string) ([]record.Record, error) {
	if vm.opts.Children == nil {
		return nil, fmt.Errorf("%w: %s has no child collection", ErrNotFound, vm.opts.Name)
	}

	field := vm.opts.Children.Field
	if field == "" {
		field = record.FieldCategory
	}

	ctx, cancel := vm.bound(ctx)
	defer cancel()

	all, err := vm.store.List(ctx, vm.opts.Children.Collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	children := make([]record.Record, 0)
	for _, r := range all {
		if r.Fields.String(field) == parentID {
			children = append(children, r)
		}
	}
	return children, nil
}

// create stamps createdAt before the store call so the patched view carries
// the same timestamp the store keeps.
func (vm *ViewModel) create(ctx context.Context, fields record.Fields) State {
	fields[record.FieldCreatedAt] = vm.now()

	id, err := vm.store.Create(ctx, vm.opts.Collection, fields)
	if err != nil {
		vm.logger.Error("create failed", "error", err)
		return vm.settle(func() {
			vm.submitting = false
			vm.fail(err, "Failed to save record.")
		})
	}

	view := vm.resolveOne(ctx, record.Record{ID: id, Fields: fields})

	vm.logger.Info("record created", "id", id)
	return vm.settle(func() {
		if i := vm.indexLocked(id); i >= 0 {
			vm.snapshot[i] = view
		} else {
			vm.snapshot = append(vm.snapshot, view)
		}
		vm.form = Form{Mode: FormClosed}
		vm.submitting = false
		vm.clearError()
	})
}

func (vm *ViewModel) update(ctx context.Context, id string, fields record.Fields) State {
	if err := vm.store.Update(ctx, vm.opts.Collection, id, fields); err != nil {
		vm.logger.Error("update failed", "id", id, "error", err)
		return vm.settle(func() {
			vm.submitting = false
			vm.fail(err, "Failed to save record.")
		})
	}

	vm.mu.Lock()
	base := record.Fields{}
	if i := vm.indexLocked(id); i >= 0 {
		base = vm.snapshot[i].Fields
	}
	merged := base.Merge(fields)
	vm.mu.Unlock()

	view := vm.resolveOne(ctx, record.Record{ID: id, Fields: merged})

	vm.logger.Info("record updated", "id", id)
	return vm.settle(func() {
		if i := vm.indexLocked(id); i >= 0 {
			vm.snapshot[i] = view
		}
		vm.form = Form{Mode: FormClosed}
		vm.submitting = false
		vm.clearError()
	})
}

func (vm *ViewModel) resolveAll(ctx context.Context, records []record.Record) []record.View {
	if vm.resolver == nil {
		views := make([]record.View, len(records))
		for i, r := range records {
			views[i] = record.View{Record: r}
		}
		return views
	}
	return vm.resolver.ResolveAll(ctx, records)
}

func (vm *ViewModel) resolveOne(ctx context.Context, r record.Record) record.View {
	if vm.resolver == nil {
		return record.View{Record: r}
	}
	return vm.resolver.Resolve(ctx, r)
}

func (vm *ViewModel) missing(fields record.Fields) []string {
	var missing []string
	for _, key := range vm.opts.Required {
		v, ok := fields[key]
		if !ok || v == nil {
			missing = append(missing, key)
			continue
		}
		switch val := v.(type) {
		case bool, float64, int, int64:
			continue
		case string:
			v = strings.TrimSpace(val)
		}
		if err := vm.validate.Var(v, "required"); err != nil {
			missing = append(missing, key)
		}
	}
	return missing
}

func (vm *ViewModel) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if vm.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, vm.opts.Timeout)
}

// settle applies fn under the lock and returns the resulting state.
func (vm *ViewModel) settle(fn func()) State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	fn()
	return vm.stateLocked()
}

func (vm *ViewModel) fail(err error, message string) {
	vm.err = message
	vm.errKind = Classify(err)
}

func (vm *ViewModel) clearError() {
	vm.err = ""
	vm.errKind = KindNone
}

func (vm *ViewModel) indexLocked(id string) int {
	for i, v := range vm.snapshot {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func (vm *ViewModel) stateLocked() State {
	records := make([]record.View, len(vm.snapshot))
	for i, v := range vm.snapshot {
		records[i] = record.View{Record: v.Record.Clone(), CategoryName: v.CategoryName}
	}

	form := vm.form
	if form.Draft != nil {
		form.Draft = form.Draft.Clone()
	}

	return State{
		Screen:     vm.opts.Name,
		Title:      vm.opts.Title,
		Collection: vm.opts.Collection,
		ReadOnly:   vm.opts.ReadOnly,
		Status:     vm.status,
		Error:      vm.err,
		ErrorKind:  vm.errKind,
		Records:    records,
		Form:       form,
		Submitting: vm.submitting,
	}
}

// dedupe keeps the first record for each id.
func dedupe(records []record.Record) []record.Record {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
