package form

import (
	"context"
	"errors"
	"sync"

	"github.com/mera-food/adminpanel/internal/api"
)

// CategoryAPI is the slice of the gateway client category dialogs need.
type CategoryAPI interface {
	CreateCategory(ctx context.Context, in api.CategoryInput) error
	UpdateCategory(ctx context.Context, id string, in api.CategoryInput) error
	DeleteCategory(ctx context.Context, id string) error
}

// CategoryForm is the dialog controller for category create/update.
type CategoryForm struct {
	api     CategoryAPI
	refresh RefreshFunc

	mu     sync.Mutex
	draft  api.CategoryInput
	target EditTarget
	open   bool
}

// NewCategoryForm creates a closed CategoryForm.
func NewCategoryForm(a CategoryAPI, refresh RefreshFunc) *CategoryForm {
	return &CategoryForm{api: a, refresh: refresh}
}

// OpenForCreate resets the draft and opens the dialog in create mode.
func (f *CategoryForm) OpenForCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = api.CategoryInput{}
	f.target = EditTarget{}
	f.open = true
}

// OpenForEdit copies the category's editable fields into the draft and
// opens the dialog targeting it.
func (f *CategoryForm) OpenForEdit(c api.Category) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = api.CategoryInput{Name: c.Name, Description: c.Description}
	f.target = EditingCategory(c.ID)
	f.open = true
}

// SetDraft replaces the draft with posted form values.
func (f *CategoryForm) SetDraft(name, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = api.CategoryInput{Name: name, Description: description}
}

// Submit creates or updates depending on the edit target. On success the
// dialog closes, the draft resets and all collections reload; on failure
// everything stays as the operator left it.
func (f *CategoryForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	draft := f.draft
	target := f.target
	f.mu.Unlock()

	if draft.Name == "" {
		return errors.New("name is required")
	}

	var err error
	if target.Editing() {
		err = f.api.UpdateCategory(ctx, target.ID(), draft)
	} else {
		err = f.api.CreateCategory(ctx, draft)
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.draft = api.CategoryInput{}
	f.target = EditTarget{}
	f.open = false
	f.mu.Unlock()

	f.refresh(ctx)
	return nil
}

// Delete removes the category directly from the list view. There is no
// confirmation step.
func (f *CategoryForm) Delete(ctx context.Context, id string) error {
	if err := f.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	f.refresh(ctx)
	return nil
}

// Close discards the dialog without submitting.
func (f *CategoryForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.target = EditTarget{}
	f.draft = api.CategoryInput{}
}

// Open reports whether the dialog is visible.
func (f *CategoryForm) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Draft returns the current draft.
func (f *CategoryForm) Draft() api.CategoryInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Target returns the current edit target.
func (f *CategoryForm) Target() EditTarget {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}
