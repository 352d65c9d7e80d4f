package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mera-food/adminpanel/internal/api"
)

// MenuItemAPI is the slice of the gateway client the menu dialog needs.
// Image upload is part of it: selecting a file uploads immediately, before
// the rest of the form is submitted.
type MenuItemAPI interface {
	CreateMenuItem(ctx context.Context, in api.MenuItemInput) error
	UpdateMenuItem(ctx context.Context, id string, in api.MenuItemInput) error
	DeleteMenuItem(ctx context.Context, id string) error
	UploadImage(ctx context.Context, filename string, file io.Reader) (string, error)
}

// MenuItemForm is the dialog controller for menu item create/update.
type MenuItemForm struct {
	api     MenuItemAPI
	refresh RefreshFunc

	mu     sync.Mutex
	draft  api.MenuItemInput
	target EditTarget
	open   bool
}

// NewMenuItemForm creates a closed MenuItemForm.
func NewMenuItemForm(a MenuItemAPI, refresh RefreshFunc) *MenuItemForm {
	return &MenuItemForm{api: a, refresh: refresh}
}

func defaultMenuDraft() api.MenuItemInput {
	return api.MenuItemInput{Available: true}
}

// OpenForCreate resets the draft to defaults and opens the dialog.
func (f *MenuItemForm) OpenForCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = defaultMenuDraft()
	f.target = EditTarget{}
	f.open = true
}

// OpenForEdit copies the item's editable fields into the draft. The
// category reference flattens to its id; a dangling category becomes the
// empty reference.
func (f *MenuItemForm) OpenForEdit(item api.MenuItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = api.MenuItemInput{
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.CategoryID(),
		Image:       item.Image,
		Available:   item.Available,
	}
	f.target = EditingMenuItem(item.ID)
	f.open = true
}

// SetDraft replaces the draft with posted form values. The price arrives
// as text and must parse to a non-negative number; a bad price is a submit
// failure like any other and leaves the dialog open. The image path is
// not touched here: it is owned by AttachImage.
func (f *MenuItemForm) SetDraft(name, description, price, categoryID string, available bool) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return fmt.Errorf("invalid price %q", price)
	}
	if p.IsNegative() {
		return errors.New("price must not be negative")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Name = name
	f.draft.Description = description
	f.draft.Price = p
	f.draft.Category = categoryID
	f.draft.Available = available
	return nil
}

// AttachImage uploads the file right away and writes the server-assigned
// path into the draft. It is a completed side effect by the time Submit
// runs; the upload is not part of the create/update payload construction.
func (f *MenuItemForm) AttachImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	path, err := f.api.UploadImage(ctx, filename, file)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.draft.Image = path
	f.mu.Unlock()
	return path, nil
}

// Submit creates or updates depending on the edit target, with the same
// success/failure contract as the other dialogs.
func (f *MenuItemForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	draft := f.draft
	target := f.target
	f.mu.Unlock()

	if draft.Name == "" {
		return errors.New("name is required")
	}

	var err error
	if target.Editing() {
		err = f.api.UpdateMenuItem(ctx, target.ID(), draft)
	} else {
		err = f.api.CreateMenuItem(ctx, draft)
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.draft = defaultMenuDraft()
	f.target = EditTarget{}
	f.open = false
	f.mu.Unlock()

	f.refresh(ctx)
	return nil
}

// Delete removes the menu item directly from the list view.
func (f *MenuItemForm) Delete(ctx context.Context, id string) error {
	if err := f.api.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	f.refresh(ctx)
	return nil
}

// Close discards the dialog without submitting.
func (f *MenuItemForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.target = EditTarget{}
	f.draft = defaultMenuDraft()
}

// Open reports whether the dialog is visible.
func (f *MenuItemForm) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Draft returns the current draft.
func (f *MenuItemForm) Draft() api.MenuItemInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Target returns the current edit target.
func (f *MenuItemForm) Target() EditTarget {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}
