// Package form holds the transient edit buffers behind the dashboard's
// create/update dialogs. A controller owns a draft, a dialog-visibility
// flag and an edit target; submitting routes to create or update and, on
// success, resets the dialog. On failure the dialog stays open with the
// draft intact so the operator can retry.
package form

import "context"

type editKind int

const (
	editNone editKind = iota
	editCategory
	editMenuItem
	editPaymentMethod
)

// EditTarget identifies the entity a dialog is editing. The zero value
// means create mode. Keeping the kind in the type avoids the
// anything-goes editing reference the three dialogs would otherwise share.
type EditTarget struct {
	kind editKind
	id   string
}

// EditingCategory targets an existing category.
func EditingCategory(id string) EditTarget { return EditTarget{kind: editCategory, id: id} }

// EditingMenuItem targets an existing menu item.
func EditingMenuItem(id string) EditTarget { return EditTarget{kind: editMenuItem, id: id} }

// EditingPaymentMethod targets an existing payment method.
func EditingPaymentMethod(id string) EditTarget { return EditTarget{kind: editPaymentMethod, id: id} }

// Editing reports whether the target refers to an existing entity.
func (t EditTarget) Editing() bool { return t.kind != editNone }

// ID returns the targeted entity's id, empty in create mode.
func (t EditTarget) ID() string { return t.id }

func (t EditTarget) IsCategory() bool      { return t.kind == editCategory }
func (t EditTarget) IsMenuItem() bool      { return t.kind == editMenuItem }
func (t EditTarget) IsPaymentMethod() bool { return t.kind == editPaymentMethod }

// RefreshFunc reloads all resource collections after a successful
// mutation. Controllers call it on every submit/delete that the backend
// accepted.
type RefreshFunc func(context.Context)
