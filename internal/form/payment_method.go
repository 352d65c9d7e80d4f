package form

import (
	"context"
	"errors"
	"sync"

	"github.com/mera-food/adminpanel/internal/api"
)

// PaymentMethodAPI is the slice of the gateway client the payment dialog
// needs. The upstream API has no update for payment methods, so neither
// does this controller: edit mode exists only to prefill a replacement.
type PaymentMethodAPI interface {
	CreatePaymentMethod(ctx context.Context, in api.PaymentMethodInput) error
	DeletePaymentMethod(ctx context.Context, id string) error
}

// PaymentMethodForm is the dialog controller for payment method creation.
type PaymentMethodForm struct {
	api     PaymentMethodAPI
	refresh RefreshFunc

	mu    sync.Mutex
	draft api.PaymentMethodInput
	open  bool
}

// NewPaymentMethodForm creates a closed PaymentMethodForm.
func NewPaymentMethodForm(a PaymentMethodAPI, refresh RefreshFunc) *PaymentMethodForm {
	return &PaymentMethodForm{api: a, refresh: refresh}
}

// OpenForCreate resets the draft and opens the dialog.
func (f *PaymentMethodForm) OpenForCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = api.PaymentMethodInput{}
	f.open = true
}

// SetDraft replaces the draft with posted form values.
func (f *PaymentMethodForm) SetDraft(bankName, accountNumber string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = api.PaymentMethodInput{BankName: bankName, AccountNumber: accountNumber}
}

// Submit creates the payment method; create-only, there is no update path.
func (f *PaymentMethodForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	if draft.BankName == "" || draft.AccountNumber == "" {
		return errors.New("bank name and account number are required")
	}

	if err := f.api.CreatePaymentMethod(ctx, draft); err != nil {
		return err
	}

	f.mu.Lock()
	f.draft = api.PaymentMethodInput{}
	f.open = false
	f.mu.Unlock()

	f.refresh(ctx)
	return nil
}

// Delete removes the payment method directly from the list view.
func (f *PaymentMethodForm) Delete(ctx context.Context, id string) error {
	if err := f.api.DeletePaymentMethod(ctx, id); err != nil {
		return err
	}
	f.refresh(ctx)
	return nil
}

// Close discards the dialog without submitting.
func (f *PaymentMethodForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.draft = api.PaymentMethodInput{}
}

// Open reports whether the dialog is visible.
func (f *PaymentMethodForm) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Draft returns the current draft.
func (f *PaymentMethodForm) Draft() api.PaymentMethodInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}
