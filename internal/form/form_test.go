package form_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mera-food/adminpanel/internal/api"
	"github.com/mera-food/adminpanel/internal/form"
)

// --- Mock APIs ---

type mockCategoryAPI struct {
	created  []api.CategoryInput
	updated  map[string]api.CategoryInput
	deleted  []string
	failNext error
}

func (m *mockCategoryAPI) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *mockCategoryAPI) CreateCategory(_ context.Context, in api.CategoryInput) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.created = append(m.created, in)
	return nil
}

func (m *mockCategoryAPI) UpdateCategory(_ context.Context, id string, in api.CategoryInput) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	if m.updated == nil {
		m.updated = make(map[string]api.CategoryInput)
	}
	m.updated[id] = in
	return nil
}

func (m *mockCategoryAPI) DeleteCategory(_ context.Context, id string) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockMenuAPI struct {
	created    []api.MenuItemInput
	updated    map[string]api.MenuItemInput
	deleted    []string
	uploadPath string
	failNext   error
}

func (m *mockMenuAPI) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *mockMenuAPI) CreateMenuItem(_ context.Context, in api.MenuItemInput) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.created = append(m.created, in)
	return nil
}

func (m *mockMenuAPI) UpdateMenuItem(_ context.Context, id string, in api.MenuItemInput) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	if m.updated == nil {
		m.updated = make(map[string]api.MenuItemInput)
	}
	m.updated[id] = in
	return nil
}

func (m *mockMenuAPI) DeleteMenuItem(_ context.Context, id string) error {
	if err := m.takeFailure(); err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockMenuAPI) UploadImage(_ context.Context, filename string, file io.Reader) (string, error) {
	if err := m.takeFailure(); err != nil {
		return "", err
	}
	_, _ = io.Copy(io.Discard, file)
	m.uploadPath = "/uploads/" + filename
	return m.uploadPath, nil
}

type mockPaymentAPI struct {
	created  []api.PaymentMethodInput
	deleted  []string
	failNext error
}

func (m *mockPaymentAPI) CreatePaymentMethod(_ context.Context, in api.PaymentMethodInput) error {
	if err := m.failNext; err != nil {
		m.failNext = nil
		return err
	}
	m.created = append(m.created, in)
	return nil
}

func (m *mockPaymentAPI) DeletePaymentMethod(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockStatusAPI struct {
	calls map[string]string
}

func (m *mockStatusAPI) SetOrderStatus(_ context.Context, id, status string) error {
	if m.calls == nil {
		m.calls = make(map[string]string)
	}
	m.calls[id] = status
	return nil
}

// refreshCounter counts RefreshFunc invocations.
type refreshCounter int

func (c *refreshCounter) fn(context.Context) { *c++ }

// --- Category form ---

func TestCategoryForm_CreateFlow(t *testing.T) {
	mock := &mockCategoryAPI{}
	var refreshes refreshCounter
	f := form.NewCategoryForm(mock, refreshes.fn)

	f.OpenForCreate()
	if !f.Open() {
		t.Fatal("dialog should be open")
	}
	if f.Target().Editing() {
		t.Fatal("create mode must have no edit target")
	}

	f.SetDraft("Drinks", "cold ones")
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(mock.created) != 1 || mock.created[0].Name != "Drinks" {
		t.Errorf("created: %+v", mock.created)
	}
	if f.Open() {
		t.Error("dialog must close on success")
	}
	if f.Draft() != (api.CategoryInput{}) {
		t.Errorf("draft must reset, got %+v", f.Draft())
	}
	if refreshes != 1 {
		t.Errorf("refreshes: got %d, want 1", refreshes)
	}
}

func TestCategoryForm_EditFlow(t *testing.T) {
	mock := &mockCategoryAPI{}
	var refreshes refreshCounter
	f := form.NewCategoryForm(mock, refreshes.fn)

	f.OpenForEdit(api.Category{ID: "c1", Name: "Drinks", Description: "d"})
	if !f.Target().Editing() || f.Target().ID() != "c1" {
		t.Fatalf("target: %+v", f.Target())
	}
	if f.Draft().Name != "Drinks" {
		t.Errorf("draft must be prefilled, got %+v", f.Draft())
	}

	f.SetDraft("Beverages", "d")
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if in, ok := mock.updated["c1"]; !ok || in.Name != "Beverages" {
		t.Errorf("updated: %+v", mock.updated)
	}
	if len(mock.created) != 0 {
		t.Error("edit mode must not create")
	}
	if f.Target().Editing() {
		t.Error("target must clear on success")
	}
}

func TestCategoryForm_FailurePreservesDraftAndStaysOpen(t *testing.T) {
	mock := &mockCategoryAPI{failNext: errors.New("boom")}
	var refreshes refreshCounter
	f := form.NewCategoryForm(mock, refreshes.fn)

	f.OpenForCreate()
	f.SetDraft("Drinks", "")
	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if !f.Open() {
		t.Error("dialog must stay open on failure")
	}
	if f.Draft().Name != "Drinks" {
		t.Errorf("draft must be preserved, got %+v", f.Draft())
	}
	if refreshes != 0 {
		t.Error("no refresh on failure")
	}
}

func TestCategoryForm_EmptyNameRejected(t *testing.T) {
	mock := &mockCategoryAPI{}
	f := form.NewCategoryForm(mock, func(context.Context) {})

	f.OpenForCreate()
	f.SetDraft("", "desc")
	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if len(mock.created) != 0 {
		t.Error("nothing may reach the backend")
	}
}

func TestCategoryForm_Delete(t *testing.T) {
	mock := &mockCategoryAPI{}
	var refreshes refreshCounter
	f := form.NewCategoryForm(mock, refreshes.fn)

	if err := f.Delete(context.Background(), "c9"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(mock.deleted) != 1 || mock.deleted[0] != "c9" {
		t.Errorf("deleted: %+v", mock.deleted)
	}
	if refreshes != 1 {
		t.Errorf("refreshes: got %d, want 1", refreshes)
	}
}

// --- Menu form ---

func TestMenuItemForm_DefaultsAvailable(t *testing.T) {
	f := form.NewMenuItemForm(&mockMenuAPI{}, func(context.Context) {})
	f.OpenForCreate()
	if !f.Draft().Available {
		t.Error("new drafts default to available")
	}
}

func TestMenuItemForm_PriceValidation(t *testing.T) {
	f := form.NewMenuItemForm(&mockMenuAPI{}, func(context.Context) {})
	f.OpenForCreate()

	if err := f.SetDraft("Cola", "", "abc", "", true); err == nil {
		t.Error("non-numeric price must be rejected")
	}
	if err := f.SetDraft("Cola", "", "-1", "", true); err == nil {
		t.Error("negative price must be rejected")
	}
	if err := f.SetDraft("Cola", "", "2.50", "", true); err != nil {
		t.Errorf("valid price rejected: %v", err)
	}
	if !f.Draft().Price.Equal(decimal.RequireFromString("2.50")) {
		t.Errorf("price: got %s", f.Draft().Price)
	}
}

func TestMenuItemForm_AttachImageBeforeSubmit(t *testing.T) {
	mock := &mockMenuAPI{}
	var refreshes refreshCounter
	f := form.NewMenuItemForm(mock, refreshes.fn)

	f.OpenForCreate()
	path, err := f.AttachImage(context.Background(), "cola.png", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if path != "/uploads/cola.png" {
		t.Errorf("path: %q", path)
	}
	if f.Draft().Image != path {
		t.Errorf("draft image: %q", f.Draft().Image)
	}
	// Uploading alone is not a mutation of the collections.
	if refreshes != 0 {
		t.Error("upload must not trigger a refresh")
	}

	if err := f.SetDraft("Cola", "", "2", "cat1", true); err != nil {
		t.Fatalf("set draft: %v", err)
	}
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(mock.created) != 1 || mock.created[0].Image != "/uploads/cola.png" {
		t.Errorf("create payload must carry the uploaded path: %+v", mock.created)
	}
}

func TestMenuItemForm_OpenForEditFlattensCategory(t *testing.T) {
	f := form.NewMenuItemForm(&mockMenuAPI{}, func(context.Context) {})

	f.OpenForEdit(api.MenuItem{
		ID:       "m1",
		Name:     "Cola",
		Price:    decimal.NewFromInt(2),
		Category: &api.Category{ID: "c1", Name: "Drinks"},
	})
	if f.Draft().Category != "c1" {
		t.Errorf("category: got %q, want c1", f.Draft().Category)
	}

	// Dangling reference flattens to the empty id.
	f.OpenForEdit(api.MenuItem{ID: "m2", Name: "Mystery", Price: decimal.NewFromInt(1)})
	if f.Draft().Category != "" {
		t.Errorf("category: got %q, want empty", f.Draft().Category)
	}
}

func TestMenuItemForm_FailureKeepsImageInDraft(t *testing.T) {
	mock := &mockMenuAPI{}
	f := form.NewMenuItemForm(mock, func(context.Context) {})

	f.OpenForCreate()
	if _, err := f.AttachImage(context.Background(), "a.png", strings.NewReader("x")); err != nil {
		t.Fatalf("attach: %v", err)
	}
	_ = f.SetDraft("Cola", "", "2", "", true)

	mock.failNext = errors.New("boom")
	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if f.Draft().Image != "/uploads/a.png" {
		t.Error("uploaded path must survive a failed submit")
	}
}

// --- Payment form ---

func TestPaymentMethodForm_CreateOnly(t *testing.T) {
	mock := &mockPaymentAPI{}
	var refreshes refreshCounter
	f := form.NewPaymentMethodForm(mock, refreshes.fn)

	f.OpenForCreate()
	f.SetDraft("CBE", "1000123")
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(mock.created) != 1 || mock.created[0].BankName != "CBE" {
		t.Errorf("created: %+v", mock.created)
	}
	if refreshes != 1 {
		t.Errorf("refreshes: got %d, want 1", refreshes)
	}
}

func TestPaymentMethodForm_RequiredFields(t *testing.T) {
	mock := &mockPaymentAPI{}
	f := form.NewPaymentMethodForm(mock, func(context.Context) {})

	f.OpenForCreate()
	f.SetDraft("CBE", "")
	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected validation error")
	}
	if !f.Open() {
		t.Error("dialog must stay open")
	}
}

// --- Order status control ---

func TestOrderStatusControl_ForwardsEnumValues(t *testing.T) {
	mock := &mockStatusAPI{}
	var refreshes refreshCounter
	c := form.NewOrderStatusControl(mock, refreshes.fn)

	for _, status := range api.OrderStatuses() {
		if err := c.Set(context.Background(), "o1", status); err != nil {
			t.Fatalf("set %s: %v", status, err)
		}
		if mock.calls["o1"] != status {
			t.Errorf("forwarded: got %q, want %q", mock.calls["o1"], status)
		}
	}
	if int(refreshes) != len(api.OrderStatuses()) {
		t.Errorf("refreshes: got %d", refreshes)
	}
}

func TestOrderStatusControl_RejectsUnknownStatus(t *testing.T) {
	mock := &mockStatusAPI{}
	c := form.NewOrderStatusControl(mock, func(context.Context) {})

	if err := c.Set(context.Background(), "o1", "shipped"); err == nil {
		t.Fatal("expected error")
	}
	if len(mock.calls) != 0 {
		t.Error("nothing may reach the backend")
	}
}
