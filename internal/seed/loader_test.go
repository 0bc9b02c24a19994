package seed

import (
	"context"
	"errors"
	"testing"

	"stylos/internal/core/apperror"
	"stylos/internal/domain/auth"
	"stylos/internal/domain/catalog/client"
	"stylos/internal/domain/catalog/product"
	"stylos/internal/domain/finance"
	"stylos/internal/domain/orders"
)

// --- Mock objects ---

// recordingTxManager mimics a relational backend: a statement failure
// poisons the rest of its transaction, so every later statement in that
// transaction fails too.
type recordingTxManager struct {
	begun int
}

type txStateKey struct{}

type txState struct {
	aborted bool
}

func (m *recordingTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.begun++
	state := &txState{}
	err := fn(context.WithValue(ctx, txStateKey{}, state))
	if err != nil {
		state.aborted = true
	}
	return err
}

// guard fails the current statement when its transaction already failed.
func guard(ctx context.Context, result error) error {
	state, ok := ctx.Value(txStateKey{}).(*txState)
	if !ok {
		return errors.New("statement outside transaction")
	}
	if state.aborted {
		return errors.New("current transaction is aborted")
	}
	if result != nil {
		state.aborted = true
	}
	return result
}

type fakeUserWriter struct {
	emails  map[string]bool
	created int
}

func (w *fakeUserWriter) Create(ctx context.Context, u *auth.User) error {
	if w.emails[u.Email] {
		return guard(ctx, apperror.NewDuplicate("user", "email", u.Email))
	}
	if err := guard(ctx, nil); err != nil {
		return err
	}
	w.emails[u.Email] = true
	w.created++
	return nil
}

type fakeClientWriter struct{ created int }

func (w *fakeClientWriter) Create(ctx context.Context, c *client.Client) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}
	w.created++
	return nil
}

type fakeProductWriter struct {
	created int
	fail    error
}

func (w *fakeProductWriter) Create(ctx context.Context, p *product.Product) error {
	if w.fail != nil {
		return guard(ctx, w.fail)
	}
	if err := guard(ctx, nil); err != nil {
		return err
	}
	w.created++
	return nil
}

type fakeOrderWriter struct{ created int }

func (w *fakeOrderWriter) Create(ctx context.Context, o *orders.Order) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}
	w.created++
	return nil
}

type fakeExpenseWriter struct{ created int }

func (w *fakeExpenseWriter) Create(ctx context.Context, e *finance.Expense) error {
	if err := guard(ctx, nil); err != nil {
		return err
	}
	w.created++
	return nil
}

func testWriters() (Writers, *fakeUserWriter, *fakeProductWriter) {
	users := &fakeUserWriter{emails: map[string]bool{}}
	products := &fakeProductWriter{}
	w := Writers{
		Users:    users,
		Clients:  &fakeClientWriter{},
		Products: products,
		Orders:   &fakeOrderWriter{},
		Expenses: &fakeExpenseWriter{},
	}
	return w, users, products
}

func datasetSize(ds *Dataset) int {
	return len(ds.Users) + len(ds.Clients) + len(ds.Products) + len(ds.Orders) + len(ds.Expenses)
}

// --- Tests ---

func TestLoadSkipsDuplicates(t *testing.T) {
	ds, err := Demo()
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	w, users, _ := testWriters()
	users.emails["admin@stylos.com"] = true

	txm := &recordingTxManager{}
	res, err := Load(context.Background(), txm, w, ds)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	total := datasetSize(ds)
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
	if res.Created != total-1 {
		t.Errorf("Created = %d, want %d", res.Created, total-1)
	}
	if users.created != len(ds.Users)-1 {
		t.Errorf("users created = %d, want %d", users.created, len(ds.Users)-1)
	}
}

func TestLoadRowPerTransaction(t *testing.T) {
	ds, err := Demo()
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	w, _, _ := testWriters()

	txm := &recordingTxManager{}
	res, err := Load(context.Background(), txm, w, ds)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	total := datasetSize(ds)
	if txm.begun != total {
		t.Errorf("transactions begun = %d, want %d (one per row)", txm.begun, total)
	}
	if res.Created != total {
		t.Errorf("Created = %d, want %d", res.Created, total)
	}
}

func TestLoadStopsOnHardError(t *testing.T) {
	ds, err := Demo()
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	w, _, products := testWriters()
	products.fail = errors.New("connection reset")

	res, err := Load(context.Background(), &recordingTxManager{}, w, ds)
	if err == nil {
		t.Fatal("Load() expected error, got nil")
	}
	wantCreated := len(ds.Users) + len(ds.Clients)
	if res.Created != wantCreated {
		t.Errorf("Created = %d, want %d", res.Created, wantCreated)
	}
}
