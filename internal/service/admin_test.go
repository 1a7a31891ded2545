package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/cafe-pos/cafe/internal/auth"
	"github.com/cafe-pos/cafe/internal/database"
	"github.com/cafe-pos/cafe/internal/enum"
)

// mockAdminStore keeps menu items and user roles in maps.
type mockAdminStore struct {
	menu  map[string]database.MenuItem
	roles map[string]string
}

func newMockAdminStore() *mockAdminStore {
	return &mockAdminStore{
		menu:  make(map[string]database.MenuItem),
		roles: make(map[string]string),
	}
}

func (m *mockAdminStore) CreateMenuItem(_ context.Context, arg database.CreateMenuItemParams) error {
	m.menu[arg.ItemName] = database.MenuItem{
		ItemName:    arg.ItemName,
		Type:        arg.Type,
		Price:       arg.Price,
		Description: arg.Description,
		ImageURL:    arg.ImageURL,
	}
	return nil
}

func (m *mockAdminStore) updateField(itemName string, f func(*database.MenuItem)) (int64, error) {
	item, ok := m.menu[itemName]
	if !ok {
		return 0, nil
	}
	f(&item)
	delete(m.menu, itemName)
	m.menu[item.ItemName] = item
	return 1, nil
}

func (m *mockAdminStore) UpdateMenuItemName(_ context.Context, itemName, newName string) (int64, error) {
	return m.updateField(itemName, func(it *database.MenuItem) { it.ItemName = newName })
}

func (m *mockAdminStore) UpdateMenuItemType(_ context.Context, itemName, newType string) (int64, error) {
	return m.updateField(itemName, func(it *database.MenuItem) { it.Type = newType })
}

func (m *mockAdminStore) UpdateMenuItemPrice(_ context.Context, itemName string, price pgtype.Numeric) (int64, error) {
	return m.updateField(itemName, func(it *database.MenuItem) { it.Price = price })
}

func (m *mockAdminStore) UpdateMenuItemDescription(_ context.Context, itemName, description string) (int64, error) {
	return m.updateField(itemName, func(it *database.MenuItem) { it.Description = description })
}

func (m *mockAdminStore) UpdateMenuItemImageURL(_ context.Context, itemName, imageURL string) (int64, error) {
	return m.updateField(itemName, func(it *database.MenuItem) { it.ImageURL = imageURL })
}

func (m *mockAdminStore) DeleteMenuItem(_ context.Context, itemName string) (int64, error) {
	if _, ok := m.menu[itemName]; !ok {
		return 0, nil
	}
	delete(m.menu, itemName)
	return 1, nil
}

func (m *mockAdminStore) UpdateUserType(_ context.Context, login, userType string) (int64, error) {
	if _, ok := m.roles[login]; !ok {
		return 0, nil
	}
	m.roles[login] = userType
	return 1, nil
}

func managerSession() auth.Session {
	return auth.Session{Login: "boss", Role: enum.RoleManager}
}

// --- Menu maintenance ---

func TestAddItem_Valid(t *testing.T) {
	store := newMockAdminStore()
	svc := NewAdminService(store)

	err := svc.AddItem(context.Background(), managerSession(), AddMenuItemParams{
		ItemName: "Coffee", Type: "Drinks", Price: "3.00",
		Description: "House blend", ImageURL: "coffee.jpg",
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	item := store.menu["Coffee"]
	if want := decimal.RequireFromString("3.00"); !database.NumericToDecimal(item.Price).Equal(want) {
		t.Fatalf("price: got %s", database.NumericToDecimal(item.Price))
	}
}

func TestAddItem_Validation(t *testing.T) {
	svc := NewAdminService(newMockAdminStore())
	sess := managerSession()

	cases := []struct {
		name string
		arg  AddMenuItemParams
		want error
	}{
		{"empty name", AddMenuItemParams{ItemName: " ", Type: "Drinks", Price: "3.00"}, ErrEmptyItemName},
		{"empty type", AddMenuItemParams{ItemName: "Coffee", Type: "", Price: "3.00"}, ErrEmptyItemType},
		{"zero price", AddMenuItemParams{ItemName: "Coffee", Type: "Drinks", Price: "0"}, ErrInvalidPrice},
		{"negative price", AddMenuItemParams{ItemName: "Coffee", Type: "Drinks", Price: "-1.50"}, ErrInvalidPrice},
		{"garbage price", AddMenuItemParams{ItemName: "Coffee", Type: "Drinks", Price: "free"}, ErrInvalidPrice},
	}
	for _, tc := range cases {
		if err := svc.AddItem(context.Background(), sess, tc.arg); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got: %v", tc.name, tc.want, err)
		}
	}
}

func TestMenuMaintenance_ManagerOnly(t *testing.T) {
	svc := NewAdminService(newMockAdminStore())
	for _, sess := range []auth.Session{
		{Login: "alice", Role: enum.RoleCustomer},
		{Login: "emp", Role: enum.RoleEmployee},
	} {
		if err := svc.AddItem(context.Background(), sess, AddMenuItemParams{ItemName: "X", Type: "Y", Price: "1"}); !errors.Is(err, ErrManagerOnly) {
			t.Fatalf("%s: expected ErrManagerOnly, got: %v", sess.Role, err)
		}
		if err := svc.DeleteItem(context.Background(), sess, "X"); !errors.Is(err, ErrManagerOnly) {
			t.Fatalf("%s: expected ErrManagerOnly, got: %v", sess.Role, err)
		}
		if err := svc.ChangeUserRole(context.Background(), sess, "bob", "Employee"); !errors.Is(err, ErrManagerOnly) {
			t.Fatalf("%s: expected ErrManagerOnly, got: %v", sess.Role, err)
		}
	}
}

func TestReprice_UpdatesAndValidates(t *testing.T) {
	store := newMockAdminStore()
	store.menu["Coffee"] = database.MenuItem{ItemName: "Coffee"}
	svc := NewAdminService(store)

	if err := svc.Reprice(context.Background(), managerSession(), "Coffee", "4.75"); err != nil {
		t.Fatalf("Reprice: %v", err)
	}
	if want := decimal.RequireFromString("4.75"); !database.NumericToDecimal(store.menu["Coffee"].Price).Equal(want) {
		t.Fatalf("price: got %s", database.NumericToDecimal(store.menu["Coffee"].Price))
	}

	if err := svc.Reprice(context.Background(), managerSession(), "Coffee", "-2"); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got: %v", err)
	}
	if err := svc.Reprice(context.Background(), managerSession(), "Scone", "2.00"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got: %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	store := newMockAdminStore()
	store.menu["Coffee"] = database.MenuItem{ItemName: "Coffee"}
	svc := NewAdminService(store)

	if err := svc.DeleteItem(context.Background(), managerSession(), "Coffee"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, ok := store.menu["Coffee"]; ok {
		t.Fatal("item should be gone")
	}
	if err := svc.DeleteItem(context.Background(), managerSession(), "Coffee"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got: %v", err)
	}
}

// --- User roles ---

func TestChangeUserRole(t *testing.T) {
	store := newMockAdminStore()
	store.roles["bob"] = "Customer"
	svc := NewAdminService(store)

	if err := svc.ChangeUserRole(context.Background(), managerSession(), "bob", "Employee"); err != nil {
		t.Fatalf("ChangeUserRole: %v", err)
	}
	if store.roles["bob"] != "Employee" {
		t.Fatalf("role: got %q", store.roles["bob"])
	}
}

func TestChangeUserRole_Rejections(t *testing.T) {
	store := newMockAdminStore()
	store.roles["bob"] = "Customer"
	svc := NewAdminService(store)

	if err := svc.ChangeUserRole(context.Background(), managerSession(), "bob", "Overlord"); !errors.Is(err, enum.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got: %v", err)
	}
	if store.roles["bob"] != "Customer" {
		t.Fatal("rejected role change must not mutate")
	}
	if err := svc.ChangeUserRole(context.Background(), managerSession(), "nobody", "Employee"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestChangeUserRole_NormalizesLegacyLiteral(t *testing.T) {
	store := newMockAdminStore()
	store.roles["bob"] = "Customer"
	svc := NewAdminService(store)

	// Typed with the legacy trailing space; the stored literal is canonical.
	if err := svc.ChangeUserRole(context.Background(), managerSession(), "bob", "Manager "); err != nil {
		t.Fatalf("ChangeUserRole: %v", err)
	}
	if store.roles["bob"] != "Manager" {
		t.Fatalf("role: got %q, want canonical Manager", store.roles["bob"])
	}
}
