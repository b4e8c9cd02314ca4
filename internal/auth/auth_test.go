package auth

import (
	"testing"

	"monedero/internal/storage"
)

func newService() (*Service, storage.Store) {
	store := storage.NewMemoryStore()
	return NewService(NewStoreRegistry(store), store), store
}

func TestLoginDefaultAdmin(t *testing.T) {
	svc, _ := newService()
	if !svc.Login("admin", "admin") {
		t.Fatalf("default admin login must succeed")
	}
	u, ok := svc.Current()
	if !ok || u.Name != "admin" {
		t.Fatalf("current = %+v, ok = %v", u, ok)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newService()
	tests := []struct {
		name     string
		user     string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "ghost", "admin"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if svc.Login(tc.user, tc.password) {
				t.Fatalf("login must fail")
			}
			if _, ok := svc.Current(); ok {
				t.Fatalf("no identity expected after failed login")
			}
		})
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newService()
	if !svc.Register("maria", "secret") {
		t.Fatalf("register must succeed")
	}
	u, ok := svc.Current()
	if !ok || u.Name != "maria" {
		t.Fatalf("register must log the user in, got %+v", u)
	}

	// Taken name, and the reserved seed account.
	if svc.Register("maria", "other") {
		t.Fatalf("duplicate name must fail")
	}
	if svc.Register("admin", "other") {
		t.Fatalf("seeded name must fail")
	}
	if svc.Register("", "x") || svc.Register("x", "") {
		t.Fatalf("empty credentials must fail")
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService()
	if svc.ChangePassword("admin", "next") {
		t.Fatalf("change without login must fail")
	}
	svc.Login("admin", "admin")
	if svc.ChangePassword("wrong", "next") {
		t.Fatalf("wrong old password must fail")
	}
	if !svc.ChangePassword("admin", "next") {
		t.Fatalf("change must succeed")
	}
	svc.Logout()
	if svc.Login("admin", "admin") {
		t.Fatalf("old password must stop working")
	}
	if !svc.Login("admin", "next") {
		t.Fatalf("new password must work")
	}
}

func TestResume(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(NewStoreRegistry(store), store)
	if svc.Resume() {
		t.Fatalf("nothing to resume on a fresh store")
	}
	svc.Login("admin", "admin")

	// A new service over the same store picks up the remembered identity.
	svc2 := NewService(NewStoreRegistry(store), store)
	if !svc2.Resume() {
		t.Fatalf("resume must succeed after a login")
	}
	u, ok := svc2.Current()
	if !ok || u.Name != "admin" {
		t.Fatalf("resumed identity = %+v", u)
	}

	svc2.Logout()
	svc3 := NewService(NewStoreRegistry(store), store)
	if svc3.Resume() {
		t.Fatalf("logout must clear the resumption marker")
	}
}
