package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/mintevents/event-portal-backend/config"
)

type fakeUserRepo struct {
	users map[uint]User
}

func (f *fakeUserRepo) Create(u *User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uint) (User, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(u *User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Delete(id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListUsers(limit, offset int, search string) ([]User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) UpdateRole(id uint, role string) error { return nil }

func (f *fakeUserRepo) GetUserIDsByRole(role string) ([]uint, error) { return nil, nil }

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 1,
	}
}

// Tokens are HS256 only; a token signed with any other method must be
// refused even when its signature checks out against the shared secret.
func TestRefreshRejectsForeignSigningMethod(t *testing.T) {
	svc := NewService(nil, testConfig())

	claims := jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).
		SignedString([]byte("refresh-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if _, err := svc.Refresh(signed); err == nil {
		t.Fatal("Refresh() accepted an HS384-signed token")
	}
}

func TestRefreshRotatesAccessToken(t *testing.T) {
	repo := &fakeUserRepo{users: map[uint]User{
		7: {ID: 7, Email: "officer@example.com", Role: "officer"},
	}}
	svc := NewService(repo, testConfig()).(*service)

	refresh, err := svc.generateRefreshToken(&User{ID: 7})
	if err != nil {
		t.Fatalf("generateRefreshToken() error = %v", err)
	}

	access, err := svc.Refresh(refresh)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if access == "" {
		t.Fatal("Refresh() returned an empty access token")
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc := NewService(nil, testConfig())
	if _, err := svc.Refresh("not-a-token"); err == nil {
		t.Fatal("Refresh() accepted a malformed token")
	}
}
