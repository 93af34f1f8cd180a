package domain

import (
	"context"
	"time"
)

// UserProfile is the signed-in staff member. Identity is derived from grade and class.
// swagger:model UserProfile
type UserProfile struct {
	UID         string `json:"uid"`
	Grade       string `json:"grade"`
	ClassNum    string `json:"classNum"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// Tenant is the school the user joined.
// swagger:model Tenant
type Tenant struct {
	ID         string `json:"id"`
	SchoolName string `json:"schoolName"`
	InviteCode string `json:"inviteCode"`
}

// PINRecord is the stored hash of one user's PIN.
type PINRecord struct {
	Hash string `json:"hash"`
	Salt string `json:"salt"`
}

// View is the screen the client should present for the current session.
type View string

const (
	ViewAuth           View = "auth"
	ViewPasswordChange View = "password-change"
	ViewTenant         View = "tenant"
	ViewWidget         View = "widget"
)

// SessionState describes who is signed in and where the client should route.
type SessionState struct {
	User                *UserProfile `json:"user"`
	Tenant              *Tenant      `json:"tenant"`
	NeedsPasswordChange bool         `json:"needsPasswordChange"`
	View                View         `json:"view"`
}

// LoginResult is returned on a successful sign-in.
type LoginResult struct {
	Token   string       `json:"token"`
	Session SessionState `json:"session"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(uid, displayName string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (uid string, err error)
}

// AccountRepository persists the mocked identity under its own storage keys.
// Load methods return nil without error when nothing is stored.
type AccountRepository interface {
	LoadUser(ctx context.Context) (*UserProfile, error)
	SaveUser(ctx context.Context, u UserProfile) error
	LoadTenant(ctx context.Context) (*Tenant, error)
	SaveTenant(ctx context.Context, t Tenant) error
	LoadPINs(ctx context.Context) (map[string]PINRecord, error)
	SavePINs(ctx context.Context, pins map[string]PINRecord) error
	Clear(ctx context.Context) error
}

// AuthService is the mocked grade/class sign-in flow.
type AuthService interface {
	Login(ctx context.Context, grade, classNum, pin string) (*LoginResult, error)
	ChangePassword(ctx context.Context, newPIN, confirmPIN string) error
	JoinTenant(ctx context.Context, code string) (*Tenant, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*SessionState, error)
}
