package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"schoollink/internal/domain"
)

const (
	initialPIN  = "0000"
	minGrade    = 1
	maxGrade    = 6
	minClass    = 1
	maxClass    = 15
	teacherRole = "teacher"
)

var pinRegexp = regexp.MustCompile(`^\d{4}$`)

// The single school every invite code binds to.
var defaultTenant = domain.Tenant{ID: domain.DefaultTenantID, SchoolName: "서울미래고등학교"}

// authService is the single-user mocked sign-in. A user signed in with the initial
// PIN is kept in memory only until a new PIN is chosen.
type authService struct {
	mu          sync.Mutex
	pending     *domain.UserProfile
	needsChange bool

	repo           domain.AccountRepository
	hasher         domain.PasswordHasher
	tokens         domain.TokenIssuer
	sessionTTL     time.Duration
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewAuthService(
	repo domain.AccountRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	sessionTTL time.Duration,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		repo:           repo,
		hasher:         hasher,
		tokens:         tokens,
		sessionTTL:     sessionTTL,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *authService) Login(ctx context.Context, grade, classNum, pin string) (*domain.LoginResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	g, err := parseRange(grade, minGrade, maxGrade)
	if err != nil {
		return nil, fmt.Errorf("%w: grade %q", domain.ErrInvalidField, grade)
	}
	c, err := parseRange(classNum, minClass, maxClass)
	if err != nil {
		return nil, fmt.Errorf("%w: class %q", domain.ErrInvalidField, classNum)
	}
	if !pinRegexp.MatchString(pin) {
		return nil, domain.ErrPINFormat
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid := fmt.Sprintf("u-%d-%d", g, c)
	pins, err := s.repo.LoadPINs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pins: %w", err)
	}
	if rec, ok := pins[uid]; ok {
		if err := s.hasher.Compare(rec.Hash, rec.Salt, pin); err != nil {
			s.logger.InfoContext(ctx, "sign-in rejected", "uid", uid)
			return nil, domain.ErrInvalidPIN
		}
	} else if pin != initialPIN {
		s.logger.InfoContext(ctx, "sign-in rejected", "uid", uid)
		return nil, domain.ErrInvalidPIN
	}

	user := domain.UserProfile{
		UID:         uid,
		Grade:       strconv.Itoa(g),
		ClassNum:    strconv.Itoa(c),
		DisplayName: fmt.Sprintf("%d학년 %d반", g, c),
		Role:        teacherRole,
	}
	if pin == initialPIN {
		s.pending = &user
		s.needsChange = true
	} else {
		if err := s.repo.SaveUser(ctx, user); err != nil {
			return nil, fmt.Errorf("save user: %w", err)
		}
		s.pending = nil
		s.needsChange = false
	}

	token, err := s.tokens.Issue(user.UID, user.DisplayName, []string{user.Role}, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	state, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "signed in", "uid", uid, "needsPasswordChange", s.needsChange)
	return &domain.LoginResult{Token: token, Session: *state}, nil
}

func (s *authService) ChangePassword(ctx context.Context, newPIN, confirmPIN string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !pinRegexp.MatchString(newPIN) {
		return domain.ErrPINFormat
	}
	if newPIN == initialPIN {
		return domain.ErrDefaultPIN
	}
	if newPIN != confirmPIN {
		return domain.ErrPINMismatch
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUnauthorized
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(salt, newPIN)
	if err != nil {
		return err
	}
	pins, err := s.repo.LoadPINs(ctx)
	if err != nil {
		return fmt.Errorf("load pins: %w", err)
	}
	pins[user.UID] = domain.PINRecord{Hash: hash, Salt: salt}
	if err := s.repo.SavePINs(ctx, pins); err != nil {
		return fmt.Errorf("save pins: %w", err)
	}
	if err := s.repo.SaveUser(ctx, *user); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	s.pending = nil
	s.needsChange = false
	s.logger.InfoContext(ctx, "pin changed", "uid", user.UID)
	return nil
}

// JoinTenant binds the signed-in user to the school. Any non-empty code is accepted.
func (s *authService) JoinTenant(ctx context.Context, code string) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: invite code required", domain.ErrInvalidField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || s.needsChange {
		return nil, domain.ErrUnauthorized
	}

	tenant := defaultTenant
	tenant.InviteCode = code
	if err := s.repo.SaveTenant(ctx, tenant); err != nil {
		return nil, fmt.Errorf("save tenant: %w", err)
	}
	s.logger.InfoContext(ctx, "joined tenant", "uid", user.UID, "tenant", tenant.ID)
	return &tenant, nil
}

func (s *authService) Logout(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.pending = nil
	s.needsChange = false
	return nil
}

func (s *authService) Session(ctx context.Context) (*domain.SessionState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(ctx)
}

func (s *authService) session(ctx context.Context) (*domain.SessionState, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	tenant, err := s.repo.LoadTenant(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tenant: %w", err)
	}

	state := &domain.SessionState{User: user, Tenant: tenant, NeedsPasswordChange: s.needsChange}
	switch {
	case user == nil:
		state.View = domain.ViewAuth
	case s.needsChange:
		state.View = domain.ViewPasswordChange
	case tenant == nil:
		state.View = domain.ViewTenant
	default:
		state.View = domain.ViewWidget
	}
	return state, nil
}

func (s *authService) currentUser(ctx context.Context) (*domain.UserProfile, error) {
	if s.pending != nil {
		u := *s.pending
		return &u, nil
	}
	u, err := s.repo.LoadUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func parseRange(raw string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d out of range %d-%d", n, lo, hi)
	}
	return n, nil
}
