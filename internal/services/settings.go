package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"schoollink/internal/domain"
)

const (
	minOpacity = 20
	maxOpacity = 100
)

type settingsService struct {
	mu             sync.Mutex
	repo           domain.SettingsRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewSettingsService(repo domain.SettingsRepository, logger *slog.Logger, timeout time.Duration) domain.SettingsService {
	return &settingsService{repo: repo, logger: logger, contextTimeout: timeout}
}

// Get returns the stored preferences, or the defaults when nothing was saved yet.
func (s *settingsService) Get(ctx context.Context) (domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *settingsService) Update(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if patch.AlwaysOnTop != nil {
		cur.AlwaysOnTop = *patch.AlwaysOnTop
	}
	if patch.Opacity != nil {
		cur.Opacity = clampOpacity(*patch.Opacity)
	}
	if patch.AutoLaunch != nil {
		cur.AutoLaunch = *patch.AutoLaunch
	}
	if patch.Notifications != nil {
		cur.Notifications = *patch.Notifications
	}

	if err := s.repo.Save(ctx, cur); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return cur, nil
}

func (s *settingsService) load(ctx context.Context) (domain.Settings, error) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "settings unreadable, using defaults", "err", err)
		return domain.DefaultSettings(), nil
	}
	if stored == nil {
		return domain.DefaultSettings(), nil
	}
	out := *stored
	out.Opacity = clampOpacity(out.Opacity)
	return out, nil
}

func clampOpacity(v int) int {
	return min(max(v, minOpacity), maxOpacity)
}
