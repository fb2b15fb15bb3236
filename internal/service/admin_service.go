package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go-event-registry/internal/feed"
	"go-event-registry/internal/model"
	"go-event-registry/internal/validation"
	apperrors "go-event-registry/pkg/app_errors"
	"go-event-registry/pkg/logger"

	"go.uber.org/zap"
)

// AdminService 持有固定的 owner 身份與兩份驗證規則（活動名稱、使用者名稱）。
// 規則只能由 owner 透過 setter 修改，修改立即生效於之後的驗證，
// 已存在的活動與使用者名稱不會被重新驗證。
type AdminService interface {
	Owner() string
	IsOwner(caller string) bool
	EventNameConfig() validation.Config
	UsernameConfig() validation.Config

	SetEventNameValidRange(ctx context.Context, caller string, r validation.CharRange) error
	SetEventNameInvalidRanges(ctx context.Context, caller string, ranges []validation.CharRange) error
	SetEventNameMaxLength(ctx context.Context, caller string, length int) error
	SetEventNameMinLength(ctx context.Context, caller string, length int) error

	SetUsernameValidRange(ctx context.Context, caller string, r validation.CharRange) error
	SetUsernameInvalidRanges(ctx context.Context, caller string, ranges []validation.CharRange) error
	SetUsernameMaxLength(ctx context.Context, caller string, length int) error
	SetUsernameMinLength(ctx context.Context, caller string, length int) error
}

type AdminServiceImpl struct {
	owner string
	feed  feed.NotificationFeed

	mu           sync.RWMutex
	eventNameCfg validation.Config
	usernameCfg  validation.Config
}

func NewAdminService(owner string, eventNameCfg, usernameCfg validation.Config, notificationFeed feed.NotificationFeed) AdminService {
	return &AdminServiceImpl{
		owner:        owner,
		feed:         notificationFeed,
		eventNameCfg: eventNameCfg,
		usernameCfg:  usernameCfg,
	}
}

func (s *AdminServiceImpl) Owner() string {
	return s.owner
}

func (s *AdminServiceImpl) IsOwner(caller string) bool {
	return caller == s.owner
}

func (s *AdminServiceImpl) EventNameConfig() validation.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyConfig(s.eventNameCfg)
}

func (s *AdminServiceImpl) UsernameConfig() validation.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyConfig(s.usernameCfg)
}

func (s *AdminServiceImpl) SetEventNameValidRange(ctx context.Context, caller string, r validation.CharRange) error {
	return s.setValidRange(ctx, caller, &s.eventNameCfg, "event_name_valid_range", r)
}

func (s *AdminServiceImpl) SetEventNameInvalidRanges(ctx context.Context, caller string, ranges []validation.CharRange) error {
	return s.setInvalidRanges(ctx, caller, &s.eventNameCfg, "event_name_invalid_ranges", ranges)
}

func (s *AdminServiceImpl) SetEventNameMaxLength(ctx context.Context, caller string, length int) error {
	return s.setMaxLength(ctx, caller, &s.eventNameCfg, "event_name_max_length", length)
}

func (s *AdminServiceImpl) SetEventNameMinLength(ctx context.Context, caller string, length int) error {
	return s.setMinLength(ctx, caller, &s.eventNameCfg, "event_name_min_length", length)
}

func (s *AdminServiceImpl) SetUsernameValidRange(ctx context.Context, caller string, r validation.CharRange) error {
	return s.setValidRange(ctx, caller, &s.usernameCfg, "username_valid_range", r)
}

func (s *AdminServiceImpl) SetUsernameInvalidRanges(ctx context.Context, caller string, ranges []validation.CharRange) error {
	return s.setInvalidRanges(ctx, caller, &s.usernameCfg, "username_invalid_ranges", ranges)
}

func (s *AdminServiceImpl) SetUsernameMaxLength(ctx context.Context, caller string, length int) error {
	return s.setMaxLength(ctx, caller, &s.usernameCfg, "username_max_length", length)
}

func (s *AdminServiceImpl) SetUsernameMinLength(ctx context.Context, caller string, length int) error {
	return s.setMinLength(ctx, caller, &s.usernameCfg, "username_min_length", length)
}

func (s *AdminServiceImpl) setValidRange(ctx context.Context, caller string, cfg *validation.Config, setting string, r validation.CharRange) error {
	if !s.IsOwner(caller) {
		return apperrors.ErrNotOwner
	}
	if r.Low > r.High {
		return apperrors.ErrInvalidInput
	}
	s.mu.Lock()
	cfg.ValidRange = r
	s.mu.Unlock()
	s.publishChange(ctx, caller, setting, formatRange(r))
	return nil
}

func (s *AdminServiceImpl) setInvalidRanges(ctx context.Context, caller string, cfg *validation.Config, setting string, ranges []validation.CharRange) error {
	if !s.IsOwner(caller) {
		return apperrors.ErrNotOwner
	}
	for _, r := range ranges {
		if r.Low > r.High {
			return apperrors.ErrInvalidInput
		}
	}
	copied := make([]validation.CharRange, len(ranges))
	copy(copied, ranges)
	s.mu.Lock()
	cfg.InvalidRanges = copied
	s.mu.Unlock()
	s.publishChange(ctx, caller, setting, formatRanges(ranges))
	return nil
}

func (s *AdminServiceImpl) setMaxLength(ctx context.Context, caller string, cfg *validation.Config, setting string, length int) error {
	if !s.IsOwner(caller) {
		return apperrors.ErrNotOwner
	}
	if length < 1 {
		return apperrors.ErrInvalidInput
	}
	s.mu.Lock()
	cfg.MaxLength = length
	s.mu.Unlock()
	s.publishChange(ctx, caller, setting, strconv.Itoa(length))
	return nil
}

func (s *AdminServiceImpl) setMinLength(ctx context.Context, caller string, cfg *validation.Config, setting string, length int) error {
	if !s.IsOwner(caller) {
		return apperrors.ErrNotOwner
	}
	if length < 0 {
		return apperrors.ErrInvalidInput
	}
	s.mu.Lock()
	cfg.MinLength = length
	s.mu.Unlock()
	s.publishChange(ctx, caller, setting, strconv.Itoa(length))
	return nil
}

func (s *AdminServiceImpl) publishChange(ctx context.Context, caller, setting, value string) {
	n := model.ConfigChangedNotification(caller, setting, value)
	if err := s.feed.Publish(ctx, n); err != nil {
		logger.WithComponent("service").Warn("publish config change failed", zap.String("setting", setting), zap.Error(err))
	}
}

func copyConfig(cfg validation.Config) validation.Config {
	copied := cfg
	copied.InvalidRanges = make([]validation.CharRange, len(cfg.InvalidRanges))
	copy(copied.InvalidRanges, cfg.InvalidRanges)
	return copied
}

func formatRange(r validation.CharRange) string {
	return fmt.Sprintf("[%#x,%#x]", r.Low, r.High)
}

func formatRanges(ranges []validation.CharRange) string {
	parts := make([]string, 0, len(ranges))
	for _, r := range ranges {
		parts = append(parts, formatRange(r))
	}
	return strings.Join(parts, ",")
}
