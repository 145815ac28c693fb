package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-journaling-be/internal/constant"
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/repository/specification"
	"ai-journaling-be/internal/repository/unitofwork"
	"ai-journaling-be/pkg/events"
	"ai-journaling-be/pkg/llm"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ProfileCache is a best-effort read-through cache in front of UserProfiles.
type ProfileCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	Set(ctx context.Context, profile *entity.UserProfile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type IProfileService interface {
	GetOrGenerate(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	Regenerate(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	Upsert(ctx context.Context, userId uuid.UUID, data *entity.ProfileData) (*dto.UserProfileResponse, error)
}

type profileService struct {
	uowFactory   unitofwork.RepositoryFactory
	completer    llm.Completer
	cache        ProfileCache
	eventService IEventService
	logger       logger.ILogger
	validate     *validator.Validate
	group        singleflight.Group
	now          func() time.Time
}

// NewProfileService accepts a nil cache.
func NewProfileService(
	uowFactory unitofwork.RepositoryFactory,
	completer llm.Completer,
	cache ProfileCache,
	eventService IEventService,
	log logger.ILogger,
) IProfileService {
	return &profileService{
		uowFactory:   uowFactory,
		completer:    completer,
		cache:        cache,
		eventService: eventService,
		logger:       log,
		validate:     validator.New(),
		now:          time.Now,
	}
}

func (s *profileService) GetOrGenerate(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userId)
		if err != nil {
			s.logger.Warn("PROFILE", "Profile cache read failed", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		} else if cached != nil {
			return toUserProfileResponse(cached), nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.UserProfileRepository().FindByUserID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		s.cacheSet(ctx, profile)
		return toUserProfileResponse(profile), nil
	}

	return s.Regenerate(ctx, userId)
}

// Regenerate builds a profile from the latest summaries and stores it.
// Concurrent calls for one user share a single completion, which runs
// detached from any one caller so a caller leaving early does not fail
// the others.
func (s *profileService) Regenerate(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(userId.String(), func() (interface{}, error) {
		return s.generate(shared, userId)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return toUserProfileResponse(res.Val.(*entity.UserProfile)), nil
	}
}

func (s *profileService) Upsert(ctx context.Context, userId uuid.UUID, data *entity.ProfileData) (*dto.UserProfileResponse, error) {
	if data == nil {
		return nil, apperror.Validation("profile_data is required")
	}
	if err := s.validate.Struct(data); err != nil {
		return nil, apperror.Validation(fmt.Sprintf("profile_data does not match the profile schema: %v", err))
	}

	profile, err := s.store(ctx, userId, *data)
	if err != nil {
		return nil, err
	}
	return toUserProfileResponse(profile), nil
}

func (s *profileService) generate(ctx context.Context, userId uuid.UUID) (*entity.UserProfile, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var chats []*entity.ChatSummary
	var journals []*entity.JournalSummary
	recent := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "inserted_at", Desc: true},
		specification.Limit{N: constant.ProfileSummaryWindow},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chats, err = uow.ChatSummaryRepository().FindAll(gctx, recent...)
		return err
	})
	g.Go(func() error {
		var err error
		journals, err = uow.JournalSummaryRepository().FindAll(gctx, recent...)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Oldest first in the prompt.
	chatLines := make([]string, 0, len(chats))
	for i := len(chats) - 1; i >= 0; i-- {
		chatLines = append(chatLines, "- "+chats[i].SummaryText)
	}
	journalLines := make([]string, 0, len(journals))
	for i := len(journals) - 1; i >= 0; i-- {
		journalLines = append(journalLines, "- "+journals[i].SummaryText)
	}
	prompt := fmt.Sprintf(constant.ProfilePromptV1, strings.Join(chatLines, "\n"), strings.Join(journalLines, "\n"))

	raw, err := s.completer.Complete(ctx, constant.PersonaEmpatheticSummarizer,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		constant.ProfileMaxTokens,
	)
	if err != nil {
		return nil, err
	}

	data, err := s.ParseProfile(raw)
	if err != nil {
		s.logger.Error("PROFILE", "Generated profile rejected", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	return s.store(ctx, userId, *data)
}

// ParseProfile decodes a completion into ProfileData. A fenced ```json block
// is accepted; anything that does not match the schema is rejected.
func (s *profileService) ParseProfile(raw string) (*entity.ProfileData, error) {
	text := stripCodeFence(raw)

	var data entity.ProfileData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, &apperror.ProfileGenerationError{Reason: "completion is not valid JSON", Err: err}
	}
	if err := s.validate.Struct(&data); err != nil {
		return nil, &apperror.ProfileGenerationError{Reason: "completion does not match the profile schema", Err: err}
	}
	return &data, nil
}

func (s *profileService) store(ctx context.Context, userId uuid.UUID, data entity.ProfileData) (*entity.UserProfile, error) {
	profile := &entity.UserProfile{
		UserId:      userId,
		ProfileData: data,
		UpdatedAt:   s.now().UTC(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserProfileRepository().Upsert(ctx, profile); err != nil {
		return nil, err
	}
	s.cacheSet(ctx, profile)

	s.eventService.Emit(ctx, events.TypeProfileUpdated, map[string]interface{}{
		"user_id": userId.String(),
	})
	return profile, nil
}

func (s *profileService) cacheSet(ctx context.Context, profile *entity.UserProfile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, profile); err != nil {
		s.logger.Warn("PROFILE", "Profile cache write failed", map[string]interface{}{
			"user_id": profile.UserId.String(),
			"error":   err.Error(),
		})
		// A stale entry would shadow the row just written.
		_ = s.cache.Delete(ctx, profile.UserId)
	}
}

func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "json")
	}
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}

func toUserProfileResponse(p *entity.UserProfile) *dto.UserProfileResponse {
	return &dto.UserProfileResponse{
		UserId:      p.UserId,
		ProfileData: p.ProfileData,
		UpdatedAt:   p.UpdatedAt,
	}
}
