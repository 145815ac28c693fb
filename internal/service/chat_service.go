package service

import (
	"context"
	"strings"
	"time"

	"ai-journaling-be/internal/constant"
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/repository/specification"
	"ai-journaling-be/internal/repository/unitofwork"
	"ai-journaling-be/pkg/events"
	"ai-journaling-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	ListSessions(ctx context.Context, userId uuid.UUID) (*dto.ListChatSessionsResponse, error)
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateChatSessionResponse, error)
	ListMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ListChatMessagesResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SendSessionMessageRequest) (*dto.SendSessionMessageResponse, error)
	Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ListHistory(ctx context.Context, userId uuid.UUID) (*dto.ListChatHistoryResponse, error)
}

type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	completer    llm.Completer
	eventService IEventService
	logger       logger.ILogger
	now          func() time.Time
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	completer llm.Completer,
	eventService IEventService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:   uowFactory,
		completer:    completer,
		eventService: eventService,
		logger:       log,
		now:          time.Now,
	}
}

func (s *chatService) ListSessions(ctx context.Context, userId uuid.UUID) (*dto.ListChatSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListChatSessionsResponse{Sessions: make([]*dto.ChatSessionResponse, 0, len(sessions))}
	for _, session := range sessions {
		res.Sessions = append(res.Sessions, toChatSessionResponse(session))
	}
	return res, nil
}

// CreateSession always opens a new session. Reusing today's session is up to
// the client.
func (s *chatService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateChatSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		UserId:    userId,
		CreatedAt: s.now().UTC(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return &dto.CreateChatSessionResponse{Session: toChatSessionResponse(session)}, nil
}

func (s *chatService) ListMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ListChatMessagesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListChatMessagesResponse{Messages: make([]*dto.ChatMessageResponse, 0, len(messages))}
	for _, m := range messages {
		res.Messages = append(res.Messages, toChatMessageResponse(m))
	}
	return res, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.SendSessionMessageRequest) (*dto.SendSessionMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	recent, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: constant.ChatHistoryWindow},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(recent)+1)
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, llm.Message{Role: string(recent[i].Role), Content: recent[i].Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: req.Message})

	reply, err := s.completer.Complete(ctx, constant.PersonaSessionTherapist, history,
		constant.SessionReplyMaxTokens, llm.WithTemperature(constant.ChatTemperature))
	if err != nil {
		return nil, err
	}

	userAt, aiAt := s.turnTimes()
	userMsg := &entity.ChatMessage{
		SessionId: sessionId,
		UserId:    userId,
		Role:      entity.ChatRoleUser,
		Content:   req.Message,
		CreatedAt: userAt,
	}
	aiMsg := &entity.ChatMessage{
		SessionId: sessionId,
		UserId:    userId,
		Role:      entity.ChatRoleAssistant,
		Content:   reply,
		CreatedAt: aiAt,
	}

	// Both inserts are attempted; the reply is returned either way.
	userErr := uow.ChatMessageRepository().Create(ctx, userMsg)
	aiErr := uow.ChatMessageRepository().Create(ctx, aiMsg)
	persisted := s.logTurnFailures("session", sessionId, userErr, aiErr)

	s.eventService.Emit(ctx, events.TypeChatMessageSent, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": sessionId.String(),
		"persisted":  persisted,
	})

	return &dto.SendSessionMessageResponse{
		UserMessage: toChatMessageResponse(userMsg),
		AiMessage:   toChatMessageResponse(aiMsg),
		Persisted:   persisted,
	}, nil
}

func (s *chatService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	recent, err := uow.ChatHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{N: constant.ChatHistoryWindow},
	)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(recent)+2)
	if req.Context != nil && strings.TrimSpace(*req.Context) != "" {
		history = append(history, llm.Message{Role: llm.RoleSystem, Content: constant.ChatContextPrefix + *req.Context})
	}
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, llm.Message{Role: string(recent[i].Role), Content: recent[i].Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: req.Message})

	reply, err := s.completer.Complete(ctx, constant.PersonaChatTherapist, history,
		constant.ChatReplyMaxTokens, llm.WithTemperature(constant.ChatTemperature))
	if err != nil {
		return nil, err
	}

	userAt, aiAt := s.turnTimes()
	userTurn := &entity.ChatHistory{
		UserId:    userId,
		Role:      entity.ChatRoleUser,
		Content:   req.Message,
		CreatedAt: userAt,
	}
	aiTurn := &entity.ChatHistory{
		UserId:    userId,
		Role:      entity.ChatRoleAssistant,
		Content:   reply,
		CreatedAt: aiAt,
	}

	userErr := uow.ChatHistoryRepository().Create(ctx, userTurn)
	aiErr := uow.ChatHistoryRepository().Create(ctx, aiTurn)
	persisted := s.logTurnFailures("history", userId, userErr, aiErr)

	return &dto.ChatResponse{
		Response:    reply,
		UserMessage: toChatHistoryResponse(userTurn),
		AiMessage:   toChatHistoryResponse(aiTurn),
		Persisted:   persisted,
	}, nil
}

func (s *chatService) ListHistory(ctx context.Context, userId uuid.UUID) (*dto.ListChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	turns, err := uow.ChatHistoryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListChatHistoryResponse{Messages: make([]*dto.ChatHistoryResponse, 0, len(turns))}
	for _, t := range turns {
		res.Messages = append(res.Messages, toChatHistoryResponse(t))
	}
	return res, nil
}

// turnTimes returns strictly increasing timestamps for a user turn and its
// reply, at the store's microsecond precision.
func (s *chatService) turnTimes() (time.Time, time.Time) {
	userAt := s.now().UTC().Truncate(time.Microsecond)
	return userAt, userAt.Add(time.Microsecond)
}

func (s *chatService) logTurnFailures(scope string, id uuid.UUID, userErr, aiErr error) bool {
	if userErr != nil {
		s.logger.Error("CHAT", "Failed to persist user turn", map[string]interface{}{
			"scope": scope,
			"id":    id.String(),
			"error": userErr.Error(),
		})
	}
	if aiErr != nil {
		s.logger.Error("CHAT", "Failed to persist assistant turn", map[string]interface{}{
			"scope": scope,
			"id":    id.String(),
			"error": aiErr.Error(),
		})
	}
	return userErr == nil && aiErr == nil
}

func toChatSessionResponse(s *entity.ChatSession) *dto.ChatSessionResponse {
	return &dto.ChatSessionResponse{
		SessionId: s.Id,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		Notes:     s.Notes,
	}
}

func toChatMessageResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		ChatId:    m.Id,
		SessionId: m.SessionId,
		UserId:    m.UserId,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func toChatHistoryResponse(h *entity.ChatHistory) *dto.ChatHistoryResponse {
	return &dto.ChatHistoryResponse{
		Id:        h.Id,
		UserId:    h.UserId,
		Role:      string(h.Role),
		Content:   h.Content,
		CreatedAt: h.CreatedAt,
	}
}
