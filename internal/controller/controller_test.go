package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/pkg/events"
	"ai-journaling-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUserID = uuid.MustParse("6f1c2f0e-8a51-4e51-9d0e-3f3b1d7f2a11")

type fakeAuthService struct {
	refreshToken string
	signUpCalls  int
}

func (f *fakeAuthService) SignUp(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	f.signUpCalls++
	return &dto.SignupResponse{Message: "User signed up successfully!", UserId: testUserID, Email: req.Email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return nil, &apperror.AuthError{Message: "Invalid email or password."}
}

func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	f.refreshToken = refreshToken
	if refreshToken == "" {
		return nil, &apperror.AuthError{Message: "Invalid refresh token or session expired."}
	}
	return &dto.TokenResponse{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

func (f *fakeAuthService) VerifyToken(ctx context.Context, token string) (*entity.AuthUser, error) {
	if token != "good" {
		return nil, &apperror.AuthError{Message: "Invalid or expired token."}
	}
	return &entity.AuthUser{Id: testUserID, Email: "a@example.com"}, nil
}

type fakeChatService struct {
	err   error
	calls int
}

func (f *fakeChatService) ListSessions(ctx context.Context, userId uuid.UUID) (*dto.ListChatSessionsResponse, error) {
	f.calls++
	return &dto.ListChatSessionsResponse{Sessions: []*dto.ChatSessionResponse{}}, f.err
}

func (f *fakeChatService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateChatSessionResponse, error) {
	f.calls++
	return &dto.CreateChatSessionResponse{}, f.err
}

func (f *fakeChatService) ListMessages(ctx context.Context, userId, sessionId uuid.UUID) (*dto.ListChatMessagesResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ListChatMessagesResponse{Messages: []*dto.ChatMessageResponse{}}, nil
}

func (f *fakeChatService) SendMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendSessionMessageRequest) (*dto.SendSessionMessageResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SendSessionMessageResponse{Persisted: true}, nil
}

func (f *fakeChatService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ChatResponse{Response: "hello"}, nil
}

func (f *fakeChatService) ListHistory(ctx context.Context, userId uuid.UUID) (*dto.ListChatHistoryResponse, error) {
	f.calls++
	return &dto.ListChatHistoryResponse{}, f.err
}

type fakeSummaryService struct {
	start, end time.Time
	sessionId  uuid.UUID
}

func (f *fakeSummaryService) CreateJournalSummary(ctx context.Context, userId uuid.UUID, startDate, endDate time.Time) (*dto.JournalSummaryResponse, error) {
	f.start, f.end = startDate, endDate
	return &dto.JournalSummaryResponse{UserId: userId, StartDate: "2024-01-01", EndDate: "2024-01-07", SummaryText: "calm week"}, nil
}

func (f *fakeSummaryService) GetJournalSummary(ctx context.Context, userId uuid.UUID, startDate, endDate time.Time) (*dto.JournalSummaryResponse, error) {
	f.start, f.end = startDate, endDate
	return nil, apperror.NotFound("journal summary")
}

func (f *fakeSummaryService) CreateChatSummary(ctx context.Context, userId, sessionId uuid.UUID) (*dto.ChatSummaryResponse, error) {
	f.sessionId = sessionId
	return &dto.ChatSummaryResponse{SessionId: sessionId}, nil
}

func (f *fakeSummaryService) ListChatSummaries(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error) {
	return []*dto.ChatSummaryResponse{}, nil
}

type fakeProfileService struct {
	err error
}

func (f *fakeProfileService) GetOrGenerate(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.UserProfileResponse{UserId: userId}, nil
}

func (f *fakeProfileService) Regenerate(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	return f.GetOrGenerate(ctx, userId)
}

func (f *fakeProfileService) Upsert(ctx context.Context, userId uuid.UUID, data *entity.ProfileData) (*dto.UserProfileResponse, error) {
	return &dto.UserProfileResponse{UserId: userId, ProfileData: *data}, nil
}

type fakeBackfillService struct {
	source string
	userId uuid.UUID
}

func (f *fakeBackfillService) RunForUser(ctx context.Context, userId uuid.UUID) (*dto.BackfillReport, error) {
	return &dto.BackfillReport{UserId: userId}, nil
}

func (f *fakeBackfillService) RunAll(ctx context.Context) ([]*dto.BackfillReport, error) {
	return nil, nil
}

func (f *fakeBackfillService) Enqueue(ctx context.Context, userId uuid.UUID, source string) (*dto.BackfillAcceptedResponse, error) {
	f.userId, f.source = userId, source
	return &dto.BackfillAcceptedResponse{Message: "Backfill queued", JobId: uuid.New()}, nil
}

func (f *fakeBackfillService) EnqueueAll(ctx context.Context, source string) (int, error) {
	return 0, nil
}

func (f *fakeBackfillService) HandleBackfillRequested(ctx context.Context, event events.Event) error {
	return nil
}

type harness struct {
	app      *fiber.App
	auth     *fakeAuthService
	chat     *fakeChatService
	summary  *fakeSummaryService
	profile  *fakeProfileService
	backfill *fakeBackfillService
}

func newHarness() *harness {
	h := &harness{
		auth:     &fakeAuthService{},
		chat:     &fakeChatService{},
		summary:  &fakeSummaryService{},
		profile:  &fakeProfileService{},
		backfill: &fakeBackfillService{},
	}
	h.app = fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(logger.NewNopLogger())})
	jwt := serverutils.JwtMiddleware(h.auth)
	api := h.app.Group("/api")
	NewAuthController(h.auth, jwt, false).RegisterRoutes(api)
	NewChatController(h.chat, jwt).RegisterRoutes(api)
	NewSummaryController(h.summary, jwt).RegisterRoutes(api)
	NewProfileController(h.profile, jwt).RegisterRoutes(api)
	NewBackfillController(h.backfill, jwt).RegisterRoutes(api)
	return h
}

func (h *harness) do(t *testing.T, method, path, body string, authed bool) (int, map[string]interface{}, []string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer good")
	}
	resp, err := h.app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out, resp.Header.Values("Set-Cookie")
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "GET", "/api/chat-sessions", "", false)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, apperror.CodeAuth, body["error_code"])
	assert.Equal(t, "Authorization header missing. Please log in.", body["message"])
	assert.Zero(t, h.chat.calls)
}

func TestSignupIsPublic(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "POST", "/api/signup", `{"email":"a@example.com","password":"secret1"}`, false)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "User signed up successfully!", body["message"])
	assert.Equal(t, testUserID.String(), body["user_id"])
}

func TestSignupValidatesBeforeCallingProvider(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "POST", "/api/signup", `{"email":"not-an-email","password":"123"}`, false)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apperror.CodeValidation, body["error_code"])
	assert.Zero(t, h.auth.signUpCalls)
}

func TestLoginRejection(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "POST", "/api/login", `{"email":"a@example.com","password":"wrong"}`, false)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password.", body["message"])
}

func TestRefreshSetsCookie(t *testing.T) {
	h := newHarness()

	status, body, cookies := h.do(t, "POST", "/api/refresh", `{"refresh_token":"refresh-1"}`, false)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "refresh-1", h.auth.refreshToken)
	assert.Equal(t, "access-2", body["access_token"])
	require.Len(t, cookies, 1)
	assert.Contains(t, cookies[0], "refresh_token=refresh-2")
	assert.Contains(t, strings.ToLower(cookies[0]), "httponly")
}

func TestRefreshFallsBackToCookie(t *testing.T) {
	h := newHarness()

	req := httptest.NewRequest("POST", "/api/refresh", nil)
	req.Header.Set("Cookie", "refresh_token=from-cookie")
	resp, err := h.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "from-cookie", h.auth.refreshToken)
}

func TestRefreshWithoutTokenIsUnauthorized(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "POST", "/api/refresh", "", false)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid refresh token or session expired.", body["message"])
}

func TestProtectedEchoesUser(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "GET", "/api/protected", "", true)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "You have accessed a protected route!", body["message"])
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "a@example.com", user["email"])
}

func TestForeignSessionMapsToForbidden(t *testing.T) {
	h := newHarness()
	h.chat.err = apperror.AccessDenied("chat session")

	status, body, _ := h.do(t, "GET", "/api/chat-sessions/"+uuid.NewString()+"/messages", "", true)

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, apperror.CodeAccessDenied, body["error_code"])
	assert.Equal(t, "access denied to this chat session", body["message"])
}

func TestMalformedSessionIdIsRejected(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "POST", "/api/chat-sessions/not-a-uuid/messages", `{"message":"hi"}`, true)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "id must be a valid UUID", body["message"])
	assert.Zero(t, h.chat.calls)
}

func TestSendMessageRequiresText(t *testing.T) {
	h := newHarness()

	status, _, _ := h.do(t, "POST", "/api/chat-sessions/"+uuid.NewString()+"/messages", `{"message":""}`, true)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Zero(t, h.chat.calls)
}

func TestCompletionErrorsMapToGatewayCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "rate limited", err: &llm.CompletionError{Kind: llm.KindRateLimit, Err: errors.New("429")}, wantStatus: 429, wantCode: apperror.CodeRateLimited},
		{name: "upstream", err: &llm.CompletionError{Kind: llm.KindTransport, Err: errors.New("500")}, wantStatus: 502, wantCode: apperror.CodeCompletion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.chat.err = tt.err

			status, body, _ := h.do(t, "POST", "/api/chat", `{"message":"hi"}`, true)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["error_code"])
		})
	}
}

func TestJournalSummaryNotFound(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "GET", "/api/journal-summaries?start_date=2024-01-01&end_date=2024-01-07", "", true)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, apperror.CodeNotFound, body["error_code"])
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), h.summary.start)
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), h.summary.end)
}

func TestJournalSummaryRejectsBadDates(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "POST", "/api/journal-summaries", `{"start_date":"01/01/2024","end_date":"2024-01-07"}`, true)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apperror.CodeValidation, body["error_code"])
	assert.True(t, h.summary.start.IsZero())
}

func TestCreateJournalSummary(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "POST", "/api/journal-summaries", `{"start_date":"2024-01-01","end_date":"2024-01-07"}`, true)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "calm week", body["summary_text"])
	assert.Equal(t, "2024-01-01", body["start_date"])
}

func TestCreateChatSummaryParsesSessionId(t *testing.T) {
	h := newHarness()
	sessionId := uuid.New()

	status, _, _ := h.do(t, "POST", "/api/chat-summaries", `{"session_id":"`+sessionId.String()+`"}`, true)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, sessionId, h.summary.sessionId)

	upper := uuid.New()
	status, _, _ = h.do(t, "POST", "/api/chat-summaries", `{"session_id":"`+strings.ToUpper(upper.String())+`"}`, true)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, upper, h.summary.sessionId)

	status, body, _ := h.do(t, "POST", "/api/chat-summaries", `{"session_id":"nope"}`, true)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "session_id must be a valid UUID", body["message"])

	status, _, _ = h.do(t, "POST", "/api/chat-summaries", `{}`, true)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestProfileGenerationFailureIsBadGateway(t *testing.T) {
	h := newHarness()
	h.profile.err = &apperror.ProfileGenerationError{Reason: "completion is not valid JSON"}

	status, body, _ := h.do(t, "GET", "/api/user-profile", "", true)

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, apperror.CodeProfileGeneration, body["error_code"])
}

func TestUpsertProfileRequiresData(t *testing.T) {
	h := newHarness()

	status, _, _ := h.do(t, "PUT", "/api/user-profile", `{}`, true)

	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestBackfillIsAccepted(t *testing.T) {
	h := newHarness()

	status, body, _ := h.do(t, "POST", "/api/backfill", "", true)

	assert.Equal(t, fiber.StatusAccepted, status)
	assert.Equal(t, "Backfill queued", body["message"])
	assert.NotEmpty(t, body["job_id"])
	assert.Equal(t, testUserID, h.backfill.userId)
	assert.Equal(t, dto.BackfillSourceHTTP, h.backfill.source)
}
