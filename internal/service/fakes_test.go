package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/repository/contract"
	"ai-journaling-be/internal/repository/specification"
	"ai-journaling-be/internal/repository/unitofwork"
	"ai-journaling-be/pkg/events"
	"ai-journaling-be/pkg/llm"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the database. Queries understand the
// specifications the services use.
type memStore struct {
	mu sync.Mutex

	users            []*entity.User
	journals         []*entity.JournalEntry
	goals            []*entity.Goal
	sessions         []*entity.ChatSession
	messages         []*entity.ChatMessage
	history          []*entity.ChatHistory
	journalSummaries []*entity.JournalSummary
	chatSummaries    []*entity.ChatSummary
	profiles         map[uuid.UUID]*entity.UserProfile
	insights         []*entity.TherapistInsight

	messageReads int
	failWrite    func(table string, record interface{}) error
}

func newMemStore() *memStore {
	return &memStore{profiles: map[uuid.UUID]*entity.UserProfile{}}
}

func (s *memStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUnitOfWork{store: s}
}

func (s *memStore) checkWrite(table string, record interface{}) error {
	if s.failWrite == nil {
		return nil
	}
	return s.failWrite(table, record)
}

type memUnitOfWork struct {
	store *memStore
}

func (u *memUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memUnitOfWork) Commit() error                   { return nil }
func (u *memUnitOfWork) Rollback() error                 { return nil }

func (u *memUnitOfWork) UserRepository() contract.UserRepository       { return &memUsers{u.store} }
func (u *memUnitOfWork) JournalRepository() contract.JournalRepository { return &memJournals{u.store} }
func (u *memUnitOfWork) GoalRepository() contract.GoalRepository       { return &memGoals{u.store} }
func (u *memUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &memSessions{u.store}
}
func (u *memUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &memMessages{u.store}
}
func (u *memUnitOfWork) ChatHistoryRepository() contract.ChatHistoryRepository {
	return &memHistory{u.store}
}
func (u *memUnitOfWork) JournalSummaryRepository() contract.JournalSummaryRepository {
	return &memJournalSummaries{u.store}
}
func (u *memUnitOfWork) ChatSummaryRepository() contract.ChatSummaryRepository {
	return &memChatSummaries{u.store}
}
func (u *memUnitOfWork) UserProfileRepository() contract.UserProfileRepository {
	return &memProfiles{u.store}
}
func (u *memUnitOfWork) TherapistInsightRepository() contract.TherapistInsightRepository {
	return &memInsights{u.store}
}

// query applies filters, then ordering, then limits, whatever order the
// specifications were passed in.
func query[T any](items []*T, field func(*T, string) interface{}, specs ...specification.Specification) []*T {
	var orders []specification.OrderBy
	limit := -1

	out := make([]*T, 0, len(items))
	for _, item := range items {
		if matches(item, field, specs) {
			cp := *item
			out = append(out, &cp)
		}
	}

	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			orders = append(orders, s)
		case specification.Limit:
			limit = s.N
		}
	}
	for _, o := range orders {
		o := o
		sort.SliceStable(out, func(i, j int) bool {
			a, b := field(out[i], o.Field), field(out[j], o.Field)
			if o.Desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func matches[T any](item *T, field func(*T, string) interface{}, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			if field(item, "user_id") != s.UserID {
				return false
			}
		case specification.BySessionID:
			if field(item, "session_id") != s.SessionID {
				return false
			}
		case specification.ByWindow:
			if day(field(item, "start_date")) != s.StartDate.Format(specification.DateLayout) ||
				day(field(item, "end_date")) != s.EndDate.Format(specification.DateLayout) {
				return false
			}
		case specification.DateRange:
			d := day(field(item, s.Field))
			if d < s.From.Format(specification.DateLayout) || d > s.To.Format(specification.DateLayout) {
				return false
			}
		case specification.CreatedSince:
			if field(item, "created_at").(time.Time).Before(s.Since) {
				return false
			}
		}
	}
	return true
}

func day(v interface{}) string {
	return v.(time.Time).Format(specification.DateLayout)
}

func less(a, b interface{}) bool {
	switch x := a.(type) {
	case time.Time:
		return x.Before(b.(time.Time))
	case string:
		return x < b.(string)
	}
	return false
}

type memUsers struct{ s *memStore }

func userField(u *entity.User, f string) interface{} {
	switch f {
	case "id":
		return u.Id
	case "email":
		return u.Email
	}
	return u.CreatedAt
}

func (r *memUsers) CreateIfAbsent(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("users", user); err != nil {
		return err
	}
	for _, u := range r.s.users {
		if u.Id == user.Id {
			return nil
		}
	}
	cp := *user
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r *memUsers) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memUsers) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.users, userField, specs...), nil
}

type memJournals struct{ s *memStore }

func journalField(j *entity.JournalEntry, f string) interface{} {
	switch f {
	case "id":
		return j.Id
	case "user_id":
		return j.UserId
	case "journal_date":
		return j.JournalDate
	}
	return j.CreatedAt
}

func (r *memJournals) Create(ctx context.Context, journal *entity.JournalEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("journals", journal); err != nil {
		return err
	}
	journal.Id = uuid.New()
	cp := *journal
	r.s.journals = append(r.s.journals, &cp)
	return nil
}

func (r *memJournals) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalEntry, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memJournals) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.journals, journalField, specs...), nil
}

type memGoals struct{ s *memStore }

func goalField(g *entity.Goal, f string) interface{} {
	switch f {
	case "id":
		return g.Id
	case "user_id":
		return g.UserId
	}
	return g.CreatedAt
}

func (r *memGoals) Create(ctx context.Context, goal *entity.Goal) error {
	return r.CreateMany(ctx, []*entity.Goal{goal})
}

func (r *memGoals) CreateMany(ctx context.Context, goals []*entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range goals {
		if err := r.s.checkWrite("goals", g); err != nil {
			return err
		}
		g.Id = uuid.New()
		cp := *g
		r.s.goals = append(r.s.goals, &cp)
	}
	return nil
}

func (r *memGoals) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.goals, goalField, specs...), nil
}

type memSessions struct{ s *memStore }

func sessionField(c *entity.ChatSession, f string) interface{} {
	switch f {
	case "id", "session_id":
		return c.Id
	case "user_id":
		return c.UserId
	}
	return c.CreatedAt
}

func (r *memSessions) Create(ctx context.Context, session *entity.ChatSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("chat_sessions", session); err != nil {
		return err
	}
	session.Id = uuid.New()
	cp := *session
	r.s.sessions = append(r.s.sessions, &cp)
	return nil
}

func (r *memSessions) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memSessions) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.sessions, sessionField, specs...), nil
}

type memMessages struct{ s *memStore }

func messageField(m *entity.ChatMessage, f string) interface{} {
	switch f {
	case "id", "chat_id":
		return m.Id
	case "session_id":
		return m.SessionId
	case "user_id":
		return m.UserId
	}
	return m.CreatedAt
}

func (r *memMessages) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("chat_messages", message); err != nil {
		return err
	}
	message.Id = uuid.New()
	cp := *message
	r.s.messages = append(r.s.messages, &cp)
	return nil
}

func (r *memMessages) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messageReads++
	return query(r.s.messages, messageField, specs...), nil
}

type memHistory struct{ s *memStore }

func historyField(h *entity.ChatHistory, f string) interface{} {
	switch f {
	case "id":
		return h.Id
	case "user_id":
		return h.UserId
	}
	return h.CreatedAt
}

func (r *memHistory) Create(ctx context.Context, turn *entity.ChatHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("chat_history", turn); err != nil {
		return err
	}
	turn.Id = uuid.New()
	cp := *turn
	r.s.history = append(r.s.history, &cp)
	return nil
}

func (r *memHistory) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.history, historyField, specs...), nil
}

type memJournalSummaries struct{ s *memStore }

func journalSummaryField(j *entity.JournalSummary, f string) interface{} {
	switch f {
	case "id":
		return j.Id
	case "user_id":
		return j.UserId
	case "start_date":
		return j.StartDate
	case "end_date":
		return j.EndDate
	}
	return j.InsertedAt
}

func (r *memJournalSummaries) Upsert(ctx context.Context, summary *entity.JournalSummary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("journal_summaries", summary); err != nil {
		return err
	}
	for _, existing := range r.s.journalSummaries {
		if existing.UserId == summary.UserId &&
			existing.StartDate.Equal(summary.StartDate) && existing.EndDate.Equal(summary.EndDate) {
			existing.SummaryText = summary.SummaryText
			existing.InsertedAt = summary.InsertedAt
			*summary = *existing
			return nil
		}
	}
	summary.Id = uuid.New()
	cp := *summary
	r.s.journalSummaries = append(r.s.journalSummaries, &cp)
	return nil
}

func (r *memJournalSummaries) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JournalSummary, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memJournalSummaries) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JournalSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.journalSummaries, journalSummaryField, specs...), nil
}

type memChatSummaries struct{ s *memStore }

func chatSummaryField(c *entity.ChatSummary, f string) interface{} {
	switch f {
	case "id":
		return c.Id
	case "user_id":
		return c.UserId
	case "session_id":
		return c.SessionId
	}
	return c.InsertedAt
}

func (r *memChatSummaries) Upsert(ctx context.Context, summary *entity.ChatSummary) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("chat_summaries", summary); err != nil {
		return err
	}
	for _, existing := range r.s.chatSummaries {
		if existing.UserId == summary.UserId && existing.SessionId == summary.SessionId {
			existing.SummaryText = summary.SummaryText
			existing.InsertedAt = summary.InsertedAt
			*summary = *existing
			return nil
		}
	}
	summary.Id = uuid.New()
	cp := *summary
	r.s.chatSummaries = append(r.s.chatSummaries, &cp)
	return nil
}

func (r *memChatSummaries) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSummary, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *memChatSummaries) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.chatSummaries, chatSummaryField, specs...), nil
}

type memProfiles struct{ s *memStore }

func (r *memProfiles) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("user_profiles", profile); err != nil {
		return err
	}
	cp := *profile
	r.s.profiles[profile.UserId] = &cp
	return nil
}

func (r *memProfiles) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type memInsights struct{ s *memStore }

func insightField(i *entity.TherapistInsight, f string) interface{} {
	switch f {
	case "id":
		return i.Id
	case "user_id":
		return i.UserId
	}
	return i.CreatedAt
}

func (r *memInsights) Create(ctx context.Context, insight *entity.TherapistInsight) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkWrite("therapist_insights", insight); err != nil {
		return err
	}
	insight.Id = uuid.New()
	cp := *insight
	r.s.insights = append(r.s.insights, &cp)
	return nil
}

func (r *memInsights) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TherapistInsight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := query(r.s.insights, insightField, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

type completerCall struct {
	persona   string
	history   []llm.Message
	maxTokens int
	options   *llm.Options
}

// fakeCompleter answers with replies in order, repeating the last one.
type fakeCompleter struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []completerCall
}

func (f *fakeCompleter) Complete(ctx context.Context, persona string, history []llm.Message, maxTokens int, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, completerCall{
		persona:   persona,
		history:   append([]llm.Message(nil), history...),
		maxTokens: maxTokens,
		options:   llm.ApplyOptions(opts...),
	})
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "ok", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeEvents struct {
	mu    sync.Mutex
	types []string
}

func (f *fakeEvents) Emit(ctx context.Context, eventType string, data map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, eventType)
}

type fakeEventPublisher struct {
	published []events.Event
	err       error
}

func (f *fakeEventPublisher) Publish(ctx context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return f.err
}

type fakeJobPublisher struct {
	mu       sync.Mutex
	payloads []interface{}
	err      error
}

func (f *fakeJobPublisher) Publish(ctx context.Context, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

// stepClock returns a time that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(step)
		return t
	}
}

func date(s string) time.Time {
	t, err := time.Parse(specification.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
