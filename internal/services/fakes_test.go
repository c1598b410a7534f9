package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[int64]*domain.Event
	nextID    int64
	createErr error // if set, Create returns this error
	err       error // if set, every read returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[int64]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.UserID == e.UserID && existing.EventName == e.EventName && existing.EventStartDate.Equal(e.EventStartDate) {
			return domain.ErrDuplicateEvent
		}
	}
	e.ID = f.nextID
	f.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) FindDuplicate(ctx context.Context, userID int64, name string, start time.Time) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.UserID == userID && e.EventName == name && e.EventStartDate.Equal(start) {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) sorted() []*domain.Event {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sorted(), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id int64, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.EventName != nil {
		e.EventName = *upd.EventName
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.EventStartDate != nil {
		e.EventStartDate = *upd.EventStartDate
	}
	if upd.EventEndDate != nil {
		e.EventEndDate = *upd.EventEndDate
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.RegistrationFee != nil {
		e.RegistrationFee = *upd.RegistrationFee
	}
	if upd.Trending != nil {
		e.Trending = *upd.Trending
	}
	if upd.EventType != nil {
		e.EventType = *upd.EventType
	}
	if upd.Image != nil {
		e.Image = upd.Image
	}
	if upd.Email != nil {
		e.Email = *upd.Email
	}
	if upd.Phone != nil {
		e.Phone = *upd.Phone
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.Approval != nil {
		e.Approval = *upd.Approval
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) Search(ctx context.Context, filter domain.EventSearchFilter) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.Event{}
	for _, e := range f.sorted() {
		if filter.Location != "" && e.Location != filter.Location {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(e.EventName), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.StartDate != nil && filter.EndDate != nil {
			if e.EventStartDate.Before(*filter.StartDate) || e.EventStartDate.After(*filter.EndDate) {
				continue
			}
		}
		if filter.ApprovedOnly && e.Approval != domain.ApprovalApproved {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) FindFrom(ctx context.Context, today time.Time, keyword string, trendingOnly, strictlyUpcoming, approvedOnly bool) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	kw := strings.ToLower(keyword)
	out := []*domain.Event{}
	for _, e := range f.sorted() {
		if e.EventStartDate.Before(today) {
			continue
		}
		if kw != "" &&
			!strings.Contains(strings.ToLower(e.EventName), kw) &&
			!strings.Contains(strings.ToLower(e.Location), kw) &&
			!strings.Contains(strings.ToLower(e.EventType), kw) {
			continue
		}
		if trendingOnly && !e.Trending {
			continue
		}
		if strictlyUpcoming && !e.EventStartDate.After(today) {
			continue
		}
		if approvedOnly && e.Approval != domain.ApprovalApproved {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventStartDate.After(out[j].EventStartDate) })
	return out, nil
}

func (f *fakeEventRepo) ListByTimeClass(ctx context.Context, class domain.TimeClass, now time.Time, approvedOnly bool) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.Event{}
	for _, e := range f.sorted() {
		switch class {
		case domain.TimeClassPast:
			if !e.EventStartDate.Before(now) || !e.EventEndDate.Before(now) {
				continue
			}
		case domain.TimeClassUpcoming:
			if !e.EventStartDate.After(now) || !e.EventEndDate.After(now) {
				continue
			}
		case domain.TimeClassTrending:
			if !e.Trending || e.EventStartDate.Before(now) || e.EventEndDate.Before(now) {
				continue
			}
		case domain.TimeClassAll:
		default:
			return nil, domain.ErrInvalidInput
		}
		if approvedOnly && e.Approval != domain.ApprovalApproved {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListByCreator(ctx context.Context, userID int64) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.Event{}
	for _, e := range f.sorted() {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateContactInfo(ctx context.Context, userID int64, email, phone *string) error {
	for _, e := range f.byID {
		if e.UserID != userID {
			continue
		}
		if email != nil {
			e.Email = *email
		}
		if phone != nil {
			e.Phone = *phone
		}
	}
	return nil
}

func (f *fakeEventRepo) CountByTypeSince(ctx context.Context, since time.Time) (int, map[string]int, error) {
	if f.err != nil {
		return 0, nil, f.err
	}
	total := 0
	byType := make(map[string]int)
	for _, e := range f.byID {
		if e.CreatedAt.Before(since) {
			continue
		}
		byType[e.EventType]++
		total++
	}
	return total, byType, nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID      map[int64]*domain.User
	nextID    int64
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (f *fakeUserRepo) addUser(u *domain.User) *domain.User {
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) ListAll(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Email != nil {
		for _, other := range f.byID {
			if other.ID != id && strings.EqualFold(other.Email, *upd.Email) {
				return nil, domain.ErrDuplicateEmail
			}
		}
		u.Email = *upd.Email
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.Image != nil {
		u.Image = upd.Image
	}
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) CountCreatedBetween(ctx context.Context, start, end time.Time) (int, error) {
	count := 0
	for _, u := range f.byID {
		if !u.CreatedAt.Before(start) && !u.CreatedAt.After(end) {
			count++
		}
	}
	return count, nil
}

// fakeUserEventRepo is an in-memory UserEventRepository for tests. Joined
// reads resolve against the user and event fakes it is built with.
type fakeUserEventRepo struct {
	regs      []*domain.UserEvent
	nextID    int64
	users     *fakeUserRepo
	events    *fakeEventRepo
	createErr error
}

func newFakeUserEventRepo(users *fakeUserRepo, events *fakeEventRepo) *fakeUserEventRepo {
	return &fakeUserEventRepo{
		nextID: 1,
		users:  users,
		events: events,
	}
}

func (f *fakeUserEventRepo) Create(ctx context.Context, reg *domain.UserEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	reg.ID = f.nextID
	f.nextID++
	f.regs = append(f.regs, reg)
	return nil
}

func (f *fakeUserEventRepo) GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*domain.UserEvent, error) {
	for _, reg := range f.regs {
		if reg.UserID == userID && reg.EventID == eventID {
			return reg, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserEventRepo) ListEventIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for _, reg := range f.regs {
		if reg.UserID == userID {
			ids = append(ids, reg.EventID)
		}
	}
	return ids, nil
}

func (f *fakeUserEventRepo) ListUsersByEvent(ctx context.Context, eventID int64) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, reg := range f.regs {
		if reg.EventID != eventID {
			continue
		}
		if u, ok := f.users.byID[reg.UserID]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserEventRepo) ListEventsByUser(ctx context.Context, userID int64) ([]*domain.Event, error) {
	out := []*domain.Event{}
	for _, reg := range f.regs {
		if reg.UserID != userID {
			continue
		}
		if e, ok := f.events.byID[reg.EventID]; ok {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventStartDate.After(out[j].EventStartDate) })
	return out, nil
}

// fakeHasher is a PasswordHasher that prefixes instead of hashing.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Compare(hash, password string) error {
	if hash == "hashed:"+password {
		return nil
	}
	return fmt.Errorf("password mismatch")
}

// fakeTokenManager implements TokenIssuer and TokenVerifier with
// deterministic tokens.
type fakeTokenManager struct {
	resetTokens map[string]int64
	issueErr    error
}

func newFakeTokenManager() *fakeTokenManager {
	return &fakeTokenManager{resetTokens: make(map[string]int64)}
}

func (f *fakeTokenManager) Issue(userID int64, email, role string, expiry time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

func (f *fakeTokenManager) IssueResetToken(userID int64, expiry time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	token := fmt.Sprintf("reset-%d", userID)
	f.resetTokens[token] = userID
	return token, nil
}

func (f *fakeTokenManager) Verify(token string) (*domain.TokenClaims, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeTokenManager) VerifyResetToken(token string) (int64, error) {
	if id, ok := f.resetTokens[token]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("invalid token")
}

// fakeEmailService records sends; failures are injectable per method.
type fakeEmailService struct {
	welcomeErr  error
	resetErr    error
	sentWelcome []*domain.WelcomeEmailData
	sentResets  []*domain.PasswordResetEmailData
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{}
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.welcomeErr != nil {
		return f.welcomeErr
	}
	f.sentWelcome = append(f.sentWelcome, data)
	return nil
}

func (f *fakeEmailService) SendPasswordReset(ctx context.Context, data *domain.PasswordResetEmailData) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.sentResets = append(f.sentResets, data)
	return nil
}

// fixedClock returns a clock pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
