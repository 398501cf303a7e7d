package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lodge-registration/internal/domain"
	"github.com/spec-kit/lodge-registration/internal/events"
	apperrors "github.com/spec-kit/lodge-registration/pkg/util"
)

type fakeApplicationRepo struct {
	mu   sync.Mutex
	seq  int
	apps map[string]*domain.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[string]*domain.Application)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.ReferenceNumber == app.ReferenceNumber {
			return &pgconn.PgError{Code: "23505", ConstraintName: "applications_reference_number_key"}
		}
	}
	r.seq++
	app.ID = fmt.Sprintf("app-%d", r.seq)
	now := time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	app.CreatedAt = now
	app.UpdatedAt = now
	stored := *app
	r.apps[app.ID] = &stored
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByReference(_ context.Context, reference string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ReferenceNumber == reference {
			copied := *app
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeApplicationRepo) ListAll(_ context.Context) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Application
	for _, app := range r.apps {
		result = append(result, *app)
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeApplicationRepo) ListByEmail(_ context.Context, email string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Application
	for _, app := range r.apps {
		if app.Email == email {
			result = append(result, *app)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	app.Status = status
	app.UpdatedAt = time.Now()
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) CountByStatus(_ context.Context) (*domain.ApplicationStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &domain.ApplicationStats{}
	for _, app := range r.apps {
		stats.Total++
		switch app.Status {
		case domain.ApplicationStatusPending:
			stats.Pending++
		case domain.ApplicationStatusApproved:
			stats.Approved++
		case domain.ApplicationStatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func sortNewestFirst(apps []domain.Application) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
}

type memoryStatsCache struct {
	mu            sync.Mutex
	stats         *domain.ApplicationStats
	invalidations int
}

func (c *memoryStatsCache) Get(_ context.Context) (*domain.ApplicationStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		return nil, false
	}
	copied := *c.stats
	return &copied, true
}

func (c *memoryStatsCache) Set(_ context.Context, stats *domain.ApplicationStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *stats
	c.stats = &copied
}

func (c *memoryStatsCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	c.invalidations++
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var matched []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func newTestApplicationService() (*ApplicationService, *fakeApplicationRepo, *memoryStatsCache, *recordingDispatcher) {
	repo := newFakeApplicationRepo()
	cache := &memoryStatsCache{}
	dispatcher := &recordingDispatcher{}
	svc := NewApplicationService(ApplicationDependencies{
		ApplicationRepo: repo,
		StatsCache:      cache,
		Dispatcher:      dispatcher,
	})
	return svc, repo, cache, dispatcher
}

func validSubmission(fullName, email string) ApplicationCreateInput {
	return ApplicationCreateInput{
		FullName:      fullName,
		Email:         email,
		MobileNumber:  "08030000000",
		CallUpNumber:  "FCT/24A/1234",
		StateOfOrigin: "Kano",
		LGA:           "Nassarawa",
		Gender:        "Female",
		DateOfBirth:   "1999-04-12",
		MaritalStatus: "Single",
		Institution:   "Bayero University Kano",
		BloodGroup:    "O+",
		Genotype:      "AA",
		Emergency: domain.EmergencyContact{
			Name:    "Hauwa Yusuf",
			Address: "12 Zoo Road, Kano",
			Phone1:  "08031111111",
		},
		NextOfKin: domain.NextOfKin{
			Name:    "Ibrahim Yusuf",
			Address: "12 Zoo Road, Kano",
			Phone1:  "08032222222",
		},
	}
}

var referencePattern = regexp.MustCompile(`^MCAN-\d{6}-[A-Z0-9]{6}$`)

func TestCreateForcesPending(t *testing.T) {
	ctx := context.Background()
	svc, _, _, dispatcher := newTestApplicationService()

	app, err := svc.Create(ctx, validSubmission("Amina Yusuf", "amina@example.com"))
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Regexp(t, referencePattern, app.ReferenceNumber)
	assert.NotEmpty(t, app.ID)

	submitted := dispatcher.byType(events.EventApplicationSubmitted)
	require.Len(t, submitted, 1)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestApplicationService()

	t.Run("MissingFields", func(t *testing.T) {
		input := validSubmission("", "")
		_, err := svc.Create(ctx, input)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("PassportPhotoNotDataURI", func(t *testing.T) {
		input := validSubmission("Amina Yusuf", "amina@example.com")
		photo := "https://example.com/photo.jpg"
		input.PassportPhoto = &photo
		_, err := svc.Create(ctx, input)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("PassportPhotoDataURI", func(t *testing.T) {
		input := validSubmission("Amina Yusuf", "amina2@example.com")
		photo := "data:image/png;base64,iVBORw0KGgo="
		input.PassportPhoto = &photo
		app, err := svc.Create(ctx, input)
		require.NoError(t, err)
		require.NotNil(t, app.PassportPhoto)
	})
}

func TestCreateDuplicateReferenceConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestApplicationService()

	first := validSubmission("Amina Yusuf", "amina@example.com")
	first.ReferenceNumber = "MCAN-123456-ABCDEF"
	_, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validSubmission("Binta Sani", "binta@example.com")
	second.ReferenceNumber = "MCAN-123456-ABCDEF"
	_, err = svc.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestGetByReference(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestApplicationService()

	created, err := svc.Create(ctx, validSubmission("Amina Yusuf", "amina@example.com"))
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		fetched, err := svc.GetByReference(ctx, created.ReferenceNumber)
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, created.FullName, fetched.FullName)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.GetByReference(ctx, "MCAN-000000-ZZZZZZ")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})

	t.Run("EmptyReference", func(t *testing.T) {
		_, err := svc.GetByReference(ctx, "  ")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})
}

func TestListByEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestApplicationService()

	_, err := svc.Create(ctx, validSubmission("Amina Yusuf", "amina@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validSubmission("Amina Yusuf", "amina@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validSubmission("Binta Sani", "binta@example.com"))
	require.NoError(t, err)

	t.Run("SharedEmailReturnsAll", func(t *testing.T) {
		apps, err := svc.ListByEmail(ctx, "amina@example.com")
		require.NoError(t, err)
		require.Len(t, apps, 2)
		// newest first
		assert.True(t, !apps[0].CreatedAt.Before(apps[1].CreatedAt))
	})

	t.Run("CaseInsensitiveEmail", func(t *testing.T) {
		apps, err := svc.ListByEmail(ctx, "AMINA@example.com")
		require.NoError(t, err)
		assert.Len(t, apps, 2)
	})

	t.Run("NoMatches", func(t *testing.T) {
		apps, err := svc.ListByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, apps)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _, dispatcher := newTestApplicationService()

	created, err := svc.Create(ctx, validSubmission("Amina Yusuf", "amina@example.com"))
	require.NoError(t, err)

	// every known status is reachable from every other, including moves away
	// from Approved/Rejected
	sequence := []domain.ApplicationStatus{
		domain.ApplicationStatusApproved,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusPending,
		domain.ApplicationStatusRejected,
		domain.ApplicationStatusApproved,
	}
	for _, status := range sequence {
		updated, err := svc.UpdateStatus(ctx, created.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)

		fetched, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, status, fetched.Status)
	}

	changes := dispatcher.byType(events.EventApplicationStatusChanged)
	assert.Len(t, changes, len(sequence))

	t.Run("UnknownStatusRejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, created.ID, domain.ApplicationStatus("Accepted"))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("MissingRecord", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, "app-999", domain.ApplicationStatusApproved)
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
	})

	t.Run("SameStatusNoEvent", func(t *testing.T) {
		before := len(dispatcher.byType(events.EventApplicationStatusChanged))
		_, err := svc.UpdateStatus(ctx, created.ID, domain.ApplicationStatusApproved)
		require.NoError(t, err)
		after := len(dispatcher.byType(events.EventApplicationStatusChanged))
		assert.Equal(t, before, after)
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, _, cache, _ := newTestApplicationService()

	var ids []string
	for i := 0; i < 5; i++ {
		app, err := svc.Create(ctx, validSubmission("Amina Yusuf", fmt.Sprintf("a%d@example.com", i)))
		require.NoError(t, err)
		ids = append(ids, app.ID)
	}
	_, err := svc.UpdateStatus(ctx, ids[0], domain.ApplicationStatusApproved)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, ids[1], domain.ApplicationStatusApproved)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, ids[2], domain.ApplicationStatusRejected)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 2, stats.Approved)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, stats.Total, stats.Pending+stats.Approved+stats.Rejected)

	t.Run("ServedFromCache", func(t *testing.T) {
		cached, ok := cache.Get(ctx)
		require.True(t, ok)
		assert.Equal(t, stats.Total, cached.Total)

		again, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, stats, again)
	})

	t.Run("InvalidatedOnWrite", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, ids[3], domain.ApplicationStatusApproved)
		require.NoError(t, err)
		_, ok := cache.Get(ctx)
		assert.False(t, ok)

		fresh, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, fresh.Approved)
		assert.Equal(t, fresh.Total, fresh.Pending+fresh.Approved+fresh.Rejected)
	})
}

func TestRegistrationReviewScenario(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestApplicationService()

	submitted, err := svc.Create(ctx, validSubmission("Amina Yusuf", "amina@example.com"))
	require.NoError(t, err)
	require.Regexp(t, referencePattern, submitted.ReferenceNumber)
	require.Equal(t, domain.ApplicationStatusPending, submitted.Status)

	approved, err := svc.UpdateStatus(ctx, submitted.ID, domain.ApplicationStatusApproved)
	require.NoError(t, err)
	require.Equal(t, domain.ApplicationStatusApproved, approved.Status)

	byRef, err := svc.GetByReference(ctx, submitted.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, byRef.Status)

	mine, err := svc.ListByEmail(ctx, "amina@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, submitted.ReferenceNumber, mine[0].ReferenceNumber)
}
