package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/maxaizer/job-radar/internal/events"
	"github.com/maxaizer/job-radar/internal/filter"
	"github.com/maxaizer/job-radar/internal/repositories"
	"github.com/maxaizer/job-radar/internal/sources"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	name   string
	jobs   []entities.JobRecord
	err    error
	panics bool
	calls  int
}

func (f *fakeSource) Name() string {
	return f.name
}

func (f *fakeSource) Fetch(_ context.Context) ([]entities.JobRecord, error) {
	f.calls++
	if f.panics {
		panic("unexpected markup")
	}
	return f.jobs, f.err
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, job entities.JobRecord) error {
	return m.Called(ctx, job).Error(0)
}

type mockSeenJobs struct {
	mock.Mock
}

func (m *mockSeenJobs) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockSeenJobs) Insert(ctx context.Context, job entities.SeenJob) (bool, error) {
	args := m.Called(ctx, job)
	return args.Bool(0), args.Error(1)
}

type staticHTTPClient struct {
	body string
}

func (s staticHTTPClient) Do(_ *http.Request) (*http.Response, error) {
	return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(s.body))}, nil
}

func newTestStore(t *testing.T) *repositories.SeenJobs {
	t.Helper()

	dbContext, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })

	return repositories.NewSeenJobsRepository(dbContext.DB)
}

func newRemotive(body string) sources.Source {
	client := sources.NewClient(time.Second)
	client.SetHTTPClient(staticHTTPClient{body: body})

	return sources.NewRemotive(sources.Settings{
		Skills:  filter.ParseSkills("java, spring"),
		Recency: filter.Recency{MaxDaysOld: 7},
		Client:  client,
		Now:     func() time.Time { return testNow },
	})
}

func job(title string, daysAgo int) entities.JobRecord {
	return entities.JobRecord{
		Title:      title,
		Company:    "Acme",
		Link:       "https://acme.io/jobs/" + strings.ReplaceAll(title, " ", "-"),
		Portal:     "Fake",
		PostedDate: "Recently",
		DaysAgo:    daysAgo,
	}
}

func newTestAggregator(t *testing.T, sourceList []sources.Source, seen seenJobRepository,
	notifier jobNotifier) *Aggregator {

	aggregator, err := NewAggregator(EventBus.New(), sourceList, seen, notifier,
		AggregatorOptions{SortByRecency: true})
	require.NoError(t, err)
	return aggregator
}

func Test_Aggregator_WhenOneOfTwoRecordsMatches_ShouldStoreAndNotifyOnce(t *testing.T) {

	assert := assert.New(t)

	payload := `{"jobs": [
		{"title": "Java Engineer", "company_name": "Acme", "url": "https://remotive.com/1",
		 "publication_date": "2024-03-08T00:00:00", "description": "", "tags": []},
		{"title": "Florist", "company_name": "Petals", "url": "https://remotive.com/2",
		 "publication_date": "2024-03-08T00:00:00", "description": "", "tags": []}
	]}`

	store := newTestStore(t)
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(j entities.JobRecord) bool {
		return j.Title == "Java Engineer"
	})).Return(nil).Once()

	aggregator := newTestAggregator(t, []sources.Source{newRemotive(payload)}, store, notifier)

	report, err := aggregator.RunCycle(context.Background())

	assert.NoError(err)
	assert.Equal(1, report.Examined)
	assert.Equal(1, report.New)
	count, err := store.Count(context.Background())
	assert.NoError(err)
	assert.Equal(int64(1), count)
	notifier.AssertExpectations(t)
}

func Test_Aggregator_WhenRecordOneDayTooOld_ShouldNotReachStore(t *testing.T) {

	assert := assert.New(t)

	// eight days before testNow with MaxDaysOld = 7
	payload := `{"jobs": [
		{"title": "Java Engineer", "company_name": "Acme", "url": "https://remotive.com/1",
		 "publication_date": "2024-03-02T12:00:00", "description": "", "tags": []}
	]}`

	store := newTestStore(t)
	notifier := &mockNotifier{}

	report, err := newTestAggregator(t, []sources.Source{newRemotive(payload)}, store, notifier).
		RunCycle(context.Background())

	assert.NoError(err)
	assert.Zero(report.Examined)
	count, _ := store.Count(context.Background())
	assert.Zero(count)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func Test_Aggregator_WhenSourcesFailOrPanic_ShouldCompleteWithOthers(t *testing.T) {

	assert := assert.New(t)

	failing := &fakeSource{name: "Failing", err: errors.New("503")}
	panicking := &fakeSource{name: "Panicking", panics: true}
	working := &fakeSource{name: "Working", jobs: []entities.JobRecord{job("Java Dev", 1)}}

	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	report, err := newTestAggregator(t, []sources.Source{failing, panicking, working}, newTestStore(t), notifier).
		RunCycle(context.Background())

	assert.NoError(err)
	assert.Equal([]string{"Failing", "Panicking"}, report.FailedSources)
	assert.Equal(1, report.New)
	assert.Equal(1, working.calls)
}

func Test_Aggregator_WhenSameRecordInTwoCycles_ShouldNotifyOnce(t *testing.T) {

	assert := assert.New(t)

	source := &fakeSource{name: "Fake", jobs: []entities.JobRecord{job("Java Dev", 1)}}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	aggregator := newTestAggregator(t, []sources.Source{source}, newTestStore(t), notifier)

	first, err := aggregator.RunCycle(context.Background())
	assert.NoError(err)
	second, err := aggregator.RunCycle(context.Background())
	assert.NoError(err)

	assert.Equal(1, first.New)
	assert.Equal(1, second.Examined)
	assert.Zero(second.New)
	assert.Empty(second.NewJobs)
	notifier.AssertNumberOfCalls(t, "Notify", 1)
}

func Test_Aggregator_WhenNotifyFails_ShouldStillRecordJob(t *testing.T) {

	assert := assert.New(t)

	source := &fakeSource{name: "Fake", jobs: []entities.JobRecord{job("Java Dev", 1)}}
	store := newTestStore(t)
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("telegram is down"))

	aggregator := newTestAggregator(t, []sources.Source{source}, store, notifier)

	report, err := aggregator.RunCycle(context.Background())
	assert.NoError(err)
	assert.Equal(1, report.New)

	_, err = aggregator.RunCycle(context.Background())
	assert.NoError(err)

	notifier.AssertNumberOfCalls(t, "Notify", 1)
	count, _ := store.Count(context.Background())
	assert.Equal(int64(1), count)
}

func Test_Aggregator_WhenStoreFails_ShouldAbortCycle(t *testing.T) {

	assert := assert.New(t)

	source := &fakeSource{name: "Fake", jobs: []entities.JobRecord{job("Java Dev", 1), job("Spring Dev", 2)}}
	seen := &mockSeenJobs{}
	seen.On("Exists", mock.Anything, mock.Anything).Return(false, errors.New("database is locked")).Once()
	notifier := &mockNotifier{}

	bus := EventBus.New()
	var published *events.CycleCompleted
	require.NoError(t, bus.Subscribe(events.CycleCompletedTopic, func(event events.CycleCompleted) {
		published = &event
	}))

	aggregator, err := NewAggregator(bus, []sources.Source{source}, seen, notifier, AggregatorOptions{})
	require.NoError(t, err)

	report, err := aggregator.RunCycle(context.Background())

	assert.ErrorContains(err, "database is locked")
	assert.Nil(report)
	require.NotNil(t, published)
	assert.Error(published.Err)
	assert.Equal(1, published.Report.Examined)
	seen.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func Test_Aggregator_WhenInsertConflicts_ShouldNotNotify(t *testing.T) {

	source := &fakeSource{name: "Fake", jobs: []entities.JobRecord{job("Java Dev", 1)}}
	seen := &mockSeenJobs{}
	seen.On("Exists", mock.Anything, mock.Anything).Return(false, nil)
	seen.On("Insert", mock.Anything, mock.Anything).Return(false, nil)
	notifier := &mockNotifier{}

	report, err := newTestAggregator(t, []sources.Source{source}, seen, notifier).RunCycle(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, report.New)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func Test_Aggregator_WhenSortByRecency_ShouldOrderByDaysAgoStably(t *testing.T) {

	assert := assert.New(t)

	first := &fakeSource{name: "First", jobs: []entities.JobRecord{job("Java A", 5), job("Java B", 1)}}
	second := &fakeSource{name: "Second", jobs: []entities.JobRecord{job("Java C", 1), job("Java D", 0)}}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	report, err := newTestAggregator(t, []sources.Source{first, second}, newTestStore(t), notifier).
		RunCycle(context.Background())

	assert.NoError(err)
	titles := make([]string, 0, len(report.Jobs))
	for _, j := range report.Jobs {
		titles = append(titles, j.Title)
	}
	assert.Equal([]string{"Java D", "Java B", "Java C", "Java A"}, titles)
	assert.Equal(titles, func() []string {
		var newTitles []string
		for _, j := range report.NewJobs {
			newTitles = append(newTitles, j.Title)
		}
		return newTitles
	}())
}

func Test_Aggregator_WhenSortDisabled_ShouldKeepSourceOrder(t *testing.T) {

	first := &fakeSource{name: "First", jobs: []entities.JobRecord{job("Java A", 5)}}
	second := &fakeSource{name: "Second", jobs: []entities.JobRecord{job("Java B", 1)}}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	aggregator, err := NewAggregator(EventBus.New(), []sources.Source{first, second}, newTestStore(t), notifier,
		AggregatorOptions{SortByRecency: false})
	require.NoError(t, err)

	report, err := aggregator.RunCycle(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Java A", report.Jobs[0].Title)
	assert.Equal(t, "Java B", report.Jobs[1].Title)
}

func Test_Aggregator_WhenCancelledDuringPause_ShouldStop(t *testing.T) {

	first := &fakeSource{name: "First"}
	second := &fakeSource{name: "Second"}

	aggregator, err := NewAggregator(EventBus.New(), []sources.Source{first, second}, &mockSeenJobs{},
		&mockNotifier{}, AggregatorOptions{Pause: time.Hour})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = aggregator.RunCycle(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls)
}

func Test_Aggregator_ShouldPublishJobFoundForNewJobs(t *testing.T) {

	source := &fakeSource{name: "Fake", jobs: []entities.JobRecord{job("Java A", 1), job("Java B", 2)}}
	notifier := &mockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil)

	bus := EventBus.New()
	var found []string
	require.NoError(t, bus.Subscribe(events.JobFoundTopic, func(event events.JobFound) {
		found = append(found, event.Job.Title)
	}))

	aggregator, err := NewAggregator(bus, []sources.Source{source}, newTestStore(t), notifier,
		AggregatorOptions{SortByRecency: true})
	require.NoError(t, err)

	report, err := aggregator.RunCycle(context.Background())

	assert.NoError(t, err)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, []string{"Java A", "Java B"}, found)
}

func Test_NewAggregator_WhenDependencyMissing_ShouldFail(t *testing.T) {

	_, err := NewAggregator(nil, nil, &mockSeenJobs{}, &mockNotifier{}, AggregatorOptions{})
	assert.Error(t, err)

	_, err = NewAggregator(EventBus.New(), nil, nil, &mockNotifier{}, AggregatorOptions{})
	assert.Error(t, err)

	_, err = NewAggregator(EventBus.New(), nil, &mockSeenJobs{}, nil, AggregatorOptions{})
	assert.Error(t, err)
}
