package repositories

import (
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestDbContext(t *testing.T) *DbContext {
	t.Helper()

	dbContext, err := NewDbContext(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())
	t.Cleanup(func() { _ = dbContext.Close() })

	return dbContext
}

func seenJob(title string, daysAgo int) entities.SeenJob {
	return entities.JobRecord{
		Title:      title,
		Company:    "Acme",
		Link:       "https://acme.io/" + title,
		Portal:     "Remotive",
		PostedDate: "Recently",
		DaysAgo:    daysAgo,
	}.ToSeenJob()
}

func Test_SeenJobs_WhenInsertedTwice_ShouldKeepOneEntry(t *testing.T) {
	ctx := context.Background()
	repo := NewSeenJobsRepository(newTestDbContext(t).DB)
	job := seenJob("java-developer", 2)

	exists, err := repo.Exists(ctx, job.JobID)
	require.NoError(t, err)
	assert.False(t, exists)

	inserted, err := repo.Insert(ctx, job)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(ctx, job)
	require.NoError(t, err)
	assert.False(t, inserted)

	exists, err = repo.Exists(ctx, job.JobID)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func Test_SeenJobs_Insert_ShouldAssignNotificationTime(t *testing.T) {
	ctx := context.Background()
	repo := NewSeenJobsRepository(newTestDbContext(t).DB)
	before := time.Now().Add(-time.Second)

	_, err := repo.Insert(ctx, seenJob("go-developer", 1))
	require.NoError(t, err)

	jobs, err := repo.ListAll(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].NotifiedAt.After(before))
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, 1, jobs[0].DaysAgo)
}

func Test_SeenJobs_ListAll_ShouldReturnNewestFirstAndRespectLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewSeenJobsRepository(newTestDbContext(t).DB)

	for _, title := range []string{"first", "second", "third"} {
		_, err := repo.Insert(ctx, seenJob(title, 1))
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	jobs, err := repo.ListAll(ctx, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "third", jobs[0].Title)
	assert.Equal(t, "first", jobs[2].Title)

	jobs, err = repo.ListAll(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func Test_SeenJobs_WhenReadDuringWrites_ShouldNotFail(t *testing.T) {
	ctx := context.Background()
	repo := NewSeenJobsRepository(newTestDbContext(t).DB)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, err := repo.Insert(ctx, seenJob("job-"+time.Now().Format(time.RFC3339Nano), i))
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, err := repo.ListAll(ctx, 10)
			assert.NoError(t, err)
		}
	}()
	wg.Wait()
}

func Test_SeenJobs_DataSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jobs.db")
	job := seenJob("durable", 0)

	first, err := NewDbContext(path)
	require.NoError(t, err)
	require.NoError(t, first.Migrate())
	_, err = NewSeenJobsRepository(first.DB).Insert(ctx, job)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewDbContext(path)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.Migrate())

	exists, err := NewSeenJobsRepository(second.DB).Exists(ctx, job.JobID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func Test_Data_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewDataRepository(newTestDbContext(t).DB)

	value, err := repo.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, repo.Save(ctx, "last_cycle", []byte(`{"new":1}`)))
	require.NoError(t, repo.Save(ctx, "last_cycle", []byte(`{"new":2}`)))

	value, err = repo.Load(ctx, "last_cycle")
	require.NoError(t, err)
	assert.Equal(t, `{"new":2}`, string(value))
}

func Test_WithPragmas(t *testing.T) {
	assert.Equal(t, "jobs.db?"+sqlitePragmas, withPragmas("jobs.db"))
	assert.Equal(t, "jobs.db?mode=rwc&"+sqlitePragmas, withPragmas("jobs.db?mode=rwc"))
	assert.Equal(t, "jobs.db?_pragma=foreign_keys(1)", withPragmas("jobs.db?_pragma=foreign_keys(1)"))
}
