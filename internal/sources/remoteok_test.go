package sources

import (
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_RemoteOK_Fetch_ShouldSkipLegalNoticeAndFilter(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", urlEquals(remoteOKEndpoint)).Return(fileResponse("testdata/remoteok.json"))

	jobs, err := NewRemoteOK(newTestSettings(mockClient)).Fetch(context.Background())

	assert.NoError(err)
	assert.Equal([]entities.JobRecord{{
		Title:      "Platform Engineer",
		Company:    "Containerly",
		Link:       "https://remoteok.com/remote-jobs/101",
		Portal:     "RemoteOK",
		PostedDate: "2024-03-08T12:00:00+00:00",
		DaysAgo:    2,
	}}, jobs)
}
