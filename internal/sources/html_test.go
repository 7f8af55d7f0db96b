package sources

import (
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"io"
	"net/http"
	"strings"
	"testing"
)

func Test_LinkedIn_Fetch_ShouldParseCards(t *testing.T) {

	assert := assert.New(t)

	settings := newTestSettings(nil)
	source := NewLinkedIn(settings)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", urlEquals(source.searchURL)).Return(fileResponse("testdata/linkedin.html"))
	settings.Client.SetHTTPClient(mockClient)

	jobs, err := source.Fetch(context.Background())

	assert.NoError(err)
	assert.Contains(source.searchURL, "keywords=java+OR+spring+OR+docker")
	assert.Equal([]entities.JobRecord{
		{
			Title:      "Java Backend Developer",
			Company:    "Contoso",
			Link:       "https://www.linkedin.com/jobs/view/1001",
			Portal:     "LinkedIn",
			PostedDate: "2024-03-07",
			DaysAgo:    3,
		},
		{
			Title:      "Kubernetes SRE",
			Company:    entities.UnknownCompany,
			Link:       "https://www.linkedin.com/jobs/view/1004",
			Portal:     "LinkedIn",
			PostedDate: recentlyPosted,
			DaysAgo:    1,
		},
	}, jobs)
}

func Test_Glassdoor_Fetch_ShouldResolveRelativeLinks(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(fileResponse("testdata/glassdoor.html"))

	jobs, err := NewGlassdoor(newTestSettings(mockClient)).Fetch(context.Background())

	assert.NoError(err)
	assert.Len(jobs, 2)
	assert.Equal("https://www.glassdoor.com/partner/jobListing.htm?jobListingId=77", jobs[0].Link)
	assert.Equal("Initech", jobs[0].Company)
	assert.Equal(3, jobs[0].DaysAgo)
	assert.Equal(recentlyPosted, jobs[0].PostedDate)

	assert.Equal("Spring Developer", jobs[1].Title)
	assert.Empty(jobs[1].Link)
	assert.Equal(entities.UnknownCompany, jobs[1].Company)
}

func Test_Monster_Fetch_ShouldReadRelativeDates(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(fileResponse("testdata/monster.html"))

	jobs, err := NewMonster(newTestSettings(mockClient)).Fetch(context.Background())

	assert.NoError(err)
	assert.Len(jobs, 2)

	assert.Equal("Java Dev", jobs[0].Title)
	assert.Equal("https://www.monster.com/job-openings/java-dev-2", jobs[0].Link)
	assert.Equal(1, jobs[0].DaysAgo)
	assert.Equal("Posted yesterday", jobs[0].PostedDate)

	assert.Equal("JPA Developer", jobs[1].Title)
	assert.Equal(4, jobs[1].DaysAgo)
}

func Test_HTMLSource_Fetch_ShouldStopAtMaxItems(t *testing.T) {

	var page strings.Builder
	page.WriteString("<ul>")
	for i := 0; i < 30; i++ {
		page.WriteString(`<li class="react-job-listing"><a data-test="job-link" href="/j">Java Developer</a></li>`)
	}
	page.WriteString("</ul>")

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(page.String())),
	}, nil)

	jobs, err := NewGlassdoor(newTestSettings(mockClient)).Fetch(context.Background())

	assert.NoError(t, err)
	assert.Len(t, jobs, 20)
}

func Test_HTMLSource_Fetch_WhenNoCards_ShouldReturnEmpty(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader("<html><body>captcha</body></html>")),
	}, nil)

	jobs, err := NewDice(newTestSettings(mockClient)).Fetch(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, jobs)
}

func Test_ResolveLink(t *testing.T) {

	assert := assert.New(t)

	assert.Equal("https://a.com/x", resolveLink("https://a.com", "/x"))
	assert.Equal("https://b.com/y", resolveLink("https://a.com", "https://b.com/y"))
	assert.Equal("/x", resolveLink("", "/x"))
	assert.Empty(resolveLink("https://a.com", "  "))
}
