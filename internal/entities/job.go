package entities

const (
	NotAvailable   = "N/A"
	UnknownCompany = NotAvailable
	UnknownAge     = 999
)

// JobRecord is one posting produced by a source. Values are never mutated after construction.
type JobRecord struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	Link       string `json:"link"`
	Portal     string `json:"portal"`
	PostedDate string `json:"posted_date"`
	DaysAgo    int    `json:"days_ago"`
}

func (j JobRecord) Identity() string {
	return Identify(j.Title, j.Company, j.Link)
}

func (j JobRecord) ToSeenJob() SeenJob {
	return SeenJob{
		JobID:      j.Identity(),
		Title:      j.Title,
		Company:    j.Company,
		URL:        j.Link,
		Portal:     j.Portal,
		PostedDate: j.PostedDate,
		DaysAgo:    j.DaysAgo,
	}
}
