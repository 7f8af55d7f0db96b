package entities

import "time"

type SeenJob struct {
	JobID      string `gorm:"column:job_id;primaryKey"`
	Title      string
	Company    string
	URL        string `gorm:"column:url"`
	Portal     string `gorm:"index"`
	PostedDate string
	DaysAgo    int
	NotifiedAt time.Time `gorm:"autoCreateTime;index"`
}

func (SeenJob) TableName() string {
	return "seen_jobs"
}

func (s SeenJob) ToRecord() JobRecord {
	return JobRecord{
		Title:      s.Title,
		Company:    s.Company,
		Link:       s.URL,
		Portal:     s.Portal,
		PostedDate: s.PostedDate,
		DaysAgo:    s.DaysAgo,
	}
}
