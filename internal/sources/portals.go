package sources

// Search pages scraped as HTML. Selectors follow each portal's current listing markup.

func NewLinkedIn(settings Settings) *HTMLSource {
	return &HTMLSource{
		name:     "LinkedIn",
		settings: settings,
		searchURL: "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search?keywords=" +
			settings.query(3, " OR ") + "&location=Worldwide&f_TPR=r86400&start=0",
		layout: htmlLayout{
			item:        "li",
			title:       "h3.base-search-card__title",
			company:     "h4.base-search-card__subtitle",
			link:        "a.base-card__full-link",
			date:        "time",
			requireLink: true,
			maxItems:    20,
			assumedAge:  1,
		},
	}
}

func NewGlassdoor(settings Settings) *HTMLSource {
	return &HTMLSource{
		name:      "Glassdoor",
		settings:  settings,
		searchURL: "https://www.glassdoor.com/Job/jobs.htm?sc.keyword=" + settings.query(2, " ") + "&fromAge=10",
		layout: htmlLayout{
			item:       "li.react-job-listing",
			title:      `a[data-test="job-link"]`,
			company:    "div.d-flex.justify-content-between.align-items-start",
			baseURL:    "https://www.glassdoor.com",
			maxItems:   20,
			assumedAge: 3,
		},
	}
}

func NewAngelList(settings Settings) *HTMLSource {
	return &HTMLSource{
		name:      "AngelList",
		settings:  settings,
		searchURL: "https://angel.co/jobs?filter=" + settings.query(3, " "),
		layout: htmlLayout{
			item:        "div.styles_role__xb3g6",
			title:       "div.styles_title__rbj3g",
			company:     "div.styles_subtitle__q4dod",
			link:        "a",
			baseURL:     "https://angel.co",
			requireLink: true,
			maxItems:    15,
			assumedAge:  2,
		},
	}
}

func NewMonster(settings Settings) *HTMLSource {
	return &HTMLSource{
		name:      "Monster",
		settings:  settings,
		searchURL: "https://www.monster.com/jobs/search/?q=" + settings.query(3, " ") + "&where=remote&fromage=10",
		layout: htmlLayout{
			item:        "section.card-content",
			title:       "h2.title",
			company:     "div.company",
			link:        "a",
			date:        "time",
			baseURL:     "https://www.monster.com",
			requireLink: true,
			maxItems:    15,
			assumedAge:  4,
		},
	}
}

func NewDice(settings Settings) *HTMLSource {
	return &HTMLSource{
		name:     "Dice",
		settings: settings,
		searchURL: "https://www.dice.com/jobs?q=" + settings.query(3, " ") +
			"&countryCode=US&radius=30&radiusUnit=mi&page=1&pageSize=20&filters.remote=true&language=en",
		layout: htmlLayout{
			item:       "dhi-search-card",
			title:      "a.card-title-link",
			company:    "a.ng-star-inserted",
			baseURL:    "https://www.dice.com",
			maxItems:   15,
			assumedAge: 3,
		},
	}
}

func NewFlexJobs(settings Settings) *HTMLSource {
	return &HTMLSource{
		name:      "FlexJobs",
		settings:  settings,
		searchURL: "https://www.flexjobs.com/search?search=" + settings.query(3, " "),
		layout: htmlLayout{
			item:       "div.job-list-item",
			title:      "a.job-title",
			company:    "div.job-company",
			baseURL:    "https://www.flexjobs.com",
			maxItems:   15,
			assumedAge: 2,
		},
	}
}
