package filter

// Catalog 列出面板上每个筛选项可选的取值，供前端渲染。
type Catalog struct {
	Statuses             []string `yaml:"statuses" json:"status"`
	Locations            []string `yaml:"locations" json:"location"`
	Skills               []string `yaml:"skills" json:"skills"`
	Availability         []string `yaml:"availability" json:"availability"`
	JobTypes             []string `yaml:"job_types" json:"jobTypes"`
	EducationLevels      []string `yaml:"education_levels" json:"educationLevel"`
	ClientTypes          []string `yaml:"client_types" json:"clientTypes"`
	VerificationStatuses []string `yaml:"verification_statuses" json:"verificationStatus"`
	ActivityWindows      []string `yaml:"activity_windows" json:"lastActivity"`
}

// DefaultCatalog 返回内置的选项列表。
func DefaultCatalog() Catalog {
	return Catalog{
		Statuses:             []string{"active", "interviewing", "placed", "inactive"},
		Locations:            []string{"Remote", "New York", "San Francisco", "London", "Berlin"},
		Skills:               []string{"React", "Go", "TypeScript", "Python", "Kubernetes", "PostgreSQL"},
		Availability:         []string{"immediate", "two_weeks", "one_month", "not_looking"},
		JobTypes:             []string{"full_time", "part_time", "contract", "internship"},
		EducationLevels:      []string{"high_school", "bachelor", "master", "phd"},
		ClientTypes:          []string{"enterprise", "startup", "agency", "government"},
		VerificationStatuses: []string{All, "verified", "pending", "unverified"},
		ActivityWindows:      []string{All, "today", "week", "month", "quarter"},
	}
}

// WithDefaults 用内置列表补齐空缺的选项。
func (c Catalog) WithDefaults() Catalog {
	def := DefaultCatalog()
	fill := func(dst *[]string, src []string) {
		if len(*dst) == 0 {
			*dst = src
		}
	}
	fill(&c.Statuses, def.Statuses)
	fill(&c.Locations, def.Locations)
	fill(&c.Skills, def.Skills)
	fill(&c.Availability, def.Availability)
	fill(&c.JobTypes, def.JobTypes)
	fill(&c.EducationLevels, def.EducationLevels)
	fill(&c.ClientTypes, def.ClientTypes)
	fill(&c.VerificationStatuses, def.VerificationStatuses)
	fill(&c.ActivityWindows, def.ActivityWindows)
	return c
}

// Options 返回某个多选字段的可选值。
func (c Catalog) Options(facet SetFacet) []string {
	switch facet {
	case FacetStatus:
		return c.Statuses
	case FacetLocation:
		return c.Locations
	case FacetSkills:
		return c.Skills
	case FacetAvailability:
		return c.Availability
	case FacetJobTypes:
		return c.JobTypes
	case FacetEducationLevel:
		return c.EducationLevels
	case FacetClientTypes:
		return c.ClientTypes
	}
	return nil
}
