package filter

import (
	"encoding/json"
	"fmt"
	"time"
)

// 单选枚举的“不限”取值。
const All = "all"

// Range 表示闭区间 [Low, High]，JSON 编码为二元数组。
type Range struct {
	Low  float64
	High float64
}

// Narrower 判断区间是否比 domain 更窄。
func (r Range) Narrower(domain Range) bool {
	return r.Low > domain.Low || r.High < domain.High
}

// MarshalJSON 输出 [low, high]。
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Low, r.High})
}

// UnmarshalJSON 解析 [low, high]，null 保持原值。
func (r *Range) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode range: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode range: want 2 bounds, got %d", len(pair))
	}
	r.Low, r.High = pair[0], pair[1]
	return nil
}

// DateRange 表示可选的起止日期，任一端缺省即 nil。
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Present 判断是否设置了任一端。
func (d DateRange) Present() bool {
	return d.Start != nil || d.End != nil
}

func (d DateRange) clone() DateRange {
	return DateRange{Start: cloneTime(d.Start), End: cloneTime(d.End)}
}

// MarshalJSON 输出 [start, end]，缺省端为 null。
func (d DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*time.Time{d.Start, d.End})
}

// UnmarshalJSON 解析 [start, end]，null 保持原值。
func (d *DateRange) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var pair []*time.Time
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode date range: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode date range: want 2 bounds, got %d", len(pair))
	}
	d.Start, d.End = pair[0], pair[1]
	return nil
}

// State 是候选人筛选面板的完整筛选条件。
// 多选字段保持插入顺序且不含重复值。
type State struct {
	Search             string    `json:"search"`
	Status             []string  `json:"status"`
	Location           []string  `json:"location"`
	Skills             []string  `json:"skills"`
	Availability       []string  `json:"availability"`
	JobTypes           []string  `json:"jobTypes"`
	EducationLevel     []string  `json:"educationLevel"`
	ClientTypes        []string  `json:"clientTypes"`
	SalaryRange        Range     `json:"salaryRange"`
	ExperienceRange    Range     `json:"experienceRange"`
	MatchScore         Range     `json:"matchScore"`
	VerificationStatus string    `json:"verificationStatus"`
	LastActivity       string    `json:"lastActivity"`
	DateAdded          DateRange `json:"dateAdded"`
}

// Clone 深拷贝 State，结果与原值不共享任何切片或指针。
func (s State) Clone() State {
	out := s
	out.Status = cloneSet(s.Status)
	out.Location = cloneSet(s.Location)
	out.Skills = cloneSet(s.Skills)
	out.Availability = cloneSet(s.Availability)
	out.JobTypes = cloneSet(s.JobTypes)
	out.EducationLevel = cloneSet(s.EducationLevel)
	out.ClientTypes = cloneSet(s.ClientTypes)
	out.DateAdded = s.DateAdded.clone()
	return out
}

// Set 返回指定多选字段的当前取值（只读视图）。
func (s State) Set(facet SetFacet) []string {
	switch facet {
	case FacetStatus:
		return s.Status
	case FacetLocation:
		return s.Location
	case FacetSkills:
		return s.Skills
	case FacetAvailability:
		return s.Availability
	case FacetJobTypes:
		return s.JobTypes
	case FacetEducationLevel:
		return s.EducationLevel
	case FacetClientTypes:
		return s.ClientTypes
	}
	return nil
}

func (s *State) setSet(facet SetFacet, values []string) {
	switch facet {
	case FacetStatus:
		s.Status = values
	case FacetLocation:
		s.Location = values
	case FacetSkills:
		s.Skills = values
	case FacetAvailability:
		s.Availability = values
	case FacetJobTypes:
		s.JobTypes = values
	case FacetEducationLevel:
		s.EducationLevel = values
	case FacetClientTypes:
		s.ClientTypes = values
	}
}

// Domains 描述三个数值区间字段的完整取值范围。
type Domains struct {
	Salary     Range `yaml:"salary" json:"salaryRange"`
	Experience Range `yaml:"experience" json:"experienceRange"`
	MatchScore Range `yaml:"match_score" json:"matchScore"`
}

// DefaultDomains 返回薪资 0-300、经验 0-20、匹配度 0-100。
func DefaultDomains() Domains {
	return Domains{
		Salary:     Range{Low: 0, High: 300},
		Experience: Range{Low: 0, High: 20},
		MatchScore: Range{Low: 0, High: 100},
	}
}

// UnmarshalYAML 支持 YAML 中的 [low, high] 写法。
func (r *Range) UnmarshalYAML(unmarshal func(any) error) error {
	var pair []float64
	if err := unmarshal(&pair); err != nil {
		return fmt.Errorf("decode range: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("decode range: want 2 bounds, got %d", len(pair))
	}
	r.Low, r.High = pair[0], pair[1]
	return nil
}

// cloneSet 复制多选字段，nil 规整为空集合。
func cloneSet(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
