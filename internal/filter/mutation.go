package filter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SetFacet 标识一个多选字段。
type SetFacet string

const (
	FacetStatus         SetFacet = "status"
	FacetLocation       SetFacet = "location"
	FacetSkills         SetFacet = "skills"
	FacetAvailability   SetFacet = "availability"
	FacetJobTypes       SetFacet = "jobTypes"
	FacetEducationLevel SetFacet = "educationLevel"
	FacetClientTypes    SetFacet = "clientTypes"
)

var setFacets = []SetFacet{
	FacetStatus,
	FacetLocation,
	FacetSkills,
	FacetAvailability,
	FacetJobTypes,
	FacetEducationLevel,
	FacetClientTypes,
}

// SetFacets 返回全部多选字段，顺序固定。
func SetFacets() []SetFacet {
	out := make([]SetFacet, len(setFacets))
	copy(out, setFacets)
	return out
}

// ParseSetFacet 把字段名转换为 SetFacet，未知字段返回错误。
func ParseSetFacet(name string) (SetFacet, error) {
	for _, f := range setFacets {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown set facet %q", ErrUnknownMutation, name)
}

// ErrUnknownMutation 表示无法识别的变更请求。
var ErrUnknownMutation = errors.New("unknown mutation")

// Mutation 是对草稿的一次变更，只能通过本包的构造函数创建。
type Mutation interface {
	mutation()
}

type setSearch struct{ value string }
type setVerificationStatus struct{ value string }
type setLastActivity struct{ value string }
type setSalaryRange struct{ value Range }
type setExperienceRange struct{ value Range }
type setMatchScore struct{ value Range }
type setDateAdded struct{ value DateRange }
type toggleMember struct {
	facet SetFacet
	value string
}

func (setSearch) mutation()             {}
func (setVerificationStatus) mutation() {}
func (setLastActivity) mutation()       {}
func (setSalaryRange) mutation()        {}
func (setExperienceRange) mutation()    {}
func (setMatchScore) mutation()         {}
func (setDateAdded) mutation()          {}
func (toggleMember) mutation()          {}

// SetSearch 替换搜索关键词，不做 trim。
func SetSearch(q string) Mutation { return setSearch{value: q} }

// SetVerificationStatus 替换认证状态，"all" 表示不限。
func SetVerificationStatus(v string) Mutation { return setVerificationStatus{value: v} }

// SetLastActivity 替换最近活跃时间窗口，"all" 表示不限。
func SetLastActivity(v string) Mutation { return setLastActivity{value: v} }

func SetSalaryRange(low, high float64) Mutation {
	return setSalaryRange{value: Range{Low: low, High: high}}
}

func SetExperienceRange(low, high float64) Mutation {
	return setExperienceRange{value: Range{Low: low, High: high}}
}

func SetMatchScore(low, high float64) Mutation {
	return setMatchScore{value: Range{Low: low, High: high}}
}

// SetDateAdded 替换入库日期区间，nil 表示该端不限。
func SetDateAdded(d DateRange) Mutation { return setDateAdded{value: d.clone()} }

// ToggleMember 切换多选字段中的一个取值。
func ToggleMember(facet SetFacet, value string) Mutation {
	return toggleMember{facet: facet, value: value}
}

// MutationRequest 是 HTTP 层提交的变更请求。
//
//	{"op":"toggle","facet":"skills","value":"Go"}
//	{"op":"set","field":"salaryRange","range":[50,150]}
//	{"op":"set","field":"dateAdded","dates":["2024-01-01T00:00:00Z",null]}
type MutationRequest struct {
	Op    string     `json:"op"`
	Field string     `json:"field,omitempty"`
	Facet string     `json:"facet,omitempty"`
	Value *string    `json:"value,omitempty"`
	Range *Range     `json:"range,omitempty"`
	Dates *DateRange `json:"dates,omitempty"`
}

// DecodeMutation 解析单个 JSON 变更请求。
func DecodeMutation(data []byte) (Mutation, error) {
	var req MutationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decode mutation: %w", err)
	}
	return req.Mutation()
}

// Mutation 把请求转换为对应的变更，字段与取值类型不符时返回错误。
// op、field、facet 都区分大小写。
func (r MutationRequest) Mutation() (Mutation, error) {
	switch r.Op {
	case "toggle":
		facet, err := ParseSetFacet(r.Facet)
		if err != nil {
			return nil, err
		}
		if r.Value == nil {
			return nil, fmt.Errorf("%w: toggle %s requires value", ErrUnknownMutation, facet)
		}
		return ToggleMember(facet, *r.Value), nil
	case "set":
		return r.setMutation()
	}
	return nil, fmt.Errorf("%w: unknown op %q", ErrUnknownMutation, r.Op)
}

func (r MutationRequest) setMutation() (Mutation, error) {
	switch r.Field {
	case "search", "verificationStatus", "lastActivity":
		if r.Value == nil {
			return nil, fmt.Errorf("%w: field %s requires value", ErrUnknownMutation, r.Field)
		}
		switch r.Field {
		case "search":
			return SetSearch(*r.Value), nil
		case "verificationStatus":
			return SetVerificationStatus(*r.Value), nil
		default:
			return SetLastActivity(*r.Value), nil
		}
	case "salaryRange", "experienceRange", "matchScore":
		if r.Range == nil {
			return nil, fmt.Errorf("%w: field %s requires range", ErrUnknownMutation, r.Field)
		}
		switch r.Field {
		case "salaryRange":
			return SetSalaryRange(r.Range.Low, r.Range.High), nil
		case "experienceRange":
			return SetExperienceRange(r.Range.Low, r.Range.High), nil
		default:
			return SetMatchScore(r.Range.Low, r.Range.High), nil
		}
	case "dateAdded":
		if r.Dates == nil {
			return SetDateAdded(DateRange{}), nil
		}
		return SetDateAdded(*r.Dates), nil
	}
	return nil, fmt.Errorf("%w: unknown field %q", ErrUnknownMutation, r.Field)
}
