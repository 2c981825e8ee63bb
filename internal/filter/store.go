// Package filter 实现候选人筛选面板的筛选状态模型。
//
// 所有操作都是纯函数：输入一个 State，返回新的 State，绝不原地修改入参。
// 面板的“当前草稿”由调用方持有，见 Session。
package filter

import "slices"

// Store 是无状态的筛选状态仓库，只记录数值区间字段的取值范围。
type Store struct {
	domains Domains
}

// NewStore 按给定区间范围创建 Store。
func NewStore(domains Domains) *Store {
	return &Store{domains: domains}
}

// Domains 返回区间字段的取值范围。
func (s *Store) Domains() Domains {
	return s.domains
}

// Default 返回全部字段为默认值的 State。
func (s *Store) Default() State {
	return State{
		Status:             []string{},
		Location:           []string{},
		Skills:             []string{},
		Availability:       []string{},
		JobTypes:           []string{},
		EducationLevel:     []string{},
		ClientTypes:        []string{},
		SalaryRange:        s.domains.Salary,
		ExperienceRange:    s.domains.Experience,
		MatchScore:         s.domains.MatchScore,
		VerificationStatus: All,
		LastActivity:       All,
	}
}

// Initialize 以 seed 的深拷贝作为新草稿，不做校验。
func (s *Store) Initialize(seed State) State {
	return seed.Clone()
}

// Mutate 对草稿执行一次变更并返回新草稿。区间值原样保存，不夹紧也不调换。
func (s *Store) Mutate(draft State, m Mutation) State {
	next := draft.Clone()
	switch m := m.(type) {
	case setSearch:
		next.Search = m.value
	case setVerificationStatus:
		next.VerificationStatus = m.value
	case setLastActivity:
		next.LastActivity = m.value
	case setSalaryRange:
		next.SalaryRange = m.value
	case setExperienceRange:
		next.ExperienceRange = m.value
	case setMatchScore:
		next.MatchScore = m.value
	case setDateAdded:
		next.DateAdded = m.value.clone()
	case toggleMember:
		next.setSet(m.facet, toggle(next.Set(m.facet), m.value))
	}
	return next
}

// ToggleSetMember 在多选字段中切换 value：已存在则移除，否则追加到末尾。
func (s *Store) ToggleSetMember(draft State, facet SetFacet, value string) State {
	return s.Mutate(draft, ToggleMember(facet, value))
}

// ActiveFacetCount 统计偏离默认值的筛选项数量。
// 多选字段按已选个数计数，其余字段各计 0 或 1。
func (s *Store) ActiveFacetCount(draft State) int {
	count := 0
	if draft.Search != "" {
		count++
	}
	for _, facet := range SetFacets() {
		count += len(draft.Set(facet))
	}
	if draft.VerificationStatus != All {
		count++
	}
	if draft.LastActivity != All {
		count++
	}
	if draft.SalaryRange.Narrower(s.domains.Salary) {
		count++
	}
	if draft.ExperienceRange.Narrower(s.domains.Experience) {
		count++
	}
	if draft.MatchScore.Narrower(s.domains.MatchScore) {
		count++
	}
	if draft.DateAdded.Present() {
		count++
	}
	return count
}

// Clear 丢弃草稿，返回默认 State。
func (s *Store) Clear(State) State {
	return s.Default()
}

// Apply 原样返回草稿，调用方据此提交给列表。
func (s *Store) Apply(draft State) State {
	return draft
}

// toggle 总是返回新切片，values 本身不被修改。
func toggle(values []string, value string) []string {
	if i := slices.Index(values, value); i >= 0 {
		out := make([]string, 0, len(values)-1)
		out = append(out, values[:i]...)
		return append(out, values[i+1:]...)
	}
	out := make([]string, 0, len(values)+1)
	out = append(out, values...)
	return append(out, value)
}
