package filter

import "errors"

// ErrSessionClosed 表示会话已提交或已丢弃。
var ErrSessionClosed = errors.New("filter session closed")

// CommitFunc 接收提交后的筛选条件。
type CommitFunc func(State)

// Session 对应一次打开的筛选面板，持有草稿。非并发安全，只允许单一调用方。
type Session struct {
	store       *Store
	draft       State
	resultCount int
	onApply     CommitFunc
	closed      bool
}

// Open 以当前已生效的筛选条件开启会话。resultCount 仅供展示。
func (s *Store) Open(seed State, resultCount int, onApply CommitFunc) *Session {
	return &Session{
		store:       s,
		draft:       s.Initialize(seed),
		resultCount: resultCount,
		onApply:     onApply,
	}
}

// Draft 返回当前草稿的拷贝。
func (s *Session) Draft() State {
	return s.draft.Clone()
}

// ResultCount 返回打开面板时外部给出的结果数量。
func (s *Session) ResultCount() int {
	return s.resultCount
}

// ActiveCount 返回草稿的激活筛选项数量，用于角标。
func (s *Session) ActiveCount() int {
	return s.store.ActiveFacetCount(s.draft)
}

// Dispatch 依次执行变更。
func (s *Session) Dispatch(ms ...Mutation) error {
	if s.closed {
		return ErrSessionClosed
	}
	for _, m := range ms {
		s.draft = s.store.Mutate(s.draft, m)
	}
	return nil
}

// Clear 把草稿重置为默认值，会话仍保持打开。
func (s *Session) Clear() error {
	if s.closed {
		return ErrSessionClosed
	}
	s.draft = s.store.Clear(s.draft)
	return nil
}

// Apply 提交草稿并关闭会话。
func (s *Session) Apply() (State, error) {
	if s.closed {
		return State{}, ErrSessionClosed
	}
	s.closed = true
	applied := s.store.Apply(s.draft)
	if s.onApply != nil {
		s.onApply(applied.Clone())
	}
	return applied, nil
}

// Discard 关闭会话，草稿被丢弃。
func (s *Session) Discard() {
	s.closed = true
}
