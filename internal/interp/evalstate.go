package interp

import "github.com/cwbudde/go-cel/internal/types"

// EvalState records intermediate values by AST node id during a
// single evaluation. It is owned by one eval call at a time and only
// written when the state-tracking or exhaustive decorators are
// installed.
type EvalState interface {
	// IDs returns the node ids with recorded values.
	IDs() []int64

	// Value returns the recorded value for the node id.
	Value(id int64) (types.Value, bool)

	// SetValue records a value for the node id.
	SetValue(id int64, v types.Value)

	// Reset clears all recorded values.
	Reset()
}

// NewEvalState creates an empty EvalState.
func NewEvalState() EvalState {
	return &evalState{values: make(map[int64]types.Value)}
}

type evalState struct {
	values map[int64]types.Value
}

// IDs implements the EvalState interface.
func (s *evalState) IDs() []int64 {
	ids := make([]int64, 0, len(s.values))
	for id := range s.values {
		ids = append(ids, id)
	}
	return ids
}

// Value implements the EvalState interface.
func (s *evalState) Value(id int64) (types.Value, bool) {
	v, found := s.values[id]
	return v, found
}

// SetValue implements the EvalState interface.
func (s *evalState) SetValue(id int64, v types.Value) {
	s.values[id] = v
}

// Reset implements the EvalState interface.
func (s *evalState) Reset() {
	s.values = make(map[int64]types.Value)
}
