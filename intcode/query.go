package intcode

// Query runs a fresh copy of program with the given inputs until it halts
// and returns every value it emitted. Probing callers use it to ask a
// program one question per run.
func Query(program []int64, inputs ...int64) ([]int64, error) {
	var out Collector
	m := New(program)
	if _, err := m.Execute(Values(inputs...), &out); err != nil {
		return out.Values(), err
	}
	return out.Values(), nil
}
