package testutils

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller returns Values in order, cycling when exhausted. Values
// larger than the requested die size are reduced modulo size. When Err is
// set every roll fails with it.
type ScriptedRoller struct {
	Values []int
	Err    error
	next   int
}

var _ dice.Roller = (*ScriptedRoller)(nil)

// Roll implements dice.Roller
func (r *ScriptedRoller) Roll(size int) (int, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	if len(r.Values) == 0 {
		return 1, nil
	}
	v := r.Values[r.next%len(r.Values)]
	r.next++
	if v > size {
		v = (v-1)%size + 1
	}
	return v, nil
}

// RollN implements dice.Roller
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
