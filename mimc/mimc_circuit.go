package mimc

import (
	"github.com/PolyhedraZK/bpgadgets/builder"
)

// GatesPerBlock is the number of multiplication gates one absorbed input costs.
func GatesPerBlock(param *Params) int {
	return 3 * param.NumRounds
}

func sBoxCircuit(api builder.API, t builder.LinearCombination) builder.LinearCombination {
	_, _, x2 := api.Multiply(t, t)
	_, _, x4 := api.Multiply(x2.LC(), x2.LC())
	_, _, x5 := api.Multiply(x4.LC(), t)
	return x5.LC()
}

func encryptCircuit(api builder.API, param *Params, h, m builder.LinearCombination) builder.LinearCombination {
	for i := 0; i < param.NumRounds; i++ {
		t := m.Add(h).Add(builder.Constant(param.RoundConstants[i]))
		m = sBoxCircuit(api, t)
	}
	return m.Add(h)
}

// HashCircuit constrains the MiMC hash of inputs and returns it as a linear combination.
func HashCircuit(api builder.API, param *Params, inputs []builder.LinearCombination) builder.LinearCombination {
	var h builder.LinearCombination
	for _, x := range inputs {
		e := encryptCircuit(api, param, h, x)
		h = h.Add(e).Add(x).Simplify()
	}
	return h
}

// CompressCircuit is Compress as constraints.
func CompressCircuit(api builder.API, param *Params, left, right builder.LinearCombination) builder.LinearCombination {
	return HashCircuit(api, param, []builder.LinearCombination{left, right})
}
