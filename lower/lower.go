package lower

import (
	"github.com/rscomp/redaig/aig"
	"github.com/rscomp/redaig/compilegraph"
)

// Lower translates a (presumably already-optimized, see package passes)
// CompileGraph into a finalized AIG plus its input/output lookup tables,
// per spec §4.5.
func Lower(g *compilegraph.CompileGraph) (*Result, error) {
	c := &ctx{
		g:            g,
		b:            aig.NewBuilder(),
		outputs:      make(map[compilegraph.NodeID]NodeOutput),
		placeholders: make(map[slotKey]aig.Lit),
	}

	if err := runStageA(c); err != nil {
		return nil, err
	}
	if err := runStageB(c); err != nil {
		return nil, err
	}

	finalized, err := c.b.Finalize()
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}

	return &Result{
		AIG:         finalized,
		InputTable:  c.inputTable,
		OutputTable: c.outputTable,
	}, nil
}
