package passes

import (
	"github.com/golang/glog"

	"github.com/rscomp/redaig/compilegraph"
)

// Pass is one rewrite step of the optimisation pipeline.
type Pass interface {
	// Name identifies the pass for logging.
	Name() string
	// ShouldRun gates the pass on the host's CompilerOptions.
	ShouldRun(opts CompilerOptions) bool
	// Run applies the rewrite once and reports whether it changed g.
	Run(g *compilegraph.CompileGraph, opts CompilerOptions) (changed bool, err error)
}

// maxPipelineIterations bounds the fixed-point loop so an implementation
// bug in a pass (one that keeps reporting "changed" forever) cannot hang
// the compiler; spec §4.3 says the pipeline is "intended" to reach a
// single fixed point, not guaranteed to by construction.
const maxPipelineIterations = 64

// Pipeline runs the fixed, ordered sequence of passes named in spec §4.3.
type Pipeline struct {
	passes []Pass
}

// NewPipeline returns the standard redaig pass sequence.
func NewPipeline() *Pipeline {
	return &Pipeline{
		passes: []Pass{
			&NarrowOutputs{},
			&UnreachableOutput2{},
			&ConstantFold2{},
			&Coalesce2{},
			&CancellingComparatorEdges{},
			&IoOnly{},
		},
	}
}

// Run drives every gated pass to repeated application until no pass in the
// pipeline reports a change, or the iteration cap is hit.
func (p *Pipeline) Run(g *compilegraph.CompileGraph, opts CompilerOptions) error {
	for iter := 0; iter < maxPipelineIterations; iter++ {
		anyChanged := false
		for _, pass := range p.passes {
			if !pass.ShouldRun(opts) {
				continue
			}
			before := g.Stats()
			changed, err := pass.Run(g, opts)
			if err != nil {
				return err
			}
			if glog.V(1) {
				after := g.Stats()
				glog.Infof("passes: %s iter=%d changed=%v nodes=%d->%d edges=%d->%d",
					pass.Name(), iter, changed, before.NodeCount, after.NodeCount, before.EdgeCount, after.EdgeCount)
			}
			anyChanged = anyChanged || changed
		}
		if !anyChanged {
			return nil
		}
	}
	glog.Warningf("passes: pipeline did not reach a fixed point after %d iterations", maxPipelineIterations)
	return nil
}
