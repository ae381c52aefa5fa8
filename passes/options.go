package passes

// CompilerOptions is the host-supplied configuration from spec §6.
type CompilerOptions struct {
	// Optimize enables narrowing / folding / coalescing.
	Optimize bool
	// IoOnly restricts the final graph to the IO-reachable subgraph.
	IoOnly bool
	// ExportDotGraph requests a .dot dump after compile (see
	// compilegraph.WriteDot; the dump itself is produced by the caller of
	// the pipeline, not by a pass).
	ExportDotGraph bool
}
