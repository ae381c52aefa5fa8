// Package compilegraph is the typed, annotated node/edge graph that is the
// input to the redaig optimisation pipeline and the subject it rewrites.
//
// A CompileGraph is a directed multigraph: nodes carry a NodeType tag plus
// mutable NodeState, edges carry a LinkType (Default or Side) and a signal-
// strength distance. Node identity (NodeID) is stable across edge mutations
// and across RemoveNode/AddNode calls within a single compile — ids are
// never reused — because the optimisation passes in package passes iterate
// by id and match on existence.
//
// Package layout mirrors the teacher corpus's core package: types.go holds
// the data model, constructors and sentinel errors, api.go the read-only
// Stats facade, dot.go the Graphviz export, methods_nodes.go/
// methods_edges.go the mutation surface,
// possibless.go the PossibleSS abstract-interpretation lattice used by
// package passes, and builder.go a convenience layer for assembling graphs
// in tests and examples (the real block-world builder is out of scope).
package compilegraph
