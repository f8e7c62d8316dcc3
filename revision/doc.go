// Package revision provides a small host-side driver for running repeated
// passes ("revisions") over a topo.Env/querycache.Handle pair, plus a
// YAML-loadable Scenario format for scripting revision sequences in tests
// and in cmd/topoinspect — turning the behavioral scenarios a memoization
// core needs to satisfy into data instead of one-off Go test functions.
package revision
