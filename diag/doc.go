// Package diag provides optional, opt-in observability hooks for packages
// topo and querycache. Neither of those packages imports diag — they each
// declare a small Hook interface of their own (topo.CallHook,
// querycache.Hook) and accept an implementation as a constructor option;
// diag supplies concrete ones (structured logging, Prometheus metrics,
// ASCII graph rendering) so a host can attach as much or as little
// observability as it wants without the memoization core ever depending on
// a logging or metrics library itself.
package diag
