// Package trace records what the front end is doing while it runs.
//
// Spans mark the beginning and end of driver operations, pipeline passes
// (index, lex, parse) and per-unit work. Events go to a stream (text or
// NDJSON), to an in-memory ring for post-mortem dumps, or to both.
//
// Enable tracing from the command line:
//
//	tiger check --trace=- --trace-level=unit testcases/
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
