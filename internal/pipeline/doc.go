// Package pipeline defines the deterministic audio transformation plan.
//
// A plan is the ordered list of engine invocations for one source file:
// tempo shift, pitch shift, rain ambience mix, vinyl texture mix,
// equalization, and an optional loop. Planning is pure bookkeeping: it
// validates the run configuration, skips ambience stages whose asset file is
// absent, and chains each stage's input to the output of the last enabled
// stage so the plan never references a skipped stage's artifact. Executing
// the invocations is the processor's job.
package pipeline
