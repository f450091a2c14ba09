package archival

// Result reports the outcome of a Serialize or WriteConditional call and
// enables conditional chaining:
//
//	ar.Serialize("pos", &p).Else("position")         // retry under a new name
//	ar.WriteConditional(v != 0).Then("v", &v)        // optional write
//
// A Result keeps the values that produced it by reference, so a retry observes
// any mutation of the first attempt. It must not outlive its Archive's scope.
type Result struct {
	archive Archive
	ok      bool
	values  []any
}

// Succeeded reports whether the last call succeeded.
func (r Result) Succeeded() bool { return r.ok }

// Archive returns the archive the result was produced on.
func (r Result) Archive() Archive { return r.archive }

// Values returns the values the last call serialized.
func (r Result) Values() []any { return r.values }

// Then serializes under name only if the last call succeeded. With no values
// it reuses the previous ones. If skipped, the result (and its failure) is
// carried over with the new values.
func (r Result) Then(name string, values ...any) Result {
	if r.ok {
		return r.serialize(name, values)
	}
	return r.Replace(values...)
}

// Else serializes under name only if the last call failed. With no values it
// retries the previous ones under the new name.
func (r Result) Else(name string, values ...any) Result {
	if !r.ok {
		return r.serialize(name, values)
	}
	return r.Replace(values...)
}

// ThenFunc runs fn only if the last call succeeded and returns its outcome.
func (r Result) ThenFunc(fn func(ar Archive) bool) Result {
	if r.ok {
		return Result{archive: r.archive, ok: fn(r.archive), values: r.values}
	}
	return r
}

// ElseFunc runs fn only if the last call failed and returns its outcome.
func (r Result) ElseFunc(fn func(ar Archive) bool) Result {
	if !r.ok {
		return Result{archive: r.archive, ok: fn(r.archive), values: r.values}
	}
	return r
}

// Replace returns a result with the same outcome as if the last call had been
// made with values instead. With no values r is returned unchanged.
func (r Result) Replace(values ...any) Result {
	if len(values) == 0 {
		return r
	}
	return Result{archive: r.archive, ok: r.ok, values: values}
}

func (r Result) serialize(name string, values []any) Result {
	if len(values) == 0 {
		values = r.values
	}
	if len(values) == 0 {
		// Nothing to retry (for example after WriteConditional).
		return Result{archive: r.archive, ok: false}
	}
	ok := true
	for _, v := range values {
		if !dispatch(r.archive, name, v) {
			ok = false
		}
	}
	return Result{archive: r.archive, ok: ok, values: values}
}
