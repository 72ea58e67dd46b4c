// Package report renders the property sets of a storage tree as one
// accumulated text report.
//
// Four nested operations do the work, strictly top-down and depth-first:
//
//   - RenderValue formats one tagged value within a fixed width.
//   - Walker.RenderPropertySet appends every property of one opened set.
//   - Walker.RenderLevel renders every set directly inside one storage and
//     then probes the user-defined properties set, which enumeration never
//     lists.
//   - Walker.Walk visits a storage and all of its child storages, skipping
//     the "\x05" pseudo-storages that hold non-simple property sets.
//
// Output goes to a Sink as events; Text accumulates the report string and
// Collector keeps a structured copy. Failures never reach the report text:
// they are logged and recorded as diagnostics, and only the failing set or
// subtree goes missing from the output.
//
// Example:
//
//	var out report.Text
//	w, err := report.Run(stg.Compound{}, "budget.xls", &out, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(out.String())
//	for _, d := range w.Diagnostics() {
//	    fmt.Fprintln(os.Stderr, d)
//	}
package report
