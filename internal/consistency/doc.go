// Package consistency recomputes a report's summary scores from its
// per-criterion results.
//
// The per-criterion verdicts are the ground truth. Check classifies every
// criterion by WCAG edition and level using the static table in package
// wcag, counts it, and overwrites the summary wherever the reported numbers
// differ. Each overwritten score is returned as a Discrepancy so callers can
// warn about it. Running Check on a consistent report changes nothing, so
// Check is idempotent.
//
// Counting rules:
//   - a criterion counts towards the total of its edition and level
//   - "Voldoet" and "Niet van toepassing" count as passed, "Voldoet niet" does not
//   - the 2.2 bucket holds only criteria introduced in WCAG 2.2
//   - ids missing from the table use their declared level in the 2.1 bucket
//   - an edition total is the sum of its level A and level AA scores
package consistency
