// Package urlset implements the persisted store of named target lists.
//
// The store keeps an ordered collection of model.SavedSet values, newest
// first by creation order. The collection is read once when the store is
// opened and written through on every mutation: Save and Delete marshal the
// whole collection and replace a single slot ("wcag_saved_sets") in the
// underlying database.Slots backend before returning.
//
// A slot that is missing or fails to parse is treated as an empty
// collection. Losing saved convenience data is logged at Warn level and
// never blocks the caller.
//
// Loading a set returns deep copies of its targets with freshly generated
// ids, so edits to the loaded list never alias the stored snapshot.
package urlset
