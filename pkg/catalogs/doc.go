// Package catalogs reads and writes the business catalog, a newline-delimited
// JSON file with one Company record per line.
//
// Loading a catalog drops the records that belong to the source being
// re-imported, applies the site-wide link policy to everything that is kept,
// and indexes the categories and rubrics the kept records reference:
//
//	snap, err := catalogs.Load("data/companies.jsonl",
//		catalogs.WithDroppedSource("belarusinfo"))
//	if err != nil {
//		return err
//	}
//	fmt.Println(len(snap.Companies), len(snap.Index.Rubrics))
//
// Writing is atomic: records go to a temporary sibling file which is renamed
// over the destination once every line has been flushed.
package catalogs
