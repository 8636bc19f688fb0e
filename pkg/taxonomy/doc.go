// Package taxonomy maps rubrics of the source directory onto the catalog's
// category and rubric taxonomy.
//
// TargetCategory is a pure lookup over a fixed table and an ordered list of
// keyword rules. Mapper adds the stateful part of a run: it reuses rubrics
// already present in the catalog, fabricates namespaced rubric slugs for the
// rest, and remembers every decision by source rubric URL so that one source
// rubric always maps to one catalog rubric.
package taxonomy
