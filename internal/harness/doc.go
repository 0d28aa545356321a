// Package harness runs YAML sync scenarios against a throwaway catalog and
// checks their outcome.
//
// # Scenario Format
//
//	name: category_tree
//	description: "Children resolve parents created in the same run"
//	run_id: run-category-tree
//	seed:
//	  - type: type
//	    key: category-type
//	options:
//	  batchSize: 2
//	drafts:
//	  categories:
//	    - key: men
//	      name: { en: Men }
//	      slug: { en: men }
//	    - key: shirts
//	      name: { en: Shirts }
//	      slug: { en: shirts }
//	      parent: { key: men }
//	assertions:
//	  - type: statistics
//	    resource: categories
//	    created: 2
//	  - type: stored_field
//	    resource_type: category
//	    key: shirts
//	    path: parent.id
//	    equals: id-2
//
// Resource ids are deterministic: seeded resources without a pinned id and
// every resource created during the run take ids "id-1", "id-2", ... in
// creation order.
//
// # Assertion Types
//
//   - statistics: counters of one resource's run (processed, created, updated, failed)
//   - error_contains: some sync failure message contains the text (optionally with a code)
//   - warning_contains: some warning contains the text
//   - error_count: exactly count sync failures were reported
//   - stored_field: the stored payload of a resource has a value at a dotted path
//   - resource_count: the catalog holds exactly count resources of a type
//
// # Golden Files
//
// RunWithGolden snapshots statistics, failures and stored resources as
// canonical JSON under testdata/golden/<name>.golden. Regenerate with
//
//	go test ./internal/harness -update
package harness
