// Package milestone runs milestone definitions against a project.
//
// A milestone is a titled, ordered list of requirements. Its body receives a
// Script, which bundles the single check.Check of the run with the project's
// predicate.Root, and performs a flat sequence of Record calls grouped into
// sections:
//
//	func verifyM1(ctx context.Context, s *Script) {
//	    r := s.Root()
//	    s.Section("T1: Scaffold Laravel Project")
//	    s.Record("composer.json exists", r.ExistsFile("composer.json"))
//
//	    s.Section("T2: Docker Compose")
//	    if s.Record("Docker Compose file exists", r.ExistsFile("compose.yml")) {
//	        s.Record("PostgreSQL service defined", r.Contains("compose.yml", "postgres"))
//	    }
//
//	    s.Section("Runtime: Laravel Tests")
//	    s.Runtime(ctx, RuntimeCheck{Name: "php artisan test passes", Command: "php artisan test 2>&1"})
//	}
//
// Gating is plain control flow on the boolean Record returns. A check that
// is gated off is not recorded at all; it neither passes nor fails.
//
// Execute wraps a body in the run contract: one Check, the milestone banner,
// the body, and exactly one Finalize.
//
// # Manifests
//
// Milestones can also be declared in YAML or CUE and loaded with
// LoadManifest. A manifest requirement carries exactly one predicate
// (file, dir, contains, matches, count, any, all) and an optional when gate
// naming an earlier requirement:
//
//	id: m6
//	title: "VUNNIX M6 — Pilot Launch Verification"
//	sections:
//	  - title: "T105: Production Docker Compose"
//	    checks:
//	      - name: docker-compose.production.yml exists
//	        file: docker-compose.production.yml
//	      - name: Prod compose has memory limits
//	        when: docker-compose.production.yml exists
//	        contains: {path: docker-compose.production.yml, text: memory}
//	runtime:
//	  - section: "Runtime: Laravel Tests"
//	    name: php artisan test passes
//	    command: php artisan test 2>&1
//	    unavailable: artisan not available (Laravel not yet scaffolded?)
package milestone
