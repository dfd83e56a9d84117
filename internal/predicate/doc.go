// Package predicate answers single yes/no questions about a target codebase.
//
// Every predicate is total: a missing, unreadable or ambiguous subject yields
// false (or 0, or an empty slice) and never an error or panic. Milestone
// bodies can therefore be written as a flat sequence of calls with no
// existence checks in front of content checks:
//
//	root := predicate.NewRoot("/srv/app")
//	root.ExistsFile("composer.json")
//	root.Contains("config/octane.php", "frankenphp")
//	root.CountMatching("database/migrations", `create_users_table`) > 0
//
// # Commands
//
// Run executes a shell command with a hard wall-clock bound and reports a
// typed Outcome. The three kinds let callers tell a missing toolchain
// (NotFound) from a hung process (TimedOut) from a genuine failure
// (Completed with a non-zero exit code):
//
//	out := root.Run(ctx, "php artisan test 2>&1", predicate.WithTimeout(2*time.Minute))
//	switch out.Kind {
//	case predicate.NotFound:
//	case predicate.TimedOut:
//	case predicate.Completed:
//	}
//
// Run is the only predicate with side effects, and those are confined to the
// child process.
package predicate
