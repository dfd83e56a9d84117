package predicate

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/specgate/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestExistsFile(t *testing.T) {
	root := NewRoot(testutil.Project(t, map[string]string{
		"composer.json": "{}",
		"app/":          "",
	}))

	assert.True(t, root.ExistsFile("composer.json"))
	assert.False(t, root.ExistsFile("app"), "directories are not files")
	assert.False(t, root.ExistsFile("missing.json"))
	assert.False(t, root.ExistsFile("no/such/dir/file.php"))
}

func TestExistsDir(t *testing.T) {
	root := NewRoot(testutil.Project(t, map[string]string{
		"composer.json": "{}",
		"app/Models/":   "",
	}))

	assert.True(t, root.ExistsDir("app"))
	assert.True(t, root.ExistsDir("app/Models"))
	assert.False(t, root.ExistsDir("composer.json"), "files are not directories")
	assert.False(t, root.ExistsDir("routes"))
}

func TestContains(t *testing.T) {
	root := NewRoot(testutil.Project(t, map[string]string{
		"config/octane.php": "<?php\nreturn ['server' => env('OCTANE_SERVER', 'frankenphp')];\n",
	}))

	assert.True(t, root.Contains("config/octane.php", "frankenphp"))
	assert.False(t, root.Contains("config/octane.php", "FrankenPHP"), "search is case-sensitive")
	assert.False(t, root.Contains("config/octane.php", "swoole"))
	assert.False(t, root.Contains("config/missing.php", "frankenphp"))
	assert.False(t, root.Contains("config", "frankenphp"), "directories never contain text")
}

func TestMatches(t *testing.T) {
	root := NewRoot(testutil.Project(t, map[string]string{
		"routes/api.php": "Route::get('/health', HealthController::class);\n",
	}))

	assert.True(t, root.Matches("routes/api.php", `Route::get\('/health'`))
	assert.True(t, root.Matches("routes/api.php", `(?m)^Route::`))
	assert.False(t, root.Matches("routes/api.php", `Route::post`))
	assert.False(t, root.Matches("routes/web.php", `.*`))
	assert.False(t, root.Matches("routes/api.php", `(unclosed`), "invalid patterns never match")
}

func TestCountMatching(t *testing.T) {
	root := NewRoot(testutil.Project(t, map[string]string{
		"database/migrations/2024_01_01_000001_create_users_table.php":        "",
		"database/migrations/2024_01_01_000002_create_Roles_table.php":        "",
		"database/migrations/2024_01_01_000003_create_permissions_table.php":  "",
		"database/migrations/nested/2024_01_01_000004_create_users_table.php": "",
	}))

	assert.Equal(t, 1, root.CountMatching("database/migrations", `create_users_table`))
	assert.Equal(t, 1, root.CountMatching("database/migrations", `role`), "default is case-insensitive")
	assert.Equal(t, 0, root.CountMatching("database/migrations", `role`, CaseSensitive()))
	assert.Equal(t, 3, root.CountMatching("database/migrations", `\.php$`), "non-recursive")
	assert.Equal(t, 0, root.CountMatching("database/seeders", `.*`))
	assert.Equal(t, 0, root.CountMatching("database/migrations", `[`))
}

func TestListDir(t *testing.T) {
	root := NewRoot(testutil.Project(t, map[string]string{
		"app/Models/User.php":  "",
		"app/Models/Role.php":  "",
		"app/Models/Concerns/": "",
	}))

	names := root.ListDir("app/Models")
	sort.Strings(names)
	assert.Equal(t, []string{"Concerns", "Role.php", "User.php"}, names)

	missing := root.ListDir("app/Policies")
	require.NotNil(t, missing)
	assert.Empty(t, missing)

	assert.Empty(t, root.ListDir("app/Models/User.php"))
}

func TestPredicatesAreIdempotent(t *testing.T) {
	root := NewRoot(testutil.Project(t, map[string]string{
		"config/services.php": "'gitlab' => ['client_id' => env('GITLAB_CLIENT_ID')]",
	}))

	for i := 0; i < 2; i++ {
		assert.True(t, root.ExistsFile("config/services.php"))
		assert.True(t, root.Contains("config/services.php", "gitlab"))
		assert.True(t, root.Matches("config/services.php", `GITLAB_\w+`))
		assert.Equal(t, 1, root.CountMatching("config", `services`))
		assert.Equal(t, []string{"services.php"}, root.ListDir("config"))
	}
}

func TestMissingSubjectsNeverPanic(t *testing.T) {
	root := NewRoot(filepath.Join(t.TempDir(), "does-not-exist"))

	assert.NotPanics(t, func() {
		assert.False(t, root.ExistsFile("composer.json"))
		assert.False(t, root.ExistsDir("app"))
		assert.False(t, root.Contains("composer.json", "laravel"))
		assert.False(t, root.Matches("composer.json", "laravel"))
		assert.Equal(t, 0, root.CountMatching("database/migrations", "users"))
		assert.Empty(t, root.ListDir("app"))
	})
}

func TestNewRootIsAbsolute(t *testing.T) {
	root := NewRoot(".")
	assert.True(t, filepath.IsAbs(root.Dir()))
}

func TestFindRoot(t *testing.T) {
	project := testutil.Project(t, map[string]string{
		"verify/helpers.txt":    "",
		"app/Http/Controllers/": "",
	})
	project, err := filepath.EvalSymlinks(project)
	require.NoError(t, err)

	start := filepath.Join(project, "app", "Http", "Controllers")
	assert.Equal(t, project, FindRoot(start))
	assert.Equal(t, project, FindRoot(project))

	alone := t.TempDir()
	alone, err = filepath.EvalSymlinks(alone)
	require.NoError(t, err)
	assert.Equal(t, alone, FindRoot(alone, "a-marker-that-does-not-exist"))
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	root := NewRoot(dir)
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(abs, "config", "app.php"), root.Path("config/app.php"))
}

func TestContainsUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read any file")
	}
	dir := testutil.Project(t, map[string]string{"secret.php": "token"})
	require.NoError(t, os.Chmod(filepath.Join(dir, "secret.php"), 0o000))

	root := NewRoot(dir)
	assert.True(t, root.ExistsFile("secret.php"))
	assert.False(t, root.Contains("secret.php", "token"))
}
