package milestone

import "context"

// verifyM1 checks the core infrastructure tasks T1–T11.
func verifyM1(ctx context.Context, s *Script) {
	r := s.Root()
	migrations := func(pattern string) bool {
		return r.CountMatching("database/migrations", pattern) > 0
	}

	s.Section("T1: Scaffold Laravel Project")
	s.Record("composer.json exists", r.ExistsFile("composer.json"))
	s.Record("artisan exists", r.ExistsFile("artisan"))
	s.Record("app/ directory exists", r.ExistsDir("app"))
	s.Record("config/ directory exists", r.ExistsDir("config"))
	s.Record("routes/ directory exists", r.ExistsDir("routes"))
	s.Record("Laravel Octane in composer.json", r.Contains("composer.json", "laravel/octane"))
	s.Record("Laravel AI SDK in composer.json", r.Contains("composer.json", "laravel/ai"))
	s.Record("Laravel Socialite in composer.json", r.Contains("composer.json", "laravel/socialite"))
	s.Record("Laravel Reverb in composer.json", r.Contains("composer.json", "laravel/reverb"))
	s.Record("FrankenPHP configured in Octane config", r.Contains("config/octane.php", "frankenphp"))
	s.Record("Vite configured", r.ExistsFile("vite.config.js") || r.ExistsFile("vite.config.ts"))

	s.Section("T2: Docker Compose")
	compose := "compose.yml"
	if r.ExistsFile("docker-compose.yml") {
		compose = "docker-compose.yml"
	}
	if s.Record("Docker Compose file exists", r.ExistsFile(compose)) {
		s.Record("PostgreSQL service defined", r.Contains(compose, "postgres"))
		s.Record("Redis service defined", r.Contains(compose, "redis"))
		s.Record("Reverb service or config present",
			r.Contains(compose, "reverb") || r.Contains(compose, "REVERB"))
		s.Record("FrankenPHP or app service defined",
			r.Contains(compose, "frankenphp") || r.Contains(compose, "app"))
	}

	s.Section("T3: Migrations — Auth & RBAC Tables")
	s.Record("migrations/ directory exists", r.ExistsDir("database/migrations"))
	s.Record("users migration exists", migrations(`create_users_table`))
	s.Record("projects migration exists", migrations(`create_projects_table`))
	s.Record("roles migration exists", migrations(`role`))
	s.Record("permissions migration exists", migrations(`permission`))

	s.Section("T4: Migrations — Task & Conversation Tables")
	s.Record("tasks migration exists", migrations(`create_tasks_table`))
	s.Record("conversations or agent_conversations migration exists", migrations(`conversation`))

	s.Section("T5: Migrations — Operational Tables")
	s.Record("audit_logs migration exists", migrations(`audit`))
	s.Record("dead_letter_queue migration exists", migrations(`dead_letter`))
	s.Record("global_settings migration exists", migrations(`global_setting`))
	s.Record("api_keys migration exists", migrations(`api_key`))
	s.Record("project_configs migration exists", migrations(`project_config`))

	s.Section("T6: Health Check Endpoint")
	s.Record("Health route defined",
		r.Contains("routes/api.php", "health") || r.Contains("routes/web.php", "health"))

	s.Section("T7: GitLab OAuth")
	s.Record("Socialite GitLab provider configured", r.Contains("config/services.php", "gitlab"))
	s.Record("Auth routes defined",
		r.Contains("routes/web.php", "auth") ||
			r.ExistsFile("app/Http/Controllers/Auth/GitLabController.php") ||
			r.ExistsFile("app/Http/Controllers/AuthController.php"))

	s.Section("T8: User Model + Membership Sync")
	s.Record("User model exists", r.ExistsFile("app/Models/User.php"))
	s.Record("User model has GitLab fields", r.Contains("app/Models/User.php", "gitlab"))

	s.Section("T9: RBAC System")
	s.Record("Role model exists", r.ExistsFile("app/Models/Role.php"))
	s.Record("Permission model exists", r.ExistsFile("app/Models/Permission.php"))
	s.Record("Authorization middleware or policy exists",
		r.ExistsFile("app/Http/Middleware/CheckPermission.php") ||
			r.ExistsFile("app/Http/Middleware/RbacMiddleware.php") ||
			r.ExistsDir("app/Policies"))

	s.Section("T10: Global Configuration Model")
	s.Record("GlobalSetting model exists", r.ExistsFile("app/Models/GlobalSetting.php"))

	s.Section("T11: GitLab HTTP Client Service")
	s.Record("GitLab client service exists",
		r.ExistsFile("app/Services/GitLabClient.php") ||
			r.ExistsFile("app/Services/GitLab/GitLabClient.php") ||
			r.ExistsFile("app/Services/GitLab/Client.php"))

	s.Section("Runtime: Laravel Tests")
	s.Runtime(ctx, RuntimeCheck{
		Name:        "php artisan test passes",
		Command:     "php artisan test 2>&1",
		Unavailable: "artisan not available (Laravel not yet scaffolded?)",
	})

	s.Section("Runtime: Migrations")
	s.Runtime(ctx, RuntimeCheck{
		Name:        "php artisan migrate:status succeeds",
		Command:     "php artisan migrate:status 2>&1",
		Unavailable: "artisan not available (Laravel not yet scaffolded?)",
		Failure:     "services may not be running",
		Quiet:       true,
	})
}
