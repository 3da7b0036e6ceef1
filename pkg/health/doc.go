// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"mailer": contactService.Healthcheck,
//	}, health.WithTimeout(2*time.Second)))
//
// Readiness runs every check concurrently under one timeout. Probes get plain
// text ("OK" or "Service Unavailable"); clients asking for JSON via the Accept
// header or ?format=json get per-check detail:
//
//	{"status":"unhealthy","checks":{"mailer":{"status":"unhealthy","error":"..."}}}
package health
