// Package bootstrap runs the meetnotes service lifecycle: start registered
// components in order, run hooks, log a start-up summary, wait for a
// signal and shut down in reverse order within a grace period.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(server.NewComponent(srv))
//	app.OnStop(func(ctx context.Context) error { return shutdownTelemetry(ctx) })
//	err = app.Run(ctx)
package bootstrap
