/*
Package waypoint holds the values shared across a waypoint app:
the [Environment] it runs in, the context [Key]s request middleware stashes values under,
the log kinds emitted by its loggers, and the EnvVarOr* helpers for reading configuration.

The web server itself is assembled by package ranger.
*/
package waypoint
