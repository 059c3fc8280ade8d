/*
Package logger provides logging functionality to a waypoint app by defining the required behavior in [Logger]
and providing an implementation of it backed by [log/slog] with [*SlogLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
A [*LogContext] carries what cannot be tersely captured in the message itself:
the error instigating the log, the *http.Request being handled, and arbitrary data.

# SlogLogger

[New] wraps a [*log/slog.Logger] so call sites report the file and line of the code calling [Logger],
not this package.

In development, [NewColorWriter] colorizes each line a [log/slog.TextHandler] writes by its level.

# SentryLogger

[NewSentryLogger] wraps a [Logger] and additionally ships warnings and errors carrying a [LogContext.Error] to Sentry.
*/
package logger
