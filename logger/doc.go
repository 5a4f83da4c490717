/*
Package logger wraps log15 with the handlers the application configures from
app.conf: one handler per level, terminal or rotating file output, and an
optional separate output for request log lines.

Every component forks its own logger from a parent with New, adding context
such as module=app or section=session, so a single SetHandler on the root
reconfigures all of them.
*/
package logger
