// Package jobqueue reads job-state snapshots from schedd queue databases.
//
// Each configured queue source is a SQLite database maintained by its
// schedd. The frontend only ever reads: it snapshots the idle and running
// job sets independently at the start of an iteration and discards them at
// the end. The two snapshots are taken with separate queries and carry no
// mutual consistency guarantee.
package jobqueue
