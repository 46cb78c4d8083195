// Package proc is the execution and job-control engine of the shell.
//
// It turns token sequences into command requests, resolves program names
// against the search path, launches child processes with redirections
// applied, isolates each child in its own process group, and delegates
// interactive interrupts to the foreground job.
package proc
