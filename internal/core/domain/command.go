package domain

import "time"

// Command describes one external tool invocation.
type Command struct {
	// Program is the binary name or path.
	Program string

	// Args are the program arguments, excluding the program itself.
	Args []string

	// Dir is the working directory, empty for the caller's.
	Dir string

	// Timeout bounds the invocation; zero means no deadline beyond the
	// caller's context.
	Timeout time.Duration
}

// CommandOutput is the captured result of a completed invocation.
type CommandOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr, for diagnostic capture.
func (o CommandOutput) Combined() string {
	if o.Stdout == "" {
		return o.Stderr
	}
	if o.Stderr == "" {
		return o.Stdout
	}
	return o.Stdout + "\n" + o.Stderr
}
