package main

import "os"

// Exit codes per spec §6: 0 success, 130 operator interrupt, the
// subprocess exit code on a failed external command, 1 otherwise.
const (
	ExitSuccess     = 0
	ExitGeneral     = 1
	ExitInterrupted = 130
)

func exitWithCode(code int) {
	os.Exit(code)
}
