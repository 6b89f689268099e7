package env

import (
	"fmt"
	"io"
	"os/exec"
)

// Exec runs args in the project directory with the computed environment
func Exec(env *Environment, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: homelab env exec -- <cmd...>")
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = env.ProjectDir
	cmd.Env = env.MergeWithCurrent()

	// Connect stdio
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
