// Package launcher opens the settings window in a terminal emulator.
package launcher

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// TerminalEnv overrides the terminal command. The value is split on spaces
// and the settings command is appended to it.
const TerminalEnv = "EASYSURF_TERMINAL"

// CLIName is the name of the binary that hosts the settings window.
const CLIName = "easysurf"

// linuxTerminals are tried in order; each entry is the command followed by
// the flag that introduces the program to run.
var linuxTerminals = [][]string{
	{"x-terminal-emulator", "-e"},
	{"gnome-terminal", "--"},
	{"konsole", "-e"},
	{"xfce4-terminal", "-x"},
	{"xterm", "-e"},
}

// Launcher starts `easysurf settings` in a new terminal window.
type Launcher struct {
	goos       string
	getenv     func(string) string
	lookPath   func(string) (string, error)
	executable func() (string, error)
	start      func(*exec.Cmd) error
}

// New creates a launcher for the current platform.
func New() *Launcher {
	return &Launcher{
		goos:       runtime.GOOS,
		getenv:     os.Getenv,
		lookPath:   exec.LookPath,
		executable: os.Executable,
		start:      startDetached,
	}
}

// Launch opens the settings window. It returns once the terminal process has
// started.
func (l *Launcher) Launch() error {
	cmd, err := l.Command()
	if err != nil {
		return err
	}
	log.Printf("[launcher] Opening settings: %s", strings.Join(cmd.Args, " "))
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to open settings window: %w", err)
	}
	return nil
}

// Command builds the terminal command without running it.
func (l *Launcher) Command() (*exec.Cmd, error) {
	bin, err := l.findCLIBinary()
	if err != nil {
		return nil, err
	}

	if custom := strings.Fields(l.getenv(TerminalEnv)); len(custom) > 0 {
		return exec.Command(custom[0], append(custom[1:], bin, "settings")...), nil
	}

	switch l.goos {
	case "darwin":
		script := fmt.Sprintf("tell application \"Terminal\"\n do script %q\n activate\nend tell",
			shellQuote(bin)+" settings")
		return exec.Command("osascript", "-e", script), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "easysurf settings", bin, "settings"), nil
	}

	var candidates [][]string
	if term := l.getenv("TERMINAL"); term != "" {
		candidates = append(candidates, []string{term, "-e"})
	}
	candidates = append(candidates, linuxTerminals...)
	for _, c := range candidates {
		if path, err := l.lookPath(c[0]); err == nil {
			return exec.Command(path, c[1], bin, "settings"), nil
		}
	}
	return nil, fmt.Errorf("no terminal emulator found; set %s or run `%s settings` manually", TerminalEnv, CLIName)
}

// findCLIBinary locates the easysurf binary.
func (l *Launcher) findCLIBinary() (string, error) {
	name := CLIName
	if l.goos == "windows" {
		name += ".exe"
	}

	// Prefer the binary installed next to the daemon.
	if execPath, err := l.executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(execPath), name)
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}

	if path, err := l.lookPath(CLIName); err == nil {
		return path, nil
	}

	if _, err := os.Stat(filepath.Join("build", name)); err == nil {
		return filepath.Join("build", name), nil
	}

	return "", fmt.Errorf("%s not found. Install or build it first", CLIName)
}

func startDetached(cmd *exec.Cmd) error {
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
