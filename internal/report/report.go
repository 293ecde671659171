// Package report emits the installer's human-readable progress,
// warning, and success output.
//
// The reporter never affects control flow or the exit status: it only
// formats what the pipeline tells it. Colors are applied only when
// stdout is a terminal.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/morikuni/aec"
)

// Reporter writes progress lines for each pipeline stage.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
	color  bool

	progressShown bool
}

// New creates a reporter writing to out and errOut. Color is enabled
// when out is a terminal.
func New(out, errOut io.Writer) *Reporter {
	r := &Reporter{out: out, errOut: errOut}
	if f, ok := out.(*os.File); ok {
		r.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

// NewPlain creates a reporter with color forced off, for tests.
func NewPlain(out, errOut io.Writer) *Reporter {
	return &Reporter{out: out, errOut: errOut}
}

// Step prints a stage-boundary progress line.
func (r *Reporter) Step(format string, args ...any) {
	r.endProgress()
	prefix := "==>"
	if r.color {
		prefix = aec.CyanF.Apply(prefix)
	}
	fmt.Fprintf(r.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Warn prints a non-fatal warning. Warnings never terminate the run.
func (r *Reporter) Warn(format string, args ...any) {
	r.endProgress()
	label := "warning:"
	if r.color {
		label = aec.YellowF.Apply(label)
	}
	fmt.Fprintf(r.out, "%s %s\n", label, fmt.Sprintf(format, args...))
}

// Error prints a fatal diagnostic to the error stream.
func (r *Reporter) Error(err error) {
	r.endProgress()
	label := "error:"
	if r.color {
		label = aec.RedF.Apply(label)
	}
	fmt.Fprintf(r.errOut, "%s %v\n", label, err)
}

// Success prints the final success line naming the installed path.
func (r *Reporter) Success(installedPath, version string) {
	r.endProgress()
	msg := fmt.Sprintf("installed assay %s to %s", version, installedPath)
	if r.color {
		msg = aec.GreenF.Apply(msg)
	}
	fmt.Fprintln(r.out, msg)
}

// Progress rewrites an in-place download progress line. Only shown on a
// terminal; non-interactive output stays one line per stage.
func (r *Reporter) Progress(downloaded, total int64) {
	if !r.color {
		return
	}
	line := fmt.Sprintf("    %s", humanize.Bytes(uint64(downloaded)))
	if total > 0 {
		line = fmt.Sprintf("    %s / %s", humanize.Bytes(uint64(downloaded)), humanize.Bytes(uint64(total)))
	}
	fmt.Fprintf(r.out, "\r%s%s", aec.EraseLine(aec.EraseModes.Tail), line)
	r.progressShown = true
}

func (r *Reporter) endProgress() {
	if r.progressShown {
		fmt.Fprintln(r.out)
		r.progressShown = false
	}
}

// PathHint warns when installDir is absent from PATH and shows the
// exact line to add for the user's shell.
func (r *Reporter) PathHint(installDir string) {
	if OnPath(installDir, os.Getenv("PATH")) {
		return
	}

	shell := DetectShell()
	r.Warn("%s is not on your PATH", installDir)
	fmt.Fprintf(r.out, "    add it by appending this line to %s:\n", RCFile(shell))
	fmt.Fprintf(r.out, "        %s\n", ExportLine(shell, installDir))
}
