package profiling

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
)

// CobraProfiler wires the --cpu-profile, --mem-profile and --timing
// flags into a command tree.
type CobraProfiler struct {
	cpuPath string
	memPath string
	timing  bool
	cpuOut  *os.File
}

// NewCobraProfiler returns a profiler ready to register its flags.
func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{}
}

// AddFlags registers the profiling flags as persistent flags on cmd.
func (p *CobraProfiler) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&p.cpuPath, "cpu-profile", "", "Write CPU profile to file")
	flags.StringVar(&p.memPath, "mem-profile", "", "Write memory profile to file")
	flags.BoolVar(&p.timing, "timing", false, "Print hierarchical timing summary on exit")
}

// PreRun starts the profilers the flags asked for. Meant to run from a
// PersistentPreRunE hook.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		Enable()
	}
	if p.cpuPath == "" {
		return nil
	}

	out, err := os.Create(p.cpuPath)
	if err != nil {
		return fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(out); err != nil {
		out.Close()
		return fmt.Errorf("start cpu profile: %w", err)
	}
	p.cpuOut = out
	return nil
}

// PostRun finishes the profilers and writes their outputs. Meant to run
// from a PersistentPostRun hook.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) {
	if p.cpuOut != nil {
		pprof.StopCPUProfile()
		p.cpuOut.Close()
		fmt.Printf("CPU profile written to %s\n", p.cpuPath)
	}
	if p.memPath != "" {
		p.writeHeapProfile()
	}
	if p.timing {
		Summarize(os.Stderr)
	}
}

func (p *CobraProfiler) writeHeapProfile() {
	out, err := os.Create(p.memPath)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)
		return
	}
	defer out.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(out); err != nil {
		log.Printf("could not write memory profile: %v", err)
		return
	}
	fmt.Printf("Memory profile written to %s\n", p.memPath)
}
