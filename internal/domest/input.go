package domest

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"domest/config"
)

// Flags contains the parsed cobra flags shared by the plan and run
// commands
type Flags struct {
	// in is the path to a FASTA or plain sequence file
	in string

	// out is the path the plan/result JSON is written to
	out string

	// enzyme is the assembly enzyme's registry name
	enzyme string

	// frame is the reading frame offset, -1 when unknown
	frame int

	// strategy is the preferred strategy, "" for the configured default
	strategy string

	// existing is overhangs already committed elsewhere in the assembly
	existing []string

	// custom asks for per-site selection by the user
	custom bool

	// yes executes the plan even when user actions are pending,
	// taking the engine's top-ranked option everywhere
	yes bool
}

// parseFlags gathers the in path, out path, enzyme, etc from the
// cobra cmd object
func parseFlags(cmd *cobra.Command) (*Flags, error) {
	f := &Flags{}
	var err error

	if f.in, err = cmd.Flags().GetString("in"); err != nil || f.in == "" {
		return nil, fmt.Errorf("an input sequence file is required, see --in")
	}

	if f.out, err = cmd.Flags().GetString("out"); err != nil || f.out == "" {
		f.out = guessOutput(f.in)
	}

	if f.enzyme, err = cmd.Flags().GetString("enzyme"); err != nil || f.enzyme == "" {
		return nil, fmt.Errorf("an assembly enzyme is required, see --enzyme")
	}

	f.frame, _ = cmd.Flags().GetInt("frame")
	f.strategy, _ = cmd.Flags().GetString("strategy")
	f.custom, _ = cmd.Flags().GetBool("custom")
	f.yes, _ = cmd.Flags().GetBool("yes")

	existing, _ := cmd.Flags().GetString("existing")
	for _, overhang := range strings.Split(existing, ",") {
		overhang = strings.TrimSpace(strings.ToUpper(overhang))
		if overhang == "" {
			continue
		}
		if !seqRegex.MatchString(overhang) {
			return nil, fmt.Errorf("invalid overhang %s in --existing, ATGC only", overhang)
		}
		f.existing = append(f.existing, overhang)
	}

	return f, nil
}

// readSeq reads the first sequence from a FASTA file, or the whole
// file as one sequence if it has no FASTA header
func readSeq(path string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %v", path, err)
	}

	lines := strings.Split(string(contents), "\n")
	var seq strings.Builder
	inRecord := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			if inRecord {
				break // only the first record
			}
			inRecord = true
			continue
		}
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		seq.WriteString(line)
	}

	if seq.Len() == 0 {
		return "", fmt.Errorf("no sequence found in %s", path)
	}
	return seq.String(), nil
}

// request builds the plan request from parsed flags
func (f *Flags) request(seq string) PlanRequest {
	return PlanRequest{
		Seq:       seq,
		Enzyme:    f.enzyme,
		Frame:     f.frame,
		Preferred: Strategy(f.strategy),
		Existing:  f.existing,
		Custom:    f.custom,
	}
}

// PlanCmd takes a cobra command (with its flags) and writes a
// domestication plan for the input sequence
func PlanCmd(cmd *cobra.Command, args []string) {
	conf := config.New()

	flags, err := parseFlags(cmd)
	if err != nil {
		stderr.Fatal(err)
	}

	seq, err := readSeq(flags.in)
	if err != nil {
		stderr.Fatal(err)
	}

	plan, err := Plan(flags.request(seq), conf)
	if err != nil {
		stderr.Fatalf("failed to plan domestication of %s: %v", flags.in, err)
	}

	if err := writeJSON(flags.out, plan); err != nil {
		stderr.Fatal(err)
	}

	fmt.Printf("%s: %d site(s), strategy %s, %d user action(s)\n",
		plan.Enzyme, len(plan.Sites), plan.Strategy, len(plan.UserActions))
}

// RunCmd plans and, if no user confirmation is pending (or --yes was
// passed), executes to a domestication result
func RunCmd(cmd *cobra.Command, args []string) {
	conf := config.New()

	flags, err := parseFlags(cmd)
	if err != nil {
		stderr.Fatal(err)
	}

	seq, err := readSeq(flags.in)
	if err != nil {
		stderr.Fatal(err)
	}

	plan, err := Plan(flags.request(seq), conf)
	if err != nil {
		stderr.Fatalf("failed to plan domestication of %s: %v", flags.in, err)
	}

	if !plan.Ready() && !flags.yes {
		if err := writeJSON(flags.out, plan); err != nil {
			stderr.Fatal(err)
		}
		stderr.Fatalf("%d user action(s) pending, wrote the plan to %s. rerun with --yes to take the top-ranked options", len(plan.UserActions), flags.out)
	}

	result := Execute(plan, nil)
	if err := writeJSON(flags.out, result); err != nil {
		stderr.Fatal(err)
	}

	if result.Success {
		fmt.Printf("domesticated with %s\n", result.Strategy)
	} else {
		fmt.Printf("execution finished with issues: %s\n", strings.Join(result.Verification.Issues, "; "))
	}
}
