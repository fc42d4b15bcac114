package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"domest/internal/domest"
)

// planCmd writes a domestication plan without executing it
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan the domestication of a sequence without executing it",
	Long: `Plan the domestication of a sequence: find internal recognition sites,
work out silent mutation and junction options per site, select a strategy,
and optimize the overhang set. The plan lists every choice awaiting user
confirmation instead of guessing`,
	Run: domestPlanCmd,
}

// runCmd plans and executes in one go
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plan and execute the domestication of a sequence",
	Long: `Plan and execute the domestication of a sequence, producing either
the domesticated sequence (silent mutation) or the fragment and primer
set (mutagenic junctions), with a verification report`,
	Run: domestRunCmd,
}

func domestPlanCmd(cmd *cobra.Command, args []string) { domest.PlanCmd(cmd, args) }
func domestRunCmd(cmd *cobra.Command, args []string)  { domest.RunCmd(cmd, args) }

// addDomesticationFlags registers the flags shared by plan and run
func addDomesticationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("in", "i", "", "path to a FASTA or plain sequence file")
	cmd.Flags().StringP("out", "o", "", "path to write the output JSON to (default <in>.domest.json)")
	cmd.Flags().StringP("enzyme", "e", "BsaI", "name of the assembly enzyme, see 'domest enzymes'")
	cmd.Flags().IntP("frame", "f", -1, "reading frame offset (0, 1 or 2), -1 if unknown")
	cmd.Flags().StringP("strategy", "s", "", "preferred strategy (silent_mutation, mutagenic_junction, alternative_enzyme)")
	cmd.Flags().String("existing", "", "comma separated overhangs already committed elsewhere in the assembly")
	cmd.Flags().Bool("custom", false, "choose the mutation for each site instead of taking the top-ranked one")

	viper.BindPFlag("strategy", cmd.Flags().Lookup("strategy"))
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(runCmd)

	addDomesticationFlags(planCmd)
	addDomesticationFlags(runCmd)
	runCmd.Flags().BoolP("yes", "y", false, "execute even with user actions pending, taking the top-ranked options")
}
