package domest

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// enzyme is a single Type IIS enzyme with a cut site outside its
// recognition sequence, leaving an overhang of a fixed length
type enzyme struct {
	name string

	// recog is the recognition sequence, unambiguous ATGC only
	recog string

	// cutOffset is the gap between the recognition sequence and the cut
	cutOffset int

	// overhangLen is the length of the single stranded overhang left after cutting
	overhangLen int
}

// EnzymeRegistry is a closed set of Type IIS enzyme descriptors,
// validated at construction so lookups can't return a half-formed enzyme
type EnzymeRegistry struct {
	enzymes map[string]enzyme
}

// NewEnzymeRegistry returns the registry of supported Type IIS enzymes
func NewEnzymeRegistry() *EnzymeRegistry {
	list := []enzyme{
		{name: "BsaI", recog: "GGTCTC", cutOffset: 1, overhangLen: 4},
		{name: "BbsI", recog: "GAAGAC", cutOffset: 2, overhangLen: 4},
		{name: "BsmBI", recog: "CGTCTC", cutOffset: 1, overhangLen: 4},
		{name: "Esp3I", recog: "CGTCTC", cutOffset: 1, overhangLen: 4},
		{name: "SapI", recog: "GCTCTTC", cutOffset: 1, overhangLen: 3},
		{name: "PaqCI", recog: "CACCTGC", cutOffset: 4, overhangLen: 4},
		{name: "AarI", recog: "CACCTGC", cutOffset: 4, overhangLen: 4},
	}

	enzymes := make(map[string]enzyme)
	for _, enz := range list {
		if !seqRegex.MatchString(enz.recog) {
			stderr.Fatalf("invalid recognition sequence for %s: %s", enz.name, enz.recog)
		}
		if enz.overhangLen < 1 || enz.cutOffset < 0 {
			stderr.Fatalf("invalid cut parameters for %s", enz.name)
		}
		enzymes[enz.name] = enz
	}

	return &EnzymeRegistry{enzymes: enzymes}
}

// Get returns the named enzyme. An unknown name is one of the two
// hard validation failures
func (r *EnzymeRegistry) Get(name string) (enzyme, error) {
	enz, ok := r.enzymes[name]
	if !ok {
		return enzyme{}, fmt.Errorf("unknown enzyme %s, run 'domest enzymes' for the supported list", name)
	}
	return enz, nil
}

// Names returns the sorted names of every registry enzyme
func (r *EnzymeRegistry) Names() []string {
	names := make([]string, 0, len(r.enzymes))
	for name := range r.enzymes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InternalSite is one occurrence of an enzyme's recognition sequence
// within the sequence being domesticated
type InternalSite struct {
	// Position is the 0-based start of the matched sequence
	Position int `json:"position"`

	// Seq is the matched sequence as it reads on the template strand
	Seq string `json:"seq"`

	// Forward is true if the recognition sequence matched the template
	// strand, false if it matched the reverse complement
	Forward bool `json:"forward"`
}

// end is the exclusive end index of the site's span
func (s InternalSite) end() int {
	return s.Position + len(s.Seq)
}

// findInternalSites scans seq for occurrences of the enzyme's
// recognition sequence on both strands. Sites are returned sorted
// by position
func findInternalSites(seq string, enz enzyme) []InternalSite {
	sites := []InternalSite{}

	// template strand
	offset := 0
	for {
		i := strings.Index(seq[offset:], enz.recog)
		if i < 0 {
			break
		}
		sites = append(sites, InternalSite{
			Position: offset + i,
			Seq:      enz.recog,
			Forward:  true,
		})
		offset += i + 1
	}

	// reverse complement strand, recorded against template coordinates
	rcRecog := revComp(enz.recog)
	offset = 0
	for {
		i := strings.Index(seq[offset:], rcRecog)
		if i < 0 {
			break
		}
		sites = append(sites, InternalSite{
			Position: offset + i,
			Seq:      rcRecog,
			Forward:  false,
		})
		offset += i + 1
	}

	sort.Slice(sites, func(i, j int) bool {
		return sites[i].Position < sites[j].Position
	})
	return sites
}

// zeroSiteEnzymes returns the names of registry enzymes with no
// internal sites in seq, sorted with same-overhang-length enzymes first.
// Used to recommend an alternative enzyme
func (r *EnzymeRegistry) zeroSiteEnzymes(seq string, current enzyme) []string {
	clean := []string{}
	for _, name := range r.Names() {
		enz := r.enzymes[name]
		if enz.name == current.name || enz.recog == current.recog {
			continue
		}
		if len(findInternalSites(seq, enz)) == 0 {
			clean = append(clean, name)
		}
	}

	sort.SliceStable(clean, func(i, j int) bool {
		a, b := r.enzymes[clean[i]], r.enzymes[clean[j]]
		aMatch := a.overhangLen == current.overhangLen
		bMatch := b.overhangLen == current.overhangLen
		return aMatch && !bMatch
	})
	return clean
}

// ReadCmd lists the registry's enzymes, or the one requested by name
func (r *EnzymeRegistry) ReadCmd(cmd *cobra.Command, args []string) {
	// from https://golang.org/pkg/text/tabwriter/
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.TabIndent)

	names := r.Names()
	if len(args) > 0 {
		names = []string{args[0]}
	}

	fmt.Fprintf(w, "name\trecognition\tcut offset\toverhang\n")
	for _, name := range names {
		enz, err := r.Get(name)
		if err != nil {
			stderr.Fatal(err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", enz.name, enz.recog, enz.cutOffset, enz.overhangLen)
	}
	w.Flush()
}
