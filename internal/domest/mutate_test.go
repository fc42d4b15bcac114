package domest

import (
	"strings"
	"testing"
)

func Test_generateMutations(t *testing.T) {
	tables := newCodonTables()
	usage := usageTable("e_coli")
	enz := mustEnzyme(t, "BsaI")

	// GGTCTC at 48, frame 0: codons GGT (Gly) and CTC (Leu), each with
	// a synonymous wobble substitution
	seq := withSites(120, map[int]string{48: "GGTCTC"})
	site := findInternalSites(seq, enz)[0]

	candidates := generateMutations(seq, site, 0, tables, usage)
	if len(candidates) != 6 {
		t.Fatalf("generateMutations() returned %d candidates, want 6", len(candidates))
	}

	for _, cand := range candidates {
		// synonymy invariant
		if tables.aminoAcid(cand.OrigCodon) != tables.aminoAcid(cand.NewCodon) {
			t.Errorf("candidate %+v isn't synonymous", cand)
		}
		if tables.aminoAcid(cand.OrigCodon) != cand.AminoAcid {
			t.Errorf("candidate %+v has wrong amino acid", cand)
		}

		// site-breaking invariant: the recognition pattern no longer
		// matches at the site's span after applying the candidate
		mutated := cand.apply(seq)
		text := mutated[site.Position:site.end()]
		if text == enz.recog || text == revComp(enz.recog) {
			t.Errorf("candidate %+v doesn't break the site", cand)
		}
		if !cand.BreaksSite {
			t.Errorf("candidate %+v not marked as site breaking", cand)
		}

		// protein identity over the whole sequence
		if tables.translateFrame(seq, 0) != tables.translateFrame(mutated, 0) {
			t.Errorf("candidate %+v changes the protein", cand)
		}
	}
}

func Test_generateMutations_reverseSite(t *testing.T) {
	tables := newCodonTables()
	usage := usageTable("e_coli")
	enz := mustEnzyme(t, "BsaI")

	// GAGACC (reverse orientation BsaI) at 48, frame 0: codons GAG
	// (Glu) and ACC (Thr), both with synonymous options
	seq := withSites(120, map[int]string{48: "GAGACC"})
	site := findInternalSites(seq, enz)[0]
	if site.Forward {
		t.Fatal("expected a reverse orientation site")
	}

	candidates := generateMutations(seq, site, 0, tables, usage)
	if len(candidates) == 0 {
		t.Fatal("expected candidates for a reverse site in a codon with synonyms")
	}
	for _, cand := range candidates {
		mutated := cand.apply(seq)
		if strings.Contains(mutated[site.Position:site.end()], enz.recog) {
			t.Errorf("candidate %+v leaves a forward match", cand)
		}
		if mutated[site.Position:site.end()] == revComp(enz.recog) {
			t.Errorf("candidate %+v leaves the reverse match intact", cand)
		}
	}
}

func Test_generateMutations_noFrame(t *testing.T) {
	tables := newCodonTables()
	usage := usageTable("e_coli")
	enz := mustEnzyme(t, "BsaI")

	seq := withSites(120, map[int]string{48: "GGTCTC"})
	site := findInternalSites(seq, enz)[0]

	// unknown frame: an empty list, not an error
	if got := generateMutations(seq, site, -1, tables, usage); len(got) != 0 {
		t.Errorf("generateMutations() with frame -1 = %v, want none", got)
	}
}

func Test_generateMutations_truncatedCodon(t *testing.T) {
	tables := newCodonTables()
	usage := usageTable("e_coli")
	enz := mustEnzyme(t, "BsaI")

	// the site's last codon runs off the end of the sequence: positions
	// inside it are skipped instead of panicking
	seq := withSites(53, map[int]string{47: "GGTCTC"})
	site := findInternalSites(seq, enz)[0]

	for _, cand := range generateMutations(seq, site, 0, tables, usage) {
		if cand.Position >= 51 {
			t.Errorf("candidate at %d is inside an incomplete codon", cand.Position)
		}
	}
}

func Test_disrupts(t *testing.T) {
	enz := mustEnzyme(t, "BsaI")
	seq := withSites(120, map[int]string{48: "GGTCTC", 60: "GGTCTC"})
	sites := findInternalSites(seq, enz)
	if len(sites) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(sites))
	}

	inFirst := MutationCandidate{Position: 50, NewBase: "A"}
	if !inFirst.disrupts(seq, sites[0], enz) {
		t.Error("a substitution inside the first site should disrupt it")
	}
	if inFirst.disrupts(seq, sites[1], enz) {
		t.Error("a substitution inside the first site shouldn't disrupt the second")
	}
}
