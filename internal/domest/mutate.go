package domest

// MutationCandidate is a single synonymous base substitution that
// disrupts an internal recognition site
type MutationCandidate struct {
	// Position of the substituted base on the full sequence
	Position int `json:"sequencePosition"`

	// CodonPos is the base's position within its codon: 0, 1 or 2 (wobble)
	CodonPos int `json:"positionInCodon"`

	// OrigBase and NewBase are the substitution itself
	OrigBase string `json:"originalBase"`
	NewBase  string `json:"newBase"`

	// OrigCodon and NewCodon both encode AminoAcid
	OrigCodon string `json:"originalCodon"`
	NewCodon  string `json:"newCodon"`

	// AminoAcid is the single letter amino acid both codons encode
	AminoAcid string `json:"aminoAcid"`

	// FreqRatio is the new codon's usage frequency over the original's
	FreqRatio float64 `json:"codonFrequencyRatio"`

	// BreaksSite is whether the substitution disrupts the site's match
	BreaksSite bool `json:"breaksSite"`
}

// generateMutations enumerates every single-base substitution within
// the site's span that is synonymous in the given reading frame and
// disrupts the recognition match.
//
// An empty list is a normal outcome, not an error: a site made of
// single-codon amino acids (Met, Trp) or sitting outside complete
// codons may have no silent option, and the caller falls back to a
// junction strategy
func generateMutations(seq string, site InternalSite, frame int, tables *codonTables, usage map[string]float64) []MutationCandidate {
	candidates := []MutationCandidate{}
	if frame < 0 || frame > 2 {
		return candidates
	}

	for p := site.Position; p < site.end(); p++ {
		if p < frame {
			continue
		}

		// the codon enclosing position p in this reading frame
		codonStart := frame + 3*((p-frame)/3)
		if codonStart+3 > len(seq) {
			continue
		}

		origCodon := seq[codonStart : codonStart+3]
		aminoAcid := tables.aminoAcid(origCodon)
		if aminoAcid == "" {
			continue
		}

		codonPos := p - codonStart
		origBase := seq[p]
		for _, newBase := range []byte{'A', 'C', 'G', 'T'} {
			if newBase == origBase {
				continue
			}

			newCodon := spliceBase(origCodon, codonPos, newBase)
			if tables.aminoAcid(newCodon) != aminoAcid {
				continue // not synonymous
			}

			// splice the substitution into the matched text and make sure
			// the site no longer reads as the recognition sequence in the
			// site's recorded orientation
			mutated := spliceBase(site.Seq, p-site.Position, newBase)
			recog := site.Seq
			if !site.Forward {
				recog = revComp(site.Seq)
			}
			breaks := mutated != recog && revComp(mutated) != recog
			if !breaks {
				continue
			}

			candidates = append(candidates, MutationCandidate{
				Position:   p,
				CodonPos:   codonPos,
				OrigBase:   string(origBase),
				NewBase:    string(newBase),
				OrigCodon:  origCodon,
				NewCodon:   newCodon,
				AminoAcid:  aminoAcid,
				FreqRatio:  usageRatio(usage, origCodon, newCodon),
				BreaksSite: true,
			})
		}
	}

	return candidates
}

// apply splices the candidate's substitution into a copy of seq
func (m MutationCandidate) apply(seq string) string {
	return spliceBase(seq, m.Position, m.NewBase[0])
}

// disrupts is whether applying this candidate to seq leaves the given
// site without a recognition match at its recorded span. Used when one
// mutation is tested against every site in an adjacent group
func (m MutationCandidate) disrupts(seq string, site InternalSite, enz enzyme) bool {
	mutated := m.apply(seq)
	text := mutated[site.Position:site.end()]
	return text != enz.recog && text != revComp(enz.recog)
}
