package domest

import (
	"strings"

	"github.com/koeng101/poly"
)

// codonTables maps codons to amino acids and back. Built once from
// poly's standard codon table, stops encoded as "*"
type codonTables struct {
	// translate is codon -> single letter amino acid
	translate map[string]string

	// synonyms is single letter amino acid -> codons encoding it
	synonyms map[string][]string
}

// newCodonTables converts poly's standard table (NCBI table 1) into
// lookup maps
func newCodonTables() *codonTables {
	src := poly.GetCodonTable(1)

	t := &codonTables{
		translate: make(map[string]string),
		synonyms:  make(map[string][]string),
	}
	for _, aa := range src.AminoAcids {
		for _, c := range aa.Codons {
			triplet := strings.ToUpper(c.Triplet)
			t.translate[triplet] = aa.Letter
			t.synonyms[aa.Letter] = append(t.synonyms[aa.Letter], triplet)
		}
	}
	return t
}

// aminoAcid is the single letter amino acid for a codon, "" if the
// codon is unknown
func (t *codonTables) aminoAcid(codon string) string {
	return t.translate[codon]
}

// translateFrame translates seq from the reading frame offset,
// stopping before any partial trailing codon
func (t *codonTables) translateFrame(seq string, frame int) string {
	if frame < 0 || frame >= len(seq) {
		return ""
	}

	var protein strings.Builder
	for i := frame; i+3 <= len(seq); i += 3 {
		aa := t.translate[seq[i:i+3]]
		if aa == "" {
			aa = "X"
		}
		protein.WriteString(aa)
	}
	return protein.String()
}

// codonUsage is the relative usage of each codon within its synonym
// family, per organism. Static data, same shape as the optimization
// tables pulled from genome annotation
var codonUsage = map[string]map[string]float64{
	"e_coli": {
		"TTT": 0.57, "TTC": 0.43,
		"TTA": 0.13, "TTG": 0.13, "CTT": 0.10, "CTC": 0.10, "CTA": 0.04, "CTG": 0.50,
		"ATT": 0.51, "ATC": 0.42, "ATA": 0.07,
		"ATG": 1.00,
		"GTT": 0.26, "GTC": 0.22, "GTA": 0.15, "GTG": 0.37,
		"TCT": 0.15, "TCC": 0.15, "TCA": 0.12, "TCG": 0.15, "AGT": 0.15, "AGC": 0.28,
		"CCT": 0.16, "CCC": 0.12, "CCA": 0.19, "CCG": 0.53,
		"ACT": 0.17, "ACC": 0.44, "ACA": 0.13, "ACG": 0.26,
		"GCT": 0.16, "GCC": 0.27, "GCA": 0.21, "GCG": 0.36,
		"TAT": 0.57, "TAC": 0.43,
		"TAA": 0.64, "TAG": 0.07, "TGA": 0.29,
		"CAT": 0.57, "CAC": 0.43,
		"CAA": 0.35, "CAG": 0.65,
		"AAT": 0.45, "AAC": 0.55,
		"AAA": 0.77, "AAG": 0.23,
		"GAT": 0.63, "GAC": 0.37,
		"GAA": 0.69, "GAG": 0.31,
		"TGT": 0.45, "TGC": 0.55,
		"TGG": 1.00,
		"CGT": 0.38, "CGC": 0.40, "CGA": 0.06, "CGG": 0.10, "AGA": 0.04, "AGG": 0.02,
		"GGT": 0.34, "GGC": 0.40, "GGA": 0.11, "GGG": 0.15,
	},
	"s_cerevisiae": {
		"TTT": 0.59, "TTC": 0.41,
		"TTA": 0.28, "TTG": 0.29, "CTT": 0.13, "CTC": 0.06, "CTA": 0.14, "CTG": 0.11,
		"ATT": 0.46, "ATC": 0.26, "ATA": 0.27,
		"ATG": 1.00,
		"GTT": 0.39, "GTC": 0.21, "GTA": 0.21, "GTG": 0.19,
		"TCT": 0.26, "TCC": 0.16, "TCA": 0.21, "TCG": 0.10, "AGT": 0.16, "AGC": 0.11,
		"CCT": 0.31, "CCC": 0.15, "CCA": 0.42, "CCG": 0.12,
		"ACT": 0.35, "ACC": 0.22, "ACA": 0.30, "ACG": 0.14,
		"GCT": 0.38, "GCC": 0.22, "GCA": 0.29, "GCG": 0.11,
		"TAT": 0.56, "TAC": 0.44,
		"TAA": 0.47, "TAG": 0.23, "TGA": 0.30,
		"CAT": 0.64, "CAC": 0.36,
		"CAA": 0.69, "CAG": 0.31,
		"AAT": 0.59, "AAC": 0.41,
		"AAA": 0.58, "AAG": 0.42,
		"GAT": 0.65, "GAC": 0.35,
		"GAA": 0.70, "GAG": 0.30,
		"TGT": 0.63, "TGC": 0.37,
		"TGG": 1.00,
		"CGT": 0.14, "CGC": 0.06, "CGA": 0.07, "CGG": 0.04, "AGA": 0.48, "AGG": 0.21,
		"GGT": 0.47, "GGC": 0.19, "GGA": 0.22, "GGG": 0.12,
	},
	"p_pastoris": {
		"TTT": 0.56, "TTC": 0.44,
		"TTA": 0.16, "TTG": 0.33, "CTT": 0.16, "CTC": 0.08, "CTA": 0.11, "CTG": 0.16,
		"ATT": 0.50, "ATC": 0.31, "ATA": 0.19,
		"ATG": 1.00,
		"GTT": 0.42, "GTC": 0.23, "GTA": 0.15, "GTG": 0.20,
		"TCT": 0.29, "TCC": 0.20, "TCA": 0.18, "TCG": 0.09, "AGT": 0.15, "AGC": 0.09,
		"CCT": 0.35, "CCC": 0.16, "CCA": 0.40, "CCG": 0.09,
		"ACT": 0.40, "ACC": 0.25, "ACA": 0.24, "ACG": 0.11,
		"GCT": 0.45, "GCC": 0.25, "GCA": 0.23, "GCG": 0.07,
		"TAT": 0.46, "TAC": 0.54,
		"TAA": 0.53, "TAG": 0.29, "TGA": 0.18,
		"CAT": 0.57, "CAC": 0.43,
		"CAA": 0.62, "CAG": 0.38,
		"AAT": 0.49, "AAC": 0.51,
		"AAA": 0.53, "AAG": 0.47,
		"GAT": 0.58, "GAC": 0.42,
		"GAA": 0.57, "GAG": 0.43,
		"TGT": 0.65, "TGC": 0.35,
		"TGG": 1.00,
		"CGT": 0.16, "CGC": 0.05, "CGA": 0.10, "CGG": 0.05, "AGA": 0.47, "AGG": 0.17,
		"GGT": 0.44, "GGC": 0.14, "GGA": 0.32, "GGG": 0.10,
	},
}

// usageTable returns the codon usage table for an organism, falling
// back to e_coli for organisms without one
func usageTable(organism string) map[string]float64 {
	if table, ok := codonUsage[organism]; ok {
		return table
	}

	stderr.Printf("warning: no codon usage table for %s, falling back to e_coli\n", organism)
	return codonUsage["e_coli"]
}

// usageRatio is the new codon's usage frequency relative to the
// original codon's. 0 when the original has no recorded usage
func usageRatio(usage map[string]float64, origCodon, newCodon string) float64 {
	orig := usage[origCodon]
	if orig == 0 {
		return 0
	}
	return usage[newCodon] / orig
}
