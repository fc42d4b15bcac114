package domest

import (
	"reflect"
	"testing"
)

func Test_NewEnzymeRegistry(t *testing.T) {
	registry := NewEnzymeRegistry()

	enz, err := registry.Get("BsaI")
	if err != nil {
		t.Fatalf("Get(BsaI) error = %v", err)
	}
	if enz.recog != "GGTCTC" || enz.overhangLen != 4 {
		t.Errorf("Get(BsaI) = %+v", enz)
	}

	if _, err := registry.Get("EcoRI"); err == nil {
		t.Error("Get(EcoRI) should error, not a Type IIS registry enzyme")
	}

	if len(registry.Names()) < 5 {
		t.Errorf("registry should carry the standard Golden Gate set, got %v", registry.Names())
	}
}

func Test_findInternalSites(t *testing.T) {
	registry := NewEnzymeRegistry()
	bsaI, _ := registry.Get("BsaI")

	type args struct {
		seq string
		enz enzyme
	}
	tests := []struct {
		name string
		args args
		want []InternalSite
	}{
		{
			"single forward site",
			args{"AAAAGGTCTCAAAA", bsaI},
			[]InternalSite{{Position: 4, Seq: "GGTCTC", Forward: true}},
		},
		{
			"single reverse site",
			args{"AAAAGAGACCAAAA", bsaI},
			[]InternalSite{{Position: 4, Seq: "GAGACC", Forward: false}},
		},
		{
			"both orientations, sorted by position",
			args{"GAGACCAAAAAAAAGGTCTC", bsaI},
			[]InternalSite{
				{Position: 0, Seq: "GAGACC", Forward: false},
				{Position: 14, Seq: "GGTCTC", Forward: true},
			},
		},
		{
			"no sites",
			args{"ACTGATACTGATACTGAT", bsaI},
			[]InternalSite{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findInternalSites(tt.args.seq, tt.args.enz); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("findInternalSites() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_zeroSiteEnzymes(t *testing.T) {
	registry := NewEnzymeRegistry()
	bsaI, _ := registry.Get("BsaI")

	// a sequence with a BsaI site but nothing else
	seq := "ACTGATACTGATGGTCTCACTGATACTGAT"
	clean := registry.zeroSiteEnzymes(seq, bsaI)
	if len(clean) == 0 {
		t.Fatal("expected at least one zero-site enzyme")
	}
	for _, name := range clean {
		if name == "BsaI" {
			t.Error("the current enzyme should never be recommended")
		}
		enz, _ := registry.Get(name)
		if n := len(findInternalSites(seq, enz)); n != 0 {
			t.Errorf("%s has %d internal sites, shouldn't be recommended", name, n)
		}
	}
}
