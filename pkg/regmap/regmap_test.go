package regmap

import "testing"

func TestRegName(t *testing.T) {
	cases := []struct {
		idx  int
		want string
		ok   bool
	}{
		{1, "t0", true},
		{7, "t6", true},
		{8, "s0", true},
		{19, "s11", true},
		{0, "", false},
		{20, "", false},
	}
	for _, c := range cases {
		got, ok := RegName(c.idx)
		if ok != c.ok || got != c.want {
			t.Errorf("RegName(%d) = (%q, %v), want (%q, %v)", c.idx, got, ok, c.want, c.ok)
		}
	}
}

func TestPIMRegName(t *testing.T) {
	if got := PIMRegName(1); got != "PIM_RREG_R1" {
		t.Errorf("PIMRegName(1) = %q, want PIM_RREG_R1", got)
	}
	if got := PIMRegName(19); got != "PIM_RREG_R19" {
		t.Errorf("PIMRegName(19) = %q, want PIM_RREG_R19", got)
	}
}

func TestNames(t *testing.T) {
	got, ok := Names(3)
	if !ok {
		t.Fatalf("Names(3) reported not ok")
	}
	want := []string{"t0", "t1", "t2"}
	if len(got) != len(want) {
		t.Fatalf("Names(3) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names(3)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if _, ok := Names(MaxRegs + 1); ok {
		t.Error("Names(MaxRegs+1) should report not ok")
	}
}

func TestIndexOf(t *testing.T) {
	if idx, ok := IndexOf("s0"); !ok || idx != 8 {
		t.Errorf("IndexOf(s0) = (%d, %v), want (8, true)", idx, ok)
	}
	if _, ok := IndexOf("a0"); ok {
		t.Error("IndexOf(a0) should report not ok — a0 is not in the managed table")
	}
}
