package player

import "testing"

func sampleRoster() []Player {
	return []Player{
		{ID: "p4", TeamID: "t1", Number: 4, Name: "ROSA CLOT"},
		{ID: "p13", TeamID: "t1", Number: 13, Name: "CORGIAT A."},
		{ID: "x7", TeamID: "t2", Number: 7, Name: "OTHER CLUB GUY"},
	}
}

func TestResolve_Sentinels(t *testing.T) {
	roster := sampleRoster()

	ref := Resolve(NumberMainTotal, roster, "t1", "t2")
	if ref.Kind != RefMainTotal {
		t.Fatalf("998 should resolve to main total, got kind %d", ref.Kind)
	}
	if ref.StatLineID() != "" {
		t.Fatalf("main total must never produce a stat line id, got %q", ref.StatLineID())
	}

	ref = Resolve(NumberOpponentTotal, roster, "t1", "t2")
	if ref.Kind != RefOpponentTotal {
		t.Fatalf("999 should resolve to opponent total, got kind %d", ref.Kind)
	}
	if ref.StatLineID() != "team_t2" {
		t.Fatalf("unexpected opponent total id: %q", ref.StatLineID())
	}

	ref = Resolve(NumberBench, roster, "t1", "t2")
	if ref.Kind != RefBench {
		t.Fatalf("997 should resolve to bench, got kind %d", ref.Kind)
	}
	if ref.StatLineID() != "bench_t1" {
		t.Fatalf("unexpected bench id: %q", ref.StatLineID())
	}
}

func TestResolve_MainRosterOnly(t *testing.T) {
	roster := sampleRoster()

	ref := Resolve(4, roster, "t1", "t2")
	if ref.Kind != RefReal || ref.PlayerID != "p4" {
		t.Fatalf("expected p4, got %+v", ref)
	}

	// Number 7 exists only on the opponent roster: individual rows resolve
	// against the main team only.
	ref = Resolve(7, roster, "t1", "t2")
	if ref.Kind != RefUnresolved {
		t.Fatalf("expected unresolved for opponent-only number, got %+v", ref)
	}

	ref = Resolve(55, roster, "t1", "t2")
	if ref.Kind != RefUnresolved {
		t.Fatalf("expected unresolved for unknown number, got %+v", ref)
	}
}

func TestVirtualIDHelpers(t *testing.T) {
	if !IsTeamTotalID(TeamTotalID("t2")) {
		t.Fatal("team total id not recognized")
	}
	if !IsBenchID(BenchID("t1")) {
		t.Fatal("bench id not recognized")
	}
	if IsTeamTotalID("p4") || IsBenchID("p4") {
		t.Fatal("real player id misclassified as virtual")
	}

	bench := MaterializeBench("t1")
	if bench.ID != "bench_t1" || bench.Number != NumberBench || bench.Role != RoleBench {
		t.Fatalf("unexpected bench record: %+v", bench)
	}
	if !bench.IsVirtual() {
		t.Fatal("bench record must be virtual")
	}

	total := MaterializeTeamTotal("t2", "JOLLY VINOVO")
	if total.Name != "JOLLY VINOVO (Total)" || total.Number != NumberOpponentTotal {
		t.Fatalf("unexpected team total record: %+v", total)
	}

	anon := MaterializeTeamTotal("t9", "")
	if anon.Name != "Opponent (Total)" {
		t.Fatalf("unexpected fallback name: %q", anon.Name)
	}
}
