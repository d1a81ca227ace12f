package schema

import "testing"

func checkSteps(t *testing.T, name string, steps []Step) {
	t.Helper()
	seenVersion := make(map[int]bool)
	seenCollection := make(map[string]bool)
	last := 0
	for _, s := range steps {
		if s.Version <= last {
			t.Errorf("%s: step %s version %d not strictly increasing", name, s.Name, s.Version)
		}
		last = s.Version
		if seenVersion[s.Version] {
			t.Errorf("%s: duplicate version %d", name, s.Version)
		}
		seenVersion[s.Version] = true
		if seenCollection[s.Collection] {
			t.Errorf("%s: collection %s defined twice", name, s.Collection)
		}
		seenCollection[s.Collection] = true
		for _, ref := range s.References {
			if !seenCollection[ref.Collection] {
				t.Errorf("%s: step %s references %s before it exists", name, s.Name, ref.Collection)
			}
		}
	}
}

func TestRootSteps(t *testing.T) {
	checkSteps(t, "root", Root)
}

func TestTenantSteps(t *testing.T) {
	checkSteps(t, "tenant", Tenant)

	want := []string{Principals, Projects, Units, AuditLogs}
	if len(Tenant) != len(want) {
		t.Fatalf("expected %d tenant steps, got %d", len(want), len(Tenant))
	}
	for i, c := range want {
		if Tenant[i].Collection != c {
			t.Errorf("step %d: expected %s, got %s", i, c, Tenant[i].Collection)
		}
	}
}

func TestLoginIdentifierUniquePerNamespace(t *testing.T) {
	for _, idx := range Tenant[0].Indexes {
		if idx.Unique && len(idx.Keys) == 1 && idx.Keys[0] == "email" {
			return
		}
	}
	t.Fatal("principals must carry a unique email index")
}
