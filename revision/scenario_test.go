package revision

import "testing"

func TestLoadScenarioAndRun(t *testing.T) {
	yamlDoc := []byte(`
name: alternating-slots
revisions:
  - slots: ["first", "second", "third"]
  - slots: ["first", "second", "third"]
`)

	s, err := LoadScenario(yamlDoc)
	if err != nil {
		t.Fatalf("LoadScenario failed: %v", err)
	}
	if s.Name != "alternating-slots" {
		t.Fatalf("unexpected name: %q", s.Name)
	}
	if len(s.Revisions) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(s.Revisions))
	}

	d := NewDriver()
	firstRun := map[string]uint64{}
	secondRun := map[string]uint64{}

	revision := 0
	s.Run(d, func(obs Observation) {
		if obs.Revision == 0 {
			firstRun[obs.Slot] = uint64(obs.ID)
		} else {
			secondRun[obs.Slot] = uint64(obs.ID)
		}
		revision = obs.Revision
	})

	if revision != 1 {
		t.Fatalf("expected to observe revision 1, last seen %d", revision)
	}
	for slot, id := range firstRun {
		if secondRun[slot] != id {
			t.Fatalf("slot %q id changed across revisions: %d vs %d", slot, id, secondRun[slot])
		}
	}
}
