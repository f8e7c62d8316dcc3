package revision

import (
	"sigs.k8s.io/yaml"

	"github.com/kairos-run/topoquery"
)

// Scenario describes a sequence of revisions to replay against a Driver,
// loadable from YAML so a host (or cmd/topoinspect) can script a behavioral
// test case without writing Go.
type Scenario struct {
	Name      string         `json:"name"`
	Revisions []RevisionSpec `json:"revisions"`
}

// RevisionSpec is the slot sequence for one revision: every slot runs under
// CallInSlot inside one root activation, in order.
type RevisionSpec struct {
	Slots []string `json:"slots"`
}

// LoadScenario parses a YAML document into a Scenario. sigs.k8s.io/yaml
// round-trips through the struct's json tags, the same config-loading
// convention the rest of the grounding corpus uses for YAML input.
func LoadScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Observation reports one CallInSlot activation during a scenario replay.
type Observation struct {
	Revision int
	Slot     string
	ID       topo.Id
}

// Run replays every revision in s against d, in order, reporting one
// Observation per slot via observe.
func (s *Scenario) Run(d *Driver, observe func(Observation)) {
	d.Revisions(len(s.Revisions), func(i int, env *topo.Env) {
		rev := s.Revisions[i]
		// A fixed slot pins the root activation's Id, so the same slot
		// sequence yields the same Ids in every revision.
		topo.CallInSlot(env, 0, func() any {
			for _, slot := range rev.Slots {
				topo.CallInSlot(env, slot, func() any {
					observe(Observation{Revision: i, Slot: slot, ID: topo.CurrentID(env)})
					return nil
				})
			}
			return nil
		})
	})
}
