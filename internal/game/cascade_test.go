package game

import "testing"

// buildTree returns a network with one switch, one cable-2 and two computers.
func buildTree(t *testing.T) (*GameState, NodeID, NodeID, [2]NodeID) {
	t.Helper()
	gs := NewGameState([2]string{"P1", "P2"}, [2]bool{true, true})
	sw := addSwitch(gs, 0)
	cable := addCable(gs, 0, sw, SubCable2)
	c1 := addComputer(gs, 0, cable)
	c2 := addComputer(gs, 0, cable)
	gs.Players[0].Network.Recompute()
	return gs, sw, cable, [2]NodeID{c1, c2}
}

func TestAttackOnSwitchDisablesSubtree(t *testing.T) {
	gs, sw, _, _ := buildTree(t)
	net := &gs.Players[0].Network

	disabled, err := net.ApplyAttack(sw, NewCard(900, SubHacked))
	if err != nil {
		t.Fatalf("ApplyAttack: %v", err)
	}
	if disabled != 4 {
		t.Errorf("Expected 4 nodes disabled, got %d", disabled)
	}
	net.Walk(func(r NodeRef) {
		if !r.Node.Disabled {
			t.Errorf("%s should be disabled", r.Node)
		}
	})
	if net.ScoringComputers() != 0 {
		t.Errorf("Expected 0 scoring computers, got %d", net.ScoringComputers())
	}
	if err := net.Verify(); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestResolveSwitchReenablesSubtree(t *testing.T) {
	gs, sw, _, _ := buildTree(t)
	net := &gs.Players[0].Network
	if _, err := net.ApplyAttack(sw, NewCard(900, SubHacked)); err != nil {
		t.Fatal(err)
	}

	removed, enabled, err := net.ApplyResolution(sw, NewCard(901, SubSecured))
	if err != nil {
		t.Fatalf("ApplyResolution: %v", err)
	}
	if len(removed) != 1 || removed[0].Subtype != SubHacked {
		t.Errorf("Expected the hacked card back, got %v", removed)
	}
	if enabled != 4 {
		t.Errorf("Expected 4 nodes enabled, got %d", enabled)
	}
	if net.ScoringComputers() != 2 {
		t.Errorf("Expected 2 scoring computers, got %d", net.ScoringComputers())
	}
}

func TestIndependentIssueSurvivesParentResolution(t *testing.T) {
	gs, sw, _, comps := buildTree(t)
	net := &gs.Players[0].Network
	if _, err := net.ApplyAttack(comps[0], NewCard(900, SubNewHire)); err != nil {
		t.Fatal(err)
	}
	if _, err := net.ApplyAttack(sw, NewCard(901, SubPowerOutage)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := net.ApplyResolution(sw, NewCard(902, SubPowered)); err != nil {
		t.Fatal(err)
	}

	ref, _ := net.Find(comps[0])
	if !ref.Node.Disabled {
		t.Error("Computer with its own issue should stay disabled")
	}
	ref, _ = net.Find(comps[1])
	if ref.Node.Disabled {
		t.Error("Computer without issues should be re-enabled")
	}
	if err := net.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestHelpdeskClearsAllIssuesOnOneNode(t *testing.T) {
	gs, _, cable, comps := buildTree(t)
	net := &gs.Players[0].Network
	for i, sub := range []Subtype{SubHacked, SubPowerOutage, SubNewHire} {
		if _, err := net.ApplyAttack(cable, NewCard(CardID(900+i), sub)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := net.ApplyAttack(comps[1], NewCard(910, SubHacked)); err != nil {
		t.Fatal(err)
	}

	removed, _, err := net.ApplyResolution(cable, NewCard(920, SubHelpdesk))
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 3 {
		t.Errorf("Expected helpdesk to clear 3 issues, got %d", len(removed))
	}
	if net.IssueCount("") != 1 {
		t.Errorf("Expected the computer's issue to remain, got %d issues", net.IssueCount(""))
	}
}

func TestMatchedResolutionClearsOneIssue(t *testing.T) {
	gs, sw, _, _ := buildTree(t)
	net := &gs.Players[0].Network
	if _, err := net.ApplyAttack(sw, NewCard(900, SubHacked)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := net.ApplyResolution(sw, NewCard(901, SubPowered)); err == nil {
		t.Error("Powered should not resolve Hacked")
	}
	if _, err := net.ApplyAttack(sw, NewCard(902, SubHacked)); err == nil {
		t.Error("A second issue of the same subtype should be rejected")
	}
}

func TestMoveRecomputesAgainstNewParent(t *testing.T) {
	gs, sw, cable, _ := buildTree(t)
	net := &gs.Players[0].Network
	sw2 := addSwitch(gs, 0)
	if _, err := net.ApplyAttack(sw, NewCard(900, SubPowerOutage)); err != nil {
		t.Fatal(err)
	}

	if err := relocate(net, KindCable, cable, sw2); err != nil {
		t.Fatalf("relocate: %v", err)
	}
	if net.ScoringComputers() != 2 {
		t.Errorf("Rerouted cable should score 2, got %d", net.ScoringComputers())
	}
	if err := net.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestFloatingNeverScores(t *testing.T) {
	gs := NewGameState([2]string{"P1", "P2"}, [2]bool{true, true})
	cable := addCable(gs, 0, NoNode, SubCable3)
	addComputer(gs, 0, cable)
	addComputer(gs, 0, NoNode)
	net := &gs.Players[0].Network
	net.Recompute()

	if net.TotalComputers() != 2 {
		t.Errorf("Expected 2 computers, got %d", net.TotalComputers())
	}
	if net.ScoringComputers() != 0 {
		t.Errorf("Floating computers scored %d", net.ScoringComputers())
	}
}

func TestCableCapacityEnforced(t *testing.T) {
	gs, _, cable, _ := buildTree(t)
	pc := &PlacedCard{ID: gs.NextNodeID(), Card: NewCard(999, SubComputer)}
	if err := gs.Players[0].Network.attachComputer(pc, cable); err == nil {
		t.Error("Expected a full cable-2 to reject a third computer")
	}
}

func TestVerifyDetectsStaleFlag(t *testing.T) {
	gs, sw, _, _ := buildTree(t)
	net := &gs.Players[0].Network
	ref, _ := net.Find(sw)
	ref.Node.Issues = append(ref.Node.Issues, NewCard(900, SubHacked))
	if err := net.Verify(); err == nil {
		t.Error("Verify should catch a node whose flag was not recomputed")
	}
}

func TestCloneIsDeep(t *testing.T) {
	gs, sw, _, _ := buildTree(t)
	clone := gs.Clone()
	if _, err := clone.Players[0].Network.ApplyAttack(sw, NewCard(900, SubHacked)); err != nil {
		t.Fatal(err)
	}
	ref, _ := gs.Players[0].Network.Find(sw)
	if ref.Node.Disabled || len(ref.Node.Issues) != 0 {
		t.Error("Mutating a clone leaked into the original")
	}
}
