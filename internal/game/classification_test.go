package game

import (
	"testing"

	"github.com/peterkuimelis/netwars/internal/log"
)

func TestClassificationClearsIssuesOnEntry(t *testing.T) {
	e, logger := newTestEngine(t, []Subtype{SubFacilities}, nil)
	mutate(e, func(gs *GameState) {
		sw := addSwitch(gs, 0)
		cable := addCable(gs, 0, sw, SubCable2)
		pc := addComputer(gs, 0, cable)
		addIssue(gs, 0, sw, SubPowerOutage)
		addIssue(gs, 0, pc, SubPowerOutage)
		addIssue(gs, 0, cable, SubNewHire)
	})

	mustApply(t, e, e.PlayClassification(0, firstID(t, e, 0, SubFacilities), NoNode, NoNode))
	net := e.State().Players[0].Network
	if net.IssueCount(SubPowerOutage) != 0 {
		t.Errorf("Expected power outages cleared, %d left", net.IssueCount(SubPowerOutage))
	}
	if net.IssueCount(SubNewHire) != 1 {
		t.Error("Facilities must not clear New Hire")
	}
	if len(logger.EventsOfType(log.EventAutoResolve)) != 2 {
		t.Errorf("Expected 2 auto-resolve events, got %d", len(logger.EventsOfType(log.EventAutoResolve)))
	}
}

func TestProtectedAttackAutoResolves(t *testing.T) {
	e, logger := newTestEngine(t, []Subtype{SubNewHire}, nil)
	var sw NodeID
	mutate(e, func(gs *GameState) {
		sw = addSwitch(gs, 1)
		addClassification(gs, 1, SubSupervisor)
	})

	mustApply(t, e, e.PlayAttack(0, firstID(t, e, 0, SubNewHire), sw, 1))
	gs := e.State()
	if gs.Players[1].Network.IssueCount("") != 0 {
		t.Error("Attack covered by Supervisor should not stick")
	}
	if gs.MovesRemaining != BaseMoves-1 {
		t.Errorf("The attempt still costs a move, got %d", gs.MovesRemaining)
	}
	if len(logger.EventsOfType(log.EventAutoResolve)) != 1 {
		t.Error("Expected an auto-resolve event")
	}
}

func TestFieldTechEquipmentMove(t *testing.T) {
	e, _ := newTestEngine(t, []Subtype{SubFieldTech, SubSwitch, SubSwitch, SubHacked}, nil)

	mustApply(t, e, e.PlayClassification(0, firstID(t, e, 0, SubFieldTech), NoNode, NoNode))
	gs := e.State()
	if gs.MovesRemaining != 2 || gs.EquipmentMovesRemaining != 1 {
		t.Fatalf("Expected 2+1 moves, got %d+%d", gs.MovesRemaining, gs.EquipmentMovesRemaining)
	}

	mustApply(t, e, e.PlaySwitch(0, firstID(t, e, 0, SubSwitch)))
	gs = e.State()
	if gs.MovesRemaining != 2 || gs.EquipmentMovesRemaining != 0 {
		t.Errorf("Equipment move should be spent first, got %d+%d", gs.MovesRemaining, gs.EquipmentMovesRemaining)
	}

	mustApply(t, e, e.EndPhase(0))
	mustApply(t, e, e.EndPhase(1))
	gs = e.State()
	if gs.CurrentPlayer != 0 || gs.EquipmentMovesRemaining != 1 || gs.MovesRemaining != BaseMoves {
		t.Errorf("Expected P1 to start with %d+1 moves, got %d+%d", BaseMoves, gs.MovesRemaining, gs.EquipmentMovesRemaining)
	}
}

func TestEquipmentMoveOnlyForEquipment(t *testing.T) {
	e, _ := newTestEngine(t, []Subtype{SubHacked, SubHacked, SubHacked, SubSwitch}, nil)
	var sw NodeID
	mutate(e, func(gs *GameState) {
		addClassification(gs, 0, SubFieldTech)
		gs.EquipmentMovesRemaining = 1
		gs.EquipmentBonusGranted = true
		sw = addSwitch(gs, 1)
		addCable(gs, 1, sw, SubCable2)
	})
	opp := e.State().Players[1].Network
	cable := opp.Switches[0].Cables[0].ID

	mustApply(t, e, e.PlayAttack(0, firstID(t, e, 0, SubHacked), sw, 1))
	if e.State().EquipmentMovesRemaining != 1 {
		t.Error("Attacks must not spend the equipment move")
	}
	mustApply(t, e, e.PlayAttack(0, firstID(t, e, 0, SubHacked), cable, 1))
	mustApply(t, e, e.DiscardCard(0, firstID(t, e, 0, SubHacked)))
	gs := e.State()
	if gs.CurrentPlayer != 0 || gs.MovesRemaining != 0 || gs.EquipmentMovesRemaining != 1 {
		t.Fatalf("Turn should stay open for the equipment move, got P%d %d+%d", gs.CurrentPlayer+1, gs.MovesRemaining, gs.EquipmentMovesRemaining)
	}
	mustReject(t, e, e.DiscardCard(0, firstID(t, e, 0, SubComputer)))
	mustApply(t, e, e.PlaySwitch(0, firstID(t, e, 0, SubSwitch)))
	if e.State().CurrentPlayer != 1 {
		t.Error("Spending the last move should end the turn")
	}
}

func TestDuplicateFieldTechGrantsOneMove(t *testing.T) {
	e, _ := newTestEngine(t, []Subtype{SubFieldTech, SubFieldTech}, nil)
	mustApply(t, e, e.PlayClassification(0, firstID(t, e, 0, SubFieldTech), NoNode, NoNode))
	mustApply(t, e, e.PlayClassification(0, firstID(t, e, 0, SubFieldTech), NoNode, NoNode))
	gs := e.State()
	if gs.EquipmentMovesRemaining != 1 {
		t.Errorf("Expected a single equipment move, got %d", gs.EquipmentMovesRemaining)
	}
	if !gs.Players[0].StealProtected() {
		t.Error("A matching pair should be steal-protected")
	}
}

func TestFullClassificationAreaNeedsDiscard(t *testing.T) {
	e, _ := newTestEngine(t, []Subtype{SubSupervisor}, nil)
	var old NodeID
	mutate(e, func(gs *GameState) {
		old = addClassification(gs, 0, SubFacilities)
		addClassification(gs, 0, SubFieldTech)
	})

	mustReject(t, e, e.PlayClassification(0, firstID(t, e, 0, SubSupervisor), NoNode, NoNode))
	mustApply(t, e, e.PlayClassification(0, firstID(t, e, 0, SubSupervisor), NoNode, old))
	p := e.State().Players[0]
	if len(p.Classifications) != MaxClassifications || p.HasClassification(SubFacilities) || !p.HasClassification(SubSupervisor) {
		t.Errorf("Expected Facilities swapped for Supervisor, got %v", p.Classifications)
	}
}
