package game

import "fmt"

// Card is an immutable card identity. Cards are passed by value.
type Card struct {
	ID      CardID
	Type    CardType
	Subtype Subtype
	Name    string
}

func (c Card) String() string {
	return c.Name
}

// CardInfo describes a card subtype in the catalog.
type CardInfo struct {
	Subtype     Subtype
	Type        CardType
	Name        string
	Description string
}

// Catalog maps every subtype to its static description.
var Catalog = map[Subtype]CardInfo{
	SubSwitch:   {SubSwitch, CardTypeEquipment, "Switch", "Connects to the internet. Cables attach here."},
	SubCable2:   {SubCable2, CardTypeEquipment, "Cable (2)", "Attaches to a switch and carries up to 2 computers."},
	SubCable3:   {SubCable3, CardTypeEquipment, "Cable (3)", "Attaches to a switch and carries up to 3 computers."},
	SubComputer: {SubComputer, CardTypeEquipment, "Computer", "Mines one bitcoin per turn while connected and enabled."},

	SubHacked:      {SubHacked, CardTypeAttack, "Hacked", "Disables a node and everything below it. Blocks an audit."},
	SubPowerOutage: {SubPowerOutage, CardTypeAttack, "Power Outage", "Disables a node and everything below it."},
	SubNewHire:     {SubNewHire, CardTypeAttack, "New Hire", "Disables a node and everything below it."},
	SubAudit:       {SubAudit, CardTypeAttack, "Audit", "Forces the opponent to return half of their computers."},

	SubSecured:  {SubSecured, CardTypeResolution, "Secured", "Clears Hacked. Counters an audit block."},
	SubPowered:  {SubPowered, CardTypeResolution, "Powered", "Clears Power Outage."},
	SubTrained:  {SubTrained, CardTypeResolution, "Trained", "Clears New Hire."},
	SubHelpdesk: {SubHelpdesk, CardTypeResolution, "Helpdesk", "Clears every issue on one node."},

	SubSecuritySpecialist: {SubSecuritySpecialist, CardTypeClassification, "Security Specialist", "Clears and prevents Hacked on your network."},
	SubFacilities:         {SubFacilities, CardTypeClassification, "Facilities", "Clears and prevents Power Outage on your network."},
	SubSupervisor:         {SubSupervisor, CardTypeClassification, "Supervisor", "Clears and prevents New Hire on your network."},
	SubFieldTech:          {SubFieldTech, CardTypeClassification, "Field Tech", "One bonus equipment move per turn."},
	SubHeadHunter:         {SubHeadHunter, CardTypeClassification, "Head Hunter", "Steal an opponent classification. Can be contested."},
	SubSealTheDeal:        {SubSealTheDeal, CardTypeClassification, "Seal the Deal", "Steal an opponent classification. Cannot be blocked."},
}

// SubtypeOrder lists subtypes in display order.
var SubtypeOrder = []Subtype{
	SubSwitch, SubCable2, SubCable3, SubComputer,
	SubHacked, SubPowerOutage, SubNewHire, SubAudit,
	SubSecured, SubPowered, SubTrained, SubHelpdesk,
	SubSecuritySpecialist, SubFacilities, SubSupervisor, SubFieldTech, SubHeadHunter, SubSealTheDeal,
}

// LookupSubtype returns the catalog entry for s.
func LookupSubtype(s Subtype) (CardInfo, bool) {
	info, ok := Catalog[s]
	return info, ok
}

// NewCard builds a card of the given subtype with the given id.
// Panics if the subtype is not in the catalog.
func NewCard(id CardID, s Subtype) Card {
	info, ok := Catalog[s]
	if !ok {
		panic(fmt.Sprintf("subtype not found in catalog: %q", s))
	}
	return Card{ID: id, Type: info.Type, Subtype: s, Name: info.Name}
}

// resolutionMatches maps each resolution to the issue it clears.
var resolutionMatches = map[Subtype]Subtype{
	SubSecured: SubHacked,
	SubPowered: SubPowerOutage,
	SubTrained: SubNewHire,
}

// classificationClears maps the auto-resolving classifications to their issue.
var classificationClears = map[Subtype]Subtype{
	SubSecuritySpecialist: SubHacked,
	SubFacilities:         SubPowerOutage,
	SubSupervisor:         SubNewHire,
}

// Resolves reports whether resolution subtype res clears issue subtype issue.
func Resolves(res, issue Subtype) bool {
	if res == SubHelpdesk {
		return true
	}
	return resolutionMatches[res] == issue
}

// ResolutionFor returns the dedicated resolution for an issue subtype.
func ResolutionFor(issue Subtype) (Subtype, bool) {
	for res, is := range resolutionMatches {
		if is == issue {
			return res, true
		}
	}
	return "", false
}

// ClearedBy returns the issue subtype a classification clears, if any.
func ClearedBy(class Subtype) (Subtype, bool) {
	issue, ok := classificationClears[class]
	return issue, ok
}

// ProtectorOf returns the classification that clears an issue subtype.
func ProtectorOf(issue Subtype) (Subtype, bool) {
	for class, is := range classificationClears {
		if is == issue {
			return class, true
		}
	}
	return "", false
}

// CableCapacity returns the computer capacity for a cable subtype, or 0.
func CableCapacity(s Subtype) int {
	switch s {
	case SubCable2:
		return 2
	case SubCable3:
		return 3
	}
	return 0
}

// IsCable reports whether s is a cable subtype.
func IsCable(s Subtype) bool {
	return CableCapacity(s) > 0
}

// IsIssue reports whether s can be attached to a node as an issue.
func IsIssue(s Subtype) bool {
	return s == SubHacked || s == SubPowerOutage || s == SubNewHire
}

// IsSteal reports whether s takes an opponent classification.
func IsSteal(s Subtype) bool {
	return s == SubHeadHunter || s == SubSealTheDeal
}

// IsPermanentClassification reports whether s stays in play once played.
func IsPermanentClassification(s Subtype) bool {
	switch s {
	case SubSecuritySpecialist, SubFacilities, SubSupervisor, SubFieldTech:
		return true
	}
	return false
}
