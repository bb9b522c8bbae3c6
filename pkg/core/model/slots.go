package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot identifiers follow a fixed grammar:
//
//	rtw<N>_<tag|nacht>_<1|2>   rescue vehicle, position 1 = commander,
//	                           position 2 = machinist
//	nef<N>_<tag|nacht>_1       physician-vehicle assistant
//	itw_<1|2|3>                ITW commander, machinist, physician
//
// Everything carrying one of the reserved prefixes is owned by the slot
// machinery and may be blanked wholesale by ClearSlotAssignments.
const (
	SlotPrefixRTW = "rtw"
	SlotPrefixNEF = "nef"
	SlotPrefixITW = "itw"

	SegmentDay   = "tag"
	SegmentNight = "nacht"

	PositionCommander = 1
	PositionMachinist = 2
	PositionPhysician = 3
)

// ReservedSlotPrefixes lists every prefix that marks a SlotID as
// managed by the assignment machinery.
var ReservedSlotPrefixes = []string{SlotPrefixRTW, SlotPrefixNEF, SlotPrefixITW}

// GenericSlotMarker is the legacy marker written into Value (not
// SlotID) by older planning sheets. It is blanked by
// ClearSlotAssignments unless a ShiftType reuses the letter.
const GenericSlotMarker = "V"

// Slot is the parsed form of a slot identifier.
type Slot struct {
	Kind      VehicleKind // VehicleRTW, VehicleNEF; "" for ITW slots
	ITW       bool
	VehicleNo int    // 0 for ITW
	Segment   string // SegmentDay or SegmentNight; "" for ITW
	Position  int
}

func (s Slot) ID() string {
	if s.ITW {
		return fmt.Sprintf("%s_%d", SlotPrefixITW, s.Position)
	}
	return fmt.Sprintf("%s%d_%s_%d", s.Kind, s.VehicleNo, s.Segment, s.Position)
}

// VehicleSlotID builds a vehicle slot identifier.
func VehicleSlotID(kind VehicleKind, vehicleNo int, segment string, position int) string {
	return Slot{Kind: kind, VehicleNo: vehicleNo, Segment: segment, Position: position}.ID()
}

// ITWSlotID builds an ITW slot identifier.
func ITWSlotID(position int) string {
	return Slot{ITW: true, Position: position}.ID()
}

// ParseSlotID parses a slot identifier. ok is false for anything
// outside the grammar, including the empty string.
func ParseSlotID(id string) (Slot, bool) {
	if strings.HasPrefix(id, SlotPrefixITW) {
		rest, found := strings.CutPrefix(id, SlotPrefixITW+"_")
		if !found {
			return Slot{}, false
		}
		pos, err := strconv.Atoi(rest)
		if err != nil || pos < PositionCommander || pos > PositionPhysician {
			return Slot{}, false
		}
		return Slot{ITW: true, Position: pos}, true
	}

	var kind VehicleKind
	switch {
	case strings.HasPrefix(id, SlotPrefixRTW):
		kind = VehicleRTW
	case strings.HasPrefix(id, SlotPrefixNEF):
		kind = VehicleNEF
	default:
		return Slot{}, false
	}

	parts := strings.Split(id[len(kind):], "_")
	if len(parts) != 3 {
		return Slot{}, false
	}
	no, err := strconv.Atoi(parts[0])
	if err != nil || no < 1 {
		return Slot{}, false
	}
	if parts[1] != SegmentDay && parts[1] != SegmentNight {
		return Slot{}, false
	}
	pos, err := strconv.Atoi(parts[2])
	if err != nil {
		return Slot{}, false
	}
	if kind == VehicleNEF && pos != PositionCommander {
		return Slot{}, false
	}
	if kind == VehicleRTW && pos != PositionCommander && pos != PositionMachinist {
		return Slot{}, false
	}
	return Slot{Kind: kind, VehicleNo: no, Segment: parts[1], Position: pos}, true
}

// IsReservedSlot reports whether the identifier carries one of the
// reserved slot prefixes. Unlike ParseSlotID it accepts malformed
// identifiers too, since clearing must catch historical junk as well.
func IsReservedSlot(id string) bool {
	for _, p := range ReservedSlotPrefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// IsITWSlot reports whether the identifier is an ITW slot.
func IsITWSlot(id string) bool {
	return strings.HasPrefix(id, SlotPrefixITW)
}

// IsMachinistSlot reports whether the identifier is a rescue-vehicle
// machinist position, the role apprentices may fill.
func IsMachinistSlot(id string) bool {
	s, ok := ParseSlotID(id)
	return ok && !s.ITW && s.Kind == VehicleRTW && s.Position == PositionMachinist
}

// DrivenWeight returns the weight a slot assignment contributes to a
// staff member's year-to-date driven count. RTW and ITW commander and
// machinist positions count 1, the NEF assistant counts 2, the ITW
// physician and anything held by an apprentice or doctor counts 0.
func DrivenWeight(kind RefKind, slotID string) int {
	if kind != KindPerson {
		return 0
	}
	s, ok := ParseSlotID(slotID)
	if !ok {
		return 0
	}
	switch {
	case s.ITW && s.Position != PositionPhysician:
		return 1
	case s.Kind == VehicleRTW:
		return 1
	case s.Kind == VehicleNEF:
		return 2
	}
	return 0
}
