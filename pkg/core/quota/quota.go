// Package quota derives monthly demand, per-person fairness targets and
// year-to-date remaining shift counts. Everything here is pure
// computation over a snapshot of one month; fetching the snapshot is
// the job of the services layer.
package quota

import (
	"math"
	"time"

	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/shiftcode"
)

// Positions contributed per department duty day and vehicle.
const (
	positionsPerRTW = 4 // commander + machinist, day + night
	positionsPerNEF = 2 // assistant, day + night
)

// HeavyVehicleLoadFactor discounts the combined load of staff holding
// the heavy-vehicle qualification in the weighted target variant. Two
// divergent formulas exist in the field; both are kept until product
// intent settles which one is canonical. See MonthlyTargetWeighted.
const HeavyVehicleLoadFactor = 0.75

// MonthInput is the snapshot a monthly computation runs on.
type MonthInput struct {
	Year  int
	Month time.Month

	// DeptShiftDays is the number of days in the month whose
	// department-pattern symbol equals the configured department.
	DeptShiftDays int

	// Vehicles holds every vehicle of both kinds, archived ones
	// included; archiving and month activation are resolved here.
	Vehicles []model.Vehicle

	// Activations maps vehicle keys to their month-activation flag.
	// Vehicles without a record count as enabled.
	Activations map[model.VehicleKey]bool

	// Entries are all roster entries of the month, every person kind.
	Entries []model.DutyRosterEntry

	Classifier *shiftcode.Classifier
}

// MonthStats is the result of one monthly computation.
type MonthStats struct {
	Year  int
	Month time.Month

	DeptShiftDays             int
	RTWVehicleCount           int
	NEFVehicleCount           int
	ITWShifts                 int
	ApprenticeMachinistShifts int
	PositionDemand            int
	ActiveStaffCount          int
	DemandPerStaff            float64
	AverageCombinedLoad       float64

	// CombinedLoads maps person ID to 24h-code count plus ITW
	// assignment count within the month.
	CombinedLoads map[int64]int
}

// ComputeMonth evaluates the demand and load figures for one month.
func ComputeMonth(in MonthInput) MonthStats {
	stats := MonthStats{
		Year:          in.Year,
		Month:         in.Month,
		DeptShiftDays: in.DeptShiftDays,
		CombinedLoads: make(map[int64]int),
	}

	for _, v := range in.Vehicles {
		if !v.ActiveIn(in.Year) {
			continue
		}
		if enabled, ok := in.Activations[v.Key()]; ok && !enabled {
			continue
		}
		switch v.Kind {
		case model.VehicleRTW:
			stats.RTWVehicleCount++
		case model.VehicleNEF:
			stats.NEFVehicleCount++
		}
	}

	activeStaff := make(map[int64]bool)
	for _, e := range in.Entries {
		isITW := model.IsITWSlot(e.SlotID) || in.Classifier.Classify(e.Value) == shiftcode.CategoryITW
		if isITW {
			stats.ITWShifts++
		}
		if e.Ref.Kind == model.KindApprentice && model.IsMachinistSlot(e.SlotID) {
			stats.ApprenticeMachinistShifts++
		}
		if e.Ref.Kind != model.KindPerson {
			continue
		}
		cat := in.Classifier.Classify(e.Value)
		if cat != shiftcode.CategoryOff {
			activeStaff[e.Ref.ID] = true
		}
		load := 0
		if cat == shiftcode.Category24h {
			load++
		}
		if isITW {
			load++
		}
		if load > 0 {
			stats.CombinedLoads[e.Ref.ID] += load
		}
	}
	stats.ActiveStaffCount = len(activeStaff)

	demand := stats.DeptPositionDemand() + stats.ITWShifts - stats.ApprenticeMachinistShifts
	if demand < 0 {
		demand = 0
	}
	stats.PositionDemand = demand

	if stats.ActiveStaffCount > 0 {
		stats.DemandPerStaff = float64(stats.PositionDemand) / float64(stats.ActiveStaffCount)
	}

	loaded := 0
	sum := 0
	for _, load := range stats.CombinedLoads {
		if load > 0 {
			loaded++
			sum += load
		}
	}
	if loaded > 0 {
		stats.AverageCombinedLoad = float64(sum) / float64(loaded)
	}

	return stats
}

// DeptPositionDemand returns the vehicle-position part of the demand:
// department duty days times the positions of the enabled vehicles.
func (s MonthStats) DeptPositionDemand() int {
	return s.DeptShiftDays * (s.RTWVehicleCount*positionsPerRTW + s.NEFVehicleCount*positionsPerNEF)
}

// MonthlyTarget returns the fairness target for one person: their share
// of the monthly demand scaled by how their combined load compares to
// the average. Zero ("no target") when the month has no active staff,
// no loaded staff, or the person carries no load.
func (s MonthStats) MonthlyTarget(personID int64) int {
	return s.target(float64(s.CombinedLoads[personID]))
}

// MonthlyTargetWeighted is the display-only variant that discounts the
// combined load of heavy-vehicle qualified staff by
// HeavyVehicleLoadFactor. Kept separate from MonthlyTarget on purpose;
// do not merge the two until it is decided which formula is canonical.
func (s MonthStats) MonthlyTargetWeighted(personID int64, heavyVehicle bool) int {
	load := float64(s.CombinedLoads[personID])
	if heavyVehicle {
		load *= HeavyVehicleLoadFactor
	}
	return s.target(load)
}

func (s MonthStats) target(load float64) int {
	if s.DemandPerStaff <= 0 || s.AverageCombinedLoad <= 0 || load <= 0 {
		return 0
	}
	return int(math.Round(s.DemandPerStaff / s.AverageCombinedLoad * load))
}

// YearlyDriven returns the weighted count of actual slot assignments
// per person ID for the given entries: RTW and ITW commander/machinist
// slots weigh 1, the NEF assistant weighs 2, apprentice and doctor
// assignments are excluded.
func YearlyDriven(entries []model.DutyRosterEntry) map[int64]int {
	driven := make(map[int64]int)
	for _, e := range entries {
		if w := model.DrivenWeight(e.Ref.Kind, e.SlotID); w > 0 {
			driven[e.Ref.ID] += w
		}
	}
	return driven
}

// PersonYear aggregates one person's figures over a whole year.
type PersonYear struct {
	PersonID       int64
	YearlyTarget   int
	WeightedTarget int
	Driven         int
	Remaining      int
}

// ComputeYear sums the monthly targets over all twelve months and
// subtracts the weighted driven count.
func ComputeYear(months []MonthStats, persons []model.Person, yearEntries []model.DutyRosterEntry) map[int64]PersonYear {
	driven := YearlyDriven(yearEntries)

	out := make(map[int64]PersonYear, len(persons))
	for _, p := range persons {
		py := PersonYear{PersonID: p.ID, Driven: driven[p.ID]}
		for _, m := range months {
			py.YearlyTarget += m.MonthlyTarget(p.ID)
			py.WeightedTarget += m.MonthlyTargetWeighted(p.ID, p.HeavyVehicleCommander)
		}
		py.Remaining = py.YearlyTarget - py.Driven
		out[p.ID] = py
	}
	return out
}
