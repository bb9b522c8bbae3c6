package model

import "fmt"

// RefKind distinguishes the three identity spaces a roster entry can
// belong to. Persons, apprentices and doctors have independent ID
// sequences, so an ID alone never identifies a roster row.
type RefKind string

const (
	KindPerson     RefKind = "person"
	KindApprentice RefKind = "apprentice"
	KindDoctor     RefKind = "doctor"
)

func (k RefKind) IsValid() bool {
	return k == KindPerson || k == KindApprentice || k == KindDoctor
}

// PersonRef is a tagged reference into one of the three identity spaces.
type PersonRef struct {
	Kind RefKind
	ID   int64
}

func (r PersonRef) IsZero() bool {
	return r.ID == 0 || !r.Kind.IsValid()
}

func (r PersonRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// Person represents a full staff member of the station.
type Person struct {
	ID              int64
	Surname         string
	GivenName       string
	PartTimePercent int // 100 = full time

	// Qualifications
	VehicleCommander      bool
	HeavyVehicleCommander bool
	NEFQualified          bool
	ITWMachinist          bool
	ITWCommander          bool

	Sort int
}

// FullName returns the canonical "Surname, GivenName" display form,
// which is also the label format used by the planning spreadsheet.
func (p Person) FullName() string {
	return p.Surname + ", " + p.GivenName
}

func (p Person) Ref() PersonRef {
	return PersonRef{Kind: KindPerson, ID: p.ID}
}

// Apprentice is a trainee. Apprentices fill machinist slots but do not
// count toward the fairness targets of the regular staff.
type Apprentice struct {
	ID           int64
	Surname      string
	GivenName    string
	TrainingYear int
	Sort         int
}

func (a Apprentice) FullName() string {
	return a.Surname + ", " + a.GivenName
}

func (a Apprentice) Ref() PersonRef {
	return PersonRef{Kind: KindApprentice, ID: a.ID}
}

// Doctor is an emergency physician. Doctors only ever occupy the ITW
// physician slot; they never own duty codes of their own.
type Doctor struct {
	ID        int64
	Surname   string
	GivenName string
}

func (d Doctor) Ref() PersonRef {
	return PersonRef{Kind: KindDoctor, ID: d.ID}
}

// VehicleKind separates rescue-transport vehicles from emergency
// physician vehicles. The two kinds live in separate tables and
// contribute different position counts to the monthly demand.
type VehicleKind string

const (
	VehicleRTW VehicleKind = "rtw"
	VehicleNEF VehicleKind = "nef"
)

// OccupancyMode applies to NEF vehicles only.
type OccupancyMode string

const (
	Occupancy24h OccupancyMode = "24h"
	OccupancyDay OccupancyMode = "day"
)

// Vehicle is a rescue-transport or emergency-physician vehicle.
// ArchivedYear is a soft delete: 0 means active, otherwise the vehicle
// no longer counts from that year on.
type Vehicle struct {
	ID            int64
	Kind          VehicleKind
	Name          string
	Sort          int
	ArchivedYear  int
	OccupancyMode OccupancyMode // NEF only
}

// ActiveIn reports whether the vehicle still exists in the given year.
func (v Vehicle) ActiveIn(year int) bool {
	return v.ArchivedYear == 0 || year < v.ArchivedYear
}

// VehicleKey identifies a vehicle across both kinds. The two kinds are
// stored in separate tables with independent ID sequences, so the ID
// alone is ambiguous.
type VehicleKey struct {
	Kind VehicleKind
	ID   int64
}

func (v Vehicle) Key() VehicleKey {
	return VehicleKey{Kind: v.Kind, ID: v.ID}
}

// VehicleMonthActivation temporarily excludes a vehicle from the demand
// computation for one month without archiving it. Absence of a record
// means enabled.
type VehicleMonthActivation struct {
	VehicleID int64
	Year      int
	Month     int
	Enabled   bool
}

// DutyRosterEntry is one roster record: the duty code a person holds on
// a date, plus the occupancy slot they fill. Value and SlotID are
// independently updatable; writing one must never blank the other.
type DutyRosterEntry struct {
	Ref    PersonRef
	Date   string // ISO yyyy-mm-dd
	Value  string // duty code, drawn from the ShiftType vocabulary
	SlotID string // occupancy slot identifier, "" if none
}

// ShiftType is one entry of the duty-code vocabulary. Category and
// Color are persisted as settings keys ("auswertung_<code>" and
// "color_<code>"), not as columns.
type ShiftType struct {
	Code        string
	Description string
	Category    string
	Color       string
}

// Holiday suppresses ITW demand on its date.
type Holiday struct {
	Date string // ISO yyyy-mm-dd
	Name string
}
