package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/core/shiftcode"
)

// AssignStore defines the database operations needed for slot assignment
type AssignStore interface {
	AssignSlot(ctx context.Context, ref model.PersonRef, date, slotID string) error
	Entry(ctx context.Context, ref model.PersonRef, date string) (model.DutyRosterEntry, bool, error)
	Persons(ctx context.Context) ([]model.Person, error)
	Classifier(ctx context.Context) (*shiftcode.Classifier, error)
}

// AssignResult reports an executed slot assignment. The assignment is
// always written; eligibility is advisory, since the manually entered
// duty code is authoritative and the engine only classifies.
type AssignResult struct {
	DutyCode string
	Category shiftcode.Category
	Eligible bool
}

// slotCategory maps a slot to the duty-code category it asks for. ITW
// slots are staffed by qualification, not by duty code, so any code is
// acceptable there.
func slotCategory(slot model.Slot) shiftcode.Category {
	if slot.ITW {
		return shiftcode.CategoryAny
	}
	if slot.Segment == model.SegmentNight {
		return shiftcode.CategoryNight
	}
	return shiftcode.CategoryDay
}

// AssignSlot puts a person into a slot on a date. Any other holder of
// the same slot on that date is cleared by the store in the same
// transaction, so exclusivity holds without caller discipline.
func AssignSlot(ctx context.Context, store AssignStore, ref model.PersonRef, date, slotID string, logger *zap.Logger) (*AssignResult, error) {
	slot, ok := model.ParseSlotID(slotID)
	if !ok && slotID != "" {
		return nil, fmt.Errorf("invalid slot identifier %q", slotID)
	}

	result := &AssignResult{Eligible: true}
	if slotID != "" {
		classifier, err := store.Classifier(ctx)
		if err != nil {
			return nil, err
		}
		entry, _, err := store.Entry(ctx, ref, date)
		if err != nil {
			return nil, err
		}
		result.DutyCode = entry.Value
		result.Category = classifier.Classify(entry.Value)
		result.Eligible = classifier.IsEligible(entry.Value, slotCategory(slot))
		if !result.Eligible {
			logger.Warn("Assigning slot to ineligible person",
				zap.String("ref", ref.String()),
				zap.String("date", date),
				zap.String("slot", slotID),
				zap.String("duty_code", entry.Value))
		}
	}

	if err := store.AssignSlot(ctx, ref, date, slotID); err != nil {
		return nil, fmt.Errorf("failed to assign slot: %w", err)
	}
	return result, nil
}

// EligiblePersons returns the staff members whose duty code on the date
// qualifies them for the slot.
func EligiblePersons(ctx context.Context, store AssignStore, date, slotID string) ([]model.Person, error) {
	slot, ok := model.ParseSlotID(slotID)
	if !ok {
		return nil, fmt.Errorf("invalid slot identifier %q", slotID)
	}
	desired := slotCategory(slot)

	classifier, err := store.Classifier(ctx)
	if err != nil {
		return nil, err
	}
	persons, err := store.Persons(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []model.Person
	for _, p := range persons {
		entry, _, err := store.Entry(ctx, p.Ref(), date)
		if err != nil {
			return nil, err
		}
		if classifier.IsEligible(entry.Value, desired) {
			eligible = append(eligible, p)
		}
	}
	return eligible, nil
}
