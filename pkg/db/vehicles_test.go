package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhagedorn/wachplan/pkg/core/model"
)

func TestVehicles_BothKinds(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	rtw := &model.Vehicle{Kind: model.VehicleRTW, Name: "RTW 1", Sort: 1}
	nef := &model.Vehicle{Kind: model.VehicleNEF, Name: "NEF 1", OccupancyMode: model.OccupancyDay}
	require.NoError(t, d.UpsertVehicle(ctx, rtw))
	require.NoError(t, d.UpsertVehicle(ctx, nef))
	require.NotZero(t, rtw.ID)

	vehicles, err := d.Vehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, model.VehicleRTW, vehicles[0].Kind)
	assert.Equal(t, model.OccupancyDay, vehicles[1].OccupancyMode)

	// Archive the RTW and update it in place.
	rtw.ArchivedYear = 2025
	require.NoError(t, d.UpsertVehicle(ctx, rtw))
	vehicles, err = d.Vehicles(ctx)
	require.NoError(t, err)
	assert.False(t, vehicles[0].ActiveIn(2026))
	assert.True(t, vehicles[0].ActiveIn(2024))
}

func TestVehicleMonthActivations(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	rtw := &model.Vehicle{Kind: model.VehicleRTW, Name: "RTW 1"}
	nef := &model.Vehicle{Kind: model.VehicleNEF, Name: "NEF 1"}
	require.NoError(t, d.UpsertVehicle(ctx, rtw))
	require.NoError(t, d.UpsertVehicle(ctx, nef))

	// Both tables start their IDs at 1; the kind keeps them apart.
	require.NoError(t, d.SetVehicleMonth(ctx, rtw.Key(), 2026, 3, false))
	require.NoError(t, d.SetVehicleMonth(ctx, nef.Key(), 2026, 3, true))

	activations, err := d.VehicleMonthActivations(ctx, 2026, 3)
	require.NoError(t, err)
	require.Len(t, activations, 2)
	assert.False(t, activations[rtw.Key()])
	assert.True(t, activations[nef.Key()])

	// Other months have no records at all.
	activations, err = d.VehicleMonthActivations(ctx, 2026, 4)
	require.NoError(t, err)
	assert.Empty(t, activations)
}

func TestStaffStores(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	p := &model.Person{Surname: "Meyer", GivenName: "Anna", PartTimePercent: 75, HeavyVehicleCommander: true}
	require.NoError(t, d.UpsertPerson(ctx, p))
	require.NotZero(t, p.ID)

	a := &model.Apprentice{Surname: "Azubi", GivenName: "Tom", TrainingYear: 2}
	require.NoError(t, d.UpsertApprentice(ctx, a))

	doc := &model.Doctor{Surname: "Hense", GivenName: "Petra"}
	require.NoError(t, d.UpsertDoctor(ctx, doc))

	persons, err := d.Persons(ctx)
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.True(t, persons[0].HeavyVehicleCommander)
	assert.Equal(t, 75, persons[0].PartTimePercent)

	p.PartTimePercent = 100
	require.NoError(t, d.UpsertPerson(ctx, p))
	persons, err = d.Persons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, persons[0].PartTimePercent)

	apprentices, err := d.Apprentices(ctx)
	require.NoError(t, err)
	require.Len(t, apprentices, 1)
	assert.Equal(t, 2, apprentices[0].TrainingYear)

	doctors, err := d.Doctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
}
