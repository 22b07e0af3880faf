package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/usecase"
)

func snapshotLead(id, status, source, owner string, budget int64, createdAt time.Time) entity.Lead {
	return entity.Lead{
		ID:          id,
		CompanyName: "Company " + id,
		Source:      source,
		Status:      status,
		OwnerID:     owner,
		BudgetCents: budget,
		CreatedAt:   createdAt,
	}
}

func TestAggregateConversionRateScenario(t *testing.T) {
	window := usecase.Window{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	inside := window.From.Add(24 * time.Hour)

	// 3 converted, 1 lost, nothing else: conversion rate 0.75.
	snapshot := []entity.Lead{
		snapshotLead("1", entity.StatusConverted, entity.SourceWebsite, "rep-1", 100, inside),
		snapshotLead("2", entity.StatusConverted, entity.SourceWebsite, "rep-1", 100, inside),
		snapshotLead("3", entity.StatusConverted, entity.SourceReferral, "rep-2", 100, inside),
		snapshotLead("4", entity.StatusLost, entity.SourceEvent, "rep-1", 100, inside),
	}

	summary := usecase.Aggregate(snapshot, window, usecase.Filters{})

	assert.Equal(t, 4, summary.TotalLeads)
	assert.InDelta(t, 0.75, summary.ConversionRate, 1e-9)
	assert.Equal(t, 3, summary.ByStatus[entity.StatusConverted].Count)
	assert.Equal(t, 1, summary.ByStatus[entity.StatusLost].Count)
	// LOST value is excluded from the open pipeline.
	assert.Equal(t, int64(300), summary.PipelineCents)
}

func TestAggregateEarlyPipelineDoesNotDiluteConversionRate(t *testing.T) {
	window := usecase.Window{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	inside := window.From.Add(time.Hour)

	snapshot := []entity.Lead{
		snapshotLead("1", entity.StatusConverted, entity.SourceWebsite, "rep-1", 0, inside),
		snapshotLead("2", entity.StatusQualified, entity.SourceWebsite, "rep-1", 0, inside),
		snapshotLead("3", entity.StatusNew, entity.SourceWebsite, "rep-1", 0, inside),
		snapshotLead("4", entity.StatusContacted, entity.SourceWebsite, "rep-1", 0, inside),
	}

	summary := usecase.Aggregate(snapshot, window, usecase.Filters{})

	// converted / (converted + lost + qualified) = 1/2, NEW and CONTACTED
	// are not part of the denominator.
	assert.InDelta(t, 0.5, summary.ConversionRate, 1e-9)
}

func TestAggregateIsPure(t *testing.T) {
	window := usecase.Window{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	snapshot := []entity.Lead{
		snapshotLead("1", entity.StatusConverted, entity.SourceWebsite, "rep-1", 120, window.From),
		snapshotLead("2", entity.StatusNew, entity.SourceEvent, "rep-2", 80, window.From.Add(time.Hour)),
	}
	filters := usecase.Filters{Source: entity.SourceWebsite}

	first := usecase.Aggregate(snapshot, window, filters)
	second := usecase.Aggregate(snapshot, window, filters)

	assert.Equal(t, first, second)
	// The input snapshot is not mutated.
	assert.Equal(t, entity.StatusConverted, snapshot[0].Status)
}

func TestAggregateAppliesWindowAndFilters(t *testing.T) {
	window := usecase.Window{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
	}

	snapshot := []entity.Lead{
		snapshotLead("in", entity.StatusNew, entity.SourceWebsite, "rep-1", 100, window.From),
		snapshotLead("boundary", entity.StatusNew, entity.SourceWebsite, "rep-1", 100, window.To), // [from, to) excludes To
		snapshotLead("before", entity.StatusNew, entity.SourceWebsite, "rep-1", 100, window.From.Add(-time.Minute)),
		snapshotLead("other-source", entity.StatusNew, entity.SourceEvent, "rep-1", 100, window.From),
		snapshotLead("other-rep", entity.StatusNew, entity.SourceWebsite, "rep-2", 100, window.From),
	}

	summary := usecase.Aggregate(snapshot, window, usecase.Filters{
		Source:  entity.SourceWebsite,
		OwnerID: "rep-1",
	})

	assert.Equal(t, 1, summary.TotalLeads)
	assert.Equal(t, map[string]int{entity.SourceWebsite: 1}, summary.BySource)
}

func TestAggregateEmptyWindow(t *testing.T) {
	window := usecase.Window{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
	}

	summary := usecase.Aggregate(nil, window, usecase.Filters{})

	assert.Zero(t, summary.TotalLeads)
	assert.Zero(t, summary.ConversionRate)
}

func TestDashboardSummaryTrendDeltas(t *testing.T) {
	window := usecase.Window{
		From: time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
	prior := window.Prior()

	snapshot := []entity.Lead{
		// Prior week: 1 lead, lost.
		snapshotLead("p1", entity.StatusLost, entity.SourceWebsite, "rep-1", 100, prior.From),
		// Current week: 2 leads, 1 converted.
		snapshotLead("c1", entity.StatusConverted, entity.SourceWebsite, "rep-1", 200, window.From),
		snapshotLead("c2", entity.StatusNew, entity.SourceReferral, "rep-1", 300, window.From.Add(time.Hour)),
	}

	leadRepo := new(MockLeadRepository)
	leadRepo.On("CreatedBetween", mock.Anything, prior.From, window.To).Return(snapshot, nil)

	uc := usecase.NewDashboardUseCase(leadRepo)
	summary, err := uc.Summary(context.Background(), window, usecase.Filters{})

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.TotalLeads)
	assert.Equal(t, 1, summary.TrendDeltas.Leads)
	assert.Equal(t, 1, summary.TrendDeltas.Converted)
	assert.Equal(t, int64(500), summary.TrendDeltas.ValueCents)
	assert.InDelta(t, 1.0, summary.TrendDeltas.ConversionRate, 1e-9)
	leadRepo.AssertExpectations(t)
}

func TestDashboardSummaryRejectsInvertedWindow(t *testing.T) {
	uc := usecase.NewDashboardUseCase(new(MockLeadRepository))

	_, err := uc.Summary(context.Background(), usecase.Window{
		From: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC),
	}, usecase.Filters{})

	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
}
