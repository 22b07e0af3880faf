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

func validCreateLeadInput() usecase.CreateLeadInput {
	return usecase.CreateLeadInput{
		CompanyName:   "Acme Corp",
		ContactPerson: "Jordan Reeves",
		Email:         "jordan@acme.test",
		Phone:         "+1 555 0100 200",
		Source:        "website",
		Industry:      "Technology",
		OwnerID:       "rep-1",
		BudgetCents:   1500000,
	}
}

func TestCreateLeadSuccess(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	repRepo := new(MockSalesRepRepository)

	repRepo.On("Exists", ctx, "rep-1").Return(true, nil)
	leadRepo.On("Create", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(leadRepo, repRepo)
	uc.Now = func() time.Time { return frozenNow }

	lead, err := uc.Execute(ctx, validCreateLeadInput())

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.Equal(t, entity.SourceWebsite, lead.Source)
	assert.Equal(t, "rep-1", lead.OwnerID)
	assert.Equal(t, frozenNow, lead.CreatedAt)
	assert.NotEmpty(t, lead.ID)
	leadRepo.AssertExpectations(t)
	repRepo.AssertExpectations(t)
}

func TestCreateLeadValidation(t *testing.T) {
	uc := usecase.NewCreateLeadUseCase(new(MockLeadRepository), new(MockSalesRepRepository))

	cases := []struct {
		name   string
		mutate func(*usecase.CreateLeadInput)
	}{
		{"missing company", func(in *usecase.CreateLeadInput) { in.CompanyName = " " }},
		{"missing contact", func(in *usecase.CreateLeadInput) { in.ContactPerson = "" }},
		{"bad email", func(in *usecase.CreateLeadInput) { in.Email = "not-an-email" }},
		{"unknown source", func(in *usecase.CreateLeadInput) { in.Source = "CARRIER_PIGEON" }},
		{"missing owner", func(in *usecase.CreateLeadInput) { in.OwnerID = "" }},
		{"negative budget", func(in *usecase.CreateLeadInput) { in.BudgetCents = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCreateLeadInput()
			tc.mutate(&input)

			lead, err := uc.Execute(context.Background(), input)
			assert.Nil(t, lead)
			assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
		})
	}
}

func TestCreateLeadUnknownOwner(t *testing.T) {
	ctx := context.Background()
	repRepo := new(MockSalesRepRepository)
	repRepo.On("Exists", ctx, "rep-1").Return(false, nil)

	uc := usecase.NewCreateLeadUseCase(new(MockLeadRepository), repRepo)

	_, err := uc.Execute(ctx, validCreateLeadInput())
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
}

func TestCreateLeadDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	repRepo := new(MockSalesRepRepository)

	repRepo.On("Exists", ctx, "rep-1").Return(true, nil)
	leadRepo.On("Create", ctx, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	uc := usecase.NewCreateLeadUseCase(leadRepo, repRepo)

	_, err := uc.Execute(ctx, validCreateLeadInput())
	assert.Equal(t, usecase.CodeConflict, usecase.ErrorCode(err))
}

func TestGetLeadNotFound(t *testing.T) {
	ctx := context.Background()
	leadRepo := new(MockLeadRepository)
	leadRepo.On("FindByID", ctx, "ghost").Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewCreateLeadUseCase(leadRepo, new(MockSalesRepRepository))

	_, err := uc.GetLead(ctx, "ghost")
	assert.Equal(t, usecase.CodeNotFound, usecase.ErrorCode(err))
}
