package validation_test

import (
	"strings"
	"testing"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/models"
	"househand/backend/internal/validation"
)

func f(v float64) *float64 { return &v }

func validTaskInput() validation.TaskInput {
	return validation.TaskInput{
		Title:       "Fix the fence",
		Description: "Two broken planks near the gate",
		Location:    "Kigali",
		BudgetMin:   f(5000),
		BudgetMax:   f(10000),
	}
}

func TestValidateTaskValid(t *testing.T) {
	if err := validation.ValidateTask(validTaskInput()); err != nil {
		t.Errorf("Expected valid task, got error: %v", err)
	}
}

func TestValidateTaskBlankFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*validation.TaskInput)
	}{
		{"empty title", func(in *validation.TaskInput) { in.Title = "" }},
		{"whitespace title", func(in *validation.TaskInput) { in.Title = "   " }},
		{"empty description", func(in *validation.TaskInput) { in.Description = "" }},
		{"whitespace description", func(in *validation.TaskInput) { in.Description = "\t\n" }},
		{"empty location", func(in *validation.TaskInput) { in.Location = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validTaskInput()
			tc.mutate(&in)
			err := validation.ValidateTask(in)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !apperrors.IsKind(err, apperrors.KindValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateTaskBudgetRange(t *testing.T) {
	cases := []struct {
		name     string
		min, max *float64
		valid    bool
	}{
		{"missing min", nil, f(100), false},
		{"missing max", f(100), nil, false},
		{"negative min", f(-1), f(100), false},
		{"negative max", f(0), f(-5), false},
		{"min above max", f(200), f(100), false},
		{"equal bounds", f(100), f(100), true},
		{"zero bounds", f(0), f(0), true},
		{"normal range", f(5000), f(10000), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validTaskInput()
			in.BudgetMin = tc.min
			in.BudgetMax = tc.max
			err := validation.ValidateTask(in)
			if tc.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestValidateTaskEffortLevel(t *testing.T) {
	in := validTaskInput()
	bad := "impossible"
	in.EffortLevel = &bad
	if err := validation.ValidateTask(in); err == nil {
		t.Error("Expected error for unknown effort level")
	}

	easy := models.EffortEasy
	in.EffortLevel = &easy
	if err := validation.ValidateTask(in); err != nil {
		t.Errorf("Expected easy effort level to pass, got %v", err)
	}
}

func TestValidateBid(t *testing.T) {
	task := &models.Task{BudgetMin: 5000, BudgetMax: 10000}

	cases := []struct {
		name  string
		in    validation.BidInput
		valid bool
	}{
		{"valid", validation.BidInput{Message: "Can do this weekend", ProposedPrice: f(8000)}, true},
		{"at lower bound", validation.BidInput{Message: "ok", ProposedPrice: f(5000)}, true},
		{"at upper bound", validation.BidInput{Message: "ok", ProposedPrice: f(10000)}, true},
		{"empty message", validation.BidInput{Message: "", ProposedPrice: f(8000)}, false},
		{"missing price", validation.BidInput{Message: "ok"}, false},
		{"below range", validation.BidInput{Message: "ok", ProposedPrice: f(4999)}, false},
		{"above range", validation.BidInput{Message: "ok", ProposedPrice: f(10001)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.ValidateBid(tc.in, task)
			if tc.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestValidateBidErrorMentionsRange(t *testing.T) {
	task := &models.Task{BudgetMin: 5000, BudgetMax: 10000}
	err := validation.ValidateBid(validation.BidInput{Message: "ok", ProposedPrice: f(100)}, task)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "5000") || !strings.Contains(msg, "10000") {
		t.Errorf("Expected error to reference the budget range, got %q", msg)
	}
}
