// Curator - Catalog Admin Dashboard and Content API
// Copyright 2026 Curator Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/curatorhq/curator

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

func TestAPIResponseEnvelopeShape(t *testing.T) {
	resp := APIResponse{
		Status: "success",
		Data:   map[string]int{"total": 3},
		Metadata: Metadata{
			Timestamp:   time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			QueryTimeMS: 12,
		},
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(raw)

	for _, want := range []string{`"status":"success"`, `"query_time_ms":12`, `"data":`} {
		if !strings.Contains(s, want) {
			t.Errorf("Envelope missing %s in %s", want, s)
		}
	}
	if strings.Contains(s, `"error"`) {
		t.Errorf("Success envelope should omit error field: %s", s)
	}
	if strings.Contains(s, `"cached"`) {
		t.Errorf("Uncached envelope should omit cached field: %s", s)
	}
}

func TestCachedMetadataSerialized(t *testing.T) {
	raw, err := json.Marshal(Metadata{Timestamp: time.Now(), Cached: true})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(raw), `"cached":true`) {
		t.Errorf("Expected cached flag in %s", raw)
	}
}

func TestTemplateInputValidation(t *testing.T) {
	validate := validator.New()

	valid := TemplateInput{
		Name:       "Storefront Starter",
		Slug:       "storefront-starter",
		PlatformID: uuid.New().String(),
		Price:      4900,
		Status:     StatusLive,
		Tags:       []string{"commerce", "starter"},
	}
	if err := validate.Struct(valid); err != nil {
		t.Errorf("Valid input rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*TemplateInput)
	}{
		{"missing name", func(in *TemplateInput) { in.Name = "" }},
		{"bad platform id", func(in *TemplateInput) { in.PlatformID = "not-a-uuid" }},
		{"negative price", func(in *TemplateInput) { in.Price = -1 }},
		{"unknown status", func(in *TemplateInput) { in.Status = "pending" }},
		{"bad preview url", func(in *TemplateInput) { in.PreviewURL = "not a url" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if err := validate.Struct(in); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestUserInputValidation(t *testing.T) {
	validate := validator.New()

	if err := validate.Struct(UserInput{Email: "admin@example.com", Name: "Admin", Role: RoleAdmin}); err != nil {
		t.Errorf("Valid input rejected: %v", err)
	}
	if err := validate.Struct(UserInput{Email: "nope", Name: "Admin", Role: RoleAdmin}); err == nil {
		t.Error("Expected validation error for bad email")
	}
	if err := validate.Struct(UserInput{Email: "a@b.c", Name: "Admin", Role: "root"}); err == nil {
		t.Error("Expected validation error for unknown role")
	}
}
