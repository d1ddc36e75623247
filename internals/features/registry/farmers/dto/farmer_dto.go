package dto

import (
	"strconv"
	"strings"
	"time"
)

// FarmerProductInput is one element of the products JSON array sent
// alongside the multipart profile fields.
type FarmerProductInput struct {
	ProductName      string   `json:"product_name"`
	ProductionVolume *float64 `json:"production_volume"`
	Unit             string   `json:"unit"`
	IsPrimary        bool     `json:"is_primary"`
	SellingPrice     *float64 `json:"selling_price"`
}

// FarmerChildRequest is the JSON body for household succession records.
type FarmerChildRequest struct {
	Name              *string `json:"name"`
	Age               *int    `json:"age"`
	Gender            *string `json:"gender"`
	EducationLevel    *string `json:"education_level"`
	ContinuesFarming  *bool   `json:"continues_farming"`
	InvolvementLevel  *string `json:"involvement_level"`
	CurrentOccupation *string `json:"current_occupation"`
	Notes             *string `json:"notes"`
}

// Form values arrive as strings from multipart submissions. Browser-side
// serialization turns absent optional fields into "", "null" or
// "undefined", so those sentinels all coerce to the zero/default value.

func blankForm(v string) bool {
	s := strings.TrimSpace(v)
	return s == "" || s == "null" || s == "undefined" || s == "None"
}

func FormString(v, def string) string {
	if blankForm(v) {
		return def
	}
	return strings.TrimSpace(v)
}

func FormStringPtr(v string) *string {
	if blankForm(v) {
		return nil
	}
	s := strings.TrimSpace(v)
	return &s
}

func FormInt(v string, def int) int {
	if blankForm(v) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func FormIntPtr(v string) *int {
	if blankForm(v) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &n
}

func FormUintPtr(v string) *uint {
	n := FormIntPtr(v)
	if n == nil || *n <= 0 {
		return nil
	}
	u := uint(*n)
	return &u
}

func FormFloat(v string, def float64) float64 {
	if blankForm(v) {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func FormFloatPtr(v string) *float64 {
	if blankForm(v) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &f
}

func FormBool(v string, def bool) bool {
	if blankForm(v) {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return def
}

// FormDate parses YYYY-MM-DD, tolerating an RFC3339 timestamp prefix.
func FormDate(v string) *time.Time {
	if blankForm(v) {
		return nil
	}
	s := strings.TrimSpace(v)
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
