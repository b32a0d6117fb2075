package core

import (
	"testing"
)

func TestFlexibleUnmarshal_LooseScalars(t *testing.T) {
	type kafka struct {
		Host       string `json:"kafka_host"`
		Port       string `json:"kafka_port"`
		MaxStreams int64  `json:"max_streams"`
		Connected  bool   `json:"kafka_connection"`
	}

	jsonData := []byte(`{
		"kafka_host": "kafka",
		"kafka_port": 9092,
		"max_streams": "10",
		"kafka_connection": "true"
	}`)

	var result kafka
	if err := FlexibleUnmarshal(jsonData, &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Port != "9092" {
		t.Errorf("expected Port to be '9092', got %q", result.Port)
	}
	if result.MaxStreams != 10 {
		t.Errorf("expected MaxStreams to be 10, got %d", result.MaxStreams)
	}
	if !result.Connected {
		t.Errorf("expected Connected to be true")
	}
}

func TestFlexibleUnmarshal_BooleanAndFloatToString(t *testing.T) {
	type status struct {
		Enabled string `json:"enabled"`
		Ratio   string `json:"ratio"`
	}

	var result status
	if err := FlexibleUnmarshal([]byte(`{"enabled": true, "ratio": 0.5}`), &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Enabled != "true" {
		t.Errorf("expected Enabled to be 'true', got %q", result.Enabled)
	}
	if result.Ratio != "0.5" {
		t.Errorf("expected Ratio to be '0.5', got %q", result.Ratio)
	}
}

func TestFlexibleUnmarshal_NestedAndSlices(t *testing.T) {
	type org struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	type dataset struct {
		Organization *org     `json:"organization"`
		Versions     []string `json:"versions"`
	}

	var result dataset
	err := FlexibleUnmarshal([]byte(`{"organization": {"id": 42, "name": "noaa"}, "versions": [1, "2"]}`), &result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Organization == nil || result.Organization.ID != "42" {
		t.Fatalf("expected nested ID '42', got %+v", result.Organization)
	}
	if len(result.Versions) != 2 || result.Versions[0] != "1" || result.Versions[1] != "2" {
		t.Errorf("unexpected versions: %v", result.Versions)
	}
}

func TestFlexibleUnmarshal_InvalidTarget(t *testing.T) {
	var notStruct map[string]any
	if err := FlexibleUnmarshal([]byte(`{}`), notStruct); err == nil {
		t.Error("expected error for non-pointer target")
	}
	var s string
	if err := FlexibleUnmarshal([]byte(`{}`), &s); err == nil {
		t.Error("expected error for pointer to non-struct")
	}
	type any1 struct{}
	var v any1
	if err := FlexibleUnmarshal([]byte(`[1,2]`), &v); err == nil {
		t.Error("expected error for non-object JSON")
	}
}
