package main

import (
	"reflect"
	"testing"
)

func TestGetSnoozePresets(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []int
	}{
		{"default", "5,10,15", []int{5, 10, 15}},
		{"whitespace", " 5 , 10 ,15 ", []int{5, 10, 15}},
		{"duplicates dropped", "5,5,10", []int{5, 10}},
		{"non-positive dropped", "0,-3,10", []int{10}},
		{"garbage dropped", "abc,10,x", []int{10}},
		{"empty falls back", "", []int{5}},
		{"all garbage falls back", "a,b,c", []int{5}},
	}
	for _, c := range cases {
		cfg := &Config{SnoozePresets: c.input}
		if got := cfg.GetSnoozePresets(); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: GetSnoozePresets(%q) = %v, want %v", c.name, c.input, got, c.want)
		}
	}
}

func TestConfigBaseURL(t *testing.T) {
	cfg := &Config{ServerURL: "http://127.0.0.1:8000/"}
	if got := cfg.BaseURL(); got != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q", got)
	}
	cfg.ServerURL = "http://127.0.0.1:8000"
	if got := cfg.BaseURL(); got != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q", got)
	}
}
