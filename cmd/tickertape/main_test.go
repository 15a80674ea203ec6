package main

import "testing"

func TestChooseModePrecedence(t *testing.T) {
	info, err := chooseMode("2", "chart")
	if err != nil || info.Name != "tape" {
		t.Errorf("flag should win: %+v (%v)", info, err)
	}

	info, err = chooseMode("", "average")
	if err != nil || info.Name != "average" {
		t.Errorf("config should be used without flag: %+v (%v)", info, err)
	}

	if _, err := chooseMode("gui", ""); err == nil {
		t.Error("expected error for unknown mode")
	}
}
