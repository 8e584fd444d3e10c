package pocketbuddy

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "teacher", "student"} {
		role, err := ParseRole(valid)
		if err != nil {
			t.Errorf("ParseRole(%q): unexpected error %v", valid, err)
		}
		if string(role) != valid {
			t.Errorf("ParseRole(%q) = %q", valid, role)
		}
	}

	for _, invalid := range []string{"", "Admin", "superuser", "ziak"} {
		if _, err := ParseRole(invalid); err == nil {
			t.Errorf("ParseRole(%q): expected error", invalid)
		}
	}
}

func TestRole_UnmarshalJSON_RejectsUnknown(t *testing.T) {
	var u User
	err := json.Unmarshal([]byte(`{"id": "3fa15f64-5717-4562-b3fc-2c963f66afa6", "role": "superuser"}`), &u)
	if err == nil {
		t.Fatal("expected unknown role to be rejected at decode time")
	}
}

func TestOptionLetter(t *testing.T) {
	tests := []struct {
		option string
		want   string
	}{
		{"A) a² + b²", "A"},
		{"B) druhá možnosť", "B"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := OptionLetter(tt.option); got != tt.want {
			t.Errorf("OptionLetter(%q) = %q, want %q", tt.option, got, tt.want)
		}
	}
}

func TestQuizQuestion_Validate(t *testing.T) {
	valid := QuizQuestion{
		Question: "Čomu sa rovná c²?",
		Options:  []string{"A) a² + b²", "B) a² - b²"},
		Correct:  "A",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	noMatch := valid
	noMatch.Correct = "D"
	if err := noMatch.Validate(); err == nil {
		t.Error("expected error when correct letter matches no option")
	}

	empty := QuizQuestion{Correct: "A"}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for empty question")
	}

	noOptions := QuizQuestion{Question: "Otázka", Correct: "A"}
	if err := noOptions.Validate(); err == nil {
		t.Error("expected error for question without options")
	}
}
