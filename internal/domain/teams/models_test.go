package teams

import (
	"encoding/json"
	"testing"
)

func TestTeamJSONShape(t *testing.T) {
	raw := `{"teamId":1610612738,"teamName":"Celtics","teamCity":"Boston","teamTricode":"BOS","score":101,"inBonus":"1","timeoutsRemaining":2}`
	var team Team
	if err := json.Unmarshal([]byte(raw), &team); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.ID != 1610612738 || team.Tricode != "BOS" || team.Score != 101 || !bool(team.InBonus) || team.TimeoutsRemaining != 2 {
		t.Fatalf("unexpected team %+v", team)
	}
	if team.FullName() != "Boston Celtics" {
		t.Fatalf("unexpected full name %q", team.FullName())
	}

	out, err := json.Marshal(team)
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	want := `{"teamId":1610612738,"teamName":"Celtics","teamCity":"Boston","teamTricode":"BOS","score":101,"inBonus":true,"timeoutsRemaining":2}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestBonusVariants(t *testing.T) {
	cases := map[string]bool{
		`true`:  true,
		`false`: false,
		`"1"`:   true,
		`"0"`:   false,
		`null`:  false,
		`""`:    false,
		`1`:     true,
	}
	for raw, want := range cases {
		var b Bonus
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if bool(b) != want {
			t.Fatalf("%s: expected %v got %v", raw, want, b)
		}
	}

	var b Bonus
	if err := json.Unmarshal([]byte(`"maybe"`), &b); err == nil {
		t.Fatal("expected error for unsupported bonus value")
	}
}

func TestLogoURL(t *testing.T) {
	if got := LogoURL("lal"); got != "https://cdn.nba.com/logos/nba/1610612747/primary/L/logo.svg" {
		t.Fatalf("unexpected logo url %s", got)
	}
	if got := LogoURL("XXX"); got != "" {
		t.Fatalf("expected empty logo for unknown team, got %s", got)
	}
	if got := (Team{Tricode: "BOS"}).LogoURL(); got != LogoURLForID(1610612738) {
		t.Fatalf("expected tricode fallback, got %s", got)
	}
	if Count() != 30 {
		t.Fatalf("expected 30 franchises, got %d", Count())
	}
}
