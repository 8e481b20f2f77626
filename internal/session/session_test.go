package session

import (
	"errors"
	"testing"

	"spotfinder/internal/model"
)

func berlin() model.GeoCoordinate  { return model.GeoCoordinate{Latitude: 52.52, Longitude: 13.405} }
func potsdam() model.GeoCoordinate { return model.GeoCoordinate{Latitude: 52.40, Longitude: 13.065} }

func TestAddParticipant_CreatesAreaAtCentroid(t *testing.T) {
	s := New(false)

	if _, ok := s.Area(); ok {
		t.Fatal("empty session should have no search area")
	}

	s.AddParticipant("Ada", "Berlin", berlin())
	area, ok := s.Area()
	if !ok {
		t.Fatal("area should exist after the first participant")
	}
	if area.Center != berlin() {
		t.Errorf("single-participant center should be their location, got %+v", area.Center)
	}
	if area.RadiusMeters != DefaultRadiusMeters {
		t.Errorf("expected default radius, got %v", area.RadiusMeters)
	}

	s.AddParticipant("Ben", "Potsdam", potsdam())
	area, _ = s.Area()
	wantLat := (berlin().Latitude + potsdam().Latitude) / 2
	if area.Center.Latitude != wantLat {
		t.Errorf("center should move to the pair midpoint, got %v", area.Center.Latitude)
	}
}

func TestAddParticipant_DefaultName(t *testing.T) {
	s := New(false)
	p := s.AddParticipant("   ", "Berlin", berlin())
	if p.DisplayName != "Friend" {
		t.Errorf("blank name should default, got %q", p.DisplayName)
	}
	if p.ID == "" {
		t.Error("participant should get an id")
	}
}

func TestAddParticipant_ClearsManualOverride(t *testing.T) {
	s := New(false)
	s.AddParticipant("Ada", "Berlin", berlin())

	if err := s.SetManualCenter(potsdam()); err != nil {
		t.Fatal(err)
	}
	area, _ := s.Area()
	if !area.ManualOverride {
		t.Fatal("manual override should be set")
	}

	s.AddParticipant("Ben", "Potsdam", potsdam())
	area, _ = s.Area()
	if area.ManualOverride {
		t.Error("group change should snap the center back to the centroid")
	}
}

func TestAddThenRemove_RestoresCentroid(t *testing.T) {
	s := New(false)
	s.AddParticipant("Ada", "Berlin", berlin())
	_ = s.SetManualCenter(model.GeoCoordinate{Latitude: 50, Longitude: 10})

	// A net no-op on the group still re-anchors the center and drops the
	// manual override.
	p := s.AddParticipant("Ben", "Potsdam", potsdam())
	s.RemoveParticipant(p.ID)

	area, _ := s.Area()
	if area.Center != berlin() {
		t.Errorf("center should be back at the original centroid, got %+v", area.Center)
	}
	if area.ManualOverride {
		t.Error("manual override should be cleared")
	}
}

func TestRemoveParticipant_LastOneDropsArea(t *testing.T) {
	s := New(false)
	p := s.AddParticipant("Ada", "Berlin", berlin())
	seq := s.BeginCycle()
	s.Complete(seq, []model.Venue{{Name: "Spot"}})

	if !s.RemoveParticipant(p.ID) {
		t.Fatal("removal should succeed")
	}
	if _, ok := s.Area(); ok {
		t.Error("area should be gone with the last participant")
	}
	if len(s.Venues()) != 0 {
		t.Error("venues should be cleared with the last participant")
	}
	if s.State() != model.CycleIdle {
		t.Errorf("session should go idle, got %v", s.State())
	}
}

func TestRemoveParticipant_UnknownID(t *testing.T) {
	s := New(false)
	s.AddParticipant("Ada", "Berlin", berlin())
	if s.RemoveParticipant("nope") {
		t.Error("unknown id should not remove anything")
	}
}

func TestSetRadius(t *testing.T) {
	s := New(false)

	if err := s.SetRadius(500); !errors.Is(err, ErrNoSearchArea) {
		t.Errorf("expected ErrNoSearchArea before participants, got %v", err)
	}

	s.AddParticipant("Ada", "Berlin", berlin())

	if err := s.SetRadius(-5); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("expected ErrInvalidRadius, got %v", err)
	}

	if err := s.SetRadius(50); err != nil {
		t.Fatal(err)
	}
	if area, _ := s.Area(); area.RadiusMeters != MinRadiusMeters {
		t.Errorf("tiny radius should clamp to %v, got %v", MinRadiusMeters, area.RadiusMeters)
	}

	if err := s.SetRadius(99999); err != nil {
		t.Fatal(err)
	}
	if area, _ := s.Area(); area.RadiusMeters != MaxRadiusMeters {
		t.Errorf("huge radius should clamp to %v, got %v", MaxRadiusMeters, area.RadiusMeters)
	}
}

func TestRecenterToCentroid(t *testing.T) {
	s := New(false)
	s.AddParticipant("Ada", "Berlin", berlin())
	_ = s.SetManualCenter(potsdam())

	if err := s.RecenterToCentroid(); err != nil {
		t.Fatal(err)
	}
	area, _ := s.Area()
	if area.ManualOverride || area.Center != berlin() {
		t.Errorf("recenter should restore the centroid, got %+v", area)
	}
}

func TestSetFilters_FairnessNeedsCredential(t *testing.T) {
	s := New(false)
	original := s.Filters()

	err := s.SetFilters(model.SearchFilters{
		CategoryClass: original.CategoryClass,
		RankingMode:   model.RankByTrafficFairness,
	})
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if s.Filters() != original {
		t.Error("refused filter change should leave the previous selection in place")
	}

	withKey := New(true)
	if err := withKey.SetFilters(model.SearchFilters{RankingMode: model.RankByTrafficFairness}); err != nil {
		t.Errorf("fairness with a key should be accepted, got %v", err)
	}
}

func TestCycle_Supersession(t *testing.T) {
	s := New(false)
	s.AddParticipant("Ada", "Berlin", berlin())

	first := s.BeginCycle()
	second := s.BeginCycle()

	// The first cycle resolves late; its result must be dropped.
	if s.Complete(first, []model.Venue{{Name: "Stale"}}) {
		t.Error("superseded completion should be rejected")
	}
	if len(s.Venues()) != 0 {
		t.Error("superseded completion should not touch the venue list")
	}
	if s.State() != model.CycleSearching {
		t.Errorf("state should still be searching, got %v", s.State())
	}

	if !s.Complete(second, []model.Venue{{Name: "Fresh"}}) {
		t.Error("latest completion should be accepted")
	}
	if got := s.Venues(); len(got) != 1 || got[0].Name != "Fresh" {
		t.Errorf("expected the fresh result, got %+v", got)
	}
	if s.State() != model.CycleReady {
		t.Errorf("expected ready state, got %v", s.State())
	}
}

func TestFail_KeepsStaleVenues(t *testing.T) {
	s := New(false)
	s.AddParticipant("Ada", "Berlin", berlin())

	seq := s.BeginCycle()
	s.Complete(seq, []model.Venue{{Name: "Good"}})

	seq = s.BeginCycle()
	failErr := errors.New("overpass timeout")
	if !s.Fail(seq, failErr) {
		t.Fatal("latest failure should be accepted")
	}

	if got := s.Venues(); len(got) != 1 || got[0].Name != "Good" {
		t.Errorf("a failed cycle should keep the previous results, got %+v", got)
	}
	if s.State() != model.CycleFailed {
		t.Errorf("expected failed state, got %v", s.State())
	}
	if !errors.Is(s.LastError(), failErr) {
		t.Errorf("expected the failure to be recorded, got %v", s.LastError())
	}
}

func TestFail_SupersededIgnored(t *testing.T) {
	s := New(false)
	s.AddParticipant("Ada", "Berlin", berlin())

	first := s.BeginCycle()
	second := s.BeginCycle()

	if s.Fail(first, errors.New("late failure")) {
		t.Error("superseded failure should be rejected")
	}
	if s.State() != model.CycleSearching {
		t.Errorf("state should still be searching, got %v", s.State())
	}

	_ = second
}

func TestCanSearch(t *testing.T) {
	s := New(false)
	if s.CanSearch() {
		t.Error("empty session cannot search")
	}
	p := s.AddParticipant("Ada", "Berlin", berlin())
	if !s.CanSearch() {
		t.Error("session with a participant should be searchable")
	}
	s.RemoveParticipant(p.ID)
	if s.CanSearch() {
		t.Error("emptied session cannot search")
	}
}

func TestSetDefaultRadius(t *testing.T) {
	s := New(false)
	s.SetDefaultRadius(99999)
	s.AddParticipant("Ada", "Berlin", berlin())
	if area, _ := s.Area(); area.RadiusMeters != MaxRadiusMeters {
		t.Errorf("default radius should clamp, got %v", area.RadiusMeters)
	}

	s2 := New(false)
	s2.SetDefaultRadius(0)
	s2.AddParticipant("Ada", "Berlin", berlin())
	if area, _ := s2.Area(); area.RadiusMeters != DefaultRadiusMeters {
		t.Errorf("non-positive default should be ignored, got %v", area.RadiusMeters)
	}
}
