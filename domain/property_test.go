package domain

import "testing"

func TestAvailableBeds(t *testing.T) {
	p := &Property{
		RoomTypes: []RoomType{
			{Type: RoomSingle, Capacity: 3, Occupied: 1},
			{Type: RoomDouble, Capacity: 4, Occupied: 4},
		},
	}

	if got := p.AvailableBeds(RoomSingle); got != 2 {
		t.Errorf("expected 2 free single beds, got %d", got)
	}
	if got := p.AvailableBeds(RoomDouble); got != 0 {
		t.Errorf("expected full double room, got %d", got)
	}
	if got := p.AvailableBeds(RoomDormitory); got != 0 {
		t.Errorf("unknown room type should report 0 beds, got %d", got)
	}
}

func TestAvailableBedsNeverNegative(t *testing.T) {
	rt := RoomType{Type: RoomSingle, Capacity: 2, Occupied: 5}
	if got := rt.AvailableBeds(); got != 0 {
		t.Errorf("over-occupied room type must clamp to 0, got %d", got)
	}
}

func TestRoomTypeByKind(t *testing.T) {
	p := &Property{
		RoomTypes: []RoomType{
			{Type: RoomSingle, Capacity: 1},
			{Type: RoomTriple, Capacity: 3},
		},
	}

	rt, ok := p.RoomTypeByKind(RoomTriple)
	if !ok || rt.Capacity != 3 {
		t.Fatalf("expected triple sharing entry, got %+v ok=%v", rt, ok)
	}
	// Returned pointer aliases the slice entry so occupancy edits stick.
	rt.Occupied = 2
	if p.RoomTypes[1].Occupied != 2 {
		t.Errorf("RoomTypeByKind should return a pointer into the slice")
	}

	if _, ok := p.RoomTypeByKind(RoomDormitory); ok {
		t.Errorf("missing room type should report ok=false")
	}
}

func TestRecomputeAggregates(t *testing.T) {
	p := &Property{
		TotalCapacity:    99,
		CurrentOccupancy: 99,
		RoomTypes: []RoomType{
			{Type: RoomSingle, Capacity: 2, Occupied: 1},
			{Type: RoomDouble, Capacity: 4, Occupied: 2},
			{Type: RoomDormitory, Capacity: 10, Occupied: 0},
		},
	}

	p.RecomputeAggregates()

	if p.TotalCapacity != 16 {
		t.Errorf("expected total capacity 16, got %d", p.TotalCapacity)
	}
	if p.CurrentOccupancy != 3 {
		t.Errorf("expected current occupancy 3, got %d", p.CurrentOccupancy)
	}
}
