package telemetry

import (
	"errors"
	"reflect"
	"testing"
)

func TestGroupedParser_CompleteChunk(t *testing.T) {
	p := NewGroupedParser("telemetry")
	blocks, err := p.Feed([]byte("bot1:\n- hp: 50\n- ammo: 3\nbot2:\n- hp: 80\n"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	want := []Block{
		{Stream: "bot1", Entries: []Entry{{"hp", 50}, {"ammo", 3}}},
		{Stream: "bot2", Entries: []Entry{{"hp", 80}}},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("Feed = %#v, want %#v", blocks, want)
	}
	if p.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", p.Pending())
	}
}

func TestGroupedParser_DefersIncompleteBlock(t *testing.T) {
	p := NewGroupedParser("telemetry")
	blocks, err := p.Feed([]byte("bot1:\n- hp: 50\nbot3:\n- hp: 1"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Stream != "bot1" {
		t.Fatalf("Feed = %#v, want only bot1", blocks)
	}

	blocks, err = p.Feed([]byte("5\n"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	want := []Block{{Stream: "bot3", Entries: []Entry{{"hp", 15}}}}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("Feed = %#v, want %#v", blocks, want)
	}
}

func TestGroupedParser_PartialHeaderCompletesPrevious(t *testing.T) {
	p := NewGroupedParser("telemetry")
	blocks, err := p.Feed([]byte("bot1:\n- hp: 50\nbo"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Stream != "bot1" {
		t.Fatalf("Feed = %#v, want bot1", blocks)
	}
	blocks, err = p.Feed([]byte("t2:\n"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Stream != "bot2" || len(blocks[0].Entries) != 0 {
		t.Fatalf("Feed = %#v, want empty bot2", blocks)
	}
}

func TestGroupedParser_ContinuationJoinsLastStream(t *testing.T) {
	p := NewGroupedParser("telemetry")
	if _, err := p.Feed([]byte("bot1:\n- hp: 50\n")); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	blocks, err := p.Feed([]byte("  - hp: 45\n"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	want := []Block{{Stream: "bot1", Entries: []Entry{{"hp", 45}}}}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("Feed = %#v, want %#v", blocks, want)
	}
}

func TestGroupedParser_ValueMayContainSeparator(t *testing.T) {
	p := NewGroupedParser("telemetry")
	blocks, err := p.Feed([]byte("bot1:\n- hp:  -7.5 \n"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if blocks[0].Entries[0] != (Entry{"hp", -7.5}) {
		t.Fatalf("entry = %#v", blocks[0].Entries[0])
	}
}

func TestGroupedParser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		chunk    string
		wantLine int
	}{
		{"entry before header", "- hp: 1\n", 1},
		{"bad value", "bot1:\n- hp: lots\n", 2},
		{"missing separator", "bot1:\n- hp 5\n", 2},
		{"stray text", "bot1:\n- hp: 5\ngarbage\n", 3},
		{"empty header", ":\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGroupedParser("telemetry").Feed([]byte(tt.chunk))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Feed error = %v, want *ParseError", err)
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("Feed error = %v, want ErrParse", err)
			}
			if perr.Line != tt.wantLine {
				t.Fatalf("Line = %d, want %d", perr.Line, tt.wantLine)
			}
		})
	}
}

func TestGroupedParser_LineNumbersSurviveDeferral(t *testing.T) {
	p := NewGroupedParser("telemetry")
	if _, err := p.Feed([]byte("bot1:\n- hp: 1\nbot2:\n- hp")); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	_, err := p.Feed([]byte(": x\n"))
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Line != 4 {
		t.Fatalf("error = %v, want line 4", err)
	}
}

func TestGroupedParser_Flush(t *testing.T) {
	p := NewGroupedParser("telemetry")
	if blocks, _ := p.Feed([]byte("bot3:\n- hp: 1")); len(blocks) != 0 {
		t.Fatalf("Feed = %#v, want none", blocks)
	}
	blocks, err := p.Flush()
	if err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := []Block{{Stream: "bot3", Entries: []Entry{{"hp", 1}}}}
	if !reflect.DeepEqual(blocks, want) {
		t.Fatalf("Flush = %#v, want %#v", blocks, want)
	}
}
