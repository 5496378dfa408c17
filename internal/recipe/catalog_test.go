package recipe

import (
	"context"
	"testing"

	"github.com/hammamikhairi/pourover/internal/domain"
	"github.com/hammamikhairi/pourover/internal/logger"
)

func TestCatalogList(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cat := NewCatalog(log)
	ctx := context.Background()

	methods, err := cat.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	if methods[0].Method != domain.MethodFourSix {
		t.Fatalf("expected 4:6 first, got %s", methods[0].Method)
	}
	if methods[0].Seconds != 210 || methods[1].Seconds != 180 {
		t.Fatalf("unexpected brew times: %v, %v", methods[0].Seconds, methods[1].Seconds)
	}
}

func TestCatalogGet(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cat := NewCatalog(log)
	ctx := context.Background()

	tests := []struct {
		method  domain.Method
		wantErr error
	}{
		{domain.MethodFourSix, nil},
		{domain.MethodHoffmann1Cup, nil},
		{domain.MethodUnknown, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			p, err := cat.Get(ctx, tt.method)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Method != tt.method {
				t.Fatalf("expected %s, got %s", tt.method, p.Method)
			}
			if len(p.Checkpoints) != 5 {
				t.Fatalf("expected 5 checkpoints, got %d", len(p.Checkpoints))
			}
			if p.Checkpoints[len(p.Checkpoints)-1].Fraction != 1 {
				t.Fatal("last checkpoint must use all the water")
			}
		})
	}
}

func TestCatalogSearch(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cat := NewCatalog(log)
	ctx := context.Background()

	tests := []struct {
		query string
		count int
	}{
		{"hoffmann", 1},
		{"kasuya", 1},
		{"v60", 2},
		{"aeropress", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := cat.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if len(results) != tt.count {
				t.Fatalf("query=%q: expected %d results, got %d", tt.query, tt.count, len(results))
			}
		})
	}
}

func TestCatalogGetReturnsCopy(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cat := NewCatalog(log)
	ctx := context.Background()

	before, err := Generate(300, domain.MethodFourSix)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	p, err := cat.Get(ctx, domain.MethodFourSix)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	p.Ratio = 1
	p.Checkpoints[0].Fraction = 0.9
	p.Checkpoints[0].PourFor = 99

	again, err := cat.Get(ctx, domain.MethodFourSix)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Ratio != 15 || again.Checkpoints[0].Fraction != 0.2 || again.Checkpoints[0].PourFor != 10 {
		t.Fatalf("catalog profile was modified through a returned copy: %+v", again.Checkpoints[0])
	}

	after, err := Generate(300, domain.MethodFourSix)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !before.Equal(after) {
		t.Fatal("recipe changed after editing a returned profile")
	}
}
