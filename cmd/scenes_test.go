package cmd

import (
	"strings"
	"testing"

	"github.com/df07/go-octree-raytracer/pkg/scene"
)

func TestScenesTable(t *testing.T) {
	table, err := scenesTable()
	if err != nil {
		t.Fatalf("Expected table, got %v", err)
	}

	for _, preset := range scene.Presets() {
		if !strings.Contains(table, preset.Name) {
			t.Errorf("Expected %q in table:\n%s", preset.Name, table)
		}
	}
	if !strings.Contains(table, "Octants") {
		t.Errorf("Expected header in table:\n%s", table)
	}
}
